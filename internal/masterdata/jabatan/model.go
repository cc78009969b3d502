package jabatan

import (
	"strings"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
)

// Jabatan is a position. Older API builds send JabatanDesc and Status instead
// of the prefixed keys.
type Jabatan struct {
	ID         apiclient.Text `json:"id"`
	Deskripsi  apiclient.Text `json:"jabatanDeskripsi"`
	LegacyDesc apiclient.Text `json:"JabatanDesc"`
	StatusText apiclient.Text `json:"jabatanStatus"`
	LegacyStat apiclient.Text `json:"Status"`
}

// Name returns the position name from whichever key was sent.
func (j Jabatan) Name() string {
	if s := strings.TrimSpace(j.Deskripsi.String()); s != "" {
		return s
	}
	return strings.TrimSpace(j.LegacyDesc.String())
}

// Status defaults to Aktif when the API omits it.
func (j Jabatan) Status() string {
	for _, s := range []apiclient.Text{j.StatusText, j.LegacyStat} {
		if v := strings.TrimSpace(s.String()); v != "" {
			return v
		}
	}
	return liststate.StatusActive
}

// Detail is the full record served by the detail endpoint.
type Detail struct {
	ID          apiclient.Text `json:"jab_id"`
	Desc        apiclient.Text `json:"jab_desc"`
	Status      apiclient.Text `json:"jab_status"`
	Order       apiclient.Text `json:"jab_order"`
	CreatedBy   apiclient.Text `json:"jab_created_by"`
	CreatedDate apiclient.Date `json:"jab_created_date"`
	UpdatedBy   apiclient.Text `json:"jab_updated_by"`
	UpdatedDate apiclient.Date `json:"jab_updated_date"`
}

// Input is the create and edit form.
type Input struct {
	Deskripsi string `form:"jabatanDeskripsi" validate:"required,max=100"`
}
