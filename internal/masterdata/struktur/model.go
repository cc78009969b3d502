package struktur

import (
	"strconv"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Struktur is one node of the organisation tree.
type Struktur struct {
	ID           apiclient.Text `json:"strId"`
	Desc         apiclient.Text `json:"strDesc"`
	ParentID     apiclient.Text `json:"parentId"`
	TanggalFrom  apiclient.Date `json:"tanggalFrom"`
	TanggalUntil apiclient.Date `json:"tanggalUntil"`
	Status       apiclient.Text `json:"strStatus"`

	// ParentName is resolved from the same dataset after loading.
	ParentName string `json:"-"`
}

func (s Struktur) key() string { return strings.TrimSpace(s.ID.String()) }

func (s Struktur) numericID() int64 {
	n, _ := strconv.ParseInt(s.key(), 10, 64)
	return n
}

// Parent renders the parent for display: its name when known, else its id.
func (s Struktur) Parent() string {
	if s.ParentName != "" {
		return s.ParentName
	}
	return shared.OrPlaceholder(strings.TrimSpace(s.ParentID.String()))
}

// Input is the create and edit form.
type Input struct {
	Desc         string `form:"strDesc" validate:"required,max=150"`
	ParentID     string `form:"parentId"`
	TanggalFrom  string `form:"tanggalFrom" validate:"required,datetime=2006-01-02"`
	TanggalUntil string `form:"tanggalUntil" validate:"required,datetime=2006-01-02"`
	Status       string `form:"strStatus" validate:"omitempty,oneof=Aktif 'Tidak Aktif'"`
}

// InputOf fills the form from a record.
func InputOf(s Struktur) Input {
	return Input{
		Desc:         s.Desc.String(),
		ParentID:     strings.TrimSpace(s.ParentID.String()),
		TanggalFrom:  shared.FormatInputDate(s.TanggalFrom.Time),
		TanggalUntil: shared.FormatInputDate(s.TanggalUntil.Time),
		Status:       s.Status.String(),
	}
}

func (in Input) trimmed() Input {
	in.Desc = strings.TrimSpace(in.Desc)
	in.ParentID = strings.TrimSpace(in.ParentID)
	in.TanggalFrom = strings.TrimSpace(in.TanggalFrom)
	in.TanggalUntil = strings.TrimSpace(in.TanggalUntil)
	in.Status = strings.TrimSpace(in.Status)
	return in
}

// withParentNames fills ParentName from the records themselves.
func withParentNames(records []Struktur) []Struktur {
	names := make(map[string]string, len(records))
	for _, r := range records {
		names[r.key()] = r.Desc.String()
	}
	for i := range records {
		records[i].ParentName = names[strings.TrimSpace(records[i].ParentID.String())]
	}
	return records
}
