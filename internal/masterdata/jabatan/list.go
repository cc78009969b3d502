package jabatan

import (
	"context"
	"strconv"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Path is the jabatan list page.
const Path = "/pages/jabatan"

// Screen describes the jabatan list page.
func Screen(svc *Service) listing.Screen[Jabatan] {
	return listing.Screen[Jabatan]{
		Name:  "jabatan",
		Title: "Jabatan",
		Path:  Path,
		Columns: []listing.Column{
			{Label: "Nama Jabatan", Align: liststate.AlignLeft},
			{Label: "Status", Align: liststate.AlignCenter},
		},
		Statuses:   []string{liststate.StatusActive, liststate.StatusInactive},
		CreatePerm: shared.PermJabatanCreate,
		EditPerm:   shared.PermJabatanEdit,
		Breadcrumb: []listing.Crumb{
			{Label: "Beranda", URL: auth.HomePath},
			{Label: "Pengaturan Dasar"},
			{Label: "Jabatan"},
		},
		Detail: func(base, token string) string { return base + "/" + token },
		Config: func(sess auth.Session, _ listing.Scope) liststate.Config[Jabatan] {
			return Config(svc, sess)
		},
	}
}

// Config wires a list controller to the jabatan API for one session.
func Config(svc *Service, sess auth.Session) liststate.Config[Jabatan] {
	canEdit := sess.Can(shared.PermJabatanEdit)
	name := Jabatan.Name
	id := func(j Jabatan) int64 {
		n, _ := strconv.ParseInt(strings.TrimSpace(j.ID.String()), 10, 64)
		return n
	}
	return liststate.Config[Jabatan]{
		Name: "jabatan",
		Load: func(ctx context.Context, q liststate.Query) ([]Jabatan, error) {
			return svc.List(ctx, sess, q)
		},
		ID:            func(j Jabatan) string { return strings.TrimSpace(j.ID.String()) },
		SearchFields:  []func(Jabatan) string{name},
		Status:        Jabatan.Status,
		DefaultStatus: liststate.StatusActive,
		Sorts: []liststate.SortOption[Jabatan]{
			{Key: "[id] asc", Label: "ID [↑]", Compare: liststate.ByNumber(id, liststate.Asc)},
			{Key: "[id] desc", Label: "ID [↓]", Compare: liststate.ByNumber(id, liststate.Desc)},
			{Key: "[jab_desc] asc", Label: "Nama Jabatan [↑]", Compare: liststate.ByText(name, liststate.Asc)},
			{Key: "[jab_desc] desc", Label: "Nama Jabatan [↓]", Compare: liststate.ByText(name, liststate.Desc)},
		},
		LoadFailure: "Gagal memuat data jabatan.",
		Toggles: map[string]liststate.Toggle[Jabatan]{
			liststate.StatusColumn: {
				Title: "Ubah Status Jabatan",
				Message: func(Jabatan, string) string {
					return "Apakah Anda yakin ingin mengubah status jabatan ini?"
				},
				Current: Jabatan.Status,
				Write: func(ctx context.Context, j Jabatan, _ string) error {
					return svc.ToggleStatus(ctx, sess, strings.TrimSpace(j.ID.String()))
				},
				Success: "Status jabatan berhasil diubah.",
				Failure: "Gagal mengubah status jabatan.",
			},
		},
		Project: func(_ int, j Jabatan) liststate.RowView {
			row := liststate.RowView{
				Cells: []liststate.Cell{
					{Label: "Nama Jabatan", Value: j.Name(), Align: liststate.AlignLeft},
					{Label: "Status", Value: j.Status(), Align: liststate.AlignCenter, Badge: true, Toggle: liststate.StatusColumn},
				},
				Actions: []liststate.Action{liststate.ActionDetail},
			}
			if canEdit {
				row.Actions = append(row.Actions, liststate.ActionEdit, liststate.ActionToggle)
			}
			return row
		},
	}
}
