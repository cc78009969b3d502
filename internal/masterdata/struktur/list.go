package struktur

import (
	"context"
	"fmt"
	"time"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Path is the struktur list page.
const Path = "/pages/struktur"

// Screen describes the struktur list page.
func Screen(svc *Service) listing.Screen[Struktur] {
	return listing.Screen[Struktur]{
		Name:  "struktur",
		Title: "Struktur",
		Path:  Path,
		Columns: []listing.Column{
			{Label: "Nama Struktur", Align: liststate.AlignLeft},
			{Label: "Induk", Align: liststate.AlignLeft},
			{Label: "Tanggal From", Align: liststate.AlignCenter},
			{Label: "Tanggal Until", Align: liststate.AlignCenter},
			{Label: "Status", Align: liststate.AlignCenter},
		},
		Statuses:   []string{liststate.StatusAll, liststate.StatusActive, liststate.StatusInactive},
		CreatePerm: shared.PermStrukturCreate,
		EditPerm:   shared.PermStrukturEdit,
		Breadcrumb: []listing.Crumb{
			{Label: "Beranda", URL: auth.HomePath},
			{Label: "Pengaturan Dasar"},
			{Label: "Struktur"},
		},
		Config: func(sess auth.Session, _ listing.Scope) liststate.Config[Struktur] {
			return Config(svc, sess)
		},
	}
}

// Config wires a list controller to the struktur API for one session. The API
// returns every node; search, status and order are applied locally.
func Config(svc *Service, sess auth.Session) liststate.Config[Struktur] {
	canEdit := sess.Can(shared.PermStrukturEdit)
	desc := func(s Struktur) string { return s.Desc.String() }
	from := func(s Struktur) time.Time { return s.TanggalFrom.Time }
	return liststate.Config[Struktur]{
		Name: "struktur",
		Load: func(ctx context.Context, _ liststate.Query) ([]Struktur, error) {
			return svc.List(ctx, sess)
		},
		ID: Struktur.key,
		SearchFields: []func(Struktur) string{
			desc,
			func(s Struktur) string { return s.ParentID.String() },
			func(s Struktur) string { return s.Status.String() },
		},
		Status:        func(s Struktur) string { return s.Status.String() },
		AllStatus:     liststate.StatusAll,
		DefaultStatus: liststate.StatusAll,
		Sorts: []liststate.SortOption[Struktur]{
			{Key: "[strId] asc", Label: "Urutan Data", Compare: liststate.ByNumber(Struktur.numericID, liststate.Asc)},
			{Key: "[StrDesc] asc", Label: "Nama Struktur [↑]", Compare: liststate.ByText(desc, liststate.Asc)},
			{Key: "[StrDesc] desc", Label: "Nama Struktur [↓]", Compare: liststate.ByText(desc, liststate.Desc)},
			{Key: "[TanggalFrom] asc", Label: "Tanggal From [↑]", Compare: liststate.ByTime(from, liststate.Asc)},
			{Key: "[TanggalFrom] desc", Label: "Tanggal From [↓]", Compare: liststate.ByTime(from, liststate.Desc)},
		},
		LoadFailure: "Gagal memuat data struktur.",
		Toggles: map[string]liststate.Toggle[Struktur]{
			liststate.StatusColumn: {
				Title: "Ubah Status Struktur",
				Message: func(s Struktur, next string) string {
					return fmt.Sprintf("Ubah status %q menjadi %q?", s.Desc.String(), next)
				},
				Current: func(s Struktur) string { return s.Status.String() },
				Flip:    liststate.FlipStatus,
				Write: func(ctx context.Context, s Struktur, next string) error {
					return svc.SetStatus(ctx, sess, s.key(), next)
				},
				Success: "Status struktur berhasil diubah.",
				Failure: "Gagal mengubah status struktur.",
			},
		},
		Project: func(_ int, s Struktur) liststate.RowView {
			row := liststate.RowView{
				Cells: []liststate.Cell{
					{Label: "Nama Struktur", Value: s.Desc.String(), Align: liststate.AlignLeft},
					{Label: "Induk", Value: s.Parent(), Align: liststate.AlignLeft},
					{Label: "Tanggal From", Value: shared.FormatDate(s.TanggalFrom.Time), Align: liststate.AlignCenter},
					{Label: "Tanggal Until", Value: shared.FormatDate(s.TanggalUntil.Time), Align: liststate.AlignCenter},
					{Label: "Status", Value: s.Status.String(), Align: liststate.AlignCenter, Badge: true, Toggle: liststate.StatusColumn},
				},
			}
			if canEdit {
				row.Actions = []liststate.Action{liststate.ActionEdit, liststate.ActionToggle}
			}
			return row
		},
	}
}
