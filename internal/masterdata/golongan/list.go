package golongan

import (
	"context"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Path is the golongan list page.
const Path = "/pages/golongan"

// Screen describes the golongan list page.
func Screen(svc *Service) listing.Screen[Golongan] {
	return listing.Screen[Golongan]{
		Name:  "golongan",
		Title: "Golongan",
		Path:  Path,
		Columns: []listing.Column{
			{Label: "Nama Golongan", Align: liststate.AlignLeft},
			{Label: "Plafon Obat", Align: liststate.AlignCenter},
			{Label: "Plafon Lensa Mono", Align: liststate.AlignCenter},
			{Label: "Plafon Lensa Bi", Align: liststate.AlignCenter},
			{Label: "Plafon Rangka", Align: liststate.AlignCenter},
			{Label: "Status Pernikahan", Align: liststate.AlignCenter},
			{Label: "Status", Align: liststate.AlignCenter},
		},
		Statuses:   []string{liststate.StatusActive, liststate.StatusInactive},
		CreatePerm: shared.PermGolonganCreate,
		EditPerm:   shared.PermGolonganEdit,
		Breadcrumb: []listing.Crumb{
			{Label: "Beranda", URL: auth.HomePath},
			{Label: "Pengaturan Dasar"},
			{Label: "Golongan"},
		},
		Detail: func(base, token string) string { return base + "/" + token + "/benefit" },
		Config: func(sess auth.Session, _ listing.Scope) liststate.Config[Golongan] {
			return Config(svc, sess)
		},
	}
}

// Config wires a list controller to the golongan API for one session.
func Config(svc *Service, sess auth.Session) liststate.Config[Golongan] {
	canEdit := sess.Can(shared.PermGolonganEdit)
	desc := func(g Golongan) string { return g.Desc.String() }
	return liststate.Config[Golongan]{
		Name: "golongan",
		Load: func(ctx context.Context, q liststate.Query) ([]Golongan, error) {
			return svc.List(ctx, sess, q)
		},
		ID:            func(g Golongan) string { return strings.TrimSpace(g.ID.String()) },
		SearchFields:  []func(Golongan) string{desc},
		Status:        func(g Golongan) string { return g.Status.String() },
		DefaultStatus: liststate.StatusActive,
		Sorts: []liststate.SortOption[Golongan]{
			{Key: "[Golongan] asc", Label: "Nama Golongan [↑]", Compare: liststate.ByText(desc, liststate.Asc)},
			{Key: "[Golongan] desc", Label: "Nama Golongan [↓]", Compare: liststate.ByText(desc, liststate.Desc)},
		},
		LoadFailure: "Gagal memuat data golongan.",
		Toggles: map[string]liststate.Toggle[Golongan]{
			liststate.StatusColumn: {
				Title: "Ubah Status Golongan",
				Message: func(Golongan, string) string {
					return "Apakah Anda yakin ingin mengubah status golongan ini?"
				},
				Current: func(g Golongan) string { return g.Status.String() },
				Write: func(ctx context.Context, g Golongan, _ string) error {
					return svc.ToggleStatus(ctx, sess, strings.TrimSpace(g.ID.String()))
				},
				Success: "Status golongan berhasil diubah.",
				Failure: "Gagal mengubah status golongan.",
			},
		},
		Project: func(_ int, g Golongan) liststate.RowView {
			row := liststate.RowView{
				Cells: []liststate.Cell{
					{Label: "Nama Golongan", Value: g.Desc.String(), Align: liststate.AlignLeft},
					{Label: "Plafon Obat", Value: shared.FormatRupiahPtr(g.PlafonObat.Value, g.PlafonObat.Valid), Align: liststate.AlignCenter},
					{Label: "Plafon Lensa Mono", Value: shared.FormatRupiahPtr(g.PlafonLensaMono.Value, g.PlafonLensaMono.Valid), Align: liststate.AlignCenter},
					{Label: "Plafon Lensa Bi", Value: shared.FormatRupiahPtr(g.PlafonLensaBi.Value, g.PlafonLensaBi.Valid), Align: liststate.AlignCenter},
					{Label: "Plafon Rangka", Value: shared.FormatRupiahPtr(g.PlafonRangka.Value, g.PlafonRangka.Valid), Align: liststate.AlignCenter},
					{Label: "Status Pernikahan", Value: shared.OrPlaceholder(g.StatusPernikahan.String()), Align: liststate.AlignCenter},
					{Label: "Status", Value: g.Status.String(), Align: liststate.AlignCenter, Badge: true, Toggle: liststate.StatusColumn},
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
