package benefit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/golongan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// ParamGolongan is the route parameter carrying the golongan token.
const ParamGolongan = "golongan"

// Base returns the benefit list URL of a golongan token.
func Base(token string) string {
	return golongan.Path + "/" + token + "/benefit"
}

// Screen describes the benefit list of one golongan.
func Screen(svc *Service, golongans *golongan.Service, codec *shared.IDCodec) listing.Screen[Benefit] {
	return listing.Screen[Benefit]{
		Name:  "benefit",
		Title: "Detail Benefit Golongan",
		Columns: []listing.Column{
			{Label: "Plafon Obat", Align: liststate.AlignCenter},
			{Label: "Plafon Mono", Align: liststate.AlignCenter},
			{Label: "Plafon Bi", Align: liststate.AlignCenter},
			{Label: "Plafon Rangka", Align: liststate.AlignCenter},
			{Label: "Status Nikah", Align: liststate.AlignCenter},
			{Label: "Tanggal Valid", Align: liststate.AlignCenter},
			{Label: "Tanggal Sampai", Align: liststate.AlignCenter},
			{Label: "Status", Align: liststate.AlignCenter},
		},
		Statuses:   []string{liststate.StatusAll, liststate.StatusActive, liststate.StatusInactive},
		CreatePerm: shared.PermGolonganCreate,
		EditPerm:   shared.PermGolonganEdit,
		Breadcrumb: []listing.Crumb{
			{Label: "Beranda", URL: auth.HomePath},
			{Label: "Golongan", URL: golongan.Path},
			{Label: "Detail Benefit"},
		},
		Scope:      resolveScope(golongans, codec),
		Base:       func(scope listing.Scope) string { return Base(scope.Token) },
		ParentPath: golongan.Path,
		Config: func(sess auth.Session, scope listing.Scope) liststate.Config[Benefit] {
			return Config(svc, sess, scope.ID)
		},
	}
}

// resolveScope decodes the golongan token of the route and labels the scope
// with the golongan name.
func resolveScope(golongans *golongan.Service, codec *shared.IDCodec) func(r *http.Request) (listing.Scope, error) {
	return func(r *http.Request) (listing.Scope, error) {
		token := chi.URLParam(r, ParamGolongan)
		id, err := codec.Decode(token)
		if err != nil {
			return listing.Scope{}, err
		}
		sess, _ := auth.FromContext(r.Context())
		g, err := golongans.Get(r.Context(), sess, id)
		if err != nil {
			return listing.Scope{}, err
		}
		return listing.Scope{ID: id, Token: token, Label: g.Desc.String()}, nil
	}
}

// Config wires a list controller to the benefit API of one golongan.
func Config(svc *Service, sess auth.Session, golonganID string) liststate.Config[Benefit] {
	canEdit := sess.Can(shared.PermGolonganEdit)
	from := func(b Benefit) time.Time { return b.ValidFrom.Time }
	return liststate.Config[Benefit]{
		Name: "benefit",
		Load: func(ctx context.Context, _ liststate.Query) ([]Benefit, error) {
			return svc.List(ctx, sess, golonganID)
		},
		ID: Benefit.key,
		SearchFields: []func(Benefit) string{
			func(b Benefit) string { return b.StatusPernikahan.String() },
			func(b Benefit) string { return b.Status.String() },
		},
		Status:        func(b Benefit) string { return b.Status.String() },
		AllStatus:     liststate.StatusAll,
		DefaultStatus: liststate.StatusAll,
		Sorts: []liststate.SortOption[Benefit]{
			{Key: "[benId] asc", Label: "Urutan Data", Compare: liststate.ByNumber(Benefit.numericID, liststate.Asc)},
			{Key: "[benValidDateFrom] desc", Label: "Tanggal Valid [↓]", Compare: liststate.ByTime(from, liststate.Desc)},
			{Key: "[benValidDateFrom] asc", Label: "Tanggal Valid [↑]", Compare: liststate.ByTime(from, liststate.Asc)},
		},
		LoadFailure: "Gagal memuat data benefit.",
		Toggles: map[string]liststate.Toggle[Benefit]{
			liststate.StatusColumn: {
				Title: "Ubah Status",
				Message: func(_ Benefit, next string) string {
					return fmt.Sprintf("Ubah status menjadi %q?", next)
				},
				Current: func(b Benefit) string { return b.Status.String() },
				Flip:    liststate.FlipStatus,
				Write: func(ctx context.Context, b Benefit, next string) error {
					return svc.SetStatus(ctx, sess, b.key(), next)
				},
				Success: "Status berhasil diubah.",
				Failure: "Gagal mengubah status.",
			},
		},
		Project: func(_ int, b Benefit) liststate.RowView {
			row := liststate.RowView{
				Cells: []liststate.Cell{
					{Label: "Plafon Obat", Value: shared.FormatRupiahPtr(b.PlafonObat.Value, b.PlafonObat.Valid), Align: liststate.AlignCenter},
					{Label: "Plafon Mono", Value: shared.FormatRupiahPtr(b.PlafonLensaMono.Value, b.PlafonLensaMono.Valid), Align: liststate.AlignCenter},
					{Label: "Plafon Bi", Value: shared.FormatRupiahPtr(b.PlafonLensaBi.Value, b.PlafonLensaBi.Valid), Align: liststate.AlignCenter},
					{Label: "Plafon Rangka", Value: shared.FormatRupiahPtr(b.PlafonRangka.Value, b.PlafonRangka.Valid), Align: liststate.AlignCenter},
					{Label: "Status Nikah", Value: shared.OrPlaceholder(b.StatusPernikahan.String()), Align: liststate.AlignCenter},
					{Label: "Tanggal Valid", Value: shared.FormatDate(b.ValidFrom.Time), Align: liststate.AlignCenter},
					{Label: "Tanggal Sampai", Value: shared.FormatDate(b.ValidUntil.Time), Align: liststate.AlignCenter},
					{Label: "Status", Value: b.Status.String(), Align: liststate.AlignCenter, Badge: true, Toggle: liststate.StatusColumn},
				},
			}
			if canEdit {
				row.Actions = []liststate.Action{liststate.ActionEdit, liststate.ActionToggle}
			}
			return row
		},
	}
}
