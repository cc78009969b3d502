package jenisizin

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Path is the jenis izin list page.
const Path = "/pages/jenis-izin"

// Screen describes the jenis izin list page.
func Screen(svc *Service) listing.Screen[JenisIzin] {
	return listing.Screen[JenisIzin]{
		Name:  "jenis_izin",
		Title: "Jenis Izin",
		Path:  Path,
		Columns: []listing.Column{
			{Label: "Nama Jenis Izin", Align: liststate.AlignLeft},
			{Label: "Keterangan", Align: liststate.AlignLeft},
			{Label: "Jumlah Izin", Align: liststate.AlignCenter},
			{Label: "Jumlah Tambahan", Align: liststate.AlignCenter},
			{Label: "Berlaku Dari", Align: liststate.AlignCenter},
			{Label: "Berlaku Sampai", Align: liststate.AlignCenter},
			{Label: "Hanya Admin", Align: liststate.AlignCenter},
			{Label: "Perlu Berkas", Align: liststate.AlignCenter},
			{Label: "Diri Sendiri", Align: liststate.AlignCenter},
		},
		Statuses:   []string{liststate.StatusActive, liststate.StatusInactive},
		CreatePerm: shared.PermJenisIzinCreate,
		EditPerm:   shared.PermJenisIzinEdit,
		Breadcrumb: []listing.Crumb{
			{Label: "Beranda", URL: auth.HomePath},
			{Label: "Pengaturan Dasar"},
			{Label: "Jenis Izin"},
		},
		Config: func(sess auth.Session, _ listing.Scope) liststate.Config[JenisIzin] {
			return Config(svc, sess)
		},
	}
}

// Config wires a list controller to the jenis izin API for one session. The
// status filter is applied by the API, so records carry no status accessor.
func Config(svc *Service, sess auth.Session) liststate.Config[JenisIzin] {
	canEdit := sess.Can(shared.PermJenisIzinEdit)
	nama := func(j JenisIzin) string { return j.Nama.String() }
	id := func(j JenisIzin) string { return strings.TrimSpace(j.ID.String()) }

	flagToggle := func(column string) liststate.Toggle[JenisIzin] {
		return liststate.Toggle[JenisIzin]{
			Title: "Ubah Status",
			Message: func(JenisIzin, string) string {
				return "Apakah Anda yakin ingin mengubah status ini?"
			},
			Current: func(j JenisIzin) string { return j.flag(column) },
			Flip:    liststate.FlipFlag,
			Write: func(ctx context.Context, j JenisIzin, next string) error {
				return svc.SetFlag(ctx, sess, id(j), column, next)
			},
			Success: "Status berhasil diubah.",
			Failure: "Gagal mengubah status.",
		}
	}

	return liststate.Config[JenisIzin]{
		Name: "jenis_izin",
		Load: func(ctx context.Context, q liststate.Query) ([]JenisIzin, error) {
			return svc.List(ctx, sess, q)
		},
		ID:            id,
		SearchFields:  []func(JenisIzin) string{nama, func(j JenisIzin) string { return j.Desc.String() }},
		DefaultStatus: liststate.StatusActive,
		Sorts: []liststate.SortOption[JenisIzin]{
			{Key: "[JeiNama] asc", Label: "Nama Jenis Izin [↑]", Compare: liststate.ByText(nama, liststate.Asc)},
			{Key: "[JeiNama] desc", Label: "Nama Jenis Izin [↓]", Compare: liststate.ByText(nama, liststate.Desc)},
		},
		LoadFailure: "Gagal memuat data jenis izin.",
		Toggles: map[string]liststate.Toggle[JenisIzin]{
			ColumnAdminOnly:    flagToggle(ColumnAdminOnly),
			ColumnRequiredFile: flagToggle(ColumnRequiredFile),
			ColumnForSelf:      flagToggle(ColumnForSelf),
		},
		Project: func(_ int, j JenisIzin) liststate.RowView {
			row := liststate.RowView{
				Cells: []liststate.Cell{
					{Label: "Nama Jenis Izin", Value: j.Nama.String(), Align: liststate.AlignLeft},
					{Label: "Keterangan", Value: shared.OrPlaceholder(j.Desc.String()), Align: liststate.AlignLeft},
					{Label: "Jumlah Izin", Value: days(int64(j.JumlahIjinDay)), Align: liststate.AlignCenter},
					{Label: "Jumlah Tambahan", Value: days(int64(j.JumlahPlusDay)), Align: liststate.AlignCenter},
					{Label: "Berlaku Dari", Value: shared.FormatDateLong(j.ValidFrom.Time), Align: liststate.AlignCenter},
					{Label: "Berlaku Sampai", Value: shared.FormatDateLong(j.ValidUntil.Time), Align: liststate.AlignCenter},
					flagCell("Hanya Admin", ColumnAdminOnly, bool(j.AdminOnly)),
					flagCell("Perlu Berkas", ColumnRequiredFile, bool(j.RequiredFile)),
					flagCell("Diri Sendiri", ColumnForSelf, bool(j.ForSelf)),
				},
			}
			if canEdit {
				row.Actions = []liststate.Action{liststate.ActionEdit, liststate.ActionToggle}
			}
			return row
		},
	}
}

func flagCell(label, column string, on bool) liststate.Cell {
	value := "Tidak"
	if on {
		value = "Ya"
	}
	return liststate.Cell{Label: label, Value: value, Align: liststate.AlignCenter, Toggle: column, On: on}
}

func days(n int64) string {
	return fmt.Sprintf("%d hari", n)
}
