package app

import (
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/masterdata/golongan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/jabatan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/jenisizin"
	"github.com/odyssey-erp/hrportal/internal/masterdata/struktur"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// MenuItem is one entry of the master data menu.
type MenuItem struct {
	Label     string
	URL       string
	CanCreate bool
}

type homePage struct {
	Profile *auth.Profile
	SSO     *auth.SSOData
	Menu    []MenuItem
}

func menuFor(sess auth.Session) []MenuItem {
	return []MenuItem{
		{Label: "Golongan", URL: golongan.Path, CanCreate: sess.Can(shared.PermGolonganCreate)},
		{Label: "Jabatan", URL: jabatan.Path, CanCreate: sess.Can(shared.PermJabatanCreate)},
		{Label: "Jenis Izin", URL: jenisizin.Path, CanCreate: sess.Can(shared.PermJenisIzinCreate)},
		{Label: "Struktur", URL: struktur.Path, CanCreate: sess.Can(shared.PermStrukturCreate)},
		{Label: "Hak Akses", URL: PermissionsPath},
	}
}

func homeHandler(params RouterParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := auth.FromContext(r.Context())
		page := homePage{Profile: sess.Profile, SSO: sess.SSO, Menu: menuFor(sess)}
		if err := params.Templates.Page(w, r, params.CSRFManager, http.StatusOK, "pages/beranda.html", "Beranda", page); err != nil {
			params.Logger.Error("render beranda", slog.Any("error", err))
		}
	}
}
