// Package masterdata assembles the HR master data screens: golongan with its
// benefits, jabatan, jenis izin and struktur.
package masterdata

import (
	"context"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/hrportal/internal/masterdata/benefit"
	"github.com/odyssey-erp/hrportal/internal/masterdata/golongan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/jabatan"
	"github.com/odyssey-erp/hrportal/internal/masterdata/jenisizin"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/masterdata/struktur"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/rbac"
)

// Services groups the entity services so other front-ends can share them.
type Services struct {
	Golongan  *golongan.Service
	Benefit   *benefit.Service
	Jabatan   *jabatan.Service
	JenisIzin *jenisizin.Service
	Struktur  *struktur.Service
}

// NewServices builds every entity service over one API client.
func NewServices(client *apiclient.Client) Services {
	return Services{
		Golongan:  golongan.NewService(client, golongan.NewRepository()),
		Benefit:   benefit.NewService(client, benefit.NewRepository()),
		Jabatan:   jabatan.NewService(client, jabatan.NewRepository()),
		JenisIzin: jenisizin.NewService(client, jenisizin.NewRepository()),
		Struktur:  struktur.NewService(client, struktur.NewRepository()),
	}
}

// Handler manages master data endpoints.
type Handler struct {
	golongan  *golongan.Handler
	benefit   *benefit.Handler
	jabatan   *jabatan.Handler
	jenisIzin *jenisizin.Handler
	struktur  *struktur.Handler
}

// NewHandler builds Handler instance.
func NewHandler(services Services, deps listing.Deps, rbac rbac.Middleware) *Handler {
	return &Handler{
		golongan:  golongan.NewHandler(services.Golongan, deps, rbac),
		benefit:   benefit.NewHandler(services.Benefit, services.Golongan, deps, rbac),
		jabatan:   jabatan.NewHandler(services.Jabatan, deps, rbac),
		jenisIzin: jenisizin.NewHandler(services.JenisIzin, deps, rbac),
		struktur:  struktur.NewHandler(services.Struktur, deps, rbac),
	}
}

// MountRoutes registers master data routes below /pages.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route(golongan.Path, func(r chi.Router) {
		h.golongan.MountRoutes(r)
		r.Route("/{"+benefit.ParamGolongan+"}/benefit", h.benefit.MountRoutes)
	})
	r.Route(jabatan.Path, h.jabatan.MountRoutes)
	r.Route(jenisizin.Path, h.jenisIzin.MountRoutes)
	r.Route(struktur.Path, h.struktur.MountRoutes)
}

type sweeper interface {
	Run(ctx context.Context, interval time.Duration)
}

// RunSweepers evicts idle list controllers every interval until ctx is done.
func (h *Handler) RunSweepers(ctx context.Context, interval time.Duration) {
	sweepers := []sweeper{
		h.golongan.List().Registry(),
		h.benefit.List().Registry(),
		h.jabatan.List().Registry(),
		h.jenisIzin.List().Registry(),
		h.struktur.List().Registry(),
	}
	var wg sync.WaitGroup
	for _, s := range sweepers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Run(ctx, interval)
		}()
	}
	wg.Wait()
}
