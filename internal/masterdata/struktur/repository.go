package struktur

import (
	"context"
	"net/http"
	"net/url"

	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
)

// Repository talks to the struktur endpoints. The API has no single-record
// read and takes write arguments as query parameters.
type Repository interface {
	List(ctx context.Context, api *apiclient.Caller) ([]Struktur, error)
	Create(ctx context.Context, api *apiclient.Caller, in Input) error
	Update(ctx context.Context, api *apiclient.Caller, id string, in Input) error
	SetStatus(ctx context.Context, api *apiclient.Caller, id, status string) error
}

type repository struct{}

func NewRepository() Repository {
	return repository{}
}

func (repository) List(ctx context.Context, api *apiclient.Caller) ([]Struktur, error) {
	env, err := api.Read(ctx, "Struktur/GetDataStruktur", nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeRecords[Struktur](env)
}

func (repository) Create(ctx context.Context, api *apiclient.Caller, in Input) error {
	q := url.Values{}
	q.Set("NamaStruktur", in.Desc)
	q.Set("ParentId", in.ParentID)
	q.Set("TanggalFrom", in.TanggalFrom)
	q.Set("TanggalUntil", in.TanggalUntil)
	return apiclient.RequireSuccess(api.Write(ctx, "Struktur/CreateStruktur?"+q.Encode(), map[string]any{}, http.MethodPost))
}

func (repository) Update(ctx context.Context, api *apiclient.Caller, id string, in Input) error {
	q := url.Values{}
	q.Set("StrId", id)
	q.Set("NamaStruktur", in.Desc)
	q.Set("ParentId", in.ParentID)
	q.Set("TanggalFrom", in.TanggalFrom)
	q.Set("TanggalUntil", in.TanggalUntil)
	q.Set("StrStatus", in.Status)
	return apiclient.RequireSuccess(api.Write(ctx, "Struktur/EditStruktur?"+q.Encode(), map[string]any{}, http.MethodPut))
}

func (repository) SetStatus(ctx context.Context, api *apiclient.Caller, id, status string) error {
	q := url.Values{}
	q.Set("id", id)
	q.Set("status", status)
	return apiclient.RequireCommitted(api.Write(ctx, "Struktur/SetStatusStruktur?"+q.Encode(), map[string]any{}, http.MethodPost))
}
