package jabatan

import (
	"context"
	"net/http"
	"net/url"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
)

type Repository interface {
	List(ctx context.Context, api *apiclient.Caller, q liststate.Query) ([]Jabatan, error)
	Get(ctx context.Context, api *apiclient.Caller, id string) (Detail, error)
	Create(ctx context.Context, api *apiclient.Caller, in Input, actor string) error
	Update(ctx context.Context, api *apiclient.Caller, id string, in Input) error
	SetStatus(ctx context.Context, api *apiclient.Caller, id string) error
}

type repository struct{}

func NewRepository() Repository {
	return repository{}
}

func (repository) List(ctx context.Context, api *apiclient.Caller, q liststate.Query) ([]Jabatan, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("SearchKeyword", q.Search)
	}
	if q.Status != "" {
		params.Set("Status", q.Status)
	}
	if q.Sort != "" {
		params.Set("Urut", q.Sort)
	}
	env, err := api.Read(ctx, "Jabatan/GetDataJabatan", params)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeRecords[Jabatan](env)
}

func (repository) Get(ctx context.Context, api *apiclient.Caller, id string) (Detail, error) {
	env, err := api.Read(ctx, "Jabatan/DetailJabatan/"+url.PathEscape(id), nil)
	if err != nil {
		return Detail{}, err
	}
	return apiclient.DecodeOne[Detail](env)
}

func (repository) Create(ctx context.Context, api *apiclient.Caller, in Input, actor string) error {
	return apiclient.RequireSuccess(api.Write(ctx, "Jabatan/CreateJabatan", map[string]any{
		"jabatanDeskripsi": in.Deskripsi,
		"jabatanCreatedBy": actor,
	}, http.MethodPost))
}

func (repository) Update(ctx context.Context, api *apiclient.Caller, id string, in Input) error {
	return apiclient.RequireSuccess(api.Write(ctx, "Jabatan/EditJabatan", map[string]any{
		"Id":               id,
		"JabatanDeskripsi": in.Deskripsi,
	}, http.MethodPut))
}

func (repository) SetStatus(ctx context.Context, api *apiclient.Caller, id string) error {
	return apiclient.RequireCommitted(api.Write(ctx, "Jabatan/SetStatusJabatan/"+url.PathEscape(id), map[string]any{}, http.MethodPost))
}
