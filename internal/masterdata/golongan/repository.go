package golongan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

type Repository interface {
	List(ctx context.Context, api *apiclient.Caller, q liststate.Query) ([]Golongan, error)
	Get(ctx context.Context, api *apiclient.Caller, id string) (Golongan, error)
	Create(ctx context.Context, api *apiclient.Caller, in Input, actor string) error
	Update(ctx context.Context, api *apiclient.Caller, id string, in Input, actor string) error
	SetStatus(ctx context.Context, api *apiclient.Caller, id string) error
}

type repository struct{}

func NewRepository() Repository {
	return repository{}
}

func (repository) List(ctx context.Context, api *apiclient.Caller, q liststate.Query) ([]Golongan, error) {
	params := url.Values{}
	params.Set("Status", q.Status)
	params.Set("Urut", q.Sort)
	if q.Search != "" {
		params.Set("SearchKeyword", q.Search)
	}
	env, err := api.Read(ctx, "Golongan/GetDataGolongan", params)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeRecords[Golongan](env)
}

// Get filters the list endpoint by id; the API has no single-record read.
func (repository) Get(ctx context.Context, api *apiclient.Caller, id string) (Golongan, error) {
	env, err := api.Read(ctx, "Golongan/GetDataGolongan", url.Values{"Id": {id}})
	if err != nil {
		return Golongan{}, err
	}
	records, err := apiclient.DecodeRecords[Golongan](env)
	if err != nil {
		return Golongan{}, err
	}
	for _, g := range records {
		if strings.TrimSpace(g.ID.String()) == id {
			return g, nil
		}
	}
	return Golongan{}, fmt.Errorf("golongan %s: %w", id, shared.ErrEmptyResult)
}

func (repository) Create(ctx context.Context, api *apiclient.Caller, in Input, actor string) error {
	return apiclient.RequireSuccess(api.Write(ctx, "Golongan/CreateGolongan", map[string]any{
		"golonganDesc":      in.Desc,
		"golonganCreatedBy": actor,
	}, http.MethodPost))
}

func (repository) Update(ctx context.Context, api *apiclient.Caller, id string, in Input, actor string) error {
	return apiclient.RequireSuccess(api.Write(ctx, "Golongan/EditGolongan", map[string]any{
		"GolonganID":      id,
		"GolonganDesc":    in.Desc,
		"GolonganModifBy": actor,
	}, http.MethodPut))
}

func (repository) SetStatus(ctx context.Context, api *apiclient.Caller, id string) error {
	return apiclient.RequireCommitted(api.Write(ctx, "Golongan/SetStatusGolongan/"+url.PathEscape(id), map[string]any{}, http.MethodPost))
}
