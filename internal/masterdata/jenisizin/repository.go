package jenisizin

import (
	"context"
	"net/http"
	"net/url"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
)

type Repository interface {
	List(ctx context.Context, api *apiclient.Caller, q liststate.Query) ([]JenisIzin, error)
	Get(ctx context.Context, api *apiclient.Caller, id string) (JenisIzin, error)
	Create(ctx context.Context, api *apiclient.Caller, in Input, actor string) error
	Update(ctx context.Context, api *apiclient.Caller, id string, in Input, actor string) error
	SetFlag(ctx context.Context, api *apiclient.Caller, id, column, value string) error
}

// flagEndpoints maps toggle columns to their write endpoints.
var flagEndpoints = map[string]string{
	ColumnAdminOnly:    "JenisCuti/SetIzinHanyaAdmin/",
	ColumnRequiredFile: "JenisCuti/SetIzinFile/",
	ColumnForSelf:      "JenisCuti/SetIzinSelf/",
}

type repository struct{}

func NewRepository() Repository {
	return repository{}
}

func (repository) List(ctx context.Context, api *apiclient.Caller, q liststate.Query) ([]JenisIzin, error) {
	params := url.Values{}
	params.Set("Status", q.Status)
	params.Set("Urut", q.Sort)
	if q.Search != "" {
		params.Set("SearchKeyword", q.Search)
	}
	env, err := api.Read(ctx, "JenisCuti/GetDataJenisCuti", params)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeRecords[JenisIzin](env)
}

func (repository) Get(ctx context.Context, api *apiclient.Caller, id string) (JenisIzin, error) {
	env, err := api.Read(ctx, "JenisCuti/GetDataJenisCutiById/"+url.PathEscape(id), nil)
	if err != nil {
		return JenisIzin{}, err
	}
	return apiclient.DecodeOne[JenisIzin](env)
}

func (repository) Create(ctx context.Context, api *apiclient.Caller, in Input, actor string) error {
	body := struct {
		payload
		CreatedBy string `json:"jeiCreatedBy"`
	}{in.payload(), actor}
	return apiclient.RequireSuccess(api.Write(ctx, "JenisCuti/CreateJenisCuti", body, http.MethodPost))
}

func (repository) Update(ctx context.Context, api *apiclient.Caller, id string, in Input, actor string) error {
	body := struct {
		ID string `json:"jeiId"`
		payload
		ModifBy string `json:"jeiModifBy"`
	}{id, in.payload(), actor}
	return apiclient.RequireSuccess(api.Write(ctx, "JenisCuti/UpdateJenisCuti", body, http.MethodPut))
}

func (repository) SetFlag(ctx context.Context, api *apiclient.Caller, id, column, value string) error {
	endpoint, ok := flagEndpoints[column]
	if !ok {
		return liststate.ErrUnknownToggle
	}
	return apiclient.RequireCommitted(api.Write(ctx, endpoint+url.PathEscape(id)+"/"+value, map[string]any{}, http.MethodPost))
}
