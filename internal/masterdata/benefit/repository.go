package benefit

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

type Repository interface {
	List(ctx context.Context, api *apiclient.Caller, golonganID string) ([]Benefit, error)
	Get(ctx context.Context, api *apiclient.Caller, id string) (Benefit, error)
	Create(ctx context.Context, api *apiclient.Caller, golonganID string, in Input, actor string) error
	Update(ctx context.Context, api *apiclient.Caller, id string, in Input, actor string) error
	SetStatus(ctx context.Context, api *apiclient.Caller, id, status string) error
}

type repository struct{}

func NewRepository() Repository {
	return repository{}
}

func (repository) List(ctx context.Context, api *apiclient.Caller, golonganID string) ([]Benefit, error) {
	params := url.Values{}
	params.Set("GolonganId", golonganID)
	env, err := api.Read(ctx, "detailGolongan/GetDataDetailGolongan", params)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeRecords[Benefit](env)
}

func (repository) Get(ctx context.Context, api *apiclient.Caller, id string) (Benefit, error) {
	env, err := api.Read(ctx, "detailGolongan/GetDetailBenefit/"+url.PathEscape(id), nil)
	if err != nil {
		return Benefit{}, err
	}
	return apiclient.DecodeOne[Benefit](env)
}

func (repository) Create(ctx context.Context, api *apiclient.Caller, golonganID string, in Input, actor string) error {
	gid, err := strconv.Atoi(golonganID)
	if err != nil {
		return shared.ErrInvalidID
	}
	body := struct {
		GolonganID int `json:"golonganId"`
		payload
		CreatedBy string `json:"benCreatedBy"`
	}{gid, in.payload(), actor}
	return apiclient.RequireSuccess(api.Write(ctx, "detailGolongan/CreateDetailGolongan", body, http.MethodPost))
}

func (repository) Update(ctx context.Context, api *apiclient.Caller, id string, in Input, actor string) error {
	bid, err := strconv.Atoi(id)
	if err != nil {
		return shared.ErrInvalidID
	}
	body := struct {
		ID int `json:"benId"`
		payload
		ModifBy string `json:"benModifBy"`
	}{bid, in.payload(), actor}
	return apiclient.RequireSuccess(api.Write(ctx, "detailGolongan/UpdateDetailGolongan", body, http.MethodPut))
}

func (repository) SetStatus(ctx context.Context, api *apiclient.Caller, id, status string) error {
	body := map[string]string{"benId": id, "newStatus": status}
	return apiclient.RequireCommitted(api.Write(ctx, "detailGolongan/SetStatus", body, http.MethodPost))
}
