package struktur

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

const tree = `[
	{"strId":10,"strDesc":"Keuangan","parentId":"1","tanggalFrom":"2024-01-01","tanggalUntil":"2030-12-31","strStatus":"Aktif"},
	{"strId":1,"strDesc":"Direksi","parentId":null,"tanggalFrom":"2020-01-01","tanggalUntil":"2030-12-31","strStatus":"Aktif"},
	{"strId":2,"strDesc":"Gudang","parentId":"99","tanggalFrom":"2022-06-01","tanggalUntil":"2023-06-01","strStatus":"Tidak Aktif"}
]`

type writeLog struct {
	mu      sync.Mutex
	entries []*http.Request
}

func (l *writeLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, r)
}

func (l *writeLog) all() []*http.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*http.Request(nil), l.entries...)
}

func setup(t *testing.T) (*Service, *writeLog) {
	t.Helper()
	log := &writeLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, tree)
			return
		}
		log.add(r.Clone(context.Background()))
		_, _ = io.WriteString(w, `{"message":"SUCCESS"}`)
	}))
	t.Cleanup(srv.Close)
	return NewService(apiclient.New(apiclient.Config{BaseURL: srv.URL}), NewRepository()), log
}

var editor = auth.Session{
	Token:   "tok",
	SSO:     &auth.SSOData{Username: "hr.admin"},
	Profile: &auth.Profile{Permissions: []string{shared.PermStrukturEdit}},
}

func TestListResolvesParentNames(t *testing.T) {
	svc, _ := setup(t)
	rows, err := svc.List(context.Background(), editor)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Direksi", rows[0].Parent())
	assert.Equal(t, shared.Placeholder, rows[1].Parent())
	assert.Equal(t, "99", rows[2].Parent(), "unknown parents fall back to the id")
}

func TestParentsExcludeSelfOrderedByID(t *testing.T) {
	svc, _ := setup(t)
	parents, err := svc.Parents(context.Background(), editor, "10")
	require.NoError(t, err)

	var ids []string
	for _, p := range parents {
		ids = append(ids, p.key())
	}
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestEditViewLoadsRecordAndParents(t *testing.T) {
	svc, _ := setup(t)
	record, parents, err := svc.EditView(context.Background(), editor, "2")
	require.NoError(t, err)
	assert.Equal(t, "Gudang", record.Desc.String())
	assert.Len(t, parents, 2)

	_, _, err = svc.EditView(context.Background(), editor, "404")
	assert.ErrorIs(t, err, shared.ErrEmptyResult)
}

func TestUpdateRejectsSelfParent(t *testing.T) {
	svc, log := setup(t)
	err := svc.Update(context.Background(), editor, "10", Input{
		Desc:         "Keuangan",
		ParentID:     "10",
		TanggalFrom:  "2024-01-01",
		TanggalUntil: "2023-01-01",
	})

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "parentId")
	assert.Equal(t, shared.ErrInvalidValidity.Error(), validationErr.Fields["tanggalUntil"])
	assert.Empty(t, log.all())
}

func TestValidateMergesRequiredAndParent(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.validate("3", Input{ParentID: "3"})

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Nama struktur wajib diisi", validationErr.Fields["strDesc"])
	assert.Contains(t, validationErr.Fields, "parentId")
	assert.Contains(t, validationErr.Fields, "tanggalFrom")
}

func TestCreateAndUpdateUseQueryParameters(t *testing.T) {
	svc, log := setup(t)
	in := Input{Desc: " Pemasaran ", ParentID: "1", TanggalFrom: "2024-02-01", TanggalUntil: "2025-02-01"}

	require.NoError(t, svc.Create(context.Background(), editor, in))
	require.NoError(t, svc.Update(context.Background(), editor, "10", in))

	writes := log.all()
	require.Len(t, writes, 2)
	assert.Equal(t, "/Struktur/CreateStruktur", writes[0].URL.Path)
	assert.Equal(t, url.Values{
		"NamaStruktur": {"Pemasaran"},
		"ParentId":     {"1"},
		"TanggalFrom":  {"2024-02-01"},
		"TanggalUntil": {"2025-02-01"},
	}, writes[0].URL.Query())

	assert.Equal(t, http.MethodPut, writes[1].Method)
	assert.Equal(t, "10", writes[1].URL.Query().Get("StrId"))
	assert.Equal(t, liststate.StatusActive, writes[1].URL.Query().Get("StrStatus"))
}

func TestStatusFilterAndToggle(t *testing.T) {
	svc, log := setup(t)
	ctrl := liststate.New(Config(svc, editor))
	require.NoError(t, ctrl.Load(context.Background()))
	assert.Equal(t, 3, ctrl.Derive().Total)

	ctrl.SetStatusFilter(liststate.StatusInactive)
	page := ctrl.Derive()
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "2", page.Rows[0].ID)

	prompt, err := ctrl.Prompt("1", liststate.StatusColumn)
	require.NoError(t, err)
	assert.Equal(t, `Ubah status "Direksi" menjadi "Tidak Aktif"?`, prompt.Message)

	yes := liststate.WithConfirmer(liststate.ConfirmFunc(func(context.Context, string, string) bool { return true }))
	require.NoError(t, ctrl.ToggleStatus(context.Background(), "2", yes))
	writes := log.all()
	require.Len(t, writes, 1)
	assert.Equal(t, url.Values{"id": {"2"}, "status": {"Aktif"}}, writes[0].URL.Query())
}

func TestDefaultOrderIsByID(t *testing.T) {
	svc, _ := setup(t)
	ctrl := liststate.New(Config(svc, editor))
	require.NoError(t, ctrl.Load(context.Background()))

	page := ctrl.Derive()
	require.Len(t, page.Rows, 3)
	assert.Equal(t, "1", page.Rows[0].ID)
	assert.Equal(t, "10", page.Rows[2].ID)
}
