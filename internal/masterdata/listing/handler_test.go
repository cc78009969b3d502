package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/shared"
	"github.com/odyssey-erp/hrportal/internal/view"
)

const (
	testBase = "/pages/pegawai"
	permEdit = "master_pegawai.edit"
)

type pegawai struct {
	ID     string
	Nama   string
	Status string
}

type backend struct {
	mu      sync.Mutex
	records []pegawai
	queries []liststate.Query
	writes  []string
	fail    error
	// failAfterWrite makes every load after a write fail.
	failAfterWrite error
}

func (b *backend) load(_ context.Context, q liststate.Query) ([]pegawai, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queries = append(b.queries, q)
	if b.fail != nil {
		return nil, b.fail
	}
	return append([]pegawai(nil), b.records...), nil
}

func (b *backend) write(_ context.Context, p pegawai, next string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, p.ID+"="+next)
	if b.failAfterWrite != nil {
		b.fail = b.failAfterWrite
	}
	for i := range b.records {
		if b.records[i].ID == p.ID {
			b.records[i].Status = next
		}
	}
	return nil
}

func (b *backend) loads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queries)
}

func (b *backend) lastQuery() liststate.Query {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[len(b.queries)-1]
}

func (b *backend) written() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.writes...)
}

func newBackend(n int) *backend {
	b := &backend{}
	for i := 1; i <= n; i++ {
		b.records = append(b.records, pegawai{ID: fmt.Sprint(i), Nama: fmt.Sprintf("Pegawai %02d", i), Status: liststate.StatusActive})
	}
	return b
}

func testScreen(b *backend) Screen[pegawai] {
	nama := func(p pegawai) string { return p.Nama }
	return Screen[pegawai]{
		Name:     "pegawai",
		Title:    "Pegawai",
		Path:     testBase,
		Columns:  []Column{{Label: "Nama"}, {Label: "Status"}},
		Statuses: []string{liststate.StatusActive, liststate.StatusInactive},
		EditPerm: permEdit,
		Detail:   func(base, token string) string { return base + "/" + token },
		Config: func(sess auth.Session, _ Scope) liststate.Config[pegawai] {
			return liststate.Config[pegawai]{
				Load:          b.load,
				ID:            func(p pegawai) string { return p.ID },
				SearchFields:  []func(pegawai) string{nama},
				Status:        func(p pegawai) string { return p.Status },
				DefaultStatus: liststate.StatusActive,
				Sorts: []liststate.SortOption[pegawai]{
					{Key: "nama_asc", Label: "Nama [↑]", Compare: liststate.ByText(nama, liststate.Asc)},
					{Key: "nama_desc", Label: "Nama [↓]", Compare: liststate.ByText(nama, liststate.Desc)},
				},
				Toggles: map[string]liststate.Toggle[pegawai]{
					liststate.StatusColumn: {
						Title:   "Ubah Status Pegawai",
						Message: func(p pegawai, next string) string { return "Ubah status " + p.Nama + " menjadi " + next },
						Current: func(p pegawai) string { return p.Status },
						Write:   b.write,
						Success: "Status pegawai berhasil diubah.",
						Failure: "Gagal mengubah status pegawai.",
					},
				},
				Project: func(_ int, p pegawai) liststate.RowView {
					row := liststate.RowView{
						Cells: []liststate.Cell{
							{Label: "Nama", Value: p.Nama},
							{Label: "Status", Value: p.Status, Badge: true, Toggle: liststate.StatusColumn},
						},
						Actions: []liststate.Action{liststate.ActionDetail},
					}
					if sess.Can(permEdit) {
						row.Actions = append(row.Actions, liststate.ActionEdit, liststate.ActionToggle)
					}
					return row
				},
			}
		},
	}
}

type fixture struct {
	handler *Handler[pegawai]
	backend *backend
	router  chi.Router
	codec   *shared.IDCodec
	// sessions holds the flash store of each auth token.
	sessions map[string]*shared.Session
}

func newFixture(t *testing.T, b *backend) *fixture {
	t.Helper()
	engine, err := view.NewEngine()
	require.NoError(t, err)
	codec, err := shared.NewIDCodec("listing-test-secret")
	require.NoError(t, err)

	h := New(testScreen(b), Deps{
		Templates: engine,
		CSRF:      shared.NewCSRFManager("csrf-secret"),
		Codec:     codec,
		Audit:     shared.NewAuditLogger(nil),
		PageSize:  5,
	})
	f := &fixture{handler: h, backend: b, codec: codec, sessions: map[string]*shared.Session{}}
	r := chi.NewRouter()
	r.Route(testBase, h.MountRoutes)
	f.router = r
	return f
}

// do serves req as the holder of token with the given permissions.
func (f *fixture) do(t *testing.T, token string, req *http.Request, perms ...string) *httptest.ResponseRecorder {
	t.Helper()
	store, ok := f.sessions[token]
	if !ok {
		var err error
		store, err = shared.NewSessionManager(nil, "test", "secret", 0, false).Load(req.Context(), req)
		require.NoError(t, err)
		f.sessions[token] = store
	}
	sess := auth.Session{
		Token:   token,
		SSO:     &auth.SSOData{Username: "tester"},
		Profile: &auth.Profile{Username: "tester", Permissions: perms},
	}
	ctx := auth.WithSession(shared.ContextWithSession(req.Context(), store), sess)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req.WithContext(ctx))
	return rr
}

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndexRendersFirstPage(t *testing.T) {
	f := newFixture(t, newBackend(7))

	rr := f.do(t, "tok", get(testBase+"/"), permEdit)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Pegawai 01")
	assert.Contains(t, body, "Pegawai 05")
	assert.NotContains(t, body, "Pegawai 06")
	assert.Contains(t, body, "dari 7 data")
	assert.Contains(t, body, "Ubah Status")
	assert.Equal(t, 1, f.backend.loads())
	assert.Equal(t, liststate.Query{Sort: "nama_asc", Status: liststate.StatusActive}, f.backend.lastQuery())
}

func TestIndexHidesEditWithoutPermission(t *testing.T) {
	f := newFixture(t, newBackend(2))

	rr := f.do(t, "viewer", get(testBase+"/"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "/toggle/")
	assert.Contains(t, rr.Body.String(), "Detail")
}

func TestSearchReloadsButSortAndPageDoNot(t *testing.T) {
	f := newFixture(t, newBackend(7))
	f.do(t, "tok", get(testBase+"/"))

	rr := f.do(t, "tok", get(testBase+"/?sort=nama_desc&page=2"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, f.backend.loads())
	assert.Contains(t, rr.Body.String(), "Pegawai 02")
	assert.NotContains(t, rr.Body.String(), "Pegawai 07")

	f.do(t, "tok", get(testBase+"/?q=pegawai+03"))
	assert.Equal(t, 2, f.backend.loads())
	assert.Equal(t, "pegawai 03", f.backend.lastQuery().Search)

	f.do(t, "tok", get(testBase+"/?"+ParamRefresh+"=1"))
	assert.Equal(t, 3, f.backend.loads())
}

func TestUnknownFilterValuesAreIgnored(t *testing.T) {
	f := newFixture(t, newBackend(3))
	f.do(t, "tok", get(testBase+"/"))

	f.do(t, "tok", get(testBase+"/?sort=bogus&status=Hapus"))
	ctrl, _, err := f.handler.Controller(withAuth(get(testBase+"/"), "tok"))
	require.NoError(t, err)
	assert.Equal(t, "nama_asc", ctrl.View().SortKey)
	assert.Equal(t, liststate.StatusActive, ctrl.View().Status)
	assert.Equal(t, 1, f.backend.loads())
}

func withAuth(req *http.Request, token string) *http.Request {
	return req.WithContext(auth.WithSession(req.Context(), auth.Session{Token: token}))
}

func TestControllersArePerSession(t *testing.T) {
	f := newFixture(t, newBackend(3))
	f.do(t, "alice", get(testBase+"/?q=01"))
	f.do(t, "bob", get(testBase+"/"))

	assert.Equal(t, 2, f.handler.Registry().Len())
	alice, _, err := f.handler.Controller(withAuth(get(testBase+"/"), "alice"))
	require.NoError(t, err)
	bob, _, err := f.handler.Controller(withAuth(get(testBase+"/"), "bob"))
	require.NoError(t, err)
	assert.Equal(t, "01", alice.View().Search)
	assert.Empty(t, bob.View().Search)
}

func TestDataJSON(t *testing.T) {
	f := newFixture(t, newBackend(6))

	rr := f.do(t, "tok", get(testBase+"/data.json?page=2"))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp dataResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "pegawai", resp.List)
	assert.Equal(t, "ready", resp.State)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 6, resp.Rows[0].No)
	id, err := f.codec.Decode(resp.Rows[0].Token)
	require.NoError(t, err)
	assert.Equal(t, "6", id)
	assert.Equal(t, "Pegawai 06", resp.Rows[0].Cells["Nama"])
}

func TestLoadFailure(t *testing.T) {
	b := newBackend(3)
	b.fail = &shared.ServerError{Status: http.StatusInternalServerError, Message: "Server sedang sibuk"}
	f := newFixture(t, b)

	rr := f.do(t, "tok", get(testBase+"/"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, strings.Count(rr.Body.String(), "Server sedang sibuk"), "the banner is the only copy")
	assert.Contains(t, rr.Body.String(), "Coba lagi")
	assert.Empty(t, f.sessions["tok"].PopFlashes())
	assert.Contains(t, rr.Body.String(), "Tidak ada data.")

	rr = f.do(t, "tok", get(testBase+"/data.json?refresh=1"))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestToggleConfirmFlow(t *testing.T) {
	f := newFixture(t, newBackend(3))
	f.do(t, "tok", get(testBase+"/"), permEdit)
	target := testBase + "/" + f.codec.MustEncode("2") + "/toggle/" + liststate.StatusColumn

	rr := f.do(t, "tok", get(target), permEdit)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ubah Status Pegawai")
	assert.Contains(t, rr.Body.String(), "Ubah status Pegawai 02 menjadi Tidak Aktif")

	rr = f.do(t, "tok", postForm(target, url.Values{ConfirmField: {"tidak"}}), permEdit)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, f.backend.written())

	rr = f.do(t, "tok", postForm(target, url.Values{ConfirmField: {"ya"}}), permEdit)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Location"), testBase+"?"))
	assert.Equal(t, []string{"2=Tidak Aktif"}, f.backend.written())

	flash := f.sessions["tok"].PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "success", flash.Kind)
	assert.Equal(t, "Status pegawai berhasil diubah.", flash.Message)
	assert.Equal(t, 2, f.backend.loads(), "initial load and the reload after the write")
}

func TestToggleWithFailedReloadShowsEachMessageOnce(t *testing.T) {
	b := newBackend(3)
	b.failAfterWrite = &shared.ServerError{Status: http.StatusBadGateway, Message: "Server sedang sibuk"}
	f := newFixture(t, b)
	f.do(t, "tok", get(testBase+"/"), permEdit)
	target := testBase + "/" + f.codec.MustEncode("2") + "/toggle/" + liststate.StatusColumn

	rr := f.do(t, "tok", postForm(target, url.Values{ConfirmField: {"ya"}}), permEdit)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = f.do(t, "tok", get(rr.Header().Get("Location")), permEdit)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Status pegawai berhasil diubah.")
	assert.Equal(t, 1, strings.Count(body, "Server sedang sibuk"))
	assert.Contains(t, body, "Coba lagi")
}

func TestToggleRequiresEditPermission(t *testing.T) {
	f := newFixture(t, newBackend(1))
	target := testBase + "/" + f.codec.MustEncode("1") + "/toggle/" + liststate.StatusColumn

	rr := f.do(t, "viewer", postForm(target, url.Values{ConfirmField: {"ya"}}))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, f.backend.written())
}

func TestToggleRejectsTamperedToken(t *testing.T) {
	f := newFixture(t, newBackend(1))

	rr := f.do(t, "tok", get(testBase+"/not-a-token/toggle/"+liststate.StatusColumn), permEdit)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, testBase, rr.Header().Get("Location"))
	flash := f.sessions["tok"].PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.ErrInvalidID.Error(), flash.Message)
}

func TestListURLKeepsSelection(t *testing.T) {
	got := ListURL(testBase, liststate.ViewState{Search: "a b", SortKey: "nama_asc", Status: "Aktif"}, 3)
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, testBase, u.Path)
	assert.Equal(t, "a b", u.Query().Get(ParamSearch))
	assert.Equal(t, "3", u.Query().Get(ParamPage))
	assert.Equal(t, testBase+"?refresh=1", RefreshURL(testBase))
}
