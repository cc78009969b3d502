package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

type golonganRow struct {
	ID     Int    `json:"golonganId"`
	Desc   string `json:"golonganDesc"`
	Status string `json:"golonganStatus"`
}

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/api/"})
}

func TestReadNormalisesEnvelopeKeys(t *testing.T) {
	cases := map[string]string{
		"data":     `{"data":[{"golonganId":1,"golonganDesc":"I"},{"golonganId":"2","golonganDesc":"II"}]}`,
		"dataList": `{"dataList":[{"golonganId":1,"golonganDesc":"I"},{"golonganId":2,"golonganDesc":"II"}]}`,
		"items":    `{"items":[{"golonganId":1,"golonganDesc":"I"},{"golonganId":2,"golonganDesc":"II"}]}`,
		"Data":     `{"Data":[{"golonganId":1,"golonganDesc":"I"},{"golonganId":2,"golonganDesc":"II"}]}`,
		"bare":     `[{"golonganId":1,"golonganDesc":"I"},{"golonganId":2,"golonganDesc":"II"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})
			env, err := client.WithToken("tok").Read(context.Background(), "Golongan/GetDataGolongan", nil)
			require.NoError(t, err)
			rows, err := DecodeRecords[golonganRow](env)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, Int(2), rows[1].ID)
			assert.Equal(t, "II", rows[1].Desc)
		})
	}
}

func TestReadWrapsSingleObject(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"SUCCESS","data":{"golonganId":7,"golonganDesc":"VII"}}`)
	})
	env, err := client.WithToken("tok").Read(context.Background(), "Golongan/Detail/7", nil)
	require.NoError(t, err)
	row, err := DecodeOne[golonganRow](env)
	require.NoError(t, err)
	assert.Equal(t, Int(7), row.ID)
	assert.Equal(t, "SUCCESS", env.Message)
}

func TestDecodeOneEmpty(t *testing.T) {
	_, err := DecodeOne[golonganRow](Envelope{})
	assert.ErrorIs(t, err, shared.ErrEmptyResult)
}

func TestReadSendsTokenAndQuery(t *testing.T) {
	var got *http.Request
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = io.WriteString(w, `{"data":[]}`)
	})
	query := url.Values{}
	query.Set("Status", "Aktif")
	query.Set("SearchKeyword", "budi")
	query.Set("Urut", "[Golongan] asc")

	_, err := client.WithToken("secret-token").Read(context.Background(), "Golongan/GetDataGolongan", query)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/api/Golongan/GetDataGolongan", got.URL.Path)
	assert.Equal(t, "Bearer secret-token", got.Header.Get("Authorization"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
	assert.Equal(t, "Aktif", got.URL.Query().Get("Status"))
	assert.Equal(t, "[Golongan] asc", got.URL.Query().Get("Urut"))
}

func TestReadAppendsToExistingQuery(t *testing.T) {
	var rawQuery string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"data":[]}`)
	})
	query := url.Values{}
	query.Set("Status", "Semua")
	_, err := client.WithToken("t").Read(context.Background(), "detailGolongan/GetDataDetailGolongan?GolonganId=3", query)
	require.NoError(t, err)
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	assert.Equal(t, "3", values.Get("GolonganId"))
	assert.Equal(t, "Semua", values.Get("Status"))
}

func TestServerErrorCarriesMessage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Nama golongan sudah ada"}`)
	})
	_, err := client.WithToken("t").Read(context.Background(), "Golongan/GetDataGolongan", nil)
	var se *shared.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Nama golongan sudah ada", se.Message)
	assert.Equal(t, "Nama golongan sudah ada", shared.UserMessage(err, "fallback"))
}

func TestErrorFlagIsServerFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":true,"message":"Token kadaluarsa"}`)
	})
	_, err := client.WithToken("t").Read(context.Background(), "Jabatan/GetDataJabatan", nil)
	var se *shared.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Token kadaluarsa", se.Message)
}

func TestMalformedBodyIsServerFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})
	_, err := client.WithToken("t").Read(context.Background(), "Jabatan/GetDataJabatan", nil)
	var se *shared.ServerError
	assert.ErrorAs(t, err, &se)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := New(Config{BaseURL: base})
	_, err := client.WithToken("t").Read(context.Background(), "Golongan/GetDataGolongan", nil)
	assert.ErrorIs(t, err, shared.ErrNetwork)
	assert.Equal(t, "Tidak ada respons dari server. Cek jaringan.", shared.UserMessage(err, "x"))
}

func TestWriteSendsJSONBody(t *testing.T) {
	var method string
	var payload map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		_ = json.NewDecoder(r.Body).Decode(&payload)
		_, _ = io.WriteString(w, `{"message":"Berhasil"}`)
	})
	ack, err := client.WithToken("t").Write(context.Background(), "detailGolongan/SetStatus",
		map[string]any{"benId": 4, "newStatus": "Tidak Aktif"}, "post")
	require.NoError(t, err)
	assert.True(t, ack.Succeeded())
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "Tidak Aktif", payload["newStatus"])
}

func TestWriteRejectsUnknownMethod(t *testing.T) {
	called := false
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	_, err := client.WithToken("t").Write(context.Background(), "x", nil, "PATCH")
	require.Error(t, err)
	assert.False(t, called)
}

func TestRequireSuccess(t *testing.T) {
	assert.NoError(t, RequireSuccess(Ack{Message: "SUCCESS"}, nil))
	assert.NoError(t, RequireSuccess(Ack{}, nil))
	assert.NoError(t, RequireSuccess(Ack{Message: "Data berhasil disimpan"}, nil))

	err := RequireSuccess(Ack{Message: "Gagal menyimpan"}, nil)
	var se *shared.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Gagal menyimpan", se.Message)

	boom := errors.New("boom")
	assert.ErrorIs(t, RequireSuccess(Ack{}, boom), boom)
}

func TestRequireCommitted(t *testing.T) {
	assert.NoError(t, RequireCommitted(Ack{Message: "Status golongan diperbarui"}, nil))
	assert.NoError(t, RequireCommitted(Ack{}, nil))

	err := RequireCommitted(Ack{Message: "Gagal", Envelope: Envelope{Failed: true}}, nil)
	var se *shared.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Gagal", se.Message)

	boom := errors.New("boom")
	assert.ErrorIs(t, RequireCommitted(Ack{}, boom), boom)
}

func TestNoRetryByDefault(t *testing.T) {
	calls := 0
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.WithToken("t").Read(context.Background(), "Golongan/GetDataGolongan", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
