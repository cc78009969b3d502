package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		detail string
	}{
		{fmt.Errorf("golongan 9: %w", shared.ErrEmptyResult), http.StatusNotFound, "Data tidak ditemukan."},
		{fmt.Errorf("GET: %w", shared.ErrNetwork), http.StatusBadGateway, "Tidak ada respons dari server. Cek jaringan."},
		{&shared.ServerError{Status: 500, Message: "Gagal"}, http.StatusBadGateway, "Gagal"},
		{shared.NewValidationError(map[string]string{"x": "y"}), http.StatusBadRequest, "Mohon lengkapi semua field yang wajib diisi."},
		{shared.ErrInvalidID, http.StatusBadRequest, "ID tidak valid."},
		{errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, nil, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

		var body ProblemDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.Status)
		assert.Equal(t, http.StatusText(tc.status), body.Title)
		assert.Equal(t, tc.detail, body.Detail)
	}
}

func TestRespondErrorCarriesRequestID(t *testing.T) {
	var rec *httptest.ResponseRecorder
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, r, shared.ErrNetwork)
	}))
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")

	h.ServeHTTP(rec, req)

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body.RequestID)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusOf(nil))
	assert.Equal(t, http.StatusConflict, StatusOf(shared.ErrIdempotencyConflict))
	assert.Equal(t, http.StatusBadRequest, StatusOf(fmt.Errorf("wrap: %w", shared.ErrInvalidValidity)))
}

func TestJSONIsNotCached(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
