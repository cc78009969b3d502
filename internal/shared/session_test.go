package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "sid", "secret", time.Hour, false), mr
}

// roundTrip commits sess and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, sm *SessionManager, sess *Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, nil, sess))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionUnchangedFreshSessionIsNotStored(t *testing.T) {
	sm, mr := newSessionManager(t)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, nil, sess))

	assert.Empty(t, rec.Result().Cookies())
	assert.Empty(t, mr.Keys())
}

func TestSessionFlashSurvivesRedirect(t *testing.T) {
	sm, _ := newSessionManager(t)
	ctx := context.Background()
	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.AddFlash(FlashMessage{Kind: "success", Message: "Data tersimpan."})

	next, err := sm.Load(ctx, roundTrip(t, sm, sess))
	require.NoError(t, err)
	assert.Equal(t, sess.ID, next.ID)
	flash := next.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Data tersimpan.", flash.Message)

	after, err := sm.Load(ctx, roundTrip(t, sm, next))
	require.NoError(t, err)
	assert.Nil(t, after.PopFlash(), "a flash is shown once")
}

func TestSessionPopFlashesDrainsQueue(t *testing.T) {
	sm, _ := newSessionManager(t)
	ctx := context.Background()
	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.AddFlash(FlashMessage{Kind: "success", Message: "Status berhasil diubah."})
	sess.AddFlash(FlashMessage{Kind: "error", Message: "Gagal memuat ulang data."})

	next, err := sm.Load(ctx, roundTrip(t, sm, sess))
	require.NoError(t, err)
	flashes := next.PopFlashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, "success", flashes[0].Kind)
	assert.Equal(t, "error", flashes[1].Kind)
	assert.Nil(t, next.PopFlashes())
}

func TestSessionRejectsForgedCookie(t *testing.T) {
	sm, _ := newSessionManager(t)
	ctx := context.Background()
	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("k", "v")
	roundTrip(t, sm, sess)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sess.ID + ".forged"})
	loaded, err := sm.Load(ctx, req)

	require.NoError(t, err)
	assert.NotEqual(t, sess.ID, loaded.ID)
	assert.Empty(t, loaded.Get("k"))
}

func TestSessionRenewDropsOldRecordAndCSRF(t *testing.T) {
	sm, mr := newSessionManager(t)
	ctx := context.Background()
	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	token, err := NewCSRFManager("csrf").EnsureToken(ctx, sess)
	require.NoError(t, err)
	sess.Set("lang", "id")
	loaded, err := sm.Load(ctx, roundTrip(t, sm, sess))
	require.NoError(t, err)
	oldID := loaded.ID

	loaded.Renew()
	renewed, err := sm.Load(ctx, roundTrip(t, sm, loaded))
	require.NoError(t, err)

	assert.NotEqual(t, oldID, renewed.ID)
	assert.False(t, mr.Exists("hrportal:session:"+oldID))
	assert.Equal(t, "id", renewed.Get("lang"))
	assert.ErrorIs(t, NewCSRFManager("csrf").VerifyToken(ctx, renewed, token), ErrCSRFTokenMissing)
}

func TestSessionDestroyExpiresCookie(t *testing.T) {
	sm, mr := newSessionManager(t)
	ctx := context.Background()
	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("k", "v")
	loaded, err := sm.Load(ctx, roundTrip(t, sm, sess))
	require.NoError(t, err)

	sm.Destroy(loaded)
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, nil, loaded))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, mr.Keys())
}

func TestCSRFTokenStableWithinSession(t *testing.T) {
	ctx := context.Background()
	m := NewCSRFManager("csrf")
	sess := &Session{ID: "abc"}

	first, err := m.EnsureToken(ctx, sess)
	require.NoError(t, err)
	second, err := m.EnsureToken(ctx, sess)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, m.VerifyToken(ctx, sess, first))
	assert.ErrorIs(t, m.VerifyToken(ctx, sess, first+"x"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, m.VerifyToken(ctx, sess, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(ctx, nil, first), ErrCSRFTokenMissing)
}
