package listing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

type sampleForm struct {
	Nama   string `form:"nama" validate:"required,max=5"`
	Jumlah string `form:"jumlah" validate:"omitempty,number"`
	Status string `form:"status" validate:"required,oneof=Aktif 'Tidak Aktif'"`
}

func TestValidateKeysByFormName(t *testing.T) {
	err := Validate(sampleForm{Nama: "terlalu panjang", Jumlah: "x", Status: "Tidak Aktif"}, map[string]string{
		"nama.max": "Nama maksimal 5 karakter",
	})

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{
		"nama":   "Nama maksimal 5 karakter",
		"jumlah": "Harus berupa angka",
	}, validationErr.Fields)
}

func TestValidateFieldWideOverride(t *testing.T) {
	err := Validate(sampleForm{}, map[string]string{"status": "Pilih status"})

	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Wajib diisi", validationErr.Fields["nama"])
	assert.Equal(t, "Pilih status", validationErr.Fields["status"])
	assert.NotContains(t, validationErr.Fields, "jumlah")

	assert.NoError(t, Validate(sampleForm{Nama: "abc", Status: "Aktif"}, nil))
}

func TestMergeErrors(t *testing.T) {
	a := shared.NewValidationError(map[string]string{"nama": "pertama"})
	b := shared.NewValidationError(map[string]string{"nama": "kedua", "status": "x"})

	err := MergeErrors(a, nil, b)
	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"nama": "pertama", "status": "x"}, validationErr.Fields)

	assert.NoError(t, MergeErrors(nil, nil))

	boom := errors.New("boom")
	assert.Same(t, boom, MergeErrors(a, boom))
}

func TestFormStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{shared.NewValidationError(map[string]string{"a": "b"}), http.StatusBadRequest},
		{shared.ErrInvalidValidity, http.StatusBadRequest},
		{shared.ErrIdempotencyConflict, http.StatusConflict},
		{fmt.Errorf("get: %w", shared.ErrEmptyResult), http.StatusNotFound},
		{fmt.Errorf("post: %w", shared.ErrNetwork), http.StatusBadGateway},
		{&shared.ServerError{Status: 500, Message: "x"}, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormStatus(tc.err), tc.err.Error())
	}
}

func TestFormErrors(t *testing.T) {
	got := FormErrors(shared.NewValidationError(map[string]string{"nama": "Wajib diisi"}), "Gagal")
	assert.Equal(t, "Wajib diisi", got["nama"])
	assert.Equal(t, "Mohon lengkapi semua field yang wajib diisi.", got["general"])

	got = FormErrors(&shared.ServerError{Message: "Nama sudah dipakai"}, "Gagal")
	assert.Equal(t, map[string]string{"general": "Nama sudah dipakai"}, got)

	assert.Empty(t, FormErrors(nil, "Gagal"))
}

func TestSelectOptions(t *testing.T) {
	opts := SelectOptions("Menikah", [2]string{"Lajang", "Lajang"}, [2]string{"Menikah", "Menikah"})
	require.Len(t, opts, 2)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestFormConfirmer(t *testing.T) {
	ctx := context.Background()
	assert.True(t, FormConfirmer("ya").Confirm(ctx, "", ""))
	assert.True(t, FormConfirmer(" YA ").Confirm(ctx, "", ""))
	assert.False(t, FormConfirmer("tidak").Confirm(ctx, "", ""))
	assert.False(t, FormConfirmer("").Confirm(ctx, "", ""))
}

func TestOnceClaimsKeyUntilReleased(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	deps := Deps{Idempotency: shared.NewIdempotencyStore(client, time.Minute)}
	ctx := context.Background()

	req := postForm("/pages/golongan", url.Values{shared.IdempotencyFormField: {"form-1"}})
	release, err := deps.Once(ctx, req, "golongan.create")
	require.NoError(t, err)

	dup := postForm("/pages/golongan", url.Values{shared.IdempotencyFormField: {"form-1"}})
	_, err = deps.Once(ctx, dup, "golongan.create")
	assert.ErrorIs(t, err, shared.ErrIdempotencyConflict)

	release()
	again := postForm("/pages/golongan", url.Values{shared.IdempotencyFormField: {"form-1"}})
	_, err = deps.Once(ctx, again, "golongan.create")
	assert.NoError(t, err)
}

func TestOnceWithoutKeyOrStore(t *testing.T) {
	release, err := Deps{}.Once(context.Background(), postForm("/x", url.Values{}), "m")
	require.NoError(t, err)
	release()
}

func TestFlashNotifierSkipsBlankMessages(t *testing.T) {
	req := get("/")
	sess, err := shared.NewSessionManager(nil, "test", "secret", 0, false).Load(req.Context(), req)
	require.NoError(t, err)

	n := FlashNotifier{Session: sess}
	n.NotifyError(context.Background(), "  ")
	assert.Nil(t, sess.PopFlash())

	n.NotifyError(context.Background(), "Gagal memuat data.")
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "error", flash.Kind)

	FlashNotifier{}.NotifySuccess(context.Background(), "tanpa sesi")
}
