package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil, "x"))
	assert.Equal(t, ErrNetwork.Error(), UserMessage(fmt.Errorf("GET x: %w", ErrNetwork), "fallback"))
	assert.Equal(t, "Data tidak ditemukan.", UserMessage(fmt.Errorf("load: %w", ErrEmptyResult), "fallback"))
	assert.Equal(t, "Duplikat", UserMessage(&ServerError{Status: 409, Message: "Duplikat"}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(&ServerError{Status: 500}, "fallback"))
	assert.Equal(t, "Mohon lengkapi semua field yang wajib diisi.",
		UserMessage(NewValidationError(map[string]string{"golonganDesc": "Wajib diisi"}), "fallback"))
	assert.Equal(t, "boom", UserMessage(errors.New("boom"), ""))
}

func TestNewValidationErrorEmpty(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
	err := NewValidationError(map[string]string{"b": "x", "a": "y"})
	assert.EqualError(t, err, "validasi gagal: a, b")
}

func TestServerErrorText(t *testing.T) {
	assert.Equal(t, "Not Found", (&ServerError{Status: 404}).Error())
	inner := errors.New("bad json")
	err := &ServerError{Err: inner}
	assert.Equal(t, "bad json", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestIDCodecRoundTrip(t *testing.T) {
	codec, err := NewIDCodec("rahasia")
	require.NoError(t, err)

	token, err := codec.Encode("42")
	require.NoError(t, err)
	assert.NotContains(t, token, "42")

	id, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	other, err := codec.Encode("42")
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestIDCodecRejectsTampering(t *testing.T) {
	codec, err := NewIDCodec("rahasia")
	require.NoError(t, err)
	token := codec.MustEncode("7")

	tampered := []byte(token)
	if tampered[0] == 'A' {
		tampered[0] = 'B'
	} else {
		tampered[0] = 'A'
	}
	_, err = codec.Decode(string(tampered))
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = codec.Decode("!!")
	assert.ErrorIs(t, err, ErrInvalidID)

	otherCodec, err := NewIDCodec("lain")
	require.NoError(t, err)
	_, err = otherCodec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewIDCodec("")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Rp 1.500.000", FormatRupiah(1500000))
	assert.Equal(t, "-", FormatRupiahPtr(0, false))
	assert.Equal(t, "12.345", FormatNumber(12345))

	day := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "07 Mar 2025", FormatDate(day))
	assert.Equal(t, "7 Maret 2025", FormatDateLong(day))
	assert.Equal(t, "2025-03-07", FormatInputDate(day))
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "", FormatInputDate(time.Time{}))
	assert.Equal(t, "-", OrPlaceholder("  "))
	assert.Equal(t, "x", OrPlaceholder("x"))
}

func TestValidity(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateValidity(from, from))
	assert.NoError(t, ValidateValidity(from, time.Time{}))
	assert.ErrorIs(t, ValidateValidity(from, from.AddDate(0, 0, -1)), ErrInvalidValidity)
	assert.Error(t, ValidateValidity(time.Time{}, from))

	assert.True(t, ActiveOn(from, from, time.Time{}))
	assert.False(t, ActiveOn(from.AddDate(0, 0, -1), from, time.Time{}))
	assert.False(t, ActiveOn(from.AddDate(1, 0, 0), from, from.AddDate(0, 6, 0)))
}

func TestPaginationWindow(t *testing.T) {
	p := NewPagination(1, 5, 16)
	assert.Equal(t, 4, p.TotalPages)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, []int{1, 2, 3}, p.Window(3))
	assert.Equal(t, 1, p.From())
	assert.Equal(t, 5, p.To())

	p = NewPagination(4, 5, 16)
	assert.Equal(t, []int{2, 3, 4}, p.Window(3))
	assert.Equal(t, 16, p.To())
	assert.Equal(t, 4, p.NextPage())
	assert.Equal(t, 3, p.PrevPage())

	empty := NewPagination(1, 5, 0)
	assert.Nil(t, empty.Window(5))
	assert.Equal(t, 0, empty.From())
	assert.Equal(t, 1, empty.NextPage())
}

func TestIdempotencyStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewIdempotencyStore(client, time.Minute)
	ctx := context.Background()

	release, err := store.Claim(ctx, "golongan", "k1")
	require.NoError(t, err)
	_, err = store.Claim(ctx, "golongan", "k1")
	assert.ErrorIs(t, err, ErrIdempotencyConflict)
	_, err = store.Claim(ctx, "jabatan", "k1")
	assert.NoError(t, err, "keys are scoped per module")

	require.NoError(t, release(ctx))
	_, err = store.Claim(ctx, "golongan", "k1")
	assert.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = store.Claim(ctx, "jabatan", "k1")
	assert.NoError(t, err, "claims expire")

	_, err = store.Claim(ctx, "golongan", "")
	assert.Error(t, err)
	var nilStore *IdempotencyStore
	_, err = nilStore.Claim(ctx, "golongan", "k2")
	assert.Error(t, err)
}

func TestAuditLoggerRequiresFields(t *testing.T) {
	audit := NewAuditLogger(nil)
	assert.Error(t, audit.Record(context.Background(), AuditLog{Action: "toggle"}))
	assert.NoError(t, audit.Record(context.Background(), AuditLog{Actor: "hr", Action: "toggle", Entity: "golongan", EntityID: "1"}))

	var nilAudit *AuditLogger
	assert.Error(t, nilAudit.Record(context.Background(), AuditLog{}))
}
