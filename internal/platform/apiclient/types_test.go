package apiclient

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseScalars(t *testing.T) {
	var rec struct {
		ID     Int    `json:"id"`
		Parent Text   `json:"parent"`
		Plafon Number `json:"plafon"`
		Admin  Flag   `json:"admin"`
		From   Date   `json:"from"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"12","parent":4,"plafon":null,"admin":1,"from":"2024-03-01T00:00:00"}`), &rec))
	assert.Equal(t, Int(12), rec.ID)
	assert.Equal(t, Text("4"), rec.Parent)
	assert.False(t, rec.Plafon.Valid)
	assert.True(t, bool(rec.Admin))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), rec.From.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"parent":null,"plafon":"1500000.5","admin":"false","from":null}`), &rec))
	assert.Equal(t, Int(3), rec.ID)
	assert.Equal(t, Text(""), rec.Parent)
	assert.True(t, rec.Plafon.Valid)
	assert.InDelta(t, 1500000.5, rec.Plafon.Value, 0.001)
	assert.False(t, bool(rec.Admin))
	assert.True(t, rec.From.IsZero())
}

func TestDateMarshal(t *testing.T) {
	out, err := json.Marshal(Date{Time: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-30"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("kemarin")
	assert.Error(t, err)
}
