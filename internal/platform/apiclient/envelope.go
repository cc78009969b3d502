package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

// dataKeys lists the keys the HR API uses for payloads, in lookup order.
var dataKeys = []string{"data", "dataList", "items", "Data"}

// Envelope is a normalised API response.
type Envelope struct {
	// Records always holds a list; a single object becomes a one-element list.
	Records []json.RawMessage
	Message string
	Failed  bool
}

// Ack acknowledges a write.
type Ack struct {
	Message string
	Envelope
}

// Succeeded reports whether the acknowledgement message signals success. The
// API answers "SUCCESS", "Berhasil" or a sentence containing either; an empty
// message counts as success.
func (a Ack) Succeeded() bool {
	msg := strings.ToLower(strings.TrimSpace(a.Message))
	return msg == "" || strings.Contains(msg, "success") || strings.Contains(msg, "berhasil")
}

// RequireSuccess converts an unsuccessful acknowledgement into a ServerError.
func RequireSuccess(ack Ack, err error) error {
	if err != nil {
		return err
	}
	if !ack.Succeeded() {
		return &shared.ServerError{Message: ack.Message}
	}
	return nil
}

// RequireCommitted accepts any acknowledgement the API did not flag as an
// error. Status toggles answer with free-form messages, so only the error flag
// and non-2xx statuses count as failures.
func RequireCommitted(ack Ack, err error) error {
	if err != nil {
		return err
	}
	if ack.Failed {
		return &shared.ServerError{Message: ack.Message}
	}
	return nil
}

// DecodeRecords unmarshals every record in env into R.
func DecodeRecords[R any](env Envelope) ([]R, error) {
	out := make([]R, 0, len(env.Records))
	for i, raw := range env.Records {
		var rec R
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, &shared.ServerError{
				Message: "Respons server tidak valid.",
				Err:     fmt.Errorf("record %d: %w", i, err),
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeOne returns the first record of env, or ErrEmptyResult when there is none.
func DecodeOne[R any](env Envelope) (R, error) {
	var zero R
	recs, err := DecodeRecords[R](env)
	if err != nil {
		return zero, err
	}
	if len(recs) == 0 {
		return zero, shared.ErrEmptyResult
	}
	return recs[0], nil
}

func decodeEnvelope(raw []byte) (Envelope, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Envelope{}, nil
	}

	// Some endpoints answer with a bare array.
	if raw[0] == '[' {
		recs, err := splitRecords(raw)
		return Envelope{Records: recs}, err
	}
	if raw[0] != '{' {
		return Envelope{}, errors.New("unexpected response body")
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return Envelope{}, err
	}

	env := Envelope{Message: messageOf(body)}
	if v, ok := body["error"]; ok {
		var flag bool
		if json.Unmarshal(v, &flag) == nil && flag {
			env.Failed = true
		}
	}
	for _, key := range dataKeys {
		v, ok := body[key]
		if !ok {
			continue
		}
		recs, err := splitRecords(v)
		if err != nil {
			return Envelope{}, fmt.Errorf("field %s: %w", key, err)
		}
		env.Records = recs
		break
	}
	return env, nil
}

func splitRecords(v json.RawMessage) ([]json.RawMessage, error) {
	v = bytes.TrimSpace(v)
	switch {
	case len(v) == 0, bytes.Equal(v, []byte("null")):
		return nil, nil
	case v[0] == '[':
		var recs []json.RawMessage
		if err := json.Unmarshal(v, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	case v[0] == '{':
		return []json.RawMessage{v}, nil
	default:
		// Scalars (an id returned by a create call) are kept as one record.
		return []json.RawMessage{v}, nil
	}
}

func messageOf(body map[string]json.RawMessage) string {
	for _, key := range []string{"message", "Message", "title"} {
		v, ok := body[key]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

func serverMessage(raw []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(raw), &body); err != nil {
		return ""
	}
	return messageOf(body)
}
