package shared

import (
	"errors"
	"time"
)

// ErrInvalidValidity indicates a validity window that ends before it starts.
var ErrInvalidValidity = errors.New("Tanggal berakhir tidak boleh sebelum tanggal mulai.")

// ValidateValidity checks a [from, until] window. A zero until means open ended.
func ValidateValidity(from, until time.Time) error {
	if from.IsZero() {
		return errors.New("tanggal mulai wajib diisi")
	}
	if until.IsZero() {
		return nil
	}
	if until.Before(from) {
		return ErrInvalidValidity
	}
	return nil
}

// ActiveOn reports whether day falls inside the [from, until] window.
func ActiveOn(day, from, until time.Time) bool {
	if !from.IsZero() && day.Before(from) {
		return false
	}
	if !until.IsZero() && day.After(until) {
		return false
	}
	return true
}
