package struktur

import (
	"errors"
	"slices"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

var messages = map[string]string{
	"strDesc.required":      "Nama struktur wajib diisi",
	"strDesc.max":           "Nama struktur maksimal 150 karakter",
	"tanggalFrom.required":  "Tanggal from wajib diisi",
	"tanggalUntil.required": "Tanggal until wajib diisi",
}

// validate checks in for the node self; self is empty when creating.
func (s *Service) validate(self string, in Input) (Input, error) {
	in = in.trimmed()
	fields := map[string]string{}
	if self != "" && in.ParentID == self {
		fields["parentId"] = "Struktur tidak boleh menjadi induk dirinya sendiri"
	}
	if err := listing.Validate(in, messages); err != nil {
		return in, listing.MergeErrors(err, shared.NewValidationError(fields))
	}
	from, _ := listing.ParseDate(in.TanggalFrom)
	until, _ := listing.ParseDate(in.TanggalUntil)
	if err := shared.ValidateValidity(from, until); err != nil {
		if !errors.Is(err, shared.ErrInvalidValidity) {
			return in, err
		}
		fields["tanggalUntil"] = err.Error()
	}
	return in, shared.NewValidationError(fields)
}

func sortByID(records []Struktur) {
	slices.SortStableFunc(records, liststate.ByNumber(Struktur.numericID, liststate.Asc))
}
