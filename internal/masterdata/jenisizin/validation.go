package jenisizin

import (
	"errors"

	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

var messages = map[string]string{
	"jeiNama.required":          "Nama izin wajib diisi.",
	"jeiDesc.required":          "Deskripsi wajib diisi.",
	"jeiJumlahIjinDay.required": "Jumlah hari izin wajib.",
	"jeiJumlahPlusDay.required": "Plus day wajib.",
	"jeiValidFrom.required":     "Tanggal mulai wajib.",
	"jeiValidUntil.required":    "Tanggal akhir wajib.",
	"jeiValidFrom.datetime":     "Format tanggal tidak valid.",
	"jeiValidUntil.datetime":    "Format tanggal tidak valid.",
}

func (s *Service) validate(in Input) (Input, error) {
	in = in.trimmed()
	if err := listing.Validate(in, messages); err != nil {
		return in, err
	}
	from, _ := listing.ParseDate(in.ValidFrom)
	until, _ := listing.ParseDate(in.ValidUntil)
	if err := shared.ValidateValidity(from, until); err != nil {
		if errors.Is(err, shared.ErrInvalidValidity) {
			return in, shared.NewValidationError(map[string]string{"jeiValidUntil": err.Error()})
		}
		return in, err
	}
	return in, nil
}
