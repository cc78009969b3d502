package jabatan

import (
	"strings"

	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
)

func (s *Service) validate(in Input) (Input, error) {
	in.Deskripsi = strings.TrimSpace(in.Deskripsi)
	err := listing.Validate(in, map[string]string{
		"jabatanDeskripsi.required": "Nama jabatan wajib diisi",
	})
	return in, err
}
