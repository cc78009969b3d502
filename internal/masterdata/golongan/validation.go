package golongan

import (
	"strings"

	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
)

func (s *Service) validate(in Input) (Input, error) {
	in.Desc = strings.TrimSpace(in.Desc)
	err := listing.Validate(in, map[string]string{
		"golonganDesc.required": "Nama golongan wajib diisi",
	})
	return in, err
}
