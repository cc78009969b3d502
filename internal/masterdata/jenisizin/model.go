package jenisizin

import (
	"strconv"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// JenisIzin is a leave type.
type JenisIzin struct {
	ID            apiclient.Text `json:"jeiId"`
	Nama          apiclient.Text `json:"jeiNama"`
	Desc          apiclient.Text `json:"jeiDesc"`
	JumlahIjinDay apiclient.Int  `json:"jeiJumlahIjinDay"`
	JumlahPlusDay apiclient.Int  `json:"jeiJumlahPlusDay"`
	ValidFrom     apiclient.Date `json:"jeiValidFrom"`
	ValidUntil    apiclient.Date `json:"jeiValidUntil"`
	AdminOnly     apiclient.Flag `json:"jeiIsAdminOnly"`
	RequiredFile  apiclient.Flag `json:"jeiRequiredFile"`
	ForSelf       apiclient.Flag `json:"jeiIsForSelf"`
}

// Flag columns that can be toggled from the list.
const (
	ColumnAdminOnly    = "hanyaAdmin"
	ColumnRequiredFile = "wajibFile"
	ColumnForSelf      = "diriSendiri"
)

// flag reads a toggle column as "1" or "0".
func (j JenisIzin) flag(column string) string {
	var on apiclient.Flag
	switch column {
	case ColumnAdminOnly:
		on = j.AdminOnly
	case ColumnRequiredFile:
		on = j.RequiredFile
	case ColumnForSelf:
		on = j.ForSelf
	}
	if on {
		return "1"
	}
	return "0"
}

// Input is the create and edit form. Numbers and dates stay strings so the
// form can be redisplayed exactly as submitted.
type Input struct {
	Nama          string `form:"jeiNama" validate:"required,max=100"`
	Desc          string `form:"jeiDesc" validate:"required,max=200"`
	JumlahIjinDay string `form:"jeiJumlahIjinDay" validate:"required,number"`
	JumlahPlusDay string `form:"jeiJumlahPlusDay" validate:"required,number"`
	ValidFrom     string `form:"jeiValidFrom" validate:"required,datetime=2006-01-02"`
	ValidUntil    string `form:"jeiValidUntil" validate:"required,datetime=2006-01-02"`
}

// InputOf fills the form from a record.
func InputOf(j JenisIzin) Input {
	return Input{
		Nama:          j.Nama.String(),
		Desc:          j.Desc.String(),
		JumlahIjinDay: strconv.FormatInt(int64(j.JumlahIjinDay), 10),
		JumlahPlusDay: strconv.FormatInt(int64(j.JumlahPlusDay), 10),
		ValidFrom:     shared.FormatInputDate(j.ValidFrom.Time),
		ValidUntil:    shared.FormatInputDate(j.ValidUntil.Time),
	}
}

type payload struct {
	Nama          string `json:"jeiNama"`
	Desc          string `json:"jeiDesc"`
	JumlahIjinDay int    `json:"jeiJumlahIjinDay"`
	JumlahPlusDay int    `json:"jeiJumlahPlusDay"`
	ValidFrom     string `json:"jeiValidFrom"`
	ValidUntil    string `json:"jeiValidUntil"`
}

func (in Input) payload() payload {
	ijin, _ := strconv.Atoi(in.JumlahIjinDay)
	plus, _ := strconv.Atoi(in.JumlahPlusDay)
	return payload{
		Nama:          in.Nama,
		Desc:          in.Desc,
		JumlahIjinDay: ijin,
		JumlahPlusDay: plus,
		ValidFrom:     in.ValidFrom,
		ValidUntil:    in.ValidUntil,
	}
}

func (in Input) trimmed() Input {
	in.Nama = strings.TrimSpace(in.Nama)
	in.Desc = strings.TrimSpace(in.Desc)
	in.JumlahIjinDay = strings.TrimSpace(in.JumlahIjinDay)
	in.JumlahPlusDay = strings.TrimSpace(in.JumlahPlusDay)
	in.ValidFrom = strings.TrimSpace(in.ValidFrom)
	in.ValidUntil = strings.TrimSpace(in.ValidUntil)
	return in
}
