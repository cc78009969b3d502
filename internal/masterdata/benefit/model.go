package benefit

import (
	"strconv"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Benefit is one validity period of the medical ceilings of a golongan.
type Benefit struct {
	ID               apiclient.Text   `json:"benId"`
	GolonganID       apiclient.Text   `json:"golonganId"`
	PlafonObat       apiclient.Number `json:"benPlafonObat"`
	PlafonLensaMono  apiclient.Number `json:"benPlafonLensaMono"`
	PlafonLensaBi    apiclient.Number `json:"benPlafonLensaBi"`
	PlafonRangka     apiclient.Number `json:"benPlafonRangka"`
	StatusPernikahan apiclient.Text   `json:"benStatusPernikahan"`
	ValidFrom        apiclient.Date   `json:"benValidDateFrom"`
	ValidUntil       apiclient.Date   `json:"benValidDateUntil"`
	Status           apiclient.Text   `json:"benStatus"`
}

func (b Benefit) key() string { return strings.TrimSpace(b.ID.String()) }

func (b Benefit) numericID() int64 {
	n, _ := strconv.ParseInt(b.key(), 10, 64)
	return n
}

// Marital statuses a benefit applies to.
const (
	Lajang  = "Lajang"
	Menikah = "Menikah"
)

// Input is the create and edit form. Ceilings other than obat may be left
// empty and are then sent as zero.
type Input struct {
	PlafonObat       string `form:"benPlafonObat" validate:"required,number"`
	PlafonLensaMono  string `form:"benPlafonLensaMono" validate:"omitempty,number"`
	PlafonLensaBi    string `form:"benPlafonLensaBi" validate:"omitempty,number"`
	PlafonRangka     string `form:"benPlafonRangka" validate:"omitempty,number"`
	StatusPernikahan string `form:"benStatusPernikahan" validate:"required,oneof=Lajang Menikah"`
	ValidFrom        string `form:"benValidDateFrom" validate:"required,datetime=2006-01-02"`
	ValidUntil       string `form:"benValidDateUntil" validate:"required,datetime=2006-01-02"`
}

// InputOf fills the form from a record.
func InputOf(b Benefit) Input {
	return Input{
		PlafonObat:       amount(b.PlafonObat),
		PlafonLensaMono:  amount(b.PlafonLensaMono),
		PlafonLensaBi:    amount(b.PlafonLensaBi),
		PlafonRangka:     amount(b.PlafonRangka),
		StatusPernikahan: b.StatusPernikahan.String(),
		ValidFrom:        shared.FormatInputDate(b.ValidFrom.Time),
		ValidUntil:       shared.FormatInputDate(b.ValidUntil.Time),
	}
}

func amount(n apiclient.Number) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (in Input) trimmed() Input {
	in.PlafonObat = strings.TrimSpace(in.PlafonObat)
	in.PlafonLensaMono = strings.TrimSpace(in.PlafonLensaMono)
	in.PlafonLensaBi = strings.TrimSpace(in.PlafonLensaBi)
	in.PlafonRangka = strings.TrimSpace(in.PlafonRangka)
	in.StatusPernikahan = strings.TrimSpace(in.StatusPernikahan)
	in.ValidFrom = strings.TrimSpace(in.ValidFrom)
	in.ValidUntil = strings.TrimSpace(in.ValidUntil)
	return in
}

// payload is the body shared by create and update.
type payload struct {
	PlafonObat       float64 `json:"benPlafonObat"`
	PlafonLensaMono  float64 `json:"benPlafonLensaMono"`
	PlafonLensaBi    float64 `json:"benPlafonLensaBi"`
	PlafonRangka     float64 `json:"benPlafonRangka"`
	StatusPernikahan string  `json:"benStatusPernikahan"`
	ValidFrom        string  `json:"benValidDateFrom"`
	ValidUntil       string  `json:"benValidDateUntil"`
}

func (in Input) payload() payload {
	return payload{
		PlafonObat:       parseAmount(in.PlafonObat),
		PlafonLensaMono:  parseAmount(in.PlafonLensaMono),
		PlafonLensaBi:    parseAmount(in.PlafonLensaBi),
		PlafonRangka:     parseAmount(in.PlafonRangka),
		StatusPernikahan: in.StatusPernikahan,
		ValidFrom:        in.ValidFrom,
		ValidUntil:       in.ValidUntil,
	}
}

func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
