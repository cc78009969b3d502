package golongan

import "github.com/odyssey-erp/hrportal/internal/platform/apiclient"

// Golongan is a job grade together with the ceilings of its current benefit.
type Golongan struct {
	ID               apiclient.Text   `json:"id"`
	Desc             apiclient.Text   `json:"golonganDesc"`
	Status           apiclient.Text   `json:"golonganStatus"`
	PlafonObat       apiclient.Number `json:"benPlafonObat"`
	PlafonLensaMono  apiclient.Number `json:"benPlafonLensaMono"`
	PlafonLensaBi    apiclient.Number `json:"benPlafonLensaBi"`
	PlafonRangka     apiclient.Number `json:"benPlafonRangka"`
	StatusPernikahan apiclient.Text   `json:"benStatusPernikahan"`
}

// Input is the create and edit form.
type Input struct {
	Desc string `form:"golonganDesc" validate:"required,max=100"`
}
