package listing

import (
	"net/http"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/httpx"
)

type dataRow struct {
	No    int               `json:"no"`
	Token string            `json:"token"`
	Cells map[string]string `json:"cells"`
}

type dataResponse struct {
	List       string    `json:"list"`
	State      string    `json:"state"`
	Search     string    `json:"search"`
	Sort       string    `json:"sort"`
	Status     string    `json:"status"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
	Rows       []dataRow `json:"rows"`
}

// data serves the derived page as JSON for scripts and the CLI.
func (h *Handler[R]) data(w http.ResponseWriter, r *http.Request) {
	ctrl, _, err := h.Controller(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	h.apply(r.Context(), ctrl, r.URL.Query())
	if ctrl.State() == liststate.LoadFailed {
		httpx.RespondError(w, r, ctrl.Err())
		return
	}
	page := ctrl.Derive()
	v := ctrl.View()
	resp := dataResponse{
		List:       h.screen.Name,
		State:      ctrl.State().String(),
		Search:     v.Search,
		Sort:       v.SortKey,
		Status:     v.Status,
		Page:       page.Current,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Rows:       make([]dataRow, 0, len(page.Rows)),
	}
	for _, row := range page.Rows {
		cells := make(map[string]string, len(row.Cells))
		for _, c := range row.Cells {
			cells[c.Label] = c.Value
		}
		resp.Rows = append(resp.Rows, dataRow{No: row.No, Token: h.deps.Codec.MustEncode(row.ID), Cells: cells})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
