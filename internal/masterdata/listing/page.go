package listing

import (
	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// pageWindow is the number of page links rendered around the current page.
const pageWindow = 5

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PageLink is one numbered pagination link.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// CellData is a rendered cell plus the link of its toggle, if any.
type CellData struct {
	liststate.Cell
	ToggleURL string
}

// RowData is a table row ready for the template.
type RowData struct {
	No        int
	Token     string
	Cells     []CellData
	DetailURL string
	EditURL   string
	// ToggleURL flips the status column from the action buttons.
	ToggleURL string
}

// PageData is the template model of a list page.
type PageData struct {
	Name       string
	Title      string
	Breadcrumb []Crumb
	BaseURL    string
	Columns    []Column
	Rows       []RowData
	Pagination shared.Pagination
	Pages      []PageLink
	PrevURL    string
	NextURL    string
	Search     string
	SortKey    string
	Status     string
	Sorts      []Option
	Statuses   []Option
	CreateURL  string
	Scope      Scope
	BackURL    string
	Failed     bool
	Error      string
	RetryURL   string
}

func (h *Handler[R]) pageData(sess auth.Session, ctrl *liststate.Controller[R], scope Scope) PageData {
	page := ctrl.Derive()
	v := ctrl.View()
	base := h.BaseURL(scope)

	data := PageData{
		Name:       h.screen.Name,
		Title:      h.screen.Title,
		Breadcrumb: h.screen.Breadcrumb,
		BaseURL:    base,
		Columns:    h.screen.Columns,
		Pagination: shared.NewPagination(page.Current, page.PageSize, page.Total),
		Search:     v.Search,
		SortKey:    v.SortKey,
		Status:     v.Status,
		Scope:      scope,
		BackURL:    h.screen.ParentPath,
	}
	for _, opt := range ctrl.Sorts() {
		data.Sorts = append(data.Sorts, Option{Value: opt.Key, Label: opt.Label, Selected: opt.Key == v.SortKey})
	}
	for _, s := range h.screen.Statuses {
		data.Statuses = append(data.Statuses, Option{Value: s, Label: s, Selected: s == v.Status})
	}
	if h.screen.CreatePerm != "" && sess.Can(h.screen.CreatePerm) {
		data.CreateURL = base + "/new"
	}
	if ctrl.State() == liststate.LoadFailed {
		data.Failed = true
		data.Error = shared.UserMessage(ctrl.Err(), "Gagal memuat data.")
		data.RetryURL = RefreshURL(base)
	}

	for _, n := range data.Pagination.Window(pageWindow) {
		data.Pages = append(data.Pages, PageLink{Number: n, URL: ListURL(base, v, n), Current: n == page.Current})
	}
	if page.HasPrev() {
		data.PrevURL = ListURL(base, v, page.Current-1)
	}
	if page.HasNext() {
		data.NextURL = ListURL(base, v, page.Current+1)
	}

	data.Rows = make([]RowData, 0, len(page.Rows))
	for _, row := range page.Rows {
		data.Rows = append(data.Rows, h.rowData(base, row))
	}
	return data
}

func (h *Handler[R]) rowData(base string, row liststate.RowView) RowData {
	token := h.deps.Codec.MustEncode(row.ID)
	out := RowData{No: row.No, Token: token}
	if row.Can(liststate.ActionEdit) {
		out.EditURL = base + "/" + token + "/edit"
	}
	if row.Can(liststate.ActionDetail) && h.screen.Detail != nil {
		out.DetailURL = h.screen.Detail(base, token)
	}
	out.Cells = make([]CellData, 0, len(row.Cells))
	for _, cell := range row.Cells {
		cd := CellData{Cell: cell}
		if cell.Toggle != "" && row.Can(liststate.ActionToggle) {
			cd.ToggleURL = base + "/" + token + "/toggle/" + cell.Toggle
			if cell.Toggle == liststate.StatusColumn {
				out.ToggleURL = cd.ToggleURL
			}
		}
		out.Cells = append(out.Cells, cd)
	}
	return out
}
