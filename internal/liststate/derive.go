package liststate

import (
	"slices"
	"strings"
)

// Align is a horizontal alignment hint for a table cell.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Action is a per-row action the renderer may offer.
type Action string

const (
	ActionDetail Action = "Detail"
	ActionEdit   Action = "Edit"
	ActionToggle Action = "Toggle"
)

// Cell is one rendered column of a row. Toggle names the toggle column when the
// cell is a switch; On holds its state.
type Cell struct {
	Label  string
	Value  string
	Align  Align
	Badge  bool
	Toggle string
	On     bool
}

// RowView is the UI-ready projection of one record.
type RowView struct {
	ID      string
	No      int
	Cells   []Cell
	Actions []Action
}

// Can reports whether the row offers action a.
func (r RowView) Can(a Action) bool {
	return slices.Contains(r.Actions, a)
}

// Page is the derived view handed to a table/paging renderer.
type Page struct {
	Rows       []RowView
	Total      int
	PageSize   int
	Current    int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Current > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Current < p.TotalPages }

// Offset is the zero based index of the first row on the page.
func (p Page) Offset() int {
	if p.Current < 1 {
		return 0
	}
	return (p.Current - 1) * p.PageSize
}

// Derive computes the current page from the dataset and ViewState without
// touching either.
func (c *Controller[R]) Derive() Page {
	c.mu.Lock()
	filtered := c.filteredLocked()
	view := c.view
	c.mu.Unlock()

	c.sortRecords(filtered, view.SortKey)

	size := c.cfg.PageSize
	total := len(filtered)
	pages := pageCount(total, size)
	out := Page{Total: total, PageSize: size, TotalPages: pages, Current: view.Page}
	if total == 0 {
		out.Rows = []RowView{}
		return out
	}
	if out.Current < 1 {
		out.Current = 1
	}
	if out.Current > pages {
		out.Current = pages
	}
	start := (out.Current - 1) * size
	end := min(start+size, total)

	out.Rows = make([]RowView, 0, end-start)
	for i, r := range filtered[start:end] {
		out.Rows = append(out.Rows, c.project(start+i+1, r))
	}
	return out
}

// Filtered returns the search and status filtered, sorted records.
func (c *Controller[R]) Filtered() []R {
	c.mu.Lock()
	filtered := c.filteredLocked()
	sortKey := c.view.SortKey
	c.mu.Unlock()
	c.sortRecords(filtered, sortKey)
	return filtered
}

func (c *Controller[R]) project(no int, r R) RowView {
	var row RowView
	if c.cfg.Project != nil {
		row = c.cfg.Project(no, r)
	}
	row.No = no
	if c.cfg.ID != nil {
		row.ID = c.cfg.ID(r)
	}
	return row
}

// filteredLocked returns a fresh slice holding the records that pass the search
// and status predicates, in dataset order.
func (c *Controller[R]) filteredLocked() []R {
	term := strings.ToLower(strings.TrimSpace(c.view.Search))
	status := strings.TrimSpace(c.view.Status)
	skipStatus := c.cfg.Status == nil || status == "" || (c.cfg.AllStatus != "" && strings.EqualFold(status, c.cfg.AllStatus))

	out := make([]R, 0, len(c.dataset))
	for _, r := range c.dataset {
		if term != "" && !c.matchSearch(r, term) {
			continue
		}
		if !skipStatus && !strings.EqualFold(strings.TrimSpace(c.cfg.Status(r)), status) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c *Controller[R]) matchSearch(r R, term string) bool {
	if len(c.cfg.SearchFields) == 0 {
		return true
	}
	for _, field := range c.cfg.SearchFields {
		if strings.Contains(strings.ToLower(field(r)), term) {
			return true
		}
	}
	return false
}

func (c *Controller[R]) sortRecords(records []R, key string) {
	opt, ok := c.sortOption(key)
	if !ok || opt.Compare == nil {
		return
	}
	slices.SortStableFunc(records, opt.Compare)
}

func (c *Controller[R]) sortOption(key string) (SortOption[R], bool) {
	for _, opt := range c.cfg.Sorts {
		if opt.Key == key {
			return opt, true
		}
	}
	if len(c.cfg.Sorts) > 0 {
		return c.cfg.Sorts[0], true
	}
	return SortOption[R]{}, false
}
