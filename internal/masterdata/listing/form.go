package listing

import "github.com/odyssey-erp/hrportal/internal/platform/httpx"

// FormPage is the template model shared by the create and edit forms.
type FormPage struct {
	Title      string
	Breadcrumb []Crumb
	Action     string
	BackURL    string
	Edit       bool
	Form       any
	Errors     map[string]string
	// IdempotencyKey is posted back by create forms.
	IdempotencyKey string
	Options        map[string][]Option
}

// FormStatus picks the response status for a form that failed to save.
func FormStatus(err error) int {
	return httpx.StatusOf(err)
}

// SelectOptions builds select options from value/label pairs, marking selected.
func SelectOptions(selected string, pairs ...[2]string) []Option {
	out := make([]Option, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Option{Value: p[0], Label: p[1], Selected: p[0] == selected})
	}
	return out
}
