package liststate

import (
	"cmp"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption is one entry of a list's "Urutkan" dropdown. Key doubles as the
// sort hint sent to the API (e.g. "[Golongan] asc").
type SortOption[R any] struct {
	Key     string
	Label   string
	Compare func(a, b R) int
}

// Direction of a comparator.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// textCollator serialises access to a collate.Collator, which keeps internal
// buffers and is not safe for concurrent use.
type textCollator struct {
	mu sync.Mutex
	c  *collate.Collator
}

func (t *textCollator) compare(a, b string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c.CompareString(a, b)
}

var indonesian = &textCollator{c: collate.New(language.Indonesian, collate.IgnoreCase)}

// ByText orders records by a string field using Indonesian collation.
func ByText[R any](field func(R) string, dir Direction) func(a, b R) int {
	return func(a, b R) int {
		res := indonesian.compare(strings.TrimSpace(field(a)), strings.TrimSpace(field(b)))
		if dir == Desc {
			return -res
		}
		return res
	}
}

// ByNumber orders records by a numeric field.
func ByNumber[R any, N cmp.Ordered](field func(R) N, dir Direction) func(a, b R) int {
	return func(a, b R) int {
		res := cmp.Compare(field(a), field(b))
		if dir == Desc {
			return -res
		}
		return res
	}
}

// ByTime orders records by a time field; zero times sort first ascending.
func ByTime[R any](field func(R) time.Time, dir Direction) func(a, b R) int {
	return func(a, b R) int {
		res := field(a).Compare(field(b))
		if dir == Desc {
			return -res
		}
		return res
	}
}
