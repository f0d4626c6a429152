package query

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// LimitAll disables paging when passed as the limit.
	LimitAll = "ALL"
)

// Page is a normalized pagination request. When All is set Number and
// Limit are ignored.
type Page struct {
	Number int
	Limit  int
	All    bool
}

// ParsePage normalizes raw page and limit values. Absent or invalid values
// fall back to DefaultPage and DefaultLimit. Limit is capped at MaxLimit and
// page at the last one whose offset still fits in an int.
func ParsePage(page, limit string) Page {
	p := Page{Number: DefaultPage, Limit: DefaultLimit}

	if strings.EqualFold(strings.TrimSpace(limit), LimitAll) {
		p.All = true
		return p
	}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n >= 1 {
		p.Limit = min(n, MaxLimit)
	}
	p.Number = min(p.Number, maxPage(p.Limit))
	return p
}

func maxPage(limit int) int {
	return math.MaxInt/limit + 1
}

// Unpaged returns a Page that fetches every row.
func Unpaged() Page {
	return Page{Number: DefaultPage, Limit: DefaultLimit, All: true}
}

func (p Page) Offset() int {
	if p.All || p.Number < 1 || p.Limit < 1 {
		return 0
	}
	return (min(p.Number, maxPage(p.Limit)) - 1) * p.Limit
}

// TotalPages is ceil(total/limit); zero when nothing matched.
func (p Page) TotalPages(total int64) int {
	if p.All {
		return 1
	}
	if total <= 0 || p.Limit < 1 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}
