package query

import (
	"context"
	"fmt"
	"strings"

	"eventplanner/pkg/apperror"

	"gorm.io/gorm"
)

// List describes a list query. Where must use placeholders $1..$len(Args).
type List struct {
	Select  string
	From    string
	Where   string
	Args    []any
	OrderBy string
}

// Result is the envelope returned by Paginate.
type Result[T any] struct {
	Items        []T   `json:"items"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// CountSQL counts the rows matched by the list filter.
func (l List) CountSQL() string {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(l.From)
	l.writeWhere(&sb)
	return sb.String()
}

// FetchSQL returns the row query for p and its bound values. Paged queries
// take LIMIT and OFFSET from the two placeholders after the filter args.
func (l List) FetchSQL(p Page) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if l.Select == "" {
		sb.WriteString("*")
	} else {
		sb.WriteString(l.Select)
	}
	sb.WriteString(" FROM ")
	sb.WriteString(l.From)
	l.writeWhere(&sb)
	if l.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(l.OrderBy)
	}

	args := make([]any, 0, len(l.Args)+2)
	args = append(args, l.Args...)
	if p.All {
		return sb.String(), args
	}

	k := len(l.Args) + 1
	fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", k, k+1)
	args = append(args, p.Limit, p.Offset())
	return sb.String(), args
}

func (l List) writeWhere(sb *strings.Builder) {
	if l.Where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(l.Where)
	}
}

// Paginate runs the count and fetch queries for l. A query that matches
// nothing yields an empty Items slice, not an error.
func Paginate[T any](ctx context.Context, db *gorm.DB, l List, p Page) (*Result[T], error) {
	db = db.WithContext(ctx)
	items := make([]T, 0)

	if p.All {
		sql, args := l.FetchSQL(p)
		if err := db.Raw(sql, args...).Scan(&items).Error; err != nil {
			return nil, apperror.Database(err)
		}
		return &Result[T]{
			Items:        items,
			TotalItems:   int64(len(items)),
			TotalPages:   1,
			CurrentPage:  1,
			ItemsPerPage: len(items),
		}, nil
	}

	var total int64
	if err := db.Raw(l.CountSQL(), l.Args...).Scan(&total).Error; err != nil {
		return nil, apperror.Database(err)
	}

	if total > int64(p.Offset()) {
		sql, args := l.FetchSQL(p)
		if err := db.Raw(sql, args...).Scan(&items).Error; err != nil {
			return nil, apperror.Database(err)
		}
	}

	return &Result[T]{
		Items:        items,
		TotalItems:   total,
		TotalPages:   p.TotalPages(total),
		CurrentPage:  p.Number,
		ItemsPerPage: p.Limit,
	}, nil
}
