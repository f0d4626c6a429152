package query

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"eventplanner/pkg/apperror"
)

// Op is a comparison operator allowed in filter clauses.
type Op string

const (
	Eq    Op = "="
	Ne    Op = "<>"
	Gt    Op = ">"
	Gte   Op = ">="
	Lt    Op = "<"
	Lte   Op = "<="
	Like  Op = "LIKE"
	ILike Op = "ILIKE"
)

func (o Op) valid() bool {
	switch o {
	case Eq, Ne, Gt, Gte, Lt, Lte, Like, ILike:
		return true
	}
	return false
}

// Joiner combines filter clauses.
type Joiner string

const (
	And Joiner = " AND "
	Or  Joiner = " OR "
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// ValidColumn reports whether name is a plain or alias-qualified identifier.
func ValidColumn(name string) bool {
	return identPattern.MatchString(name)
}

type clauseKind int

const (
	clauseField clauseKind = iota
	clauseAny
	clauseRaw
)

type clause struct {
	kind   clauseKind
	column string
	op     Op
	values []any
	raw    string
}

// Fragment is a rendered clause list and the values bound to its placeholders.
type Fragment struct {
	SQL  string
	Args []any
}

func (f Fragment) Empty() bool {
	return f.SQL == ""
}

// Builder accumulates SET or WHERE clauses from optional request fields.
// Placeholders are numbered when the fragment is built, so a Builder can be
// rendered after any number of fixed leading parameters.
type Builder struct {
	update  bool
	joiner  Joiner
	clauses []clause
	fields  int
	err     error
}

// NewUpdate returns a builder for "col = $n" assignments joined by ", ".
func NewUpdate() *Builder {
	return &Builder{update: true, joiner: ", "}
}

// NewFilter returns a builder for "col <op> $n" conditions joined by j.
func NewFilter(j Joiner) *Builder {
	if j != Or {
		j = And
	}
	return &Builder{joiner: j}
}

// Set appends "column = $n" when present. Only valid on update builders.
func (b *Builder) Set(column string, value any, present bool) *Builder {
	if !present {
		return b
	}
	if !b.update {
		b.fail(fmt.Errorf("set on filter builder"))
		return b
	}
	return b.add(clause{kind: clauseField, column: column, op: Eq, values: []any{value}})
}

// SetPtr appends "column = $n" when ptr is a non-nil pointer, binding the pointee.
func (b *Builder) SetPtr(column string, ptr any) *Builder {
	value, ok := deref(ptr)
	return b.Set(column, value, ok)
}

// Where appends "column op $n" when present.
func (b *Builder) Where(column string, op Op, value any, present bool) *Builder {
	if !present {
		return b
	}
	if b.update {
		b.fail(fmt.Errorf("where on update builder"))
		return b
	}
	return b.add(clause{kind: clauseField, column: column, op: op, values: []any{value}})
}

// WherePtr appends "column op $n" when ptr is a non-nil pointer.
func (b *Builder) WherePtr(column string, op Op, ptr any) *Builder {
	value, ok := deref(ptr)
	return b.Where(column, op, value, ok)
}

// WhereAny appends "(column op $n OR column op $n+1 ...)" with one
// placeholder per value. No-op for an empty slice.
func (b *Builder) WhereAny(column string, op Op, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	if b.update {
		b.fail(fmt.Errorf("where on update builder"))
		return b
	}
	return b.add(clause{kind: clauseAny, column: column, op: op, values: values})
}

// Raw appends a trusted expression without bound values. Raw clauses do not
// count as fields.
func (b *Builder) Raw(expr string) *Builder {
	if expr == "" {
		return b
	}
	b.clauses = append(b.clauses, clause{kind: clauseRaw, raw: expr})
	return b
}

// Len is the number of present fields appended so far.
func (b *Builder) Len() int {
	return b.fields
}

// Build renders the fragment with placeholders starting at $1.
func (b *Builder) Build() (Fragment, error) {
	return b.render(0, true)
}

// BuildAfter renders the fragment after n fixed leading parameters.
func (b *Builder) BuildAfter(n int) (Fragment, error) {
	return b.render(n, true)
}

// BuildOptional renders after n leading parameters and allows an empty result.
func (b *Builder) BuildOptional(n int) (Fragment, error) {
	return b.render(n, false)
}

func (b *Builder) add(c clause) *Builder {
	if !ValidColumn(c.column) {
		b.fail(fmt.Errorf("invalid column %q", c.column))
		return b
	}
	if !c.op.valid() {
		b.fail(fmt.Errorf("invalid operator %q", c.op))
		return b
	}
	b.clauses = append(b.clauses, c)
	b.fields++
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) render(leading int, required bool) (Fragment, error) {
	if b.err != nil {
		return Fragment{}, apperror.Validation(b.err.Error())
	}
	if required && b.fields == 0 {
		if b.update {
			return Fragment{}, apperror.Validation("no fields to update")
		}
		return Fragment{}, apperror.Validation("no fields to filter")
	}

	parts := make([]string, 0, len(b.clauses))
	args := make([]any, 0, b.fields)
	next := leading + 1
	for _, c := range b.clauses {
		switch c.kind {
		case clauseRaw:
			parts = append(parts, c.raw)
		case clauseField:
			parts = append(parts, fmt.Sprintf("%s %s $%d", c.column, c.op, next))
			args = append(args, c.values[0])
			next++
		case clauseAny:
			group := make([]string, len(c.values))
			for i, v := range c.values {
				group[i] = fmt.Sprintf("%s %s $%d", c.column, c.op, next)
				args = append(args, v)
				next++
			}
			parts = append(parts, "("+strings.Join(group, " OR ")+")")
		}
	}

	return Fragment{SQL: strings.Join(parts, string(b.joiner)), Args: args}, nil
}

func deref(ptr any) (any, bool) {
	if ptr == nil {
		return nil, false
	}
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer {
		return ptr, true
	}
	if v.IsNil() {
		return nil, false
	}
	return v.Elem().Interface(), true
}
