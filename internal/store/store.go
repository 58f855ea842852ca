// Package store exposes a generic row-oriented data access client:
// named collections with composable AND predicates over select, insert,
// update and delete. Typed repositories sit on top of it; the tenancy
// guard wraps it to enforce tenant isolation.
package store

import (
	"context"
)

// Record is one row, keyed by column name
type Record map[string]interface{}

// Op is a predicate operator
type Op string

const (
	OpEq     Op = "="
	OpNeq    Op = "<>"
	OpLt     Op = "<"
	OpLte    Op = "<="
	OpGt     Op = ">"
	OpGte    Op = ">="
	OpILike  Op = "ILIKE"
	OpIsNull Op = "IS NULL"
	OpIn     Op = "= ANY"
)

// Cond is a single column predicate
type Cond struct {
	Field string
	Op    Op
	Value interface{}
}

// Eq builds an equality predicate
func Eq(field string, value interface{}) Cond { return Cond{Field: field, Op: OpEq, Value: value} }

// Neq builds an inequality predicate
func Neq(field string, value interface{}) Cond { return Cond{Field: field, Op: OpNeq, Value: value} }

// Lte builds a less-than-or-equal predicate
func Lte(field string, value interface{}) Cond { return Cond{Field: field, Op: OpLte, Value: value} }

// Gte builds a greater-than-or-equal predicate
func Gte(field string, value interface{}) Cond { return Cond{Field: field, Op: OpGte, Value: value} }

// ILike builds a case-insensitive pattern predicate
func ILike(field string, pattern string) Cond {
	return Cond{Field: field, Op: OpILike, Value: pattern}
}

// IsNull builds a null-check predicate
func IsNull(field string) Cond { return Cond{Field: field, Op: OpIsNull} }

// In builds a set-membership predicate
func In(field string, values []string) Cond {
	return Cond{Field: field, Op: OpIn, Value: values}
}

// ExistsCond filters rows by a condition on a related parent collection:
// EXISTS (SELECT 1 FROM Parent WHERE Parent.ParentKey = coll.ForeignKey
// AND Parent.<Cond>). Used when a collection carries no column of its own
// for the filtered attribute.
type ExistsCond struct {
	Parent     string // parent collection name
	ParentKey  string // key column on the parent
	ForeignKey string // column on this collection referencing the parent
	Cond       Cond   // evaluated against the parent
}

// OrderBy describes one sort key
type OrderBy struct {
	Field string
	Desc  bool
}

// Query is a composable read/write predicate. All conditions are joined
// with AND; the zero value matches every row.
type Query struct {
	Conds  []Cond
	Exists []ExistsCond
	Order  []OrderBy
	Limit  int
	Offset int
}

// Where returns a copy of the query with the conditions appended
func (q Query) Where(conds ...Cond) Query {
	out := q
	out.Conds = append(append([]Cond{}, q.Conds...), conds...)
	return out
}

// WhereExists returns a copy of the query with the relation conditions appended
func (q Query) WhereExists(conds ...ExistsCond) Query {
	out := q
	out.Exists = append(append([]ExistsCond{}, q.Exists...), conds...)
	return out
}

// SortBy returns a copy of the query with a sort key appended
func (q Query) SortBy(field string, desc bool) Query {
	out := q
	out.Order = append(append([]OrderBy{}, q.Order...), OrderBy{Field: field, Desc: desc})
	return out
}

// Client is the row-store contract. Implementations must compose the
// query's predicates with AND and propagate backend errors unmodified.
type Client interface {
	// Select returns the rows of the collection matching the query
	Select(ctx context.Context, collection string, q Query) ([]Record, error)
	// Count returns the number of rows matching the query
	Count(ctx context.Context, collection string, q Query) (int64, error)
	// Insert stores one record in the collection
	Insert(ctx context.Context, collection string, rec Record) error
	// Update applies the changes to all rows matching the query and
	// returns the number of affected rows
	Update(ctx context.Context, collection string, q Query, changes Record) (int64, error)
	// Delete removes all rows matching the query and returns the number
	// of affected rows
	Delete(ctx context.Context, collection string, q Query) (int64, error)
}
