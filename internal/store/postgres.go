package store

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// identPattern guards collection and column names interpolated into SQL
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresClient implements Client on a pgx connection pool
type PostgresClient struct {
	pool *pgxpool.Pool
}

// NewPostgresClient creates a new PostgresClient
func NewPostgresClient(pool *pgxpool.Pool) *PostgresClient {
	return &PostgresClient{pool: pool}
}

// Select returns the rows of the collection matching the query
func (c *PostgresClient) Select(ctx context.Context, collection string, q Query) ([]Record, error) {
	sql, args, err := renderSelect(collection, q)
	if err != nil {
		return nil, err
	}

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, Record(r))
	}
	return out, nil
}

// Count returns the number of rows matching the query
func (c *PostgresClient) Count(ctx context.Context, collection string, q Query) (int64, error) {
	sql, args, err := renderCount(collection, q)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := c.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Insert stores one record in the collection
func (c *PostgresClient) Insert(ctx context.Context, collection string, rec Record) error {
	sql, args, err := renderInsert(collection, rec)
	if err != nil {
		return err
	}

	_, err = c.pool.Exec(ctx, sql, args...)
	return err
}

// Update applies the changes to all rows matching the query
func (c *PostgresClient) Update(ctx context.Context, collection string, q Query, changes Record) (int64, error) {
	sql, args, err := renderUpdate(collection, q, changes)
	if err != nil {
		return 0, err
	}

	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes all rows matching the query
func (c *PostgresClient) Delete(ctx context.Context, collection string, q Query) (int64, error) {
	sql, args, err := renderDelete(collection, q)
	if err != nil {
		return 0, err
	}

	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- SQL rendering ---

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// renderWhere builds the WHERE clause for a query, appending to args.
// Conditions compose with AND in declaration order.
func renderWhere(collection string, q Query, args []interface{}) (string, []interface{}, error) {
	clauses := make([]string, 0, len(q.Conds)+len(q.Exists))

	for _, cond := range q.Conds {
		if err := checkIdent(cond.Field); err != nil {
			return "", nil, err
		}
		if cond.Op == OpIsNull {
			clauses = append(clauses, fmt.Sprintf("%s IS NULL", cond.Field))
			continue
		}
		args = append(args, cond.Value)
		if cond.Op == OpIn {
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", cond.Field, len(args)))
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", cond.Field, cond.Op, len(args)))
	}

	for _, ex := range q.Exists {
		for _, name := range []string{ex.Parent, ex.ParentKey, ex.ForeignKey, ex.Cond.Field} {
			if err := checkIdent(name); err != nil {
				return "", nil, err
			}
		}
		args = append(args, ex.Cond.Value)
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s WHERE %s.%s = %s.%s AND %s.%s %s $%d)",
			ex.Parent,
			ex.Parent, ex.ParentKey,
			collection, ex.ForeignKey,
			ex.Parent, ex.Cond.Field, ex.Cond.Op, len(args),
		))
	}

	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func renderOrderLimit(q Query) (string, error) {
	var sb strings.Builder

	if len(q.Order) > 0 {
		keys := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			if err := checkIdent(o.Field); err != nil {
				return "", err
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			keys = append(keys, o.Field+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(keys, ", "))
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", q.Offset)
	}

	return sb.String(), nil
}

func renderSelect(collection string, q Query) (string, []interface{}, error) {
	if err := checkIdent(collection); err != nil {
		return "", nil, err
	}

	where, args, err := renderWhere(collection, q, nil)
	if err != nil {
		return "", nil, err
	}

	tail, err := renderOrderLimit(q)
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("SELECT * FROM %s%s%s", collection, where, tail), args, nil
}

func renderCount(collection string, q Query) (string, []interface{}, error) {
	if err := checkIdent(collection); err != nil {
		return "", nil, err
	}

	where, args, err := renderWhere(collection, q, nil)
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", collection, where), args, nil
}

// sortedColumns returns the record's column names in stable order
func sortedColumns(rec Record) []string {
	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func renderInsert(collection string, rec Record) (string, []interface{}, error) {
	if err := checkIdent(collection); err != nil {
		return "", nil, err
	}
	if len(rec) == 0 {
		return "", nil, fmt.Errorf("insert into %s with empty record", collection)
	}

	cols := sortedColumns(rec)
	placeholders := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))

	for _, col := range cols {
		if err := checkIdent(col); err != nil {
			return "", nil, err
		}
		args = append(args, rec[col])
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		collection,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	return sql, args, nil
}

func renderUpdate(collection string, q Query, changes Record) (string, []interface{}, error) {
	if err := checkIdent(collection); err != nil {
		return "", nil, err
	}
	if len(changes) == 0 {
		return "", nil, fmt.Errorf("update on %s with no changes", collection)
	}

	cols := sortedColumns(changes)
	sets := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+len(q.Conds))

	for _, col := range cols {
		if err := checkIdent(col); err != nil {
			return "", nil, err
		}
		args = append(args, changes[col])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	where, args, err := renderWhere(collection, q, args)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf("UPDATE %s SET %s%s", collection, strings.Join(sets, ", "), where)
	return sql, args, nil
}

func renderDelete(collection string, q Query) (string, []interface{}, error) {
	if err := checkIdent(collection); err != nil {
		return "", nil, err
	}

	where, args, err := renderWhere(collection, q, nil)
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("DELETE FROM %s%s", collection, where), args, nil
}
