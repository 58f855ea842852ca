// Package repository provides typed data access for the raffle domain.
// Every repository runs on top of a store.Client, normally the tenancy
// guard, so tenant isolation is applied before any SQL is built.
package repository

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/sorteocloud/raffle-backend/internal/store"
)

// recString reads a string column, tolerating absent or null values
func recString(rec store.Record, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func recStringPtr(rec store.Record, key string) *string {
	if rec[key] == nil {
		return nil
	}
	s := recString(rec, key)
	return &s
}

func recBool(rec store.Record, key string) bool {
	b, _ := rec[key].(bool)
	return b
}

// recInt reads an integer column across the widths pgx may return
func recInt(rec store.Record, key string) int {
	switch v := rec[key].(type) {
	case int:
		return v
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func recIntPtr(rec store.Record, key string) *int {
	if rec[key] == nil {
		return nil
	}
	n := recInt(rec, key)
	return &n
}

func recFloat(rec store.Record, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case pgtype.Numeric:
		f, _ := v.Float64Value()
		return f.Float64
	default:
		return 0
	}
}

// recDecimal reads a numeric column into a decimal without a float detour
func recDecimal(rec store.Record, key string) decimal.Decimal {
	switch v := rec[key].(type) {
	case string:
		d, _ := decimal.NewFromString(v)
		return d
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case pgtype.Numeric:
		val, err := v.Value()
		if err != nil {
			return decimal.Zero
		}
		if s, ok := val.(string); ok {
			d, _ := decimal.NewFromString(s)
			return d
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

func recDecimalPtr(rec store.Record, key string) *decimal.Decimal {
	if rec[key] == nil {
		return nil
	}
	d := recDecimal(rec, key)
	return &d
}

func recTime(rec store.Record, key string) time.Time {
	t, _ := rec[key].(time.Time)
	return t
}

func recTimePtr(rec store.Record, key string) *time.Time {
	t, ok := rec[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// recMap reads a jsonb column into a generic map
func recMap(rec store.Record, key string) map[string]interface{} {
	switch v := rec[key].(type) {
	case map[string]interface{}:
		return v
	case []byte:
		var m map[string]interface{}
		if err := json.Unmarshal(v, &m); err != nil {
			return nil
		}
		return m
	case string:
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil
		}
		return m
	default:
		return nil
	}
}

// numericString serializes a decimal for a numeric column
func numericString(d decimal.Decimal) string {
	return d.String()
}

// nullable turns Go nil pointers into SQL NULLs for record values
func nullable(v interface{}) interface{} {
	switch t := v.(type) {
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case *int:
		if t == nil {
			return nil
		}
		return *t
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	case *decimal.Decimal:
		if t == nil {
			return nil
		}
		return t.String()
	default:
		return v
	}
}

// pageQuery applies pagination to a query, defaulting to page 1 / 20 rows
func pageQuery(q store.Query, page, limit int) store.Query {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	q.Limit = limit
	q.Offset = (page - 1) * limit
	return q
}
