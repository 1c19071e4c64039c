// query.go runs generated SQL and converts rows into JSON-friendly values.
//
// Statements run in a read-only transaction that is always rolled back,
// so a model that ignores the SELECT-only rule cannot change data.
package db

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// QueryResult holds the output of a generated query in the shape the
// formatter step receives.
type QueryResult struct {
	SQL       string           `json:"sql"`
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	RowCount  int              `json:"row_count"`
	Truncated bool             `json:"truncated,omitempty"`
}

// RunQuery executes sql inside a read-only transaction and returns at
// most maxRows rows.
func (d *DB) RunQuery(ctx context.Context, sql string, maxRows int) (*QueryResult, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, fmt.Errorf("empty query")
	}

	tx, err := d.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRows(sql, rows, maxRows)
}

// collectRows drains rows into a QueryResult. Rows past maxRows are
// skipped and the result is marked truncated.
func collectRows(sql string, rows pgx.Rows, maxRows int) (*QueryResult, error) {
	result := &QueryResult{SQL: sql, Rows: []map[string]any{}}

	fields := rows.FieldDescriptions()
	for _, fd := range fields {
		result.Columns = append(result.Columns, fd.Name)
	}

	for rows.Next() {
		if maxRows > 0 && result.RowCount >= maxRows {
			result.Truncated = true
			break
		}
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(values))
		for i, v := range values {
			row[result.Columns[i]] = JSONValue(v)
		}
		result.Rows = append(result.Rows, row)
		result.RowCount++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// JSONValue converts a value decoded by pgx into something encoding/json
// renders the way a chart consumer expects: numerics become float64,
// timestamps become RFC 3339 strings and UUIDs become their text form.
func JSONValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		if x.NaN {
			return "NaN"
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return finite(f.Float64)
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return finite(f)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return finite(float64(x))
	case float64:
		return finite(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 && x.Location() == time.UTC {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339Nano)
	case pgtype.Time:
		if !x.Valid {
			return nil
		}
		d := time.Duration(x.Microseconds) * time.Microsecond
		return time.Time{}.Add(d).Format(time.TimeOnly)
	case pgtype.Interval:
		if !x.Valid {
			return nil
		}
		return formatInterval(x)
	case [16]byte:
		return uuid.UUID(x).String()
	case []byte:
		return "\\x" + hex.EncodeToString(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = JSONValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = JSONValue(e)
		}
		return out
	case fmt.Stringer:
		return x.String()
	default:
		return x
	}
}

// finite returns f, or PostgreSQL's spelling of a non-finite value since
// encoding/json cannot represent NaN or infinities.
func finite(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

func formatInterval(iv pgtype.Interval) string {
	var parts []string
	if iv.Months != 0 {
		parts = append(parts, fmt.Sprintf("%d mons", iv.Months))
	}
	if iv.Days != 0 {
		parts = append(parts, fmt.Sprintf("%d days", iv.Days))
	}
	if iv.Microseconds != 0 || len(parts) == 0 {
		parts = append(parts, (time.Duration(iv.Microseconds) * time.Microsecond).String())
	}
	return strings.Join(parts, " ")
}
