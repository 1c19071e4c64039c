// schema.go gathers the schema description injected into the SQL
// generation prompt.
//
// For every base table in the configured schema it collects:
//   - Column definitions (name, type, nullable, PK)
//   - Foreign key relationships, formal or implied by *_id naming
//   - A few sample rows so the model sees real value formats
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pgx "github.com/jackc/pgx/v5"
)

// SampleRows is the number of example rows included per table.
const SampleRows = 3

// ColumnInfo describes a single column in a table.
type ColumnInfo struct {
	Name       string
	DataType   string
	IsNullable bool
	IsPK       bool
}

// ForeignKeyInfo describes a foreign key constraint.
type ForeignKeyInfo struct {
	ConstraintName string
	Column         string
	ForeignTable   string
	ForeignColumn  string
}

// TableSchema holds complete schema information for a table.
type TableSchema struct {
	Name        string
	Columns     []ColumnInfo
	ForeignKeys []ForeignKeyInfo
	Samples     []map[string]any
}

// SchemaContext describes every base table in schema as prompt text.
func (d *DB) SchemaContext(ctx context.Context, schema string) (string, error) {
	tables, err := d.FetchSchema(ctx, schema)
	if err != nil {
		return "", err
	}
	return FormatSchemaContext(tables), nil
}

// FetchSchema retrieves columns, keys and sample rows for all base tables.
func (d *DB) FetchSchema(ctx context.Context, schema string) ([]*TableSchema, error) {
	if schema == "" {
		schema = "public"
	}

	names, err := d.listTables(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}

	tables := make([]*TableSchema, 0, len(names))
	for _, name := range names {
		ts, err := d.FetchTableSchema(ctx, schema, name)
		if err != nil {
			return nil, err
		}
		if len(ts.ForeignKeys) == 0 {
			ts.ForeignKeys = detectImplicitFKs(ts, existing)
		}
		// Samples are best effort: a table we cannot read still gets described.
		ts.Samples, _ = d.sampleRows(ctx, schema, name)
		tables = append(tables, ts)
	}
	return tables, nil
}

func (d *DB) listTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`, schema)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// FetchTableSchema retrieves columns and formal foreign keys for a table.
func (d *DB) FetchTableSchema(ctx context.Context, schema, table string) (*TableSchema, error) {
	ts := &TableSchema{Name: table}

	rows, err := d.Pool.Query(ctx, `
		SELECT c.column_name, c.data_type, c.is_nullable = 'YES',
		       EXISTS (
		           SELECT 1
		           FROM information_schema.table_constraints tc
		           JOIN information_schema.key_column_usage kcu
		             ON tc.constraint_name = kcu.constraint_name
		            AND tc.table_schema = kcu.table_schema
		           WHERE tc.constraint_type = 'PRIMARY KEY'
		             AND tc.table_schema = c.table_schema
		             AND tc.table_name = c.table_name
		             AND kcu.column_name = c.column_name
		       )
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position`, schema, table)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	ts.Columns, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (ColumnInfo, error) {
		var col ColumnInfo
		err := row.Scan(&col.Name, &col.DataType, &col.IsNullable, &col.IsPK)
		return col, err
	})
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}

	rows, err = d.Pool.Query(ctx, `
		SELECT tc.constraint_name, kcu.column_name,
		       ccu.table_name, ccu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
		  ON tc.constraint_name = ccu.constraint_name
		 AND tc.table_schema = ccu.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema = $1 AND tc.table_name = $2
		ORDER BY kcu.column_name`, schema, table)
	if err != nil {
		return nil, fmt.Errorf("foreign keys %s: %w", table, err)
	}
	ts.ForeignKeys, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (ForeignKeyInfo, error) {
		var fk ForeignKeyInfo
		err := row.Scan(&fk.ConstraintName, &fk.Column, &fk.ForeignTable, &fk.ForeignColumn)
		return fk, err
	})
	if err != nil {
		return nil, fmt.Errorf("foreign keys %s: %w", table, err)
	}

	return ts, nil
}

func (d *DB) sampleRows(ctx context.Context, schema, table string) ([]map[string]any, error) {
	ident := pgx.Identifier{schema, table}.Sanitize()
	sql := fmt.Sprintf("SELECT * FROM %s LIMIT %d", ident, SampleRows)
	result, err := d.RunQuery(ctx, sql, SampleRows)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// detectImplicitFKs treats "country_id" as a reference to country.id when
// a table named "country" exists. Many databases imply relationships by
// naming without declaring constraints.
func detectImplicitFKs(ts *TableSchema, existing map[string]bool) []ForeignKeyInfo {
	var fks []ForeignKeyInfo
	for _, col := range ts.Columns {
		if col.IsPK || !strings.HasSuffix(col.Name, "_id") {
			continue
		}
		ref := strings.TrimSuffix(col.Name, "_id")
		switch {
		case existing[ref]:
		case existing[ref+"s"]:
			ref += "s"
		default:
			continue
		}
		fks = append(fks, ForeignKeyInfo{
			ConstraintName: "(implicit)",
			Column:         col.Name,
			ForeignTable:   ref,
			ForeignColumn:  "id",
		})
	}
	return fks
}

// FormatSchemaContext renders tables as the DATABASE SCHEMA block of the
// SQL generation prompt.
func FormatSchemaContext(tables []*TableSchema) string {
	if len(tables) == 0 {
		return "(no tables)"
	}

	var sb strings.Builder
	for i, ts := range tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("## Table: %s\n", ts.Name))

		sb.WriteString("### Columns\n")
		for _, col := range ts.Columns {
			nullable := "NULL"
			if !col.IsNullable {
				nullable = "NOT NULL"
			}
			pk := ""
			if col.IsPK {
				pk = " [PK]"
			}
			sb.WriteString(fmt.Sprintf("- %s %s %s%s\n", col.Name, col.DataType, nullable, pk))
		}

		if len(ts.ForeignKeys) > 0 {
			sb.WriteString("### Foreign Keys\n")
			for _, fk := range ts.ForeignKeys {
				sb.WriteString(fmt.Sprintf("- %s.%s → %s.%s (constraint: %s)\n",
					ts.Name, fk.Column, fk.ForeignTable, fk.ForeignColumn, fk.ConstraintName))
			}
		}

		if len(ts.Samples) > 0 {
			sb.WriteString("### Sample Rows\n")
			for _, row := range ts.Samples {
				data, err := json.Marshal(row)
				if err != nil {
					continue
				}
				sb.WriteString("- " + string(data) + "\n")
			}
		}
	}
	return sb.String()
}
