package db

import (
	"strings"
	"testing"
)

func TestDetectImplicitFKs(t *testing.T) {
	ts := &TableSchema{
		Name: "orders",
		Columns: []ColumnInfo{
			{Name: "id", IsPK: true},
			{Name: "customer_id"},
			{Name: "product_id"},
			{Name: "warehouse_id"},
		},
	}
	existing := map[string]bool{"customer": true, "products": true, "orders": true}

	fks := detectImplicitFKs(ts, existing)
	if len(fks) != 2 {
		t.Fatalf("expected 2 implicit keys, got %+v", fks)
	}
	if fks[0].ForeignTable != "customer" || fks[1].ForeignTable != "products" {
		t.Fatalf("unexpected targets: %+v", fks)
	}
	if fks[0].ConstraintName != "(implicit)" || fks[0].ForeignColumn != "id" {
		t.Fatalf("unexpected key: %+v", fks[0])
	}
}

func TestFormatSchemaContext(t *testing.T) {
	tables := []*TableSchema{
		{
			Name: "orders",
			Columns: []ColumnInfo{
				{Name: "id", DataType: "integer", IsPK: true},
				{Name: "total", DataType: "numeric", IsNullable: true},
			},
			ForeignKeys: []ForeignKeyInfo{{ConstraintName: "orders_customer_fk", Column: "customer_id", ForeignTable: "customer", ForeignColumn: "id"}},
			Samples:     []map[string]any{{"id": float64(1), "total": 9.5}},
		},
		{Name: "customer", Columns: []ColumnInfo{{Name: "id", DataType: "integer", IsPK: true}}},
	}

	out := FormatSchemaContext(tables)
	for _, want := range []string{
		"## Table: orders",
		"- id integer NOT NULL [PK]",
		"- total numeric NULL",
		"- orders.customer_id → customer.id (constraint: orders_customer_fk)",
		`- {"id":1,"total":9.5}`,
		"## Table: customer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("schema context missing %q:\n%s", want, out)
		}
	}
	if FormatSchemaContext(nil) != "(no tables)" {
		t.Fatal("empty schema should say so")
	}
}
