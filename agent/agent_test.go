package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DachengChen/askdb/ai"
	"github.com/DachengChen/askdb/chat"
	"github.com/DachengChen/askdb/db"
)

type call struct {
	system string
	input  string
}

// scriptedProvider replies with one canned answer per call, in order.
type scriptedProvider struct {
	replies []string
	errs    []error
	calls   []call
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, system string, messages []ai.Message) (string, error) {
	i := len(p.calls)
	p.calls = append(p.calls, call{system: system, input: messages[len(messages)-1].Content})
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	if i < len(p.replies) {
		return p.replies[i], err
	}
	return "", err
}

type fakeDB struct {
	schema    string
	schemaErr error
	result    *db.QueryResult
	queryErr  error

	gotSQL     string
	gotMaxRows int
	gotSchema  string
}

func (f *fakeDB) SchemaContext(ctx context.Context, schema string) (string, error) {
	f.gotSchema = schema
	return f.schema, f.schemaErr
}

func (f *fakeDB) RunQuery(ctx context.Context, sql string, maxRows int) (*db.QueryResult, error) {
	f.gotSQL, f.gotMaxRows = sql, maxRows
	return f.result, f.queryErr
}

func TestAnswerHappyPath(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		"```sql\nSELECT region, SUM(amount) AS total FROM orders GROUP BY region\n```",
		"```json\n{\"text\":\"North leads\",\"barchart\":{\"labels\":[\"North\",\"South\"],\"values\":[15,7],\"xLabel\":\"Region\",\"yLabel\":\"Sales\"},\"piechart\":{\"labels\":[],\"values\":[]}}\n```",
	}}
	d := &fakeDB{
		schema: "## Table: orders",
		result: &db.QueryResult{
			SQL:      "SELECT ...",
			Columns:  []string{"region", "total"},
			Rows:     []map[string]any{{"region": "North", "total": 15.0}, {"region": "South", "total": 7.0}},
			RowCount: 2,
		},
	}

	a := New(p, d, "", 200)
	payload, err := a.Answer(context.Background(), "Sales by region?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if d.gotSchema != "public" {
		t.Errorf("schema = %q, want public", d.gotSchema)
	}
	if d.gotSQL != "SELECT region, SUM(amount) AS total FROM orders GROUP BY region" {
		t.Errorf("sql = %q", d.gotSQL)
	}
	if d.gotMaxRows != 200 {
		t.Errorf("maxRows = %d", d.gotMaxRows)
	}

	if len(p.calls) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(p.calls))
	}
	if !strings.Contains(p.calls[0].system, "DATABASE SCHEMA:\n## Table: orders") {
		t.Errorf("sql prompt missing schema: %q", p.calls[0].system)
	}
	if p.calls[0].input != "Sales by region?" {
		t.Errorf("sql step input = %q", p.calls[0].input)
	}
	if !strings.HasPrefix(p.calls[1].input, "Question: Sales by region?\n\nSQL Results:\n{") ||
		!strings.Contains(p.calls[1].input, `"region":"North"`) {
		t.Errorf("formatter input = %q", p.calls[1].input)
	}

	if payload.Text != "North leads" || !payload.HasBarChart() || payload.HasPieChart() {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.BarChart.YLabel != "Sales" || payload.BarChart.Values[0] != 15 {
		t.Fatalf("unexpected bar chart: %+v", payload.BarChart)
	}
}

func TestAnswerQueryErrorGoesToFormatter(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		"SELECT nope",
		`{"text":"That column does not exist","barchart":{"labels":[],"values":[]},"piechart":{"labels":[],"values":[]}}`,
	}}
	d := &fakeDB{queryErr: errors.New(`column "nope" does not exist`)}

	payload, err := New(p, d, "public", 50).Answer(context.Background(), "?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(p.calls[1].input, `SQL Results:
{"error":"column \"nope\" does not exist"}`) {
		t.Errorf("formatter should see the query error, got %q", p.calls[1].input)
	}
	if payload.Text != "That column does not exist" || payload.HasCharts() {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestAnswerFormatterFailureFallsBack(t *testing.T) {
	cases := map[string]*scriptedProvider{
		"not json":    {replies: []string{"SELECT 1", "Sorry, I cannot help."}},
		"model error": {replies: []string{"SELECT 1"}, errs: []error{nil, errors.New("rate limited")}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			d := &fakeDB{result: &db.QueryResult{Rows: []map[string]any{}}}
			payload, err := New(p, d, "", 10).Answer(context.Background(), "q")
			if err != nil {
				t.Fatalf("Answer: %v", err)
			}
			if payload.Text != FormatterErrorText {
				t.Fatalf("text = %q", payload.Text)
			}
			if payload.BarChart == nil || payload.PieChart == nil || payload.HasCharts() {
				t.Fatalf("fallback should carry empty charts: %+v", payload)
			}
		})
	}
}

func TestAnswerWrongTypedReplyPassesThrough(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		"SELECT 1",
		`{"text":"x","barchart":{"labels":["a","b"],"values":["high",4]}}`,
	}}
	d := &fakeDB{result: &db.QueryResult{Rows: []map[string]any{}}}

	payload, err := New(p, d, "", 10).Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if payload.Text != "x" || !payload.HasBarChart() {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if !chat.Undefined(payload.BarChart.Values[0]) || payload.BarChart.Values[1] != 4 {
		t.Fatalf("values = %v", payload.BarChart.Values)
	}
}

func TestAnswerSchemaAndSQLFailuresAreErrors(t *testing.T) {
	d := &fakeDB{schemaErr: errors.New("connection refused")}
	if _, err := New(&scriptedProvider{}, d, "", 10).Answer(context.Background(), "q"); err == nil {
		t.Fatal("schema failure should be an error")
	}

	p := &scriptedProvider{errs: []error{errors.New("invalid api key")}}
	if _, err := New(p, &fakeDB{}, "", 10).Answer(context.Background(), "q"); err == nil {
		t.Fatal("sql generation failure should be an error")
	}

	p = &scriptedProvider{replies: []string{"```sql\n```"}}
	if _, err := New(p, &fakeDB{}, "", 10).Answer(context.Background(), "q"); err == nil {
		t.Fatal("empty sql should be an error")
	}
}

func TestParsePayload(t *testing.T) {
	p, err := ParsePayload("Here you go:\n{\"text\":\"Top 3\",\"piechart\":{\"labels\":[\"a\",\"b\"],\"values\":[1,3]}}")
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasPieChart() || p.HasBarChart() || p.PieChart.Values[1] != 3 {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if _, err := ParsePayload("nothing"); err == nil {
		t.Fatal("expected error without JSON")
	}
}

func TestAnswerWithPlaceholderProvider(t *testing.T) {
	d := &fakeDB{result: &db.QueryResult{
		Columns:  []string{"table_name", "column_count"},
		Rows:     []map[string]any{{"table_name": "orders", "column_count": 5.0}},
		RowCount: 1,
	}}
	payload, err := New(ai.NewPlaceholder(), d, "", 10).Answer(context.Background(), "Which tables?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(d.gotSQL, "SELECT table_name") {
		t.Fatalf("placeholder sql = %q", d.gotSQL)
	}
	if !payload.HasBarChart() || payload.BarChart.Labels[0] != "orders" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
