package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DachengChen/askdb/chat"
)

func TestAskSendsQuestionAndDecodesPayload(t *testing.T) {
	var gotPath, gotSession, gotType string
	var gotBody ChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSession = r.Header.Get(SessionHeader)
		gotType = r.Header.Get("Content-Type")
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":{"text":"Sales grew","barchart":{"labels":["Q1","Q2"],"values":[10,20],"xLabel":"Quarter","yLabel":"Revenue"},"piechart":{"labels":[],"values":[]}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0)
	p, err := c.Ask(context.Background(), "How did sales do?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if gotPath != "/chat" {
		t.Errorf("path = %q, want /chat", gotPath)
	}
	if gotBody.Question != "How did sales do?" {
		t.Errorf("question = %q", gotBody.Question)
	}
	if gotType != "application/json" {
		t.Errorf("content type = %q", gotType)
	}
	if gotSession == "" || gotSession != c.SessionID() {
		t.Errorf("session header = %q, want %q", gotSession, c.SessionID())
	}

	if p.Text != "Sales grew" {
		t.Errorf("text = %q", p.Text)
	}
	if !p.HasBarChart() || p.BarChart.XLabel != "Quarter" || p.BarChart.Values[1] != 20 {
		t.Errorf("unexpected bar chart: %+v", p.BarChart)
	}
	if p.HasPieChart() {
		t.Error("empty pie chart should not count as present")
	}
}

func TestAskMissingResponseYieldsEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	p, err := New(srv.URL, 0).Ask(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if p == nil || p.Text != "" || p.HasCharts() {
		t.Fatalf("expected empty payload, got %+v", p)
	}
}

func TestAskNonJSONIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, 0).Ask(context.Background(), "anything"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAskUnreachableIsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := New(url, 0).Ask(context.Background(), "anything"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8000///", 0)
	if c.BaseURL() != "http://localhost:8000" {
		t.Fatalf("BaseURL() = %q", c.BaseURL())
	}
	if New("http://x", 0).SessionID() == c.SessionID() {
		t.Fatal("session ids should be unique per client")
	}
}

func TestAskWrongFieldTypesDegrade(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		check    func(t *testing.T, p *chat.Payload)
	}{
		{
			name:     "string value in series",
			body:     `{"response":{"text":"ok","barchart":{"labels":["a","b"],"values":["5",3]}}}`,
			wantText: "ok",
			check: func(t *testing.T, p *chat.Payload) {
				if !p.HasBarChart() || len(p.BarChart.Values) != 2 {
					t.Fatalf("bar chart = %+v", p.BarChart)
				}
				if !chat.Undefined(p.BarChart.Values[0]) || p.BarChart.Values[1] != 3 {
					t.Errorf("values = %v, want [undefined 3]", p.BarChart.Values)
				}
			},
		},
		{
			name:     "response is a string",
			body:     `{"response":"plain string"}`,
			wantText: chat.FallbackText,
		},
		{
			name:     "numeric text",
			body:     `{"response":{"text":42}}`,
			wantText: "42",
		},
		{
			name:     "top-level array",
			body:     `[1,2,3]`,
			wantText: chat.FallbackText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			msg, ok := chat.NewSession().Dispatch(context.Background(), New(srv.URL, 0), "anything")
			if !ok {
				t.Fatal("dispatch ignored")
			}
			if msg.Content != tt.wantText {
				t.Fatalf("content = %q, want %q", msg.Content, tt.wantText)
			}
			if msg.Payload == nil {
				t.Fatal("expected a payload")
			}
			if tt.check != nil {
				tt.check(t, msg.Payload)
			}
		})
	}
}
