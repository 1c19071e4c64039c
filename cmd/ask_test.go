package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		backendFlag = ""
		askJSON = false
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAskPrintsAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"text":"Books lead sales","barchart":{"labels":["Books","Games"],"values":[7,3]}}}`))
	}))
	defer srv.Close()

	out, err := runRoot(t, "ask", "--backend", srv.URL, "--width", "60", "Sales", "by", "category")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	for _, want := range []string{"Books lead sales", "Games"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAskJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"text":"42 orders"}}`))
	}))
	defer srv.Close()

	out, err := runRoot(t, "ask", "--backend", srv.URL, "--json", "How many orders?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(out, `"text": "42 orders"`) {
		t.Fatalf("unexpected JSON output:\n%s", out)
	}
}

func TestAskUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := runRoot(t, "ask", "--backend", url, "Top products"); err == nil {
		t.Fatal("expected an error for an unreachable backend")
	}
}
