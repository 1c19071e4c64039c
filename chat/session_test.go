package chat

import (
	"context"
	"errors"
	"testing"
)

type stubAsker struct {
	payload   *Payload
	err       error
	questions []string
}

func (a *stubAsker) Ask(ctx context.Context, question string) (*Payload, error) {
	a.questions = append(a.questions, question)
	return a.payload, a.err
}

func TestNewSessionHasGreeting(t *testing.T) {
	s := NewSession()
	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || msgs[0].Content != GreetingText {
		t.Fatalf("unexpected greeting: %+v", msgs[0])
	}
	if s.Loading() {
		t.Fatal("new session should not be loading")
	}
}

func TestSendAppendsUserMessageAndClearsInput(t *testing.T) {
	s := NewSession()
	s.SetInput("  Sales by region ")

	q, ok := s.Send("")
	if !ok {
		t.Fatal("expected send to be accepted")
	}
	if q != "  Sales by region " {
		t.Fatalf("question should be sent as typed, got %q", q)
	}
	if s.Input() != "" {
		t.Fatalf("input not cleared: %q", s.Input())
	}
	if !s.Loading() {
		t.Fatal("expected loading after send")
	}
	msgs := s.Messages()
	if len(msgs) != 2 || msgs[1].Role != RoleUser || msgs[1].Content != q {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestSendOverrideWinsOverInput(t *testing.T) {
	s := NewSession()
	s.SetInput("typed text")

	q, ok := s.Send(SuggestedQueries[1])
	if !ok || q != "Sales by category" {
		t.Fatalf("got %q ok=%v", q, ok)
	}
	if s.Input() != "" {
		t.Fatal("input should be cleared by a suggested query too")
	}
}

func TestSendIgnoresBlankText(t *testing.T) {
	for _, text := range []string{"", " ", "\t\n"} {
		s := NewSession()
		s.SetInput(text)
		if _, ok := s.Send(""); ok {
			t.Fatalf("blank input %q should be ignored", text)
		}
		if s.Len() != 1 || s.Loading() {
			t.Fatalf("state changed for blank input %q", text)
		}
	}
}

func TestSendWhileLoadingIsNoop(t *testing.T) {
	s := NewSession()
	if _, ok := s.Send("first"); !ok {
		t.Fatal("first send rejected")
	}
	s.SetInput("second")
	if _, ok := s.Send(""); ok {
		t.Fatal("second send should be blocked while loading")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", s.Len())
	}
	if s.Input() != "second" {
		t.Fatal("blocked send must not clear the input")
	}
}

func TestCompleteUsesPayloadText(t *testing.T) {
	s := NewSession()
	s.Send("Sales by category")
	p := &Payload{
		Text:     "Books lead sales.",
		PieChart: &PieChart{Labels: []string{"Books", "Games"}, Values: []float64{3, 1}},
	}

	msg := s.Complete(p, nil)

	if msg.Content != "Books lead sales." || msg.Payload != p {
		t.Fatalf("unexpected reply: %+v", msg)
	}
	if s.Loading() {
		t.Fatal("loading should be cleared")
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 messages, got %d", s.Len())
	}
}

func TestCompleteFallsBackWhenTextMissing(t *testing.T) {
	s := NewSession()
	s.Send("anything")

	msg := s.Complete(nil, nil)
	if msg.Content != FallbackText {
		t.Fatalf("expected fallback text, got %q", msg.Content)
	}
	if msg.Payload == nil {
		t.Fatal("an empty payload should still be attached")
	}
}

func TestCompleteErrorAppendsSingleErrorMessage(t *testing.T) {
	s := NewSession()
	s.Send("anything")

	msg := s.Complete(&Payload{Text: "ignored"}, errors.New("dial tcp: refused"))

	if msg.Role != RoleAssistant || msg.Content != ConnectionErrorText || msg.Payload != nil {
		t.Fatalf("unexpected error reply: %+v", msg)
	}
	if s.Loading() {
		t.Fatal("loading should be cleared after an error")
	}
	if s.Len() != 3 {
		t.Fatalf("expected exactly one assistant message appended, got %d total", s.Len())
	}
}

func TestDispatch(t *testing.T) {
	s := NewSession()
	a := &stubAsker{payload: &Payload{Text: "42 orders"}}

	msg, ok := s.Dispatch(context.Background(), a, "How many orders?")
	if !ok {
		t.Fatal("dispatch rejected")
	}
	if msg.Content != "42 orders" {
		t.Fatalf("unexpected reply %q", msg.Content)
	}
	if len(a.questions) != 1 || a.questions[0] != "How many orders?" {
		t.Fatalf("unexpected questions: %v", a.questions)
	}

	if _, ok := s.Dispatch(context.Background(), a, "   "); ok {
		t.Fatal("blank dispatch should be ignored")
	}
	if len(a.questions) != 1 {
		t.Fatal("blank dispatch must not reach the agent")
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := NewSession()
	msgs := s.Messages()
	msgs[0].Content = "mutated"
	if s.Messages()[0].Content != GreetingText {
		t.Fatal("internal state mutated via returned slice")
	}
}

func TestPayloadChartPresence(t *testing.T) {
	var nilPayload *Payload
	if nilPayload.HasCharts() {
		t.Fatal("nil payload has no charts")
	}
	p := &Payload{BarChart: &BarChart{}, PieChart: &PieChart{Labels: []string{"a"}}}
	if p.HasBarChart() {
		t.Fatal("empty bar labels should not render")
	}
	if !p.HasPieChart() || !p.HasCharts() {
		t.Fatal("pie chart with labels should render")
	}
}
