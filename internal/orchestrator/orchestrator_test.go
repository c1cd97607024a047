package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/learnflow/assistant/internal/catalog"
	"github.com/learnflow/assistant/internal/llm"
	"github.com/learnflow/assistant/internal/prompt"
	"github.com/learnflow/assistant/internal/resources"
)

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeGenerator) Generate(_ context.Context, promptText string, _ llm.GenerateOptions) (string, error) {
	f.calls++
	f.lastPrompt = promptText
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestOrchestrator(t *testing.T, gen Generator, auth Authorizer, projectRoot string) *Orchestrator {
	t.Helper()
	cat := catalog.Default()
	idx := resources.Build(t.TempDir(), testLogger())
	composer := prompt.NewComposer(cat, idx, nil, testLogger())
	if auth == nil {
		auth = NewTokenAuthorizer("")
	}
	return New(cat, composer, gen, auth, projectRoot, testLogger())
}

func userReq(contents ...string) Request {
	var msgs []Message
	for i, c := range contents {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		msgs = append(msgs, Message{Role: role, Content: c})
	}
	return Request{Messages: msgs, Identity: "test-user"}
}

func TestHandle_ChatSuccess(t *testing.T) {
	gen := &fakeGenerator{reply: "Electrochemistry is the study of charge transfer."}
	o := newTestOrchestrator(t, gen, nil, t.TempDir())

	msg, err := o.Handle(context.Background(), userReq("explain CHB101 electrochemistry"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %q", msg.Role)
	}
	if msg.Content != gen.reply {
		t.Errorf("unexpected reply %q", msg.Content)
	}
	if !strings.Contains(gen.lastPrompt, "Engineering Chemistry") {
		t.Error("expected composed prompt to carry course context")
	}
	if !strings.HasSuffix(gen.lastPrompt, "explain CHB101 electrochemistry") {
		t.Error("expected literal query at the end of the prompt")
	}
}

func TestHandle_FallbackOnGatewayFailure(t *testing.T) {
	gen := &fakeGenerator{err: llm.ErrUpstream}
	o := newTestOrchestrator(t, gen, nil, t.TempDir())

	tests := []struct {
		query string
		want  string
	}{
		{"hello", "LearnFlow Assistant"},
		{"assignment deadline", "Assignment sheets"},
		{"quantum stuff", "connection issues"},
	}
	for _, tt := range tests {
		msg, err := o.Handle(context.Background(), userReq(tt.query))
		if err != nil {
			t.Fatalf("Handle(%q): unexpected error %v", tt.query, err)
		}
		if !strings.Contains(msg.Content, tt.want) {
			t.Errorf("Handle(%q) = %q, want contains %q", tt.query, msg.Content, tt.want)
		}
	}
}

func TestHandle_NoUserMessage(t *testing.T) {
	o := newTestOrchestrator(t, &fakeGenerator{}, nil, t.TempDir())

	_, err := o.Handle(context.Background(), Request{Messages: []Message{
		{Role: RoleAssistant, Content: "hi"},
	}})
	if !errors.Is(err, ErrNoUserMessage) {
		t.Errorf("expected ErrNoUserMessage, got %v", err)
	}
}

func TestHandle_ConversationWindow(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	o := newTestOrchestrator(t, gen, nil, t.TempDir())

	req := userReq("first question", "first answer", "explain the course syllabus")
	if _, err := o.Handle(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gen.lastPrompt, "first question") || !strings.Contains(gen.lastPrompt, "first answer") {
		t.Error("expected prior turns in the composed prompt")
	}
}

func TestHandle_ScanCommand(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{reply: "The snapshot contains a single Go entry point."}
	o := newTestOrchestrator(t, gen, nil, root)

	msg, err := o.Handle(context.Background(), userReq("/scan"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Content != gen.reply {
		t.Errorf("expected analysis reply, got %q", msg.Content)
	}
	if !strings.Contains(gen.lastPrompt, "main.go") {
		t.Error("expected scan prompt to reference the scanned file")
	}
	if !strings.Contains(gen.lastPrompt, "code-review-style report") {
		t.Error("expected the analysis instruction header")
	}
}

func TestHandle_ScanFallbackListing(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{err: llm.ErrUpstream}
	o := newTestOrchestrator(t, gen, nil, root)

	msg, err := o.Handle(context.Background(), userReq("/debug"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Content, "main.go") {
		t.Errorf("expected plain listing with file names, got %q", msg.Content)
	}
	if !strings.Contains(msg.Content, "analysis unavailable") {
		t.Errorf("expected listing fallback marker, got %q", msg.Content)
	}
}

func TestHandle_ScanBadPath(t *testing.T) {
	o := newTestOrchestrator(t, &fakeGenerator{}, nil, t.TempDir())

	msg, err := o.Handle(context.Background(), userReq("/scan nonexistent/path"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Content, "Scan Error") {
		t.Errorf("expected Scan Error marker, got %q", msg.Content)
	}
}

func TestHandle_ScanPathEscape(t *testing.T) {
	o := newTestOrchestrator(t, &fakeGenerator{}, nil, t.TempDir())

	msg, err := o.Handle(context.Background(), userReq("/scan ../../etc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Content, "Scan Error") {
		t.Errorf("expected containment rejection, got %q", msg.Content)
	}
}

func TestHandle_ScanAuthorization(t *testing.T) {
	root := t.TempDir()
	gen := &fakeGenerator{reply: "report"}
	o := newTestOrchestrator(t, gen, NewTokenAuthorizer("secret"), root)

	req := userReq("/scan")
	msg, err := o.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Content, "not authorized") {
		t.Errorf("expected denial without credential, got %q", msg.Content)
	}
	if gen.calls != 0 {
		t.Error("generator must not run for denied commands")
	}

	req.AdminToken = "secret"
	msg, err = o.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(msg.Content, "not authorized") {
		t.Errorf("expected command to run with valid credential, got %q", msg.Content)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		query   string
		command string
		arg     string
		ok      bool
	}{
		{"/scan", "/scan", "", true},
		{"/scan internal/api", "/scan", "internal/api", true},
		{"  /debug cmd  ", "/debug", "cmd", true},
		{"/scanner", "", "", false},
		{"tell me about /scan", "", "", false},
	}
	for _, tt := range tests {
		command, arg, ok := parseCommand(tt.query)
		if command != tt.command || arg != tt.arg || ok != tt.ok {
			t.Errorf("parseCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.query, command, arg, ok, tt.command, tt.arg, tt.ok)
		}
	}
}

func TestTokenAuthorizer(t *testing.T) {
	open := NewTokenAuthorizer("")
	if !open.Allow("", "/scan") {
		t.Error("empty token should allow all commands")
	}

	locked := NewTokenAuthorizer("secret")
	if locked.Allow("wrong", "/scan") {
		t.Error("wrong credential should be denied")
	}
	if !locked.Allow("secret", "/debug") {
		t.Error("matching credential should be allowed")
	}
}
