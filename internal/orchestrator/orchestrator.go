// Package orchestrator owns the request pipeline: command detection,
// context assembly, the single generation attempt and the fallback
// policy. Upstream instability never surfaces as an error here - every
// chat request gets an assistant-shaped answer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/learnflow/assistant/internal/catalog"
	"github.com/learnflow/assistant/internal/extract"
	"github.com/learnflow/assistant/internal/fallback"
	"github.com/learnflow/assistant/internal/llm"
	"github.com/learnflow/assistant/internal/prompt"
	"github.com/learnflow/assistant/internal/scanner"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	maxScanFiles  = 20
	excerptLength = 500
	chatMaxTokens = 2048
	scanMaxTokens = 4096
	temperature   = 0.7
)

// Message is one chat turn. Conversations are caller-owned; nothing is
// persisted server-side.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one validated inbound chat call.
type Request struct {
	Messages   []Message
	Identity   string // userId from the body, else remote address
	AdminToken string // X-Admin-Token header, may be empty
}

// Generator is the gateway capability the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, promptText string, opts llm.GenerateOptions) (string, error)
}

// ErrNoUserMessage means the request carried no message with role user.
var ErrNoUserMessage = errors.New("no user message in request")

type Orchestrator struct {
	catalog     *catalog.Catalog
	composer    *prompt.Composer
	llm         Generator
	auth        Authorizer
	projectRoot string
	logger      *slog.Logger
}

func New(cat *catalog.Catalog, composer *prompt.Composer, gen Generator, auth Authorizer, projectRoot string, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		catalog:     cat,
		composer:    composer,
		llm:         gen,
		auth:        auth,
		projectRoot: projectRoot,
		logger:      logger,
	}
}

// Handle runs one request through the pipeline and always returns an
// assistant message unless the request itself is malformed.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (Message, error) {
	query, window, ok := latestUserQuery(req.Messages)
	if !ok {
		return Message{}, ErrNoUserMessage
	}

	traceID := uuid.NewString()
	logger := o.logger.With("trace_id", traceID, "identity", req.Identity)

	if command, arg, isCommand := parseCommand(query); isCommand {
		logger.Info("admin command received", "command", command, "arg", arg)
		return o.dispatchCommand(ctx, req, command, arg, logger), nil
	}

	return o.dispatchChat(ctx, query, window, logger), nil
}

// latestUserQuery returns the newest user message plus the contents of
// the turns before it, oldest first.
func latestUserQuery(messages []Message) (query string, window []string, ok bool) {
	last := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			last = i
			break
		}
	}
	if last == -1 {
		return "", nil, false
	}
	for _, m := range messages[:last] {
		window = append(window, m.Content)
	}
	return messages[last].Content, window, true
}

func parseCommand(query string) (command, arg string, ok bool) {
	trimmed := strings.TrimSpace(query)
	for _, cmd := range []string{"/scan", "/debug"} {
		if trimmed == cmd {
			return cmd, "", true
		}
		if strings.HasPrefix(trimmed, cmd+" ") {
			return cmd, strings.TrimSpace(strings.TrimPrefix(trimmed, cmd+" ")), true
		}
	}
	return "", "", false
}

func (o *Orchestrator) dispatchChat(ctx context.Context, query string, window []string, logger *slog.Logger) Message {
	facts := extract.Facts(query, o.catalog)
	logger.Debug("query facts",
		"course", facts.CourseCode,
		"semester", facts.Semester,
		"navigation", facts.IsNavigationQuery,
		"web_search", facts.NeedsWebSearch,
	)

	promptText := o.composer.Compose(ctx, query, window, facts)

	reply, err := o.llm.Generate(ctx, promptText, llm.GenerateOptions{
		Temperature:     temperature,
		MaxOutputTokens: chatMaxTokens,
	})
	if err != nil {
		logger.Warn("generation failed, serving fallback", "error", err)
		return Message{Role: RoleAssistant, Content: fallback.Reply(query)}
	}

	logger.Info("chat answered", "prompt_len", len(promptText), "reply_len", len(reply))
	return Message{Role: RoleAssistant, Content: reply}
}

func (o *Orchestrator) dispatchCommand(ctx context.Context, req Request, command, arg string, logger *slog.Logger) Message {
	if !o.auth.Allow(req.AdminToken, command) {
		logger.Warn("admin command denied", "command", command)
		return Message{Role: RoleAssistant, Content: "You are not authorized to run " + command + "."}
	}

	root, err := o.resolveScanPath(arg)
	if err != nil {
		logger.Warn("scan path rejected", "arg", arg, "error", err)
		return scanErrorMessage(err)
	}

	files, err := scanner.ListFiles(root, maxScanFiles)
	if err != nil {
		logger.Warn("scan failed", "path", root, "error", err)
		return scanErrorMessage(err)
	}
	if len(files) == 0 {
		return Message{Role: RoleAssistant, Content: fmt.Sprintf("Scanned %s and found no source files.", root)}
	}

	analysis, err := o.llm.Generate(ctx, buildScanPrompt(root, files), llm.GenerateOptions{
		Temperature:     0.2,
		MaxOutputTokens: scanMaxTokens,
	})
	if err != nil {
		logger.Warn("scan analysis failed, serving plain listing", "error", err)
		return Message{Role: RoleAssistant, Content: plainListing(root, files)}
	}

	logger.Info("scan analysed", "path", root, "files", len(files))
	return Message{Role: RoleAssistant, Content: analysis}
}

// resolveScanPath confines scan targets to the configured project
// root. Chat input must not become a filesystem escape hatch.
func (o *Orchestrator) resolveScanPath(arg string) (string, error) {
	rootAbs, err := filepath.Abs(o.projectRoot)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	if arg == "" {
		return rootAbs, nil
	}

	target := arg
	if !filepath.IsAbs(target) {
		target = filepath.Join(rootAbs, target)
	}
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve scan path: %w", err)
	}
	if targetAbs != rootAbs && !strings.HasPrefix(targetAbs, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the project root", arg)
	}
	return targetAbs, nil
}

func scanErrorMessage(err error) Message {
	return Message{Role: RoleAssistant, Content: "Scan Error: " + err.Error()}
}

const scanPromptHeader = `You are reviewing a code snapshot for the LearnFlow platform team. Produce a short code-review-style report: purpose of the code, structure, anything that looks fragile or unfinished. Use the file excerpts below; do not invent files you were not shown.`

func buildScanPrompt(root string, files []scanner.File) string {
	var b strings.Builder
	b.WriteString(scanPromptHeader)
	fmt.Fprintf(&b, "\n\nScan root: %s\nFiles (%d):\n", root, len(files))
	for _, f := range files {
		fmt.Fprintf(&b, "\n--- %s (%d lines) ---\n", f.Path, f.LineCount)
		excerpt := f.Content
		if len(excerpt) > excerptLength {
			excerpt = excerpt[:excerptLength]
		}
		b.WriteString(excerpt)
		b.WriteString("\n")
	}
	return b.String()
}

func plainListing(root string, files []scanner.File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scanned %s - %d files (analysis unavailable right now):\n", root, len(files))
	for _, f := range files {
		fmt.Fprintf(&b, "- %s (%d lines)\n", f.Path, f.LineCount)
	}
	return b.String()
}
