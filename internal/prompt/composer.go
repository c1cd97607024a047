// Package prompt builds the single text blob sent to the generation
// endpoint. Sections are appended in a fixed order; identical inputs
// always produce byte-identical output, since downstream model
// behaviour is sensitive to section ordering.
package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/learnflow/assistant/internal/catalog"
	"github.com/learnflow/assistant/internal/extract"
	"github.com/learnflow/assistant/internal/resources"
	"github.com/learnflow/assistant/internal/websearch"
)

const (
	// ConversationWindow is how many trailing messages are included.
	ConversationWindow = 5

	maxExamplesPerCategory = 3
	maxWebResults          = 3
)

type Composer struct {
	catalog *catalog.Catalog
	index   *resources.Index
	search  websearch.Searcher
	logger  *slog.Logger
}

func NewComposer(cat *catalog.Catalog, idx *resources.Index, search websearch.Searcher, logger *slog.Logger) *Composer {
	return &Composer{catalog: cat, index: idx, search: search, logger: logger}
}

// Compose assembles the prompt for one query. window holds the trailing
// conversation message contents, oldest first; callers pass at most the
// last ConversationWindow entries. User-supplied text only ever lands
// in the conversation/question section, never in the instruction block.
func (c *Composer) Compose(ctx context.Context, query string, window []string, facts extract.QueryFacts) string {
	var b strings.Builder

	b.WriteString(basePersona)
	b.WriteString("\n")

	c.writeCourseSection(&b, facts)
	c.writeNavigationSection(&b, query, facts)
	c.writeResourceSection(&b, query)
	c.writeWebSection(ctx, &b, query, facts)

	b.WriteString("\n")
	b.WriteString(closingInstructions)
	b.WriteString("\n")

	if len(window) > ConversationWindow {
		window = window[len(window)-ConversationWindow:]
	}
	if len(window) > 0 {
		b.WriteString("\nRecent conversation:\n")
		b.WriteString(strings.Join(window, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\nStudent question: ")
	b.WriteString(query)

	return b.String()
}

func (c *Composer) writeCourseSection(b *strings.Builder, facts extract.QueryFacts) {
	if facts.CourseCode == "" {
		return
	}
	course, ok := c.catalog.Course(facts.CourseCode)
	if !ok {
		return
	}

	fmt.Fprintf(b, "\nCourse context for %s - %s:\n", course.Code, course.Name)
	fmt.Fprintf(b, "%s\n", course.Description)
	b.WriteString("Topics:\n")
	for i, topic := range course.Topics {
		fmt.Fprintf(b, "  Unit %d: %s\n", i+1, topic)
	}
	for _, res := range course.Resources {
		fmt.Fprintf(b, "  Resource: %s (%s)\n", res.Name, res.Path)
	}
}

func (c *Composer) writeNavigationSection(b *strings.Builder, query string, facts extract.QueryFacts) {
	if !facts.IsNavigationQuery {
		return
	}

	b.WriteString("\n")
	b.WriteString(navigationInstruction)
	b.WriteString("\n")

	if facts.Semester != 0 {
		if sem, ok := c.catalog.Semester(facts.Semester); ok {
			fmt.Fprintf(b, "Semester %d materials live at %s (courses: %s).\n",
				sem.Number, sem.Path, strings.Join(sem.Courses, ", "))
		}
	}

	for _, target := range c.catalog.NavMatches(query) {
		fmt.Fprintf(b, "Page: %s at %s - %s\n", target.Title, target.Path, target.Description)
	}
}

// writeResourceSection always runs regardless of navigation intent; it
// contributes nothing when the index has no matches.
func (c *Composer) writeResourceSection(b *strings.Builder, query string) {
	rs := c.index.Search(query)
	if rs.TotalResults == 0 {
		return
	}

	fmt.Fprintf(b, "\nPlatform resources matching the question (%d total):\n", rs.TotalResults)
	writeFileCategory(b, "Assignments", rs.Assignments)
	writeFileCategory(b, "Notes", rs.Notes)
	writeFileCategory(b, "Lab manuals", rs.LabManuals)

	if len(rs.Downloads) > 0 {
		fmt.Fprintf(b, "Downloads (%d):\n", len(rs.Downloads))
		for i, d := range rs.Downloads {
			if i >= maxExamplesPerCategory {
				break
			}
			fmt.Fprintf(b, "  - %s: %s (%s)\n", d.Title, d.Description, d.URL)
		}
	}
}

func writeFileCategory(b *strings.Builder, label string, entries []resources.FileEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", label, len(entries))
	for i, e := range entries {
		if i >= maxExamplesPerCategory {
			break
		}
		fmt.Fprintf(b, "  - %s (%s)\n", e.Name, e.Path)
	}
}

// writeWebSection calls the search adapter; adapter failure is logged
// and the section omitted, never failing the request.
func (c *Composer) writeWebSection(ctx context.Context, b *strings.Builder, query string, facts extract.QueryFacts) {
	if !facts.NeedsWebSearch || c.search == nil {
		return
	}

	results, err := c.search.Search(ctx, query)
	if err != nil {
		c.logger.Warn("web search failed, omitting section", "error", err)
		return
	}
	if len(results) == 0 {
		return
	}

	b.WriteString("\nWeb search context:\n")
	for i, r := range results {
		if i >= maxWebResults {
			break
		}
		fmt.Fprintf(b, "  - %s (%s): %s\n", r.Title, r.URL, r.Snippet)
	}
}
