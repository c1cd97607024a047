// Package extract derives structured facts from a raw chat query.
// Every extractor is a pure function over the query text; "no match"
// is the zero value, never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/learnflow/assistant/internal/catalog"
)

// QueryFacts is everything the composer needs to know about one query.
// Derived fresh per request.
type QueryFacts struct {
	CourseCode        string // uppercased, catalog-validated; "" when absent
	Unit              int    // 0 when absent
	Semester          int    // 0 when absent
	ResourceType      string // one of resourceTypes; "" when absent
	IsNavigationQuery bool
	NeedsWebSearch    bool
}

var (
	courseCodeRe = regexp.MustCompile(`(?i)\b([a-z]{2,3})\s*(\d{3})\b`)
	semesterRe   = regexp.MustCompile(`(?i)\b([1-9])\s*(?:st|nd|rd|th)?[\s-]*sem(?:ester)?s?\b`)
	unitRe       = regexp.MustCompile(`(?i)\bunit[\s-]*(\d+)\b`)
	yearRe       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Ordered so the first hit wins and extraction stays deterministic.
var resourceTypes = []string{"pdf", "notes", "manual", "assignment", "lab", "download"}

var navigationKeywords = []string{
	"where", "find", "locate", "show me", "how to access",
	"resources", "materials", "lectures", "notes", "semester",
}

var recencyKeywords = []string{"latest", "recent", "today", "current", "now", "news", "update"}

var platformKeywords = []string{"learnflow", "course", "assignment", "lecture", "professor", "class"}

// Facts runs every extractor against the query.
func Facts(query string, cat *catalog.Catalog) QueryFacts {
	return QueryFacts{
		CourseCode:        CourseCode(query, cat),
		Unit:              Unit(query),
		Semester:          Semester(query),
		ResourceType:      ResourceType(query),
		IsNavigationQuery: IsNavigationQuery(query),
		NeedsWebSearch:    NeedsWebSearch(query),
	}
}

// CourseCode matches a 2-3 letter prefix plus exactly three digits and
// validates the normalized code against the course table. Codes the
// table does not know resolve to "".
func CourseCode(query string, cat *catalog.Catalog) string {
	for _, m := range courseCodeRe.FindAllStringSubmatch(query, -1) {
		code := strings.ToUpper(m[1] + m[2])
		if cat.HasCourse(code) {
			return code
		}
	}
	return ""
}

// Semester matches forms like "3rd semester", "3 sem" or "3semester".
func Semester(query string) int {
	m := semesterRe.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Unit matches "unit 4" style references.
func Unit(query string) int {
	m := unitRe.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ResourceType returns the first matching resource keyword.
func ResourceType(query string) string {
	q := strings.ToLower(query)
	for _, rt := range resourceTypes {
		if strings.Contains(q, rt) {
			return rt
		}
	}
	return ""
}

// IsNavigationQuery reports whether the query looks like a
// where-do-I-find-it question.
func IsNavigationQuery(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range navigationKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// NeedsWebSearch applies the permissive external-search heuristic: a
// recency cue (including any literal year) always triggers it, and a
// query that mentions nothing platform-internal defaults to needing it.
func NeedsWebSearch(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range recencyKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	if yearRe.MatchString(q) {
		return true
	}
	for _, kw := range platformKeywords {
		if strings.Contains(q, kw) {
			return false
		}
	}
	return true
}
