// Package catalog holds the static course and site-navigation tables.
// A Catalog is built once at startup and passed to the orchestrator;
// it is read-only at request time.
package catalog

import (
	"sort"
	"strings"
)

type CourseResource struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type Course struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Topics      []string         `json:"topics"`
	Resources   []CourseResource `json:"resources"`
}

// NavTarget is one keyword-addressable location on the site.
type NavTarget struct {
	Keyword     string
	Title       string
	Path        string
	Description string
}

// SemesterInfo describes where one semester's materials live.
type SemesterInfo struct {
	Number  int
	Path    string
	Courses []string
}

type Catalog struct {
	courses   map[string]Course
	semesters map[int]SemesterInfo
	nav       []NavTarget
}

func New(courses []Course, semesters []SemesterInfo, nav []NavTarget) *Catalog {
	c := &Catalog{
		courses:   make(map[string]Course, len(courses)),
		semesters: make(map[int]SemesterInfo, len(semesters)),
		nav:       nav,
	}
	for _, course := range courses {
		c.courses[strings.ToUpper(course.Code)] = course
	}
	for _, s := range semesters {
		c.semesters[s.Number] = s
	}
	return c
}

// Course looks up a course by its uppercased code.
func (c *Catalog) Course(code string) (Course, bool) {
	course, ok := c.courses[strings.ToUpper(code)]
	return course, ok
}

// HasCourse reports whether code is a known course code.
func (c *Catalog) HasCourse(code string) bool {
	_, ok := c.courses[strings.ToUpper(code)]
	return ok
}

// Semester looks up semester metadata by number.
func (c *Catalog) Semester(n int) (SemesterInfo, bool) {
	s, ok := c.semesters[n]
	return s, ok
}

// NavMatches returns navigation targets whose keyword occurs in the
// query, in stable keyword order so prompt composition is deterministic.
func (c *Catalog) NavMatches(query string) []NavTarget {
	q := strings.ToLower(query)
	var out []NavTarget
	for _, t := range c.nav {
		if strings.Contains(q, t.Keyword) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out
}

// CourseCodes returns all known codes, sorted.
func (c *Catalog) CourseCodes() []string {
	codes := make([]string, 0, len(c.courses))
	for code := range c.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
