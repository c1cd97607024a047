// Package resources maintains a best-effort in-memory snapshot of the
// locally discoverable study materials. The snapshot is built once at
// startup and read-only afterwards; it may go stale until the process
// restarts, which is accepted.
package resources

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirAssignments = "assignments"
	dirNotes       = "notes"
	dirLabManuals  = "lab-manuals"
	dirDownloads   = "downloads"

	downloadsFile = "downloads.json"
)

var indexableExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".md":   true,
	".zip":  true,
}

// FileEntry is one indexed file on disk.
type FileEntry struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Extension  string    `json:"extension"`
	SizeBytes  int64     `json:"sizeBytes"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// DownloadEntry is one curated entry from downloads.json.
type DownloadEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

// ResultSet groups search hits by category.
type ResultSet struct {
	Assignments  []FileEntry     `json:"assignments"`
	Notes        []FileEntry     `json:"notes"`
	LabManuals   []FileEntry     `json:"labManuals"`
	Downloads    []DownloadEntry `json:"downloads"`
	TotalResults int             `json:"totalResults"`
}

// Index is the startup snapshot. Read-only after Build returns.
type Index struct {
	assignments []FileEntry
	notes       []FileEntry
	labManuals  []FileEntry
	downloads   []DownloadEntry
	logger      *slog.Logger
}

// Build creates the expected directory layout (tolerating failure),
// scans each category and loads the curated downloads list. Filesystem
// trouble degrades the affected category to empty with a warning; it
// never fails initialization.
func Build(root string, logger *slog.Logger) *Index {
	idx := &Index{logger: logger}

	for _, dir := range []string{dirAssignments, dirNotes, dirLabManuals, dirDownloads} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			logger.Warn("failed to create resource directory", "dir", dir, "error", err)
		}
	}

	idx.assignments = idx.scanCategory(filepath.Join(root, dirAssignments))
	idx.notes = idx.scanCategory(filepath.Join(root, dirNotes))
	idx.labManuals = idx.scanCategory(filepath.Join(root, dirLabManuals))
	idx.downloads = idx.loadDownloads(filepath.Join(root, downloadsFile))

	logger.Info("resource index built",
		"assignments", len(idx.assignments),
		"notes", len(idx.notes),
		"lab_manuals", len(idx.labManuals),
		"downloads", len(idx.downloads),
	)
	return idx
}

func (idx *Index) scanCategory(dir string) []FileEntry {
	var entries []FileEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !indexableExtensions[ext] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		entries = append(entries, FileEntry{
			Name:       d.Name(),
			Path:       path,
			Extension:  ext,
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		idx.logger.Warn("resource scan failed, category degraded to empty", "dir", dir, "error", err)
		return nil
	}
	return entries
}

// loadDownloads reads the curated list, writing an empty one when the
// file is missing so the content team has a template to fill in.
func (idx *Index) loadDownloads(path string) []DownloadEntry {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := os.WriteFile(path, []byte("[]\n"), 0o644); werr != nil {
			idx.logger.Warn("failed to create empty downloads list", "path", path, "error", werr)
		}
		return nil
	}
	if err != nil {
		idx.logger.Warn("failed to read downloads list", "path", path, "error", err)
		return nil
	}

	var entries []DownloadEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		idx.logger.Warn("malformed downloads list, ignoring", "path", path, "error", err)
		return nil
	}
	return entries
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "can": true,
	"you": true, "are": true, "what": true, "where": true, "how": true,
	"any": true, "all": true, "get": true, "have": true, "need": true,
}

// searchTerms normalizes the query into lowercase tokens worth
// matching. Short and filler words are dropped so "where can I find
// chb101 notes" searches on "chb101" and "notes".
func searchTerms(query string) []string {
	var terms []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.Trim(tok, ".,!?\"'()")
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// Search runs a case-insensitive substring match of the normalized
// query terms against file names/paths and download
// titles/descriptions/tags. Results keep scan order within each
// category; there is no ranking beyond category grouping.
func (idx *Index) Search(query string) ResultSet {
	var rs ResultSet
	terms := searchTerms(query)
	if len(terms) == 0 {
		return rs
	}

	rs.Assignments = matchFiles(idx.assignments, terms)
	rs.Notes = matchFiles(idx.notes, terms)
	rs.LabManuals = matchFiles(idx.labManuals, terms)

	for _, d := range idx.downloads {
		if matchDownload(d, terms) {
			rs.Downloads = append(rs.Downloads, d)
		}
	}

	rs.TotalResults = len(rs.Assignments) + len(rs.Notes) + len(rs.LabManuals) + len(rs.Downloads)
	return rs
}

func matchFiles(entries []FileEntry, terms []string) []FileEntry {
	var out []FileEntry
	for _, e := range entries {
		haystack := strings.ToLower(e.Name) + " " + strings.ToLower(e.Path)
		if containsAny(haystack, terms) {
			out = append(out, e)
		}
	}
	return out
}

func matchDownload(d DownloadEntry, terms []string) bool {
	haystack := strings.ToLower(d.Title) + " " + strings.ToLower(d.Description) + " " + strings.ToLower(strings.Join(d.Tags, " "))
	return containsAny(haystack, terms)
}

func containsAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
