// Package scanner lists source files under a path for the /scan and
// /debug chat commands. Results are bounded; this is an inspection
// aid, not a build tool.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is one scanned file with its full content.
type File struct {
	Path      string
	Content   string
	LineCount int
}

var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vscode":      true,
}

var scannableExtensions = map[string]bool{
	".go":   true,
	".js":   true,
	".ts":   true,
	".jsx":  true,
	".tsx":  true,
	".py":   true,
	".html": true,
	".css":  true,
	".json": true,
	".md":   true,
	".yaml": true,
	".yml":  true,
	".sh":   true,
}

// errLimitReached stops the walk early; it never escapes ListFiles.
var errLimitReached = fmt.Errorf("file limit reached")

// ListFiles walks root and returns up to maxFiles scannable files.
// The walk skips excluded directories and anything without an
// allow-listed extension.
func ListFiles(root string, maxFiles int) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] || (strings.HasPrefix(d.Name(), ".") && path != root) {
				return filepath.SkipDir
			}
			return nil
		}
		if !scannableExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		files = append(files, File{
			Path:      path,
			Content:   string(content),
			LineCount: strings.Count(string(content), "\n") + 1,
		})
		if len(files) >= maxFiles {
			return errLimitReached
		}
		return nil
	})
	if err != nil && err != errLimitReached {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
