// Package loader discovers and decodes the element documents of a Gum
// project.
//
// A project is a directory holding gumproject.yaml and up to three kind
// folders: screens/, components/ and standards/. Every *.yaml file below a
// kind folder is one element, named by its path relative to that folder
// (components/Controls/Button.yaml is "Controls/Button"). Built-in
// standard elements are embedded and used for any standard the project
// does not define itself.
package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// ProjectFile is the file that marks a project root.
const ProjectFile = "gumproject.yaml"

// DocumentExt is the extension of element documents.
const DocumentExt = ".yaml"

// ErrNoProject is returned when the project directory does not exist.
var ErrNoProject = errors.New("no gum project found")

// Kinds lists the element kinds in load order.
var Kinds = []core.ElementKind{core.KindStandard, core.KindComponent, core.KindScreen}

// Document is one loaded element with its provenance.
type Document struct {
	Element *core.Element
	// Path is the absolute document path. Empty for built-in standards.
	Path string
	// Hash is the SHA-256 of the document content
	Hash string
	// Builtin is true for embedded standards
	Builtin bool
}

// LoadError is a non-fatal problem with one document.
type LoadError struct {
	Path    string
	Type    string // "read", "parse", "duplicate"
	Message string
}

func (e LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Type, e.Message)
}

// Result holds everything a load produced.
type Result struct {
	Documents []*Document
	Errors    []LoadError
	Duration  time.Duration
}

// HasErrors returns true if any document failed to load.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Elements returns the loaded elements in load order.
func (r *Result) Elements() []*core.Element {
	out := make([]*core.Element, len(r.Documents))
	for i, d := range r.Documents {
		out[i] = d.Element
	}
	return out
}

// Document returns the document of the named element, or nil.
func (r *Result) Document(name string) *Document {
	for _, d := range r.Documents {
		if d.Element.Name == name {
			return d
		}
	}
	return nil
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	counts := make(map[core.ElementKind]int)
	for _, d := range r.Documents {
		counts[d.Element.Kind]++
	}
	return fmt.Sprintf("Screens: %d | Components: %d | Standards: %d | Errors: %d | Duration: %s",
		counts[core.KindScreen], counts[core.KindComponent], counts[core.KindStandard],
		len(r.Errors), r.Duration.Round(time.Millisecond))
}

// Loader loads element documents from a project directory.
type Loader struct {
	root   string
	logger *slog.Logger
}

// New creates a loader for the project rooted at root.
// If logger is nil, a discard logger is used.
func New(root string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{root: root, logger: logger}
}

// Root returns the project directory.
func (l *Loader) Root() string {
	return l.root
}

// Load discovers every element document under the project. Documents that
// fail to read or decode are reported in the result and skipped.
func (l *Loader) Load() (*Result, error) {
	start := time.Now()

	info, err := os.Stat(l.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoProject, l.root)
	}

	result := &Result{}
	seen := make(map[string]bool)

	for _, kind := range Kinds {
		dir := filepath.Join(l.root, string(kind))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		l.logger.Debug("discovering elements", "kind", kind, "dir", dir)

		var paths []string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() || !strings.HasSuffix(d.Name(), DocumentExt) {
				return nil //nolint:nilerr // skip unreadable entries and non-documents
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
		}
		sort.Strings(paths)

		for _, path := range paths {
			doc, loadErr := l.LoadFile(path)
			if loadErr != nil {
				l.logger.Debug("document load error", "path", path, "error", loadErr.Error())
				result.Errors = append(result.Errors, *loadErr)
				continue
			}
			if seen[doc.Element.Name] {
				result.Errors = append(result.Errors, LoadError{
					Path: path, Type: "duplicate",
					Message: fmt.Sprintf("element %q is defined more than once", doc.Element.Name),
				})
				continue
			}
			seen[doc.Element.Name] = true
			result.Documents = append(result.Documents, doc)
		}
	}

	for _, std := range builtinStandards() {
		if !seen[std.Element.Name] {
			result.Documents = append(result.Documents, std)
		}
	}

	result.Duration = time.Since(start)
	l.logger.Info("load completed",
		"documents", len(result.Documents),
		"errors", len(result.Errors),
		"duration_ms", result.Duration.Milliseconds())
	return result, nil
}

// LoadFile loads a single element document. The path must lie below one of
// the project's kind folders.
func (l *Loader) LoadFile(path string) (*Document, *LoadError) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	kind, name, err := l.ElementName(absPath)
	if err != nil {
		return nil, &LoadError{Path: absPath, Type: "read", Message: err.Error()}
	}

	content, err := os.ReadFile(absPath) //nolint:gosec // G304: path comes from the project walk
	if err != nil {
		return nil, &LoadError{Path: absPath, Type: "read", Message: err.Error()}
	}

	el, err := ParseDocument(kind, name, content)
	if err != nil {
		return nil, &LoadError{Path: absPath, Type: "parse", Message: err.Error()}
	}
	el.FilePath = absPath

	return &Document{Element: el, Path: absPath, Hash: Hash(content)}, nil
}

// ElementName derives the kind and element name of a document path.
func (l *Loader) ElementName(path string) (core.ElementKind, string, error) {
	root, err := filepath.Abs(l.root)
	if err != nil {
		root = l.root
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", "", fmt.Errorf("%s is outside the project", path)
	}

	rel = filepath.ToSlash(rel)
	folder, rest, ok := strings.Cut(rel, "/")
	if !ok {
		return "", "", fmt.Errorf("%s is not inside a kind folder", path)
	}
	for _, kind := range Kinds {
		if folder == string(kind) {
			return kind, strings.TrimSuffix(rest, DocumentExt), nil
		}
	}
	return "", "", fmt.Errorf("%s is not inside a kind folder", path)
}

// Hash returns the hex SHA-256 of content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// FindProjectRoot walks up from start to the first directory containing
// ProjectFile.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s in %s or any parent", ErrNoProject, ProjectFile, start)
		}
		dir = parent
	}
}
