// Package supplier implements the upstream file-collection collaborator:
// it walks a project directory and produces the ordered (path, text,
// extension, language) tuples the engine analyzes. Filtering out dependency
// directories, VCS metadata and build artifacts is this package's contract;
// the engine never filters.
package supplier

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/codescope/internal/config"
	"github.com/standardbeagle/codescope/internal/engine"
	cserrors "github.com/standardbeagle/codescope/internal/errors"
	"github.com/standardbeagle/codescope/internal/parser"
)

// Supplier collects analyzable files from a project root.
type Supplier struct {
	root    string
	cfg     *config.Config
	exclude []string
}

// New creates a supplier for the given root. Configured exclusions are
// enriched with build output directories detected from the project's own
// build configuration files.
func New(root string, cfg *config.Config) *Supplier {
	exclude := append([]string{}, cfg.Exclude...)
	exclude = append(exclude, NewArtifactDetector(root).DetectOutputDirectories()...)
	return &Supplier{root: root, cfg: cfg, exclude: exclude}
}

// Collect walks the project and returns the engine inputs in path order.
// An unreadable root is a fatal supplier error.
func (s *Supplier) Collect() ([]engine.FileInput, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, cserrors.NewSupplierError("stat", s.root, err)
	}
	if !info.IsDir() {
		return nil, cserrors.NewSupplierError("walk", s.root, fs.ErrInvalid)
	}

	var inputs []engine.FileInput
	err = filepath.WalkDir(s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.excluded(rel + "/") {
				return fs.SkipDir
			}
			return nil
		}
		if s.excluded(rel) || !s.included(rel) {
			return nil
		}

		fi, infoErr := d.Info()
		if infoErr != nil || fi.Size() > s.cfg.Analysis.MaxFileSize {
			return nil
		}

		content, readErr := os.ReadFile(p)
		if readErr != nil || isBinary(content) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(rel))
		inputs = append(inputs, engine.FileInput{
			Path:      rel,
			Content:   string(content),
			Extension: ext,
			Language:  parser.LanguageForExtension(ext),
		})
		return nil
	})
	if err != nil {
		return nil, cserrors.NewSupplierError("walk", s.root, err)
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Path < inputs[j].Path })
	return inputs, nil
}

// excluded matches the relative path against the exclusion globs.
func (s *Supplier) excluded(rel string) bool {
	for _, pattern := range s.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		// Directory patterns like **/node_modules/** should also prune the
		// directory entry itself.
		if strings.HasSuffix(rel, "/") {
			if ok, err := doublestar.Match(pattern, rel+"x"); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// included matches the relative path against the include globs; an empty
// include list admits everything.
func (s *Supplier) included(rel string) bool {
	if len(s.cfg.Include) == 0 {
		return true
	}
	for _, pattern := range s.cfg.Include {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// isBinary applies the classic NUL-byte probe over the first 8000 bytes.
func isBinary(content []byte) bool {
	probe := content
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	return bytes.IndexByte(probe, 0) >= 0
}
