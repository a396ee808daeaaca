// Build artifact detection from language-specific configuration files.
// Parses package.json, tsconfig.json, pyproject.toml and Cargo.toml to find
// output directories that should never be analyzed.
package supplier

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ArtifactDetector finds language-specific build output directories.
type ArtifactDetector struct {
	projectRoot string
}

// NewArtifactDetector creates a detector rooted at the project directory.
func NewArtifactDetector(projectRoot string) *ArtifactDetector {
	return &ArtifactDetector{projectRoot: projectRoot}
}

// DetectOutputDirectories scans build configuration files and returns glob
// patterns to exclude (e.g. "**/dist/**", "**/target/**").
func (ad *ArtifactDetector) DetectOutputDirectories() []string {
	var patterns []string
	patterns = append(patterns, ad.detectJavaScriptOutputs()...)
	patterns = append(patterns, ad.detectRustOutputs()...)
	patterns = append(patterns, ad.detectPythonOutputs()...)
	return patterns
}

// detectJavaScriptOutputs probes package.json and tsconfig.json.
func (ad *ArtifactDetector) detectJavaScriptOutputs() []string {
	var patterns []string

	packageJSON := filepath.Join(ad.projectRoot, "package.json")
	if data, err := os.ReadFile(packageJSON); err == nil {
		var pkg struct {
			Main  string   `json:"main"`
			Files []string `json:"files"`
		}
		if json.Unmarshal(data, &pkg) == nil {
			if dir := topLevelDir(pkg.Main); dir != "" && dir != "src" {
				patterns = append(patterns, "**/"+dir+"/**")
			}
		}
	}

	tsconfig := filepath.Join(ad.projectRoot, "tsconfig.json")
	if data, err := os.ReadFile(tsconfig); err == nil {
		var cfg struct {
			CompilerOptions struct {
				OutDir string `json:"outDir"`
			} `json:"compilerOptions"`
		}
		// tsconfig allows comments; a parse failure just means no hint.
		if json.Unmarshal(data, &cfg) == nil {
			if dir := topLevelDir(cfg.CompilerOptions.OutDir); dir != "" {
				patterns = append(patterns, "**/"+dir+"/**")
			}
		}
	}

	return patterns
}

// detectRustOutputs excludes cargo's target directory when a Cargo.toml is
// present and parseable.
func (ad *ArtifactDetector) detectRustOutputs() []string {
	cargoToml := filepath.Join(ad.projectRoot, "Cargo.toml")
	data, err := os.ReadFile(cargoToml)
	if err != nil {
		return nil
	}
	var manifest map[string]any
	if toml.Unmarshal(data, &manifest) != nil {
		return nil
	}
	return []string{"**/target/**"}
}

// detectPythonOutputs excludes common Python build and venv directories
// when a pyproject.toml is present and parseable.
func (ad *ArtifactDetector) detectPythonOutputs() []string {
	pyproject := filepath.Join(ad.projectRoot, "pyproject.toml")
	data, err := os.ReadFile(pyproject)
	if err != nil {
		return nil
	}
	var manifest map[string]any
	if toml.Unmarshal(data, &manifest) != nil {
		return nil
	}
	return []string{"**/__pycache__/**", "**/.venv/**", "**/*.egg-info/**"}
}

// topLevelDir extracts the first path component of a relative path like
// "./dist/index.js" or "dist".
func topLevelDir(p string) string {
	p = strings.TrimPrefix(strings.TrimPrefix(p, "./"), "/")
	if p == "" {
		return ""
	}
	if idx := strings.IndexByte(p, '/'); idx >= 0 {
		return p[:idx]
	}
	if strings.Contains(p, ".") {
		// A bare filename, not a directory.
		return ""
	}
	return p
}
