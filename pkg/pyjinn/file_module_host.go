package pyjinn

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maxuser0/pyjinn-sub000/internal/astloader"
	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
)

// moduleExtensions are tried in order for each search path, the same
// multi-extension probing the teacher's unit search does for .dws/.pas.
var moduleExtensions = []string{".pyj.json", ".json"}

// FileModuleHost resolves a dotted import name against a module's JSON AST
// documents on disk: "foo.bar" looks for "foo/bar.pyj.json" (or
// "foo/bar.json") under each configured search path, in order. This is
// the ModuleHost a Script installs by default when WithConfigFile or a
// direct search-path option supplies one or more directories and no
// WithModuleHost override is given.
type FileModuleHost struct {
	searchPaths []string
}

// NewFileModuleHost builds a FileModuleHost that looks under searchPaths,
// in the order given.
func NewFileModuleHost(searchPaths []string) *FileModuleHost {
	return &FileModuleHost{searchPaths: searchPaths}
}

// Resolve implements hostapi.ModuleHost.
func (h *FileModuleHost) Resolve(dotted string) (string, []pyast.Stmt, error) {
	rel := strings.ReplaceAll(dotted, ".", string(filepath.Separator))
	for _, dir := range h.searchPaths {
		for _, ext := range moduleExtensions {
			candidate := filepath.Join(dir, rel+ext)
			data, err := os.ReadFile(candidate)
			if err != nil {
				continue
			}
			canonical, err := filepath.Abs(candidate)
			if err != nil {
				canonical = candidate
			}
			mod, err := astloader.New(canonical, nil).LoadModule(data)
			if err != nil {
				return "", nil, fmt.Errorf("pyjinn: parsing module %q (%s): %w", dotted, candidate, err)
			}
			return canonical, mod.Body, nil
		}
	}
	return "", nil, fmt.Errorf("pyjinn: module %q not found in search paths %v", dotted, h.searchPaths)
}
