package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "focusflow/internal/modules/") {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

// leafModules own their storage and never call into another module.
var leafModules = map[string]bool{"drill": true, "session": true}

// TestCrossModuleCallsGoThroughUsecases pins which modules may talk to
// each other: only a usecase reaches across, and only into a port/in or dto.
// The countdown engine and the practice domain stay free of session types.
func TestCrossModuleCallsGoThroughUsecases(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.Contains(importPath, "focusflow/internal/ui") || strings.HasSuffix(importPath, "focusflow/internal/bootstrap") {
				t.Fatalf("%s imports the composition layer: %s", slash, importPath)
			}
			other := importedModule(importPath)
			if other == "" || other == module {
				continue
			}
			switch {
			case leafModules[module]:
				t.Fatalf("%s must not depend on module %s: %s", module, other, importPath)
			case layer != "usecase":
				t.Fatalf("only usecases cross modules, %s (%s) imports %s", slash, layer, importPath)
			case !isPortIn(importPath) && !isDTO(importPath):
				t.Fatalf("%s reaches past the port of %s: %s", slash, other, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	err := filepath.WalkDir(filepath.Join("..", "platform"), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if importedModule(importPath) != "" || strings.Contains(importPath, "focusflow/internal/ui") {
				t.Fatalf("platform package %s imports %s", filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk platform: %v", err)
	}
}

func TestViolationRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		want                      bool
	}{
		{"practice", "usecase", "focusflow/internal/modules/session/port/in", false},
		{"practice", "usecase", "focusflow/internal/modules/session/dto", false},
		{"practice", "usecase", "focusflow/internal/modules/session/service", true},
		{"practice", "adapter/in", "focusflow/internal/modules/practice/service", true},
		{"practice", "adapter/in", "focusflow/internal/modules/practice/port/in", false},
		{"session", "service", "focusflow/internal/modules/session/adapter/out", true},
		{"drill", "domain", "focusflow/internal/modules/drill/usecase", true},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.want {
			t.Fatalf("violatesLayerRule(%s, %s, %s) = %v", tc.module, tc.layer, tc.importPath, got)
		}
	}
	if importedModule("focusflow/internal/modules/drill/port/in") != "drill" || importedModule("focusflow/internal/platform/clock") != "" {
		t.Fatalf("importedModule misreads module paths")
	}
}

func importedModule(importPath string) string {
	const marker = "focusflow/internal/modules/"
	i := strings.Index(importPath, marker)
	if i < 0 {
		return ""
	}
	rest := importPath[i+len(marker):]
	if j := strings.Index(rest, "/"); j >= 0 {
		return rest[:j]
	}
	return rest
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

// hasSegment matches a layer directory anywhere in the path, including as
// the final element of a package path.
func hasSegment(importPath, segment string) bool {
	return strings.Contains(importPath, "/"+segment+"/") || strings.HasSuffix(importPath, "/"+segment)
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if hasSegment(importPath, "service") || hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return hasSegment(importPath, "adapter")
	case "service":
		return hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase")
	case "domain":
		return hasSegment(importPath, "adapter") || hasSegment(importPath, "usecase") || hasSegment(importPath, "service")
	default:
		return false
	}
}
