// Package config provides the configuration loader for ormwire.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, validate: newValidator()}
}

// Load reads the configuration file at path, follows its imports and returns the
// normalized configuration tree.
func (l *Loader) Load(path string) (*domain.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	root, sources, err := l.loadTree(absPath, nil)
	if err != nil {
		return nil, err
	}

	l.normalize(root)

	var file File
	if err := decodeStrict(root, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", absPath)
	}

	if err := l.validateFile(&file); err != nil {
		return nil, zerr.With(err, "path", absPath)
	}

	cfg, err := convert(&file, filepath.Dir(absPath))
	if err != nil {
		return nil, zerr.With(err, "path", absPath)
	}
	cfg.Sources = sources
	return cfg, nil
}

// loadTree reads absPath, loads its imports first and merges the file on top of them.
// It returns the merged mapping and every contributing file, imports first.
func (l *Loader) loadTree(absPath string, stack []string) (*yaml.Node, []string, error) {
	if i := slices.Index(stack, absPath); i >= 0 {
		cycle := strings.Join(append(slices.Clone(stack[i:]), absPath), " -> ")
		return nil, nil, zerr.With(domain.ErrImportCycle, "cycle", cycle)
	}
	stack = append(stack, absPath)

	node, err := readNode(absPath)
	if err != nil {
		return nil, nil, err
	}

	imports, err := parseImports(removeKey(node, "imports"))
	if err != nil {
		return nil, nil, zerr.With(err, "path", absPath)
	}

	merged := mappingNode()
	var sources []string
	for _, imp := range imports {
		resource := imp.Resource
		if !filepath.IsAbs(resource) {
			resource = filepath.Join(filepath.Dir(absPath), resource)
		}

		tree, imported, err := l.loadTree(filepath.Clean(resource), stack)
		if err != nil {
			if imp.IgnoreErrors && !isCycle(err) {
				l.Logger.Warn("skipping import " + imp.Resource + ": " + err.Error())
				continue
			}
			return nil, nil, err
		}

		merged = mergeNodes(merged, tree)
		for _, src := range imported {
			if !slices.Contains(sources, src) {
				sources = append(sources, src)
			}
		}
	}

	merged = mergeNodes(merged, node)
	if !slices.Contains(sources, absPath) {
		sources = append(sources, absPath)
	}
	return merged, sources, nil
}

type importDTO struct {
	Resource     string `yaml:"resource"`
	IgnoreErrors bool   `yaml:"ignore_errors"`
}

func parseImports(node *yaml.Node) ([]importDTO, error) {
	if node == nil || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, zerr.With(domain.ErrInvalidConfiguration, "field", "imports")
	}

	imports := make([]importDTO, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode {
			imports = append(imports, importDTO{Resource: item.Value})
			continue
		}

		var imp importDTO
		if err := decodeStrict(item, &imp); err != nil {
			return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		}
		if imp.Resource == "" {
			return nil, zerr.With(domain.ErrInvalidConfiguration, "field", "imports.resource")
		}
		imports = append(imports, imp)
	}
	return imports, nil
}

// readNode reads a YAML file and returns its top-level mapping.
func readNode(path string) (*yaml.Node, error) {
	// #nosec G304 -- path comes from the command line or an import of a trusted file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return mappingNode(), nil
	}

	root := doc.Content[0]
	if isNull(root) {
		return mappingNode(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrConfigParseFailed, "path", path)
	}
	return root, nil
}

func isCycle(err error) bool {
	return strings.Contains(err.Error(), domain.ErrImportCycle.Error())
}
