package extension

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

// loadMetadataDrivers registers the driver chain of em and one sub-driver per mapping
// type. It returns the chain id and the entity namespace aliases of the mappings.
func (e *Extension) loadMetadataDrivers(
	c *domain.Container,
	kernel *domain.KernelConfig,
	em *domain.EntityManagerConfig,
) (string, map[string]any, error) {
	mappings, err := e.resolveMappings(kernel, em)
	if err != nil {
		return "", nil, err
	}

	chainID := domain.ORMElementID(em.Name, "metadata_driver")
	chain := c.Register(chainID, classRef(driverChainClassParam))

	aliases := make(map[string]any)
	for _, m := range mappings {
		driverID := domain.ORMElementID(em.Name, m.Type+"_metadata_driver")
		driver, ok := c.Definition(driverID)
		if !ok {
			driver = c.SetDefinition(driverID, newMetadataDriver(m.Type))
		}
		addMappingDir(driver, m)
		chain.AddMethodCall("addDriver", domain.Ref(driverID), m.Prefix)

		if m.Alias != "" {
			aliases[m.Alias] = m.Prefix
		}
	}
	return chainID, aliases, nil
}

func newMetadataDriver(kind string) *domain.Definition {
	class := classRef(metadataClassParam(kind))
	switch kind {
	case domain.MappingAnnotation:
		return domain.NewDefinition(class, domain.Ref(AnnotationReaderID), []any{})
	case domain.MappingXML, domain.MappingYAML:
		return domain.NewDefinition(class, map[string]any{})
	default:
		return domain.NewDefinition(class, []any{})
	}
}

// addMappingDir records the directory of m on the sub-driver built by newMetadataDriver.
func addMappingDir(driver *domain.Definition, m domain.MappingConfig) {
	switch m.Type {
	case domain.MappingAnnotation:
		dirs, _ := driver.Arguments[1].([]any)
		driver.Arguments[1] = append(dirs, m.Dir)
	case domain.MappingXML, domain.MappingYAML:
		driver.Arguments[0].(map[string]any)[m.Dir] = m.Prefix
	default:
		dirs, _ := driver.Arguments[0].([]any)
		driver.Arguments[0] = append(dirs, m.Dir)
	}
}

// resolveMappings returns the enabled mappings of em in declaration order followed by
// the auto-mapped bundles in kernel order, with type, directory and prefix filled in.
func (e *Extension) resolveMappings(kernel *domain.KernelConfig, em *domain.EntityManagerConfig) ([]domain.MappingConfig, error) {
	var out []domain.MappingConfig
	declared := make(map[string]bool, len(em.Mappings))

	for _, m := range em.Mappings {
		declared[m.Name] = true
		if m.Disabled {
			continue
		}
		if !m.IsBundle {
			m.Dir = projectPath(kernel.ProjectDir, m.Dir)
			out = append(out, m)
			continue
		}

		idx := slices.IndexFunc(kernel.Bundles, func(b domain.Bundle) bool { return b.Name == m.Name })
		if idx < 0 {
			return nil, zerr.With(domain.ErrBundleNotFound, "bundle", m.Name)
		}
		resolved, found, err := e.bundleMapping(kernel.Bundles[idx], m)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, zerr.With(domain.ErrBundleMappingUndetected, "bundle", m.Name)
		}
		out = append(out, resolved)
	}

	if !em.AutoMapping {
		return out, nil
	}
	for _, b := range kernel.Bundles {
		if declared[b.Name] {
			continue
		}
		resolved, found, err := e.bundleMapping(b, domain.MappingConfig{Name: b.Name, IsBundle: true})
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, resolved)
		} else {
			e.logger.Info("bundle " + b.Name + " ships no mapping, skipping auto mapping")
		}
	}
	return out, nil
}

// bundleMapping fills in what m leaves unset from the bundle layout.
func (e *Extension) bundleMapping(bundle domain.Bundle, m domain.MappingConfig) (domain.MappingConfig, bool, error) {
	var detected domain.BundleMapping
	if m.Type == "" {
		var (
			found bool
			err   error
		)
		detected, found, err = e.locator.Detect(bundle)
		if err != nil {
			return m, false, zerr.With(err, "bundle", bundle.Name)
		}
		if !found {
			return m, false, nil
		}
		m.Type = detected.Type
	}

	dir := cmp.Or(m.Dir, detected.Dir, defaultBundleDir(m.Type))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(bundle.Path, filepath.FromSlash(dir))
	}
	m.Dir = dir
	m.Prefix = cmp.Or(m.Prefix, detected.Prefix, bundle.Namespace+`\Entity`)
	m.Alias = cmp.Or(m.Alias, bundle.Name)
	return m, true, nil
}

func defaultBundleDir(kind string) string {
	switch kind {
	case domain.MappingAnnotation, domain.MappingAttribute, domain.MappingStaticPHP:
		return "Entity"
	default:
		return "Resources/config/doctrine"
	}
}

// projectPath anchors a relative mapping directory at the project root. Directories
// holding parameter placeholders are left for the runtime to resolve.
func projectPath(projectDir, dir string) string {
	if dir == "" || filepath.IsAbs(dir) || strings.Contains(dir, "%") || projectDir == "" {
		return dir
	}
	return filepath.Join(projectDir, dir)
}
