package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BundleLocator = (*Locator)(nil)

const (
	configMappingDir    = "Resources/config/doctrine"
	annotationEntityDir = "Entity"
)

// mappingSuffixes lists the file-based mapping types in detection order.
var mappingSuffixes = []struct {
	suffix string
	kind   string
}{
	{".orm.xml", domain.MappingXML},
	{".orm.yml", domain.MappingYAML},
	{".orm.php", domain.MappingPHP},
}

// Locator detects bundle mapping types from the bundle directory layout.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Detect inspects Resources/config/doctrine for mapping files first and falls back
// to annotations when the bundle has an Entity directory.
func (l *Locator) Detect(bundle domain.Bundle) (domain.BundleMapping, bool, error) {
	prefix := bundle.Namespace + `\Entity`

	configDir := filepath.Join(bundle.Path, filepath.FromSlash(configMappingDir))
	for _, m := range mappingSuffixes {
		matches, err := filepath.Glob(filepath.Join(configDir, "*"+m.suffix))
		if err != nil {
			return domain.BundleMapping{}, false, zerr.With(zerr.Wrap(err, "failed to scan mapping directory"), "bundle", bundle.Name)
		}
		if len(matches) > 0 {
			return domain.BundleMapping{Type: m.kind, Dir: configMappingDir, Prefix: prefix}, true, nil
		}
	}

	info, err := os.Stat(filepath.Join(bundle.Path, annotationEntityDir))
	switch {
	case err == nil && info.IsDir():
		return domain.BundleMapping{Type: domain.MappingAnnotation, Dir: annotationEntityDir, Prefix: prefix}, true, nil
	case err != nil && !os.IsNotExist(err):
		return domain.BundleMapping{}, false, zerr.With(zerr.Wrap(err, "failed to stat entity directory"), "bundle", bundle.Name)
	default:
		return domain.BundleMapping{}, false, nil
	}
}
