package ports

import "go.trai.ch/ormwire/internal/core/domain"

// BundleLocator inspects a bundle and reports how its entities are mapped.
//
//go:generate mockgen -source=bundle_locator.go -destination=mocks/mock_bundle_locator.go -package=mocks
type BundleLocator interface {
	// Detect returns the mapping type, directory and namespace prefix of bundle.
	// found is false when the bundle ships no mapping at all.
	Detect(bundle domain.Bundle) (mapping domain.BundleMapping, found bool, err error)
}
