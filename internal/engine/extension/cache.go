package extension

import (
	"strings"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

// CacheProviderID is the id of the DoctrineProvider wrapping a cache pool.
func CacheProviderID(pool string) string {
	return "doctrine.orm.cache.provider." + pool
}

// loadCacheDriver wires the cache slot name of entity manager em and returns the id of
// the alias the configuration refers to. A pool driver without a pool falls back to
// defaultPool, or to an in-memory pool owned by the entity manager when defaultPool is "".
func loadCacheDriver(c *domain.Container, em, name string, driver domain.CacheDriver, defaultPool string) (string, error) {
	aliasID := domain.ORMElementID(em, name)

	var target string
	switch driver.Type {
	case domain.CacheDriverService:
		if !c.Has(driver.ID) {
			err := zerr.With(domain.ErrCacheDriverNotFound, "service_id", driver.ID)
			return "", zerr.With(err, "cache", aliasID)
		}
		target = driver.ID

	default:
		pool := driver.Pool
		switch {
		case pool != "":
			if !c.Has(pool) {
				err := zerr.With(domain.ErrCacheDriverNotFound, "service_id", pool)
				return "", zerr.With(err, "cache", aliasID)
			}
		case defaultPool != "":
			pool = defaultPool
		default:
			pool = arrayPool(c, em, name)
		}
		target = poolProvider(c, pool)
	}

	c.SetAlias(aliasID, target)
	return aliasID, nil
}

func arrayPool(c *domain.Container, em, name string) string {
	id := "cache.doctrine.orm." + em + "." + strings.TrimSuffix(name, "_cache")
	if !c.HasDefinition(id) {
		c.Register(id, ArrayAdapterClass).AddTag(domain.CachePoolTag, nil)
	}
	return id
}

func poolProvider(c *domain.Container, pool string) string {
	id := CacheProviderID(pool)
	if c.HasDefinition(id) {
		return id
	}
	def := c.Register(id, DoctrineProviderClass, domain.Ref(pool))
	def.Factory = &domain.Callable{Class: DoctrineProviderClass, Method: "wrap"}
	return id
}
