package extension

import (
	"cmp"

	"go.trai.ch/ormwire/internal/core/domain"
)

// SecondLevelCacheID is the id of a second-level cache element of em.
func SecondLevelCacheID(em, element string) string {
	return domain.ORMElementID(em, "second_level_cache."+element)
}

// loadSecondLevelCache builds the region graph of em and enables it on config.
func loadSecondLevelCache(c *domain.Container, em *domain.EntityManagerConfig, config *domain.Definition) error {
	slc := em.SecondLevelCache
	id := func(element string) string { return SecondLevelCacheID(em.Name, element) }

	driverID, err := loadCacheDriver(c, em.Name, "second_level_cache.region_cache_driver", slc.RegionCacheDriver, "")
	if err != nil {
		return err
	}

	regionsID := id("regions_configuration")
	regions := c.Register(regionsID, classRef(slcRegionsConfigClassParam), slc.RegionLifetime, slc.RegionLockLifetime)

	factoryID := id("default_cache_factory")
	factory := c.Register(factoryID, cmp.Or(slc.Factory, classRef(slcCacheFactoryClassParam)),
		domain.Ref(regionsID),
		domain.Ref(driverID),
	)

	for _, region := range slc.Regions {
		regionID, err := loadRegion(c, em.Name, region)
		if err != nil {
			return err
		}
		regions.AddMethodCall("setLifetime", region.Name, region.Lifetime)
		if region.Type == domain.RegionFileLock {
			regions.AddMethodCall("setLockLifetime", region.Name, region.LockLifetime)
		}
		factory.AddMethodCall("setRegion", domain.Ref(regionID))
	}

	cacheConfigID := id("cache_configuration")
	cacheConfig := c.Register(cacheConfigID, classRef(slcCacheConfigClassParam))
	cacheConfig.AddMethodCall("setCacheFactory", domain.Ref(factoryID))
	cacheConfig.AddMethodCall("setRegionsConfiguration", domain.Ref(regionsID))

	if slc.LogEnabled {
		statisticsID := id("logger_statistics")
		c.Register(statisticsID, classRef(slcStatisticsClassParam))

		chainID := id("logger_chain")
		chain := c.Register(chainID, classRef(slcLoggerChainClassParam))
		chain.AddMethodCall("setLogger", "statistics", domain.Ref(statisticsID))
		for _, lg := range slc.Loggers {
			loggerID := id("logger." + lg.Name)
			c.SetAlias(loggerID, lg.Service)
			chain.AddMethodCall("setLogger", lg.Name, domain.Ref(loggerID))
		}
		cacheConfig.AddMethodCall("setCacheLogger", domain.Ref(chainID))
	}

	config.AddMethodCall("setSecondLevelCacheEnabled", true)
	config.AddMethodCall("setSecondLevelCacheConfiguration", domain.Ref(cacheConfigID))
	return nil
}

// loadRegion registers one region and returns the id the cache factory receives.
func loadRegion(c *domain.Container, em string, region domain.RegionConfig) (string, error) {
	regionID := SecondLevelCacheID(em, "region."+region.Name)
	if region.Type == domain.RegionService {
		c.SetAlias(regionID, region.Service)
		return regionID, nil
	}

	driverID, err := loadCacheDriver(c, em, "second_level_cache.region."+region.Name+"_driver", region.CacheDriver, "")
	if err != nil {
		return "", err
	}
	c.Register(regionID, classRef(slcDefaultRegionClassParam), region.Name, domain.Ref(driverID), region.Lifetime)
	if region.Type != domain.RegionFileLock {
		return regionID, nil
	}

	lockID := regionID + "_filelock"
	c.Register(lockID, classRef(slcFileLockClassParam), domain.Ref(regionID), region.LockPath, region.LockLifetime)
	return lockID, nil
}
