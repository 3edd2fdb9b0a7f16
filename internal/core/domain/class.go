package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Interfaces the entity listener pass checks resolvers against.
const (
	EntityListenerResolverInterface        = `Doctrine\ORM\Mapping\EntityListenerResolver`
	EntityListenerServiceResolverInterface = `Doctrine\Bundle\DoctrineBundle\Mapping\EntityListenerServiceResolver`
)

// Bundled classes the passes generate or recognize.
const (
	ContainerResolverClass          = `Doctrine\Bundle\DoctrineBundle\Mapping\ContainerEntityListenerResolver`
	ServiceLocatorClass             = `Symfony\Component\DependencyInjection\ServiceLocator`
	RegexSchemaAssetFilterClass     = `Doctrine\Bundle\DoctrineBundle\Dbal\RegexSchemaAssetFilter`
	BlacklistSchemaAssetFilterClass = `Doctrine\Bundle\DoctrineBundle\Dbal\BlacklistSchemaAssetFilter`
)

// ClassInfo is what the catalog knows about a runtime class.
type ClassInfo struct {
	Name       string
	Parent     string
	Interfaces []string
	Methods    []string
}

// DefineClass adds or replaces a catalog entry.
func (c *Container) DefineClass(info ClassInfo) {
	c.classes[info.Name] = info
}

// Class returns the catalog entry for name.
func (c *Container) Class(name string) (ClassInfo, bool) {
	info, ok := c.classes[name]
	return info, ok
}

// Implements reports whether class, or one of its catalogued ancestors, declares iface.
func (c *Container) Implements(class, iface string) bool {
	return c.walkClass(class, func(info ClassInfo) bool {
		return info.Name == iface || slices.Contains(info.Interfaces, iface)
	})
}

// HasMethod reports whether class, or one of its catalogued ancestors, declares method.
func (c *Container) HasMethod(class, method string) bool {
	return c.walkClass(class, func(info ClassInfo) bool {
		return slices.Contains(info.Methods, method)
	})
}

func (c *Container) walkClass(class string, match func(ClassInfo) bool) bool {
	seen := make(map[string]bool)
	for class != "" && !seen[class] {
		seen[class] = true
		info, ok := c.classes[class]
		if !ok {
			return false
		}
		if match(info) {
			return true
		}
		class = info.Parent
	}
	return false
}

// ResolveClass returns the concrete class of the service id, following aliases,
// parent definitions and a whole-string class parameter.
func (c *Container) ResolveClass(id string) (string, error) {
	target, err := c.Resolve(id)
	if err != nil {
		return "", err
	}

	seen := make(map[string]bool)
	current := target
	for {
		if seen[current] {
			return "", zerr.With(ErrParentCycle, "service_id", target)
		}
		seen[current] = true

		def, ok := c.definitions[current]
		if !ok {
			return "", zerr.With(ErrParentNotFound, "parent", current)
		}
		if def.Class != "" || def.Parent == "" {
			return c.ResolveString(def.Class)
		}
		current = def.Parent
	}
}

// ResolveString replaces a whole-string parameter placeholder with its value.
func (c *Container) ResolveString(s string) (string, error) {
	name, ok := ParameterName(s)
	if !ok {
		return s, nil
	}
	v, ok := c.parameters[name]
	if !ok {
		return "", zerr.With(ErrParameterNotFound, "parameter", name)
	}
	str, _ := v.(string)
	return str, nil
}
