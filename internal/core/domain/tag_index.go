package domain

import (
	"maps"
	"slices"
)

// TaggedService is one (service, attributes) pair found under a tag.
type TaggedService struct {
	ID         string
	Attributes Attributes
}

// TagIndex maps tag names to their occurrences in registration order.
// It is a snapshot: later changes to the container are not reflected.
type TagIndex struct {
	byTag map[string][]TaggedService
}

// BuildTagIndex scans the container and records every tag occurrence.
func BuildTagIndex(c *Container) TagIndex {
	idx := TagIndex{byTag: make(map[string][]TaggedService)}
	for id, def := range c.Definitions() {
		for _, t := range def.Tags {
			idx.byTag[t.Name] = append(idx.byTag[t.Name], TaggedService{ID: id, Attributes: t.Attributes})
		}
	}
	return idx
}

// Tagged returns a copy of the occurrences of tag.
func (t TagIndex) Tagged(tag string) []TaggedService {
	return slices.Clone(t.byTag[tag])
}

// Tags returns the indexed tag names, sorted.
func (t TagIndex) Tags() []string {
	return slices.Sorted(maps.Keys(t.byTag))
}
