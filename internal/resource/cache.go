package resource

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupportedType is returned by LoadResource for types that cannot be loaded from a file.
var ErrUnsupportedType = errors.New("resource: type cannot be loaded from a file")

// NotFoundError reports a lookup for a name that is not cached.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource: %q not found", e.Name)
}

// DuplicateNameError reports an insert under a name that is already cached.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("resource: %q already exists", e.Name)
}

// Cache is an insertion-ordered list of resources keyed by unique name. Lookup is a linear
// scan; the cache holds tens of entries, not thousands.
type Cache struct {
	mu        sync.RWMutex
	resources []*Resource
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Insert appends r. A name already present is rejected and the cache is left unchanged.
func (c *Cache) Insert(r *Resource) error {
	if r == nil {
		return errors.New("resource: insert nil resource")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.find(r.Name) != nil {
		return &DuplicateNameError{Name: r.Name}
	}
	c.resources = append(c.resources, r)
	return nil
}

// Lookup returns the resource named name (exact, case-sensitive) or a *NotFoundError.
func (c *Cache) Lookup(name string) (*Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if r := c.find(name); r != nil {
		return r, nil
	}
	return nil, &NotFoundError{Name: name}
}

// Has reports whether name is cached.
func (c *Cache) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.find(name) != nil
}

func (c *Cache) find(name string) *Resource {
	for _, r := range c.resources {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Len returns the number of cached resources.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.resources)
}

// Count returns the number of cached resources of type t.
func (c *Cache) Count(t Type) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, r := range c.resources {
		if r.Type == t {
			n++
		}
	}
	return n
}

// Each calls fn for every resource in insertion order. fn must not call Insert.
func (c *Cache) Each(fn func(*Resource)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.resources {
		fn(r)
	}
}

// drain empties the cache and returns what it held.
func (c *Cache) drain() []*Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.resources
	c.resources = nil
	return out
}

// Stats summarizes the cache contents.
type Stats struct {
	Meshes    int
	Materials int
	Textures  int
	Vertices  int // over all meshes
	Indices   int // over all meshes
	Texels    int // over all textures
}

// Stats returns counts over the current contents.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var s Stats
	for _, r := range c.resources {
		switch r.Type {
		case Mesh:
			s.Meshes++
			s.Vertices += r.VertexCount
			s.Indices += r.Size
		case Material:
			s.Materials++
		case Texture:
			s.Textures++
			s.Texels += r.Width * r.Height
		}
	}
	return s
}
