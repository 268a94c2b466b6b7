package resource

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheInsertLookup(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Insert(&Resource{Type: Mesh, Name: "CubeMesh", Size: 36}))
	require.NoError(t, c.Insert(&Resource{Type: Material, Name: "Lit", Program: 7}))

	r, err := c.Lookup("CubeMesh")
	require.NoError(t, err)
	assert.Equal(t, 36, r.Size)

	// case-sensitive
	_, err = c.Lookup("cubemesh")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "cubemesh", nf.Name)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Count(Mesh))
	assert.Equal(t, 1, c.Count(Material))
	assert.Equal(t, 0, c.Count(Texture))
}

func TestCacheRejectsDuplicate(t *testing.T) {
	c := NewCache()
	first := &Resource{Type: Mesh, Name: "A", Size: 3}
	require.NoError(t, c.Insert(first))

	err := c.Insert(&Resource{Type: Texture, Name: "A"})
	var dup *DuplicateNameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "A", dup.Name)

	r, err := c.Lookup("A")
	require.NoError(t, err)
	assert.Same(t, first, r)
	assert.Equal(t, 1, c.Len())
}

func TestCacheEachOrder(t *testing.T) {
	c := NewCache()
	for _, n := range []string{"c", "a", "b"} {
		require.NoError(t, c.Insert(&Resource{Name: n}))
	}
	var names []string
	c.Each(func(r *Resource) { names = append(names, r.Name) })
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestCacheConcurrentReaders(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Insert(&Resource{Name: "shared"}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				_, err := c.Lookup("shared")
				assert.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 50; i++ {
		_ = c.Insert(&Resource{Name: string(rune('A' + i))})
	}
	wg.Wait()
	assert.Equal(t, 51, c.Len())
}

func TestTypeStrings(t *testing.T) {
	assert.Equal(t, "Mesh", Mesh.String())
	assert.Equal(t, "Material", Material.String())
	assert.Equal(t, "Texture", Texture.String())

	ty, err := ParseType("texture")
	require.NoError(t, err)
	assert.Equal(t, Texture, ty)
	_, err = ParseType("sound")
	assert.Error(t, err)
}

func TestCacheStats(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Insert(&Resource{Type: Mesh, Name: "a", VertexCount: 24, Size: 36}))
	require.NoError(t, c.Insert(&Resource{Type: Mesh, Name: "b", VertexCount: 64, Size: 336}))
	require.NoError(t, c.Insert(&Resource{Type: Texture, Name: "t", Width: 4, Height: 2}))
	require.NoError(t, c.Insert(&Resource{Type: Material, Name: "m"}))

	assert.Equal(t, Stats{Meshes: 2, Materials: 1, Textures: 1, Vertices: 88, Indices: 372, Texels: 8}, c.Stats())
}
