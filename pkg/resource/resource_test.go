package resource_test

import (
	"sync"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/pkg/resource"
)

func TestNormalID_FastMatch(t *testing.T) {
	t.Parallel()

	id := resource.NewNormalID("survival", "Survival mode")
	assert.True(t, id.FastMatch(xxhash.Sum64String("survival")))
	assert.False(t, id.FastMatch(xxhash.Sum64String("creative")))
	assert.True(t, id.Matches("survival", xxhash.Sum64String("survival")))
}

func TestNormalID_ContentHash(t *testing.T) {
	t.Parallel()

	a := resource.NewNormalID("stone", "")
	b := resource.NewNormalID("stone", "")
	c := resource.NewNormalID("stone", "a block")

	assert.Equal(t, a.ContentHash(0, 5), b.ContentHash(0, 5))
	assert.NotEqual(t, a.ContentHash(0, 5), a.ContentHash(0, 4))
	assert.NotEqual(t, a.ContentHash(0, 5), c.ContentHash(0, 5))

	// The cached state is copied, never advanced.
	assert.Equal(t, a.ContentHash(1, 2), a.ContentHash(1, 2))
}

func TestNormalID_ConcurrentHash(t *testing.T) {
	t.Parallel()

	id := resource.NewNormalID("diamond", "")
	want := xxhash.Sum64String("diamond")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, id.NameHash())
		}()
	}
	wg.Wait()
}

func TestTable_Find(t *testing.T) {
	t.Parallel()

	table := resource.NewTable("blocks",
		&resource.BlockID{NamespaceID: resource.NamespaceID{NormalID: resource.NormalID{Name: "stone"}}},
		&resource.BlockID{NamespaceID: resource.NamespaceID{NormalID: resource.NormalID{Name: "lamp"}, Namespace: "mod"}},
	)

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"plain", "stone", "stone", true},
		{"default namespace", "minecraft:stone", "stone", true},
		{"wrong namespace", "mod:stone", "", false},
		{"custom namespace", "mod:lamp", "lamp", true},
		{"missing", "dirt", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, ok := table.FindNamespaced(tt.input)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, e.Normal().Name)
			}
		})
	}
}

func TestTable_NilSafe(t *testing.T) {
	t.Parallel()

	var table *resource.Table
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Names())
	_, ok := table.Find("x")
	assert.False(t, ok)
}

func TestBlockState(t *testing.T) {
	t.Parallel()

	block := &resource.BlockID{
		NamespaceID: resource.NamespaceID{NormalID: resource.NormalID{Name: "log"}},
		States: []resource.BlockState{
			{Key: "axis", Values: []string{"x", "y", "z"}},
			{Key: "age"},
		},
	}

	axis, ok := block.State("axis")
	require.True(t, ok)
	assert.True(t, axis.HasValue("y"))
	assert.False(t, axis.HasValue("w"))

	age, ok := block.State("age")
	require.True(t, ok)
	assert.True(t, age.HasValue("anything"))

	_, ok = block.State("color")
	assert.False(t, ok)
	assert.Equal(t, "minecraft:log", block.FullName())
}
