package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/mftree/internal/genealogy"
	"github.com/ppiankov/mftree/internal/model"
)

func TestKey(t *testing.T) {
	cfg := model.DefaultConfig().Tree.Genealogy()

	k1 := Key(cfg, 5)
	assert.Equal(t, k1, Key(cfg, 5))
	assert.NotEqual(t, k1, Key(cfg, 6))

	cfg.Seed = "other"
	assert.NotEqual(t, k1, Key(cfg, 5))
	assert.Regexp(t, `^mftree:v1:[0-9a-f]{16}:5$`, Key(cfg, genealogy.Generation(5)))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	value := []byte("tree")
	require.NoError(t, c.Set("k", value, 0))
	value[0] = 'X'

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("tree"), got)

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestDiskCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set("mftree:v1:abc:5", []byte("tree"), 0))

	got, ok := c.Get("mftree:v1:abc:5")
	require.True(t, ok)
	assert.Equal(t, []byte("tree"), got)

	now = now.Add(2 * time.Hour)
	_, ok = c.Get("mftree:v1:abc:5")
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "expired entry should be removed")
}

func TestDiskCache_DeleteMissing(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)
	assert.NoError(t, c.Delete("nothing"))
}

func TestDiskCache_PurgeRemovesOnlyEntries(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	require.NoError(t, c.Set("mftree:v1:a:3", []byte("a"), 0))
	require.NoError(t, c.Set("mftree:v1:b:3", []byte("b"), 0))

	keep := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(keep, []byte("keep"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.cache"), 0755))

	removed, err := c.Purge()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, ok := c.Get("mftree:v1:a:3")
	assert.False(t, ok)
	assert.FileExists(t, keep)
	assert.DirExists(t, filepath.Join(dir, "sub.cache"))

	removed, err = NewDiskCache(filepath.Join(dir, "missing"), 0).Purge()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	writer := NewLayeredCache(time.Minute, dir, time.Hour)
	require.NoError(t, writer.Set("k", []byte("tree"), 0))

	reader := NewLayeredCache(time.Minute, dir, time.Hour)
	_, ok := reader.memory.Get("k")
	require.False(t, ok)

	got, ok := reader.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("tree"), got)

	got, ok = reader.memory.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("tree"), got)
}

func TestNew(t *testing.T) {
	assert.Nil(t, New(model.CacheConfig{Enabled: false}))
	assert.IsType(t, &MemoryCache{}, New(model.CacheConfig{Enabled: true}))
	assert.IsType(t, &LayeredCache{}, New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}))
}
