package content

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCollection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2024-01-01.md"), []byte("---\ntitle: New Year Issue\ndate: 2024-01-01\n---\n# Ignored heading\nBody"))
	writeFile(t, filepath.Join(dir, "2024-02-01.md"), []byte("Intro paragraph\n\n## February Roundup\n\nMore"))
	writeFile(t, filepath.Join(dir, "2024-03-01.md"), []byte("no headings here"))
	writeFile(t, filepath.Join(dir, "2024-04-01.md"), []byte{0xC3, 0x28})

	entries, err := IndexCollection(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "New Year Issue", entries[0].Title)
	assert.Equal(t, "2024-01-01", entries[0].Date)
	assert.Equal(t, "- 2024-01-01.md (2024-01-01): New Year Issue", entries[0].String())

	assert.Equal(t, "February Roundup", entries[1].Title)
	assert.Empty(t, entries[1].Date)

	assert.Empty(t, entries[2].Title)
	assert.Equal(t, "- 2024-03-01.md", entries[2].String())

	assert.ErrorIs(t, entries[3].Err, ErrReadFailure)
	assert.Contains(t, entries[3].String(), "[Error reading file:")
}

func TestIndexCollection_MissingDirectory(t *testing.T) {
	_, err := IndexCollection(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}
