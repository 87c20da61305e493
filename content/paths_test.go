package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	t.Run("NeitherExists", func(t *testing.T) {
		root := t.TempDir()
		for i := 0; i < 3; i++ {
			assert.Equal(t, filepath.Join(root, PrimaryDirName), ResolveRoot(root))
		}
	})

	t.Run("PrimaryExists", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, PrimaryDirName), 0o755))
		require.NoError(t, os.Mkdir(filepath.Join(root, AlternateDirName), 0o755))
		assert.Equal(t, filepath.Join(root, PrimaryDirName), ResolveRoot(root))
	})

	t.Run("AlternateOnly", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, AlternateDirName), 0o755))
		assert.Equal(t, filepath.Join(root, AlternateDirName), ResolveRoot(root))
	})

	t.Run("FileIsNotADirectory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, PrimaryDirName), []byte("x"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(root, AlternateDirName), 0o755))
		assert.Equal(t, filepath.Join(root, AlternateDirName), ResolveRoot(root))
	})

	t.Run("CustomCandidates", func(t *testing.T) {
		root := t.TempDir()
		assert.Equal(t, filepath.Join(root, "docs"), ResolveRoot(root, "docs", "doc"))
	})
}

func TestLayoutResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, AlternateDirName), 0o755))

	paths := Layout{ProjectRoot: root}.Resolve()
	base := filepath.Join(root, AlternateDirName)
	assert.Equal(t, base, paths.Root)
	assert.Equal(t, filepath.Join(base, "Editorial Guidelines.md"), paths.Guidelines)
	assert.Equal(t, filepath.Join(base, "Briefing.md"), paths.Briefing)
	assert.Equal(t, filepath.Join(base, "past_newsletter"), paths.Newsletters)
}

func TestFindProjectRoot(t *testing.T) {
	cwd := t.TempDir()
	exeDir := t.TempDir()

	t.Run("FallsBackToLaterRoot", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(exeDir, AlternateDirName), 0o755))
		assert.Equal(t, exeDir, FindProjectRoot([]string{cwd, exeDir}))
	})

	t.Run("EarlierRootWins", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(cwd, PrimaryDirName), 0o755))
		assert.Equal(t, cwd, FindProjectRoot([]string{cwd, exeDir}))
	})

	t.Run("NoneFound", func(t *testing.T) {
		empty := t.TempDir()
		assert.Equal(t, empty, FindProjectRoot([]string{empty, t.TempDir()}, "content"))
		assert.Equal(t, ".", FindProjectRoot(nil))
	})
}
