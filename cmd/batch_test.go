package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLotIDs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lots.txt")
	content := `# southern sites
37/G/DP8324

2/B/DP2
  3/C/DP3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lots, err := readLotIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"37/G/DP8324", "2/B/DP2", "3/C/DP3"}, lots)
}

func TestReadLotIDs_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := readLotIDs(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open lot list")
}
