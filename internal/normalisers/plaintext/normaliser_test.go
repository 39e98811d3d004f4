package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliser_Extensions(t *testing.T) {
	n := New()
	assert.Equal(t, []string{".txt", ".md"}, n.Extensions())
}

func TestNormaliser_Normalise(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proposal.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\r\nline two\rline three\n"), 0600))

	content, err := New().Normalise(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\nline three\n", content)
}

func TestNormaliser_Normalise_MissingFile(t *testing.T) {
	_, err := New().Normalise(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))

	assert.Error(t, err)
}
