package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "propqa version dev")
}

func TestSetVersion(t *testing.T) {
	original := version
	t.Cleanup(func() { version = original })

	SetVersion("1.2.3")
	out, err := runCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "propqa version 1.2.3")

	// An empty value must not clobber the current version.
	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}
