package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	t.Run("Should print build information with fallbacks", func(t *testing.T) {
		cmd := newVersionCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Version:\tdev\n")
		assert.Contains(t, out.String(), "Commit:\tunknown\n")
	})
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, "v1.0.0", safeValue(" v1.0.0 ", "dev"))
	assert.Equal(t, "dev", safeValue("  ", "dev"))
}

func TestTagCmdFlags(t *testing.T) {
	t.Run("Should accept repeated products", func(t *testing.T) {
		cmd := newTagCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"--bom", "1.2.3",
			"--product", "firebase-database@20.1.0",
			"--product", "firebase-firestore@24.0.0",
			"--push",
		}))
		products, err := cmd.Flags().GetStringArray("product")
		require.NoError(t, err)
		assert.Equal(t, []string{"firebase-database@20.1.0", "firebase-firestore@24.0.0"}, products)
		push, err := cmd.Flags().GetBool("push")
		require.NoError(t, err)
		assert.True(t, push)
	})
	t.Run("Should reject positional arguments", func(t *testing.T) {
		cmd := newTagCmd()
		assert.Error(t, cmd.Args(cmd, []string{"extra"}))
	})
}

func TestPushRemainingCmdFlags(t *testing.T) {
	cmd := newPushRemainingCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--session-id", "abc"}))
	id, err := cmd.Flags().GetString("session-id")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}
