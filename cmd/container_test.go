package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/compozy/releasetag/internal/config"
	"github.com/compozy/releasetag/internal/domain"
	"github.com/compozy/releasetag/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestContainer(t *testing.T) *container {
	t.Helper()
	shell, err := service.NewShellService(t.TempDir())
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	cfg.PublicRemote = "mirror"
	return &container{cfg: cfg, log: zap.NewNop(), shellSvc: shell}
}

func TestContainer_DryRunTagRepository(t *testing.T) {
	session := domain.Session{Branch: "release-1.2", Commit: "0123456789abcdef"}
	t.Run("Should list the commands a dry run would execute", func(t *testing.T) {
		c := newTestContainer(t)
		tagRepo := c.newTagRepository(session, true)
		ctx := context.Background()
		require.NoError(t, tagRepo.TagReleaseVersion(ctx))
		require.NoError(t, tagRepo.TagBomVersion(ctx, "1.2.3"))
		require.NoError(t, tagRepo.PushCreatedTags(ctx))
		require.NotNil(t, c.dryRunShell)
		assert.Equal(t, c.shellSvc.WorkDir(), c.dryRunShell.WorkDir())
		out := &bytes.Buffer{}
		c.printDryRunCommands(out)
		assert.Equal(t, "Dry run, nothing was executed. Commands:\n"+
			"  git tag release-1.2 0123456789abcdef\n"+
			"  git tag bom@1.2.3 0123456789abcdef\n"+
			"  git push origin --tags\n"+
			"  git push mirror --tags\n", out.String())
	})
	t.Run("Should print nothing for real runs", func(t *testing.T) {
		c := newTestContainer(t)
		c.newTagRepository(session, false)
		out := &bytes.Buffer{}
		c.printDryRunCommands(out)
		assert.Empty(t, out.String())
	})
}
