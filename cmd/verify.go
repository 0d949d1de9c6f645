package cmd

import (
	"context"

	"github.com/compozy/releasetag/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var cfg orchestrator.VerifyConfig
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the release tags are visible on the public GitHub mirror",
		Long: `Check that the release tags for the current commit exist on the public GitHub
mirror. Requires github_token (or GITHUB_TOKEN) and the mirror owner/repo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container) error {
				orch := c.orchestrator()
				orch.SetOutput(cmd.OutOrStdout())
				return orch.Verify(ctx, cfg)
			})
		},
	}
	addManifestFlags(cmd, &cfg.ManifestPath, &cfg.Bom, &cfg.Products)
	cmd.Flags().BoolVar(&cfg.CIOutput, "ci-output", false, "Output in CI-friendly format")
	return cmd
}
