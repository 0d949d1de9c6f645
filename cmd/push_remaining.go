package cmd

import (
	"context"

	"github.com/compozy/releasetag/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newPushRemainingCmd() *cobra.Command {
	var cfg orchestrator.PushRemainingConfig
	cmd := &cobra.Command{
		Use:   "push-remaining",
		Short: "Push the tags of a partially pushed session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container) error {
				orch := c.orchestrator()
				orch.SetOutput(cmd.OutOrStdout())
				return orch.PushRemaining(ctx, cfg)
			})
		},
	}
	cmd.Flags().StringVar(&cfg.SessionID, "session-id", "", "Session to resume (uses latest if not specified)")
	cmd.Flags().BoolVar(&cfg.CIOutput, "ci-output", false, "Output in CI-friendly format")
	return cmd
}
