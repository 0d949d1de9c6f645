package cmd

import (
	"context"

	"github.com/compozy/releasetag/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	var cfg orchestrator.ReleaseTagConfig
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag the current commit for a release",
		Long: `Tag the commit at HEAD for a release.

The following tags are created, in order, at the same commit:
- the current branch name
- bom@<version> when a BOM version is given
- <product>@<version> for every product in the manifest

With --push the tags are pushed to the private remote and then to the public
one. If only the private push succeeds the session is recorded and can be
finished with push-remaining.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container) error {
				orch := c.orchestrator()
				orch.SetOutput(cmd.OutOrStdout())
				if err := orch.Execute(ctx, cfg); err != nil {
					return err
				}
				if cfg.DryRun && !cfg.CIOutput {
					c.printDryRunCommands(cmd.OutOrStdout())
				}
				return nil
			})
		},
	}
	addManifestFlags(cmd, &cfg.ManifestPath, &cfg.Bom, &cfg.Products)
	cmd.Flags().BoolVar(&cfg.Push, "push", false, "Push tags to both remotes after tagging")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Print git commands without running them")
	cmd.Flags().BoolVar(&cfg.CIOutput, "ci-output", false, "Output in CI-friendly format")
	return cmd
}

func addManifestFlags(cmd *cobra.Command, manifest, bom *string, products *[]string) {
	cmd.Flags().StringVar(manifest, "manifest", "", "YAML release manifest with bom and products")
	cmd.Flags().StringVar(bom, "bom", "", "BOM version (overrides the manifest)")
	cmd.Flags().StringArrayVar(products, "product", nil, "Product version as name@version (repeatable)")
}
