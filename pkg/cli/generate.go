package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/uidocs/pkg/docs"
	"github.com/platinummonkey/uidocs/pkg/storage"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the documentation site",
		Long: `Generate the documentation site.

Reads every configured section, renders one partial per documented component
and writes js/docs-setup.json, ptore2e/scenarios.spec.js and index.html next
to the partials. Broken links are reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().StringP("output", "o", "", "Output directory (overrides outputDir)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	env, err := loadRunEnv(cmd)
	if err != nil {
		return err
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		env.cfg.OutputDir = output
	}

	ctx := cmd.Context()
	out, err := storage.New(ctx, env.cfg.StorageConfig())
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}

	res, err := docs.NewGenerator(env.cfg, env.log, env.metrics).Run(ctx, out)
	if err != nil {
		return err
	}
	if err := env.flushMetrics(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d pages in %s (%d files, %s)\n",
		len(res.Pages), out.Location(), res.Output.Files, humanize.Bytes(uint64(res.Output.Bytes)))
	if len(res.Warnings) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d broken links\n", len(res.Warnings))
	}
	return nil
}
