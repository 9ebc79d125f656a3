package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/uidocs/pkg/docs"
	"github.com/platinummonkey/uidocs/pkg/storage"
)

// ErrBrokenLinks is returned by check --strict when links are broken
var ErrBrokenLinks = errors.New("broken documentation links")

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse, render and validate without writing output",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	cmd.Flags().Bool("strict", false, "Fail when links are broken")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	env, err := loadRunEnv(cmd)
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")

	res, err := docs.NewGenerator(env.cfg, env.log, env.metrics).Run(cmd.Context(), storage.NewMemoryStorage())
	if err != nil {
		return err
	}
	if err := env.flushMetrics(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "%s: %s %s\n", warning.File, warning.Link, warning.Reason)
	}
	fmt.Fprintf(w, "Checked %d docs, %d broken links\n", len(res.Docs), len(res.Warnings))

	if strict && len(res.Warnings) > 0 {
		return fmt.Errorf("%w: %d", ErrBrokenLinks, len(res.Warnings))
	}
	return nil
}
