package check

import (
	"context"
	"io"

	"followback/internal/cli/paramutils"
	"followback/internal/cli/render"
	"followback/internal/domain/relation"

	"github.com/spf13/cobra"
)

type cmdParams struct {
	Subject relation.Identity
	Show    string
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [USER]",
		Short: "Show who follows you back",
		Long: `Loads the followers and following of a user (yourself by default) and
splits them into mutual follows, users not following back and fans.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCmd,
	}

	cmd.Flags().StringP("show", "s", "", "list a partition (mutual, not-following-back, fans)")

	return cmd
}

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())

	rt, err := paramutils.LoadRuntime(cmd.Context(), flags, true)
	if err != nil {
		return err
	}

	params := &cmdParams{
		Subject: rt.Session.Identity,
		Show:    flags.GetStringOrDefault("show", ""),
	}
	if id := paramutils.ParseIDArg(args); id != "" {
		params.Subject = relation.Identity(id)
	}

	f := rt.Fetcher()
	f.Observer = render.NewFetchProgress(cmd.ErrOrStderr())

	_, err = execute(cmd.Context(), f, params, cmd.OutOrStdout())

	return err
}

func execute(
	ctx context.Context,
	f *relation.Fetcher,
	params *cmdParams,
	out io.Writer,
) (*relation.Analysis, error) {
	if params.Show != "" {
		// fail before any request
		if _, err := (&relation.Partition{}).Select(params.Show); err != nil {
			return nil, err
		}
	}

	a, err := relation.Analyze(ctx, f, params.Subject)
	if err != nil {
		return nil, err
	}

	render.Analysis(out, a)

	if params.Show != "" {
		ids, _ := a.Partition.Select(params.Show)
		render.Identities(out, params.Show, ids)
	}

	return a, nil
}
