package mutate

import (
	"context"
	"fmt"
	"io"
	"time"

	"followback/internal/cli/paramutils"
	"followback/internal/cli/render"
	"followback/internal/domain/batch"
	"followback/internal/domain/mutation"

	"github.com/spf13/cobra"
)

type cmdParams struct {
	Kind    mutation.Kind
	Targets []string
	Delay   time.Duration
}

var descriptions = map[mutation.Kind]struct {
	use, short string
	args       cobra.PositionalArgs
}{
	mutation.Follow:   {"follow USER...", "Follow users", cobra.MinimumNArgs(1)},
	mutation.Unfollow: {"unfollow USER...", "Unfollow users", cobra.MinimumNArgs(1)},
	mutation.Star:     {"star OWNER/REPO...", "Star repositories", cobra.MinimumNArgs(1)},
	mutation.Fork:     {"fork OWNER/REPO", "Fork a repository", cobra.ExactArgs(1)},
}

// New returns the command applying kind to every argument in order.
func New(kind mutation.Kind) *cobra.Command {
	d := descriptions[kind]
	cmd := &cobra.Command{
		Use:   d.use,
		Short: d.short,
		Args:  d.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd(cmd, kind, args)
		},
	}

	if kind != mutation.Fork {
		cmd.Flags().DurationP("delay", "d", 15*time.Second, "pause between requests")
	}

	return cmd
}

func runCmd(cmd *cobra.Command, kind mutation.Kind, args []string) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())

	rt, err := paramutils.LoadRuntime(cmd.Context(), flags, true)
	if err != nil {
		return err
	}

	params := &cmdParams{
		Kind:    kind,
		Targets: args,
		Delay:   flags.GetDurationOrDefault("delay", rt.Settings.Delay),
	}
	runner := batch.NewRunner(rt.Executor(), rt.Pacer)

	_, err = execute(cmd.Context(), runner, params, cmd.OutOrStdout())

	return err
}

func execute(
	ctx context.Context,
	runner *batch.Runner,
	params *cmdParams,
	out io.Writer,
) (*batch.Outcome, error) {
	targets, err := mutation.ParseTargets(params.Kind, params.Targets)
	if err != nil {
		return nil, err
	}

	o, err := runner.Run(ctx, params.Kind, targets, params.Delay, render.NewBatchProgress(out))
	if len(targets) > 1 {
		render.Outcome(out, o)
	}
	if err != nil {
		return o, err
	}
	if len(o.Failed) > 0 && len(o.Successful) == 0 {
		return o, fmt.Errorf("%s failed for every target", params.Kind)
	}

	return o, nil
}
