package clean

import (
	"context"
	"fmt"
	"io"
	"time"

	"followback/internal/cli/paramutils"
	"followback/internal/cli/render"
	"followback/internal/cli/utils"
	"followback/internal/domain/batch"
	"followback/internal/domain/mutation"
	"followback/internal/domain/relation"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	promptMultiSelect = utils.PromptMultiSelect
	promptConfirm     = utils.PromptConfirm
)

type cmdParams struct {
	Subject relation.Identity
	All     bool
	Select  bool
	Limit   int
	Delay   time.Duration
	Yes     bool
	Force   bool
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Unfollow users who do not follow you back",
		Long: `Finds the users you follow who do not follow you back and unfollows them
one at a time, waiting between each request.`,
		Args: cobra.NoArgs,
		RunE: runCmd,
	}

	cmd.Flags().Bool("all", false, "unfollow every user not following back")
	cmd.Flags().Bool("select", false, "pick the users to unfollow interactively")
	cmd.Flags().IntP("limit", "n", batch.RecommendedUnfollowCap, "unfollow at most this many users")
	cmd.Flags().DurationP("delay", "d", 15*time.Second, "pause between requests")
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	cmd.Flags().Bool("force", false, "unfollow even when the followers list could not be loaded completely, always asks first")

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
		All:     flags.GetBoolOrDefault("all", false),
		Select:  flags.GetBoolOrDefault("select", false),
		Limit:   flags.GetIntOrDefault("limit", rt.Settings.Cap),
		Delay:   flags.GetDurationOrDefault("delay", rt.Settings.Delay),
		Yes:     flags.GetBoolOrDefault("yes", false),
		Force:   flags.GetBoolOrDefault("force", false),
	}

	f := rt.Fetcher()
	f.Observer = render.NewFetchProgress(cmd.ErrOrStderr())
	runner := batch.NewRunner(rt.Executor(), rt.Pacer)

	_, err = execute(cmd.Context(), f, runner, params, cmd.OutOrStdout())

	return err
}

func chooseTargets(candidates []relation.Identity, params *cmdParams) ([]relation.Identity, error) {
	switch {
	case params.Select:
		options := relation.Collection(candidates).Strings()
		picked, err := promptMultiSelect("Unfollow", options)
		if err != nil {
			return nil, err
		}
		return relation.NewCollection(picked...), nil
	case params.All:
		return candidates, nil
	case params.Limit > 0 && len(candidates) > params.Limit:
		return candidates[:params.Limit], nil
	}

	return candidates, nil
}

func execute(
	ctx context.Context,
	f *relation.Fetcher,
	runner *batch.Runner,
	params *cmdParams,
	out io.Writer,
) (*batch.Outcome, error) {
	a, err := relation.Analyze(ctx, f, params.Subject)
	if err != nil {
		return nil, err
	}
	render.Analysis(out, a)

	candidates, partial := a.UnfollowCandidates()
	if partial != nil {
		if !params.Force {
			return nil, errors.Wrap(partial, "refusing to unfollow, rerun later or pass --force")
		}
		render.Warning(out, "%s", partial)
	}
	if len(candidates) == 0 {
		render.Success(out, "everyone you follow follows you back")
		return nil, nil
	}

	targets, err := chooseTargets(candidates, params)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		render.Info(out, "nothing selected")
		return nil, nil
	}

	if len(targets) > batch.RecommendedUnfollowCap {
		render.Warning(out, "unfollowing more than %d users in one session is not recommended", batch.RecommendedUnfollowCap)
	}

	// --yes does not cover a partial followers list
	if !params.Yes || partial != nil {
		ok, err := promptConfirm(fmt.Sprintf(
			"Unfollow %d users, waiting %s between each?", len(targets), params.Delay))
		if err != nil {
			return nil, err
		}
		if !ok {
			render.Info(out, "aborted")
			return nil, nil
		}
	}

	o, err := runner.Run(ctx, mutation.Unfollow, mutation.UserTargets(targets), params.Delay, render.NewBatchProgress(out))
	render.Outcome(out, o)

	return o, err
}
