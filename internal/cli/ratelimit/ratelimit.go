package ratelimit

import (
	"context"
	"io"
	"time"

	"followback/internal/cli/paramutils"
	"followback/internal/cli/render"
	"followback/internal/domain/quota"

	"github.com/spf13/cobra"
)

var now = time.Now

func New() *cobra.Command {
	return &cobra.Command{
		Use:     "ratelimit",
		Aliases: []string{"quota"},
		Short:   "Show the remaining API quota",
		Args:    cobra.NoArgs,
		RunE:    runCmd,
	}
}

func runCmd(cmd *cobra.Command, args []string) error {
	rt, err := paramutils.LoadRuntime(cmd.Context(), paramutils.NewFlagRepo(cmd.Flags()), false)
	if err != nil {
		return err
	}

	_, err = execute(cmd.Context(), rt.Monitor, cmd.OutOrStdout())

	return err
}

func execute(ctx context.Context, m *quota.Monitor, out io.Writer) (*quota.State, error) {
	s, err := m.Check(ctx)
	if err != nil {
		return nil, err
	}
	render.Quota(out, s, now())

	return s, nil
}
