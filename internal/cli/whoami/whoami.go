package whoami

import (
	"context"
	"io"
	"time"

	"followback/internal/cli/paramutils"
	"followback/internal/cli/render"
	"followback/internal/domain/quota"
	"followback/internal/session"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var now = time.Now

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the token and show who it belongs to",
		Args:  cobra.NoArgs,
		RunE:  runCmd,
	}
}

func runCmd(cmd *cobra.Command, args []string) error {
	rt, err := paramutils.LoadRuntime(cmd.Context(), paramutils.NewFlagRepo(cmd.Flags()), true)
	if err != nil {
		return err
	}

	return execute(cmd.Context(), rt.Session, rt.Monitor, cmd.OutOrStdout())
}

func execute(ctx context.Context, s *session.Session, m *quota.Monitor, out io.Writer) error {
	if err := session.Require(s); err != nil {
		return err
	}
	render.Success(out, "logged in as %s", s.Identity)

	q, err := m.Check(ctx)
	if err != nil {
		render.Warning(out, "could not read the rate limit: %s", err)
		return nil
	}

	render.Info(out, "%s of %s core requests left, resets %s",
		humanize.Comma(int64(q.Core.Remaining)),
		humanize.Comma(int64(q.Core.Limit)),
		humanize.RelTime(q.Core.Reset, now(), "ago", "from now"))
	if q.CoreLow() {
		render.Warning(out, "core quota is low, batch operations may stall")
	}

	return nil
}
