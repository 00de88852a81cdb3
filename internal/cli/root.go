package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	checkcmd "followback/internal/cli/check"
	cleancmd "followback/internal/cli/clean"
	mutatecmd "followback/internal/cli/mutate"
	ratelimitcmd "followback/internal/cli/ratelimit"
	statscmd "followback/internal/cli/stats"
	whoamicmd "followback/internal/cli/whoami"
	"followback/internal/cli/utils"
	"followback/internal/domain/mutation"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "followback",
		Short: "followback keeps your GitHub follow graph tidy",
		Long: `Command-line utility that finds who does not follow you back and
follows, unfollows, stars or forks in rate-limit friendly batches.`,
		Version:       fmt.Sprintf("%v, commit %v, built at %v", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		whoamicmd.New(),
		ratelimitcmd.New(),
		checkcmd.New(),
		cleancmd.New(),
		mutatecmd.New(mutation.Follow),
		mutatecmd.New(mutation.Unfollow),
		mutatecmd.New(mutation.Star),
		mutatecmd.New(mutation.Fork),
		statscmd.NewUser(),
		statscmd.NewRepo(),
	)

	rootCmd.PersistentFlags().String("token", "", "GitHub personal access token, overrides configuration")
	rootCmd.PersistentFlags().String("config", "", "config path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	return rootCmd
}

// Execute runs the command line until it finishes or the process is
// interrupted. Errors from any command end up here and set the exit code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		utils.Exit(os.Stderr, err)
	}
}
