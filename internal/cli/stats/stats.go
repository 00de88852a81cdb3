// Package stats holds the read-only user and repository commands.
package stats

import (
	"context"
	"io"

	"followback/internal/cli/paramutils"
	"followback/internal/cli/render"
	"followback/internal/domain/mutation"
	"followback/internal/domain/profile"
	"followback/internal/domain/relation"

	"github.com/spf13/cobra"
)

func NewUser() *cobra.Command {
	return &cobra.Command{
		Use:   "user [USER]",
		Short: "Show profile statistics for a user, yourself by default",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runUser,
	}
}

func NewRepo() *cobra.Command {
	return &cobra.Command{
		Use:   "repo OWNER/REPO",
		Short: "Show statistics for a repository",
		Args:  cobra.ExactArgs(1),
		RunE:  runRepo,
	}
}

func runUser(cmd *cobra.Command, args []string) error {
	id := paramutils.ParseIDArg(args)

	rt, err := paramutils.LoadRuntime(cmd.Context(), paramutils.NewFlagRepo(cmd.Flags()), id == "")
	if err != nil {
		return err
	}
	if id == "" {
		id = string(rt.Session.Identity)
	}

	_, err = executeUser(cmd.Context(), rt.Client, relation.Identity(id), cmd.OutOrStdout())

	return err
}

func runRepo(cmd *cobra.Command, args []string) error {
	rt, err := paramutils.LoadRuntime(cmd.Context(), paramutils.NewFlagRepo(cmd.Flags()), false)
	if err != nil {
		return err
	}

	_, err = executeRepo(cmd.Context(), rt.Client, args[0], cmd.OutOrStdout())

	return err
}

func executeUser(ctx context.Context, api profile.UserAPI, id relation.Identity, out io.Writer) (*profile.UserReport, error) {
	r, err := profile.UserStats(ctx, api, id)
	if err != nil {
		return nil, err
	}
	render.User(out, r)

	return r, nil
}

func executeRepo(ctx context.Context, api profile.RepositoryAPI, name string, out io.Writer) (*profile.RepositoryReport, error) {
	t, err := mutation.ParseRepository(name)
	if err != nil {
		return nil, err
	}

	r, err := profile.RepositoryStats(ctx, api, t.Owner, t.Repo)
	if err != nil {
		return nil, err
	}
	render.Repository(out, r)

	return r, nil
}
