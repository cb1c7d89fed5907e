package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/twctl/twctl/internal/apperrors"
	"github.com/twctl/twctl/internal/inspect"
	"github.com/twctl/twctl/internal/logger"
	"github.com/twctl/twctl/internal/render"
	"github.com/twctl/twctl/internal/trusthub"
)

func (a *app) client() *trusthub.Client {
	return trusthub.New(trusthub.Config{
		AccountSID:   a.cfg.Twilio.AccountSID,
		AuthToken:    a.cfg.Twilio.AuthToken,
		TrustHubURL:  a.cfg.API.TrustHubURL,
		MessagingURL: a.cfg.API.MessagingURL,
		CoreURL:      a.cfg.API.CoreURL,
		Timeout:      a.cfg.HTTP.Timeout,
	}, trusthub.WithLogger(logger.Log.Named("trusthub")))
}

func (a *app) inspector() *inspect.Inspector {
	return inspect.New(a.client(), a.cfg.ListLimit)
}

func (a *app) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "inspect <profile-sid>",
		Short:       "Show a customer profile with its assignments, brands, campaigns and services",
		Args:        usageArgs(cobra.ExactArgs(1)),
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.inspector().Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.Report(report))
			if failures := report.Failures(); len(failures) > 0 {
				return fmt.Errorf("%s unavailable: %w", plural(len(failures), "section"), apperrors.ErrPartial)
			}
			return nil
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <profile-sid>",
		Short: "Delete a customer profile after typed confirmation",
		Long: `delete shows the profile, then reads one line from stdin. The profile is
deleted only if that line is exactly its friendly name (or its SID when it has
no name). Anything else cancels without contacting Twilio again.`,
		Args:        usageArgs(cobra.ExactArgs(1)),
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			preview, err := c.PreviewDelete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.DeletePreview(preview))

			typed, err := bufio.NewReader(a.stdin).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("reading confirmation: %w", err)
			}

			err = c.DeleteProfile(cmd.Context(), preview, typed)
			if apperrors.IsCancelled(err) {
				fmt.Fprintln(a.stdout, "Deletion cancelled. Nothing was changed.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Deleted customer profile %s.\n", preview.Profile().SID)
			return nil
		},
	}
}

func (a *app) listProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "list-profiles",
		Short:       "List every TrustHub customer profile on the account",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := a.client().ListProfiles(cmd.Context(), a.cfg.ListLimit)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.Profiles(profiles))
			return nil
		},
	}
}

func (a *app) healthCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "health-check",
		Short:       "Score the account's customer profiles by approval status",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.inspector().HealthCheck(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.Health(h))
			return nil
		},
	}
}

func (a *app) subaccountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "subaccounts",
		Short:       "Show the main account and its subaccounts with profile counts",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ov, err := a.inspector().Subaccounts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.Accounts(ov))
			return nil
		},
	}
}

func (a *app) searchSubaccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "search-subaccount <text>",
		Short:       "Find subaccounts whose friendly name contains text",
		Args:        usageArgs(cobra.ExactArgs(1)),
		Annotations: remote(),
		RunE: func(cmd *cobra.Command, args []string) error {
			needle := strings.TrimSpace(args[0])
			if needle == "" {
				return fmt.Errorf("search text is empty: %w", apperrors.ErrValidation)
			}
			rows, err := a.inspector().SearchSubaccounts(cmd.Context(), needle)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.SubaccountSearch(needle, rows))
			return nil
		},
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
