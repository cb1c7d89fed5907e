package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/twctl/twctl/internal/client"
	"github.com/twctl/twctl/internal/twin"
)

func addAdminCommands(root *cobra.Command) {
	url := fmt.Sprintf("http://localhost:%d", defaultPort)
	admin := func() *client.AdminClient { return client.New(url) }

	var group []*cobra.Command

	group = append(group, &cobra.Command{
		Use:   "health",
		Short: "Check that a twin is serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := admin().Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	})

	group = append(group, &cobra.Command{
		Use:   "reset",
		Short: "Clear a running twin's state, faults and request log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return admin().Reset(cmd.Context())
		},
	})

	group = append(group, &cobra.Command{
		Use:   "seed <file>",
		Short: "Load a YAML or JSON fixture into a running twin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading seed file: %w", err)
			}
			c := admin()
			if err := c.Seed(cmd.Context(), data); err != nil {
				return err
			}
			state, err := c.State(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "twin now holds %d profiles, %d brands, %d services, %d accounts\n",
				len(state.Profiles), len(state.Brands), len(state.Services), len(state.Accounts))
			return nil
		},
	})

	var fault twin.Fault
	faultCmd := &cobra.Command{
		Use:   "fault <path-pattern> <status>",
		Short: "Make matching API requests fail, e.g. fault '/v1/Services/*/Compliance/Usa2p' 500",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := strconv.Atoi(args[1])
			if err != nil || status < 400 || status > 599 {
				return fmt.Errorf("status %q must be an HTTP error status (400-599)", args[1])
			}
			fault.StatusCode = status
			return admin().InjectFault(cmd.Context(), args[0], fault)
		},
	}
	faultCmd.Flags().StringVar(&fault.Account, "account", "", "only fail requests made as this account SID")
	faultCmd.Flags().IntVar(&fault.Code, "code", 0, "Twilio error code in the response body")
	faultCmd.Flags().StringVar(&fault.Message, "message", "", "error message in the response body")
	faultCmd.Flags().DurationVar(&fault.Delay, "delay", 0, "wait this long before failing")
	group = append(group, faultCmd)

	group = append(group, &cobra.Command{
		Use:   "clear-faults",
		Short: "Remove every injected fault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return admin().ClearFaults(cmd.Context())
		},
	})

	group = append(group, &cobra.Command{
		Use:   "requests",
		Short: "Print the API requests a running twin has served",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := admin().Requests(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s\n", e.Timestamp.Format(time.RFC3339), e.User, e)
			}
			return nil
		},
	})

	for _, c := range group {
		c.Flags().StringVar(&url, "url", url, "base URL of the running twin")
		root.AddCommand(c)
	}
}
