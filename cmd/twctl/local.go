package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/twctl/twctl/internal/apperrors"
	"github.com/twctl/twctl/internal/calllog"
	"github.com/twctl/twctl/internal/commands"
	"github.com/twctl/twctl/internal/errorcodes"
	"github.com/twctl/twctl/internal/render"
)

const chartWidth = 40

func (a *app) lookupErrorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup-error <code>",
		Short: "Explain a Twilio error code",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			code, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("error code %q is not a number: %w", args[0], apperrors.ErrValidation)
			}
			table, err := errorcodes.Default()
			if err != nil {
				return err
			}
			entry, err := table.Lookup(code)
			if apperrors.IsNotFoundError(err) {
				fmt.Fprint(a.stdout, render.NoErrorCode(code))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.ErrorCode(entry))
			return nil
		},
	}
}

func (a *app) analyzeLogsCommand() *cobra.Command {
	var find string
	cmd := &cobra.Command{
		Use:   "analyze-logs <path>",
		Short: "Load a CSV or XLSX call log export and list its calls",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			book, err := a.loadCallLog(args[0])
			if err != nil {
				return err
			}
			entries := book.Entries()
			if find != "" {
				entries = book.Find(find)
			}
			codes, err := errorcodes.Default()
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.CallLogs(entries, codes))
			return nil
		},
	}
	cmd.Flags().StringVar(&find, "find", "", "only calls to or from this number")
	return cmd
}

func (a *app) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [path]",
		Short: "Call totals by status, direction and day",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			book, err := a.loadCallLog(a.callLogPath(args))
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.Summary(calllog.Summarize(book)))
			return nil
		},
	}
}

func (a *app) visualizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "visualize [path]",
		Short: "Chart calls per day",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			book, err := a.loadCallLog(a.callLogPath(args))
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.Chart(calllog.Summarize(book), chartWidth))
			return nil
		},
	}
}

func (a *app) indexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "List commands by number",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := commands.Default()
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, render.CommandIndex(table))
			return nil
		},
	}
}

// callLogPath returns the path argument, falling back to callLogPath from
// config.
func (a *app) callLogPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.CallLogPath
}

// loadCallLog loads path and reports skipped rows on stderr.
func (a *app) loadCallLog(path string) (*calllog.Book, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("no call log given: pass a path or set callLogPath in twctl.yaml: %w", apperrors.ErrValidation)
	}
	book, warnings, err := calllog.Load(path)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(a.stderr, render.Warnings(warnings))
	return book, nil
}
