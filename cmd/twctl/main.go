// twctl is a Twilio operations toolkit: TrustHub profile inspection and
// cleanup, error code lookup, and call log analysis.
//
// Usage:
//
//	twctl inspect <profile-sid>       Profile, assignments, brands, campaigns, services
//	twctl delete <profile-sid>        Delete a profile after typed confirmation
//	twctl list-profiles               List every customer profile
//	twctl health-check                Score profiles by approval status
//	twctl subaccounts                 Main account and subaccounts with profile counts
//	twctl search-subaccount <text>    Find subaccounts by friendly name
//	twctl lookup-error <code>         Explain a Twilio error code
//	twctl analyze-logs <path>         Load a CSV or XLSX call log and list its calls
//	twctl summary [path]              Call totals by status, direction and day
//	twctl visualize [path]            Chart calls per day
//	twctl index                       Numbered command list
//	twctl <number> [args...]          Run a command by its number
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/twctl/twctl/internal/apperrors"
	"github.com/twctl/twctl/internal/commands"
	"github.com/twctl/twctl/internal/config"
	"github.com/twctl/twctl/internal/logger"
	"github.com/twctl/twctl/internal/render"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// annotationRemote marks commands that call the Twilio API and therefore
// need credentials before they run.
const annotationRemote = "twctl/remote"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries per-invocation state shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	timeout    time.Duration
	logLevel   string
	noColor    bool

	cfg *config.Config
}

// run executes one twctl invocation and returns its exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.reportError(err)
	}
	logger.Sync()
	return apperrors.ExitCode(err)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "twctl",
		Short: "Twilio TrustHub, error code and call log toolkit",
		Long: `twctl inspects and cleans up Twilio TrustHub customer profiles, explains
Twilio error codes, and summarizes call log exports.

Credentials come from TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN (environment,
a .env file in the working directory, or twctl.yaml).

Commands can also be run by number:
  twctl index          list the numbers
  twctl 3 BU...        same as: twctl inspect BU...`,
		Version:           version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.prepare,
		RunE:              a.dispatch,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", err, apperrors.ErrUsage)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: twctl.yaml in ., $HOME/.twctl or /etc/twctl)")
	flags.DurationVar(&a.timeout, "timeout", 0, "HTTP timeout per request (default from config, 20s)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.inspectCommand(),
		a.deleteCommand(),
		a.listProfilesCommand(),
		a.healthCheckCommand(),
		a.subaccountsCommand(),
		a.searchSubaccountCommand(),
		a.lookupErrorCommand(),
		a.analyzeLogsCommand(),
		a.summaryCommand(),
		a.visualizeCommand(),
		a.indexCommand(),
	)
	return root
}

// prepare loads configuration and the logger once per invocation, then
// checks credentials for commands that talk to Twilio.
func (a *app) prepare(cmd *cobra.Command, _ []string) error {
	if a.cfg == nil {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("timeout") {
			if a.timeout <= 0 {
				return fmt.Errorf("--timeout must be positive, got %s: %w", a.timeout, apperrors.ErrValidation)
			}
			cfg.HTTP.Timeout = a.timeout
		}
		if a.logLevel != "" {
			cfg.LogLevel = a.logLevel
		}
		if a.noColor || cfg.NoColor {
			render.SetColor(false)
		}
		if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		a.cfg = cfg
		logger.Log.Debug("config loaded", zap.String("command", cmd.CommandPath()), zap.Duration("timeout", cfg.HTTP.Timeout))
	}

	if cmd.Annotations[annotationRemote] == "true" {
		return a.cfg.RequireCredentials()
	}
	return nil
}

// dispatch handles the root command: no args prints help, otherwise the
// first arg is a command number.
func (a *app) dispatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	table, err := commands.Default()
	if err != nil {
		return err
	}
	inv, err := table.Resolve(args[0], args[1:])
	if err != nil {
		return err
	}

	target, rest, err := cmd.Find(inv.Argv())
	if err != nil || target == cmd {
		return fmt.Errorf("command %d maps to %q, which twctl does not provide: %w",
			inv.Command.Index, inv.Command.Command, apperrors.ErrUsage)
	}
	if err := target.ValidateArgs(rest); err != nil {
		return err
	}
	if err := a.prepare(target, rest); err != nil {
		return err
	}

	logger.Log.Debug("numeric dispatch", zap.Int("index", inv.Command.Index), zap.String("command", inv.Command.Command))
	target.SetContext(cmd.Context())
	return target.RunE(target, rest)
}

// reportError prints err and any operator guidance to stderr.
func (a *app) reportError(err error) {
	switch {
	case apperrors.IsCancelled(err):
		return
	case errors.Is(err, apperrors.ErrPartial):
		fmt.Fprintf(a.stderr, "Warning: %v\n", err)
		return
	}
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	if hint := apperrors.Hint(err); hint != "" {
		fmt.Fprintf(a.stderr, "Hint: %s\n", hint)
	}
}

// usageArgs wraps a cobra argument validator so arity mistakes exit as usage
// errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", err, apperrors.ErrUsage)
		}
		return nil
	}
}

func remote() map[string]string {
	return map[string]string{annotationRemote: "true"}
}
