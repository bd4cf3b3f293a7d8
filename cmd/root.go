package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/Mohsinsiddi/counterdapp/internal/logging"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/counterdapp/cmd.Version=1.2.3" .
var Version = "0.1.0"

// EnvConfigDir overrides the --config flag.
const EnvConfigDir = "COUNTERDAPP_CONFIG_DIR"

var (
	cfgDir    string
	cfg       *config.Config
	verbose   bool
	assumeYes bool

	logger    = logging.Discard()
	logCloser io.Closer
)

// rootCmd is the top-level command. Without a subcommand it opens the
// full-screen view.
var rootCmd = &cobra.Command{
	Use:   "counterdapp",
	Short: "On-chain message counter",
	Long: `counterdapp — connect a wallet, bump an on-chain counter with a message,
and browse every message stored so far.

Run without arguments to open the interactive view. Subcommands cover the
same actions for scripts: count, history, increment, reset.

Keys live in the OS keychain. Import one with:
  counterdapp wallet import <name>`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip for commands that don't need config.
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		l, closer, err := logging.New(cfg.LogPath(), cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
		logger.Debug("command started", "cmd", cmd.CommandPath(), "network", cfg.Network)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close() //nolint:errcheck
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd.Context())
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Err(err.Error()))
		if errors.Is(err, wallet.ErrWalletUnavailable) {
			fmt.Fprintln(os.Stderr, ui.Hint("Import a key with: counterdapp wallet import <name>"))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	if envDir := os.Getenv(EnvConfigDir); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.counterdapp)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "approve wallet prompts and confirmations without asking")

	rootCmd.AddCommand(
		uiCmd,
		countCmd,
		historyCmd,
		statusCmd,
		incrementCmd,
		resetCmd,
		explorerCmd,
		eventsCmd,
		walletCmd,
		configCmd,
		rpcCmd,
	)
}
