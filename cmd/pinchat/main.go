package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pinchat/contract"
	"pinchat/internal"
	"pinchat/session"
	"pinchat/transport"
	"pinchat/ui"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

var (
	flagServerURL string
	flagLogFile   string
)

var rootCmd = &cobra.Command{
	Use:   "pinchat",
	Short: "Terminal chat client for PIN-coded rooms",
	RunE:  runClient,
	// The TUI reports its own failures; cobra's usage dump would wreck
	// the terminal output.
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagServerURL, "server-url", "", "websocket URL of the room service (overrides PINCHAT_SERVER_URL)")
	flags.StringVar(&flagLogFile, "log-file", "", "log file path (overrides PINCHAT_LOG_FILE)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pinchat: %v\n", err)
		if _, ok := err.(configError); ok {
			os.Exit(exitConfig)
		}
		os.Exit(exitRuntime)
	}
	os.Exit(exitOK)
}

type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func runClient(cmd *cobra.Command, args []string) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return configError{err}
	}
	if flagServerURL != "" {
		cfg.ServerURL = flagServerURL
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}

	log, closeLog, err := internal.NewLogger(cfg)
	if err != nil {
		return configError{err}
	}
	defer closeLog()

	dial := contract.Dialer(func(serverURL string) contract.Transport {
		return transport.Open(serverURL, transport.Options{
			DialTimeout: cfg.DialTimeout,
			Logger:      log,
		})
	})

	machine := session.New(cfg.ServerURL, dial, log)
	defer machine.Close()

	log.Info().Str("server", cfg.ServerURL).Msg("starting pinchat")

	program := tea.NewProgram(
		ui.New(machine, cfg.DefaultCapacity, log),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("ui stopped with error")
		return fmt.Errorf("run ui: %w", err)
	}

	log.Info().Msg("bye")
	return nil
}
