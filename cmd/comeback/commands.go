package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/Conceptual-Machines/comeback-api/internal/config"
	"github.com/Conceptual-Machines/comeback-api/internal/history"
	"github.com/Conceptual-Machines/comeback-api/internal/prompt"
	"github.com/Conceptual-Machines/comeback-api/internal/surface"
	"github.com/Conceptual-Machines/comeback-api/internal/tui"
	"github.com/Conceptual-Machines/comeback-api/pkg/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	verbose   bool
	intensity int
	limit     int
)

var rootCmd = &cobra.Command{
	Use:     "comeback",
	Short:   "Generate three comebacks for whatever the other side just said",
	Version: version,
	Long: `comeback sends what your opponent said to the comeback API and shows three
rebuttals at the chosen intensity (1 polite, 10 forceful).

Without a subcommand it opens the interactive terminal UI.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

var askCmd = &cobra.Command{
	Use:   "ask <opponent text>",
	Short: "Generate comebacks once and print them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored arguments, newest first",
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Comeback API base URL (or set COMEBACK_SERVER_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log failed attempts to stderr")

	askCmd.Flags().IntVarP(&intensity, "intensity", "i", prompt.DefaultIntensity, "Tone intensity from 1 to 10")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", history.MaxEntries, "Maximum entries to show")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
}

// session bundles what every command needs
type session struct {
	cfg     *config.ClientConfig
	client  *client.Client
	history *history.Manager
}

func newSession(stderr io.Writer) (*session, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	store, err := history.NewFileStore(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open history storage: %w", err)
	}

	opts := []client.Option{
		client.WithRetries(cfg.Retries),
		client.WithDelay(cfg.RetryDelay),
	}
	if verbose {
		opts = append(opts, client.WithLogger(log.New(stderr, "comeback: ", 0).Printf))
	}

	return &session{
		cfg:     cfg,
		client:  client.New(cfg.ServerURL, opts...),
		history: history.NewManager(store),
	}, nil
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	var clip surface.Clipboard
	if surface.SystemClipboardAvailable() {
		clip = surface.SystemClipboard{}
	}

	app := tui.NewApp(ctx, s.client, s.history, clip)
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	surf := surface.New(s.client, s.history, surface.WithNotifier(func(n surface.Notice) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", n.Title, n.Message)
	}))
	if err := surf.Mount(); err != nil {
		return err
	}
	surf.SetText(strings.Join(args, " "))
	surf.SetIntensity(intensity)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := surf.Submit(ctx); err != nil {
		return err
	}

	for i, r := range surf.Responses() {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, r)
	}
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := s.history.Load(); err != nil {
		return err
	}

	entries := s.history.Recent(limit)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No arguments yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	for i, e := range entries {
		fmt.Fprintf(out, "[%d] %s (intensity %d/10, %s)\n", i+1, e.Opponent, e.Intensity, prompt.ToneLabel(e.Intensity))
		for j, r := range e.Responses {
			fmt.Fprintf(out, "    %d. %s\n", j+1, r)
		}
	}
	return nil
}
