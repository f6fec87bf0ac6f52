package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lernova/internal/bootstrap"
	"lernova/internal/platform/config"
	"lernova/internal/platform/logging"
)

type rootOptions struct {
	configPath string
	userID     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lernova",
		Short:         "Focus mode backend for the lernova browser companion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "lernova.yaml", "config file path")
	root.PersistentFlags().StringVar(&opts.userID, "user", "", "user id (defaults to focus.default_user)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newConsoleCmd(opts))
	root.AddCommand(newFocusCmd(opts))
	root.AddCommand(newSettingsCmd(opts))
	root.AddCommand(newOracleCmd(opts))
	root.AddCommand(newAICmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg, logging.New(cfg.Log, os.Stderr))
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

func userFor(opts *rootOptions, cfg config.Config) string {
	if strings.TrimSpace(opts.userID) != "" {
		return opts.userID
	}
	return cfg.Focus.DefaultUser
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the focus mode HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			srv := app.Server()
			if addr != "" {
				srv.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			group, ctx := errgroup.WithContext(ctx)
			group.Go(func() error {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			group.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return group.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run the focus terminal console",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app, userFor(opts, cfg))
		},
	}
}

func newFocusCmd(opts *rootOptions) *cobra.Command {
	focus := &cobra.Command{Use: "focus", Short: "Focus session commands"}

	var description string
	var keywords, allowed []string
	startCmd := &cobra.Command{
		Use:   "start <topic>",
		Short: "Start a focus session, replacing any active one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.FocusCLI.Start(cmd.Context(), userFor(opts, cfg), strings.Join(args, " "), description, keywords, allowed)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus started: %s (%s) strict=%v\n", out.Topic, out.SessionID, out.StrictMode)
			return nil
		},
	}
	startCmd.Flags().StringVar(&description, "description", "", "what you are trying to learn")
	startCmd.Flags().StringSliceVar(&keywords, "keywords", nil, "keywords that mark a page as on-topic")
	startCmd.Flags().StringSliceVar(&allowed, "allow", nil, "domains that are always allowed")

	activeCmd := &cobra.Command{
		Use:   "active",
		Short: "Show the active focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.FocusCLI.Active(cmd.Context(), userFor(opts, cfg))
			if err != nil {
				return err
			}
			if !out.Active || out.Session == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active focus session")
				return nil
			}
			s := out.Session
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) checked=%d allowed=%d blocked=%d since=%s\n",
				s.Topic, s.ID, s.URLsChecked, s.URLsAllowed, s.URLsBlocked, s.CreatedAt.Local().Format(time.RFC3339))
			return nil
		},
	}

	var quick bool
	checkCmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Check one URL against the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.FocusCLI.Check(cmd.Context(), userFor(opts, cfg), args[0], quick)
			if err != nil {
				return err
			}
			verdict := "ALLOW"
			if !out.Allowed {
				verdict = "BLOCK"
			}
			line := fmt.Sprintf("%s %s (%s)", verdict, out.Domain, out.Reason)
			if out.Confidence != nil {
				line += fmt.Sprintf(" confidence=%d", *out.Confidence)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	checkCmd.Flags().BoolVar(&quick, "quick", false, "use the keyword check instead of the oracle")

	batchCmd := &cobra.Command{
		Use:   "check-batch <url>...",
		Short: "Check several URLs concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.FocusCLI.CheckBatch(cmd.Context(), userFor(opts, cfg), args)
			if err != nil {
				return err
			}
			for _, url := range args {
				res, ok := out.Results[strings.TrimSpace(url)]
				if !ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "SKIP  %s\n", url)
					continue
				}
				verdict := "ALLOW"
				if !res.Allowed {
					verdict = "BLOCK"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d) %s\n", verdict, url, res.Confidence, res.Reason)
			}
			if out.Partial {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "partial: batch deadline reached")
			}
			return nil
		},
	}

	endCmd := &cobra.Command{
		Use:   "end",
		Short: "End the active focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.FocusCLI.End(cmd.Context(), userFor(opts, cfg))
			if err != nil {
				return err
			}
			if !out.Ended {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active focus session")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ended %s checked=%d allowed=%d blocked=%d\n",
				out.SessionID, out.Stats.URLsChecked, out.Stats.URLsAllowed, out.Stats.URLsBlocked)
			if out.ReportPath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report=%s\n", out.ReportPath)
			}
			return nil
		},
	}

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent focus sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			sessions, err := app.FocusCLI.History(cmd.Context(), userFor(opts, cfg), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no focus sessions")
				return nil
			}
			for _, s := range sessions {
				state := "ended"
				if s.Active {
					state = "active"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tchecked=%d blocked=%d\n",
					s.CreatedAt.Local().Format("2006-01-02 15:04"), state, s.Topic, s.URLsChecked, s.URLsBlocked)
			}
			return nil
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 10, "maximum sessions to list")

	suggestCmd := &cobra.Command{
		Use:   "suggest <topic>",
		Short: "Suggest learning resources for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.FocusCLI.Suggest(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, s := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n  %s\n", s.Title, s.Description, s.URL)
			}
			return nil
		},
	}

	focus.AddCommand(startCmd, activeCmd, checkCmd, batchCmd, endCmd, historyCmd, suggestCmd)
	return focus
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Focus mode settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.Show(cmd.Context(), userFor(opts, cfg))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus_mode_enabled=%v focus_mode_strict=%v\n", out.FocusModeEnabled, out.FocusModeStrict)
			return nil
		},
	})

	var enabled, strict bool
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var enabledPtr, strictPtr *bool
			if cmd.Flags().Changed("enabled") {
				enabledPtr = &enabled
			}
			if cmd.Flags().Changed("strict") {
				strictPtr = &strict
			}
			app, cfg, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.Set(cmd.Context(), userFor(opts, cfg), enabledPtr, strictPtr)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus_mode_enabled=%v focus_mode_strict=%v\n", out.FocusModeEnabled, out.FocusModeStrict)
			return nil
		},
	}
	setCmd.Flags().BoolVar(&enabled, "enabled", false, "enable focus mode")
	setCmd.Flags().BoolVar(&strict, "strict", false, "block pages when the oracle is unavailable")
	settings.AddCommand(setCmd)
	return settings
}

func newOracleCmd(opts *rootOptions) *cobra.Command {
	oracle := &cobra.Command{Use: "oracle", Short: "Relevance oracle commands"}

	oracle.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Send a trivial completion to the configured provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OracleCLI.Ping(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s model=%s reply=%q latency=%s\n",
				out.Provider, out.Version, out.Model, out.Reply, out.Latency)
			return nil
		},
	})

	var system string
	var temperature float64
	var maxTokens int
	askCmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Send a raw prompt to the provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OracleCLI.Ask(cmd.Context(), system, strings.Join(args, " "), temperature, maxTokens)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	askCmd.Flags().StringVar(&system, "system", "", "system prompt")
	askCmd.Flags().Float64Var(&temperature, "temperature", 0.3, "sampling temperature")
	askCmd.Flags().IntVar(&maxTokens, "max-tokens", 150, "completion token limit")
	oracle.AddCommand(askCmd)
	return oracle
}

// readText reads path, or stdin when path is "-". An empty path yields "".
func readText(cmd *cobra.Command, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(raw), nil
	}
}

func newAICmd(opts *rootOptions) *cobra.Command {
	ai := &cobra.Command{Use: "ai", Short: "Browser assistant: chat, summaries and page questions"}

	var chatContext string
	chatCmd := &cobra.Command{
		Use:   "chat <query>",
		Short: "Chat with the assistant, optionally about a page",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageText, err := readText(cmd, chatContext)
			if err != nil {
				return err
			}
			app, _, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AssistantCLI.Chat(cmd.Context(), strings.Join(args, " "), pageText)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			if len(out.SuggestedWebsites) > 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nsuggested:")
				for _, s := range out.SuggestedWebsites {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", s.Title, s.URL)
				}
			}
			return nil
		},
	}
	chatCmd.Flags().StringVar(&chatContext, "context", "", "file with page text (- for stdin)")

	var summaryURL string
	summarizeCmd := &cobra.Command{
		Use:   "summarize <file|->",
		Short: "Summarize page text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			app, _, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AssistantCLI.Summarize(cmd.Context(), content, summaryURL)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	summarizeCmd.Flags().StringVar(&summaryURL, "url", "", "page url, for logging")

	var askContext string
	askCmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from page text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageText, err := readText(cmd, askContext)
			if err != nil {
				return err
			}
			app, _, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AssistantCLI.Ask(cmd.Context(), strings.Join(args, " "), pageText)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	askCmd.Flags().StringVar(&askContext, "context", "-", "file with page text (- for stdin)")

	ai.AddCommand(chatCmd, summarizeCmd, askCmd)
	return ai
}
