package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kestrelhq/badgehunt/internal/app"
	"github.com/kestrelhq/badgehunt/internal/appupdate"
	"github.com/kestrelhq/badgehunt/internal/assistant"
	"github.com/kestrelhq/badgehunt/internal/config"
	"github.com/kestrelhq/badgehunt/internal/core"
	"github.com/kestrelhq/badgehunt/internal/filesystem"
	"github.com/kestrelhq/badgehunt/internal/github"
	"github.com/kestrelhq/badgehunt/internal/store"
	"github.com/kestrelhq/badgehunt/internal/tracker"
)

var BUILD_VERSION = "dev"

var checkUser = flag.String("check", "", "print badge progress for a github user and exit")
var updateFlag = flag.Bool("update", false, "update badgehunt to the latest release")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Println("Usage of badgehunt:")
		flag.PrintDefaults()
		return
	}

	logger, err := initializeLogger()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("-------- new badgehunt session --------", zap.Any("args", os.Args))

	cfg, err := config.Load(core.ConfigFile())
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		fmt.Fprintln(os.Stderr, "invalid config file:", err)
		os.Exit(1)
	}

	if *updateFlag {
		if err := appupdate.Apply(context.Background(), BUILD_VERSION, logger, appupdate.GitHubUpdater{}); err != nil {
			logger.Error("self-update failed", zap.Error(err))
			fmt.Fprintln(os.Stderr, "update failed:", err)
			os.Exit(1)
		}
		return
	}

	if *checkUser != "" {
		if err := runCheck(cfg, logger, *checkUser); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := runUI(cfg, logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		os.Exit(1)
	}
}

func initializeLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	if BUILD_VERSION == "dev" {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	return loggerConfig.Build()
}

// runCheck is the non-interactive mode: look up one user and print a
// progress table.
func runCheck(cfg *config.Config, logger *zap.Logger, username string) error {
	gh := github.NewClient(cfg.GitHubToken, logger)

	stats, err := gh.FetchUserStats(context.Background(), username)
	if err != nil {
		switch {
		case errors.Is(err, github.ErrNotFound):
			fmt.Fprintf(os.Stderr, "user %q does not exist\n", username)
		case errors.Is(err, github.ErrRateLimited):
			fmt.Fprintln(os.Stderr, "rate limited by the API, try again later or set BADGEHUNT_GITHUB_TOKEN")
		default:
			fmt.Fprintln(os.Stderr, "lookup failed:", err)
		}
		return err
	}

	fmt.Printf("%s (@%s) · %d public repos · %d total stars\n\n", stats.Name, stats.Login, stats.PublicRepos, stats.TotalStars)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Badge", "Tier", "Progress", "Detail")
	for _, r := range tracker.BuildReports(stats) {
		tierName := "-"
		if r.Progress.CurrentTier != nil {
			tierName = r.Progress.CurrentTier.Name
		}
		t = t.Row(r.Badge.Name, tierName, r.Progress.Label, r.Detail)
	}
	fmt.Println(t.String())

	for _, b := range tracker.Untrackable() {
		fmt.Printf("%s: %s\n", b.Name, tracker.UntrackableNote)
	}
	return nil
}

func runUI(cfg *config.Config, logger *zap.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("badgehunt needs an interactive terminal; use -check for scripted output")
	}

	st, err := store.New(core.StateFile(), logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
	}()
	st.SeedTheme(cfg.Theme)

	gh := github.NewClient(cfg.GitHubToken, logger)
	ai := assistant.New(cfg, logger)

	model := app.New(st, gh, ai, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	updates := appupdate.Check(BUILD_VERSION, logger, filesystem.DefaultFileSystem{}, appupdate.GitHubUpdater{})
	go func() {
		for version := range updates {
			program.Send(app.UpdateNotice(version))
		}
	}()

	_, err = program.Run()
	return err
}
