package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/misanthropic-codes/sports360/internal/adapter"
	"github.com/misanthropic-codes/sports360/internal/api"
	"github.com/misanthropic-codes/sports360/internal/club"
	"github.com/misanthropic-codes/sports360/internal/session"
	"github.com/misanthropic-codes/sports360/internal/signal"
	"github.com/misanthropic-codes/sports360/internal/store"
	"github.com/misanthropic-codes/sports360/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion, reset bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&reset, "reset", false, "forget the configured server and wipe cached data")
	flag.Parse()

	if showVersion {
		fmt.Printf("sports360 %s\n", Version)
		return
	}

	if reset {
		if err := runReset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Server configuration and cached data cleared.")
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting sports360", "version", Version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}

	st, err := store.Open(adapter.CachePath(), cfg.Server.URL)
	if err != nil {
		return fmt.Errorf("failed to open on-device store: %w", err)
	}
	defer st.Close()

	// The broadcaster decouples transport failures from the modal that
	// renders them; both sides only know this object.
	errs := signal.NewBroadcaster(logger)

	tokenSource := func() string {
		sess, ok := st.LoadSession()
		if !ok {
			return ""
		}
		return sess.Token
	}
	client := api.NewClient(cfg.Server.URL, tokenSource, errs, logger)

	svcs := tui.Services{
		Teams:       club.NewTeamsService(client, st, logger),
		Tournaments: club.NewTournamentsService(client, st, logger),
		Grounds:     club.NewGroundsService(client, st, logger),
		Analytics:   club.NewAnalyticsService(client, st, logger),
		Guest:       club.NewGuestService(client, st, logger),
		Session:     session.NewService(client, st, logger),
	}

	if _, ok := svcs.Session.Current(); !ok && !svcs.Session.HasOnboarded() {
		if err := runLoginFlow(svcs.Session); err != nil {
			logger.Warn("first-run login skipped", "error", err)
		}
		svcs.Session.MarkOnboarded()
	}

	model := tui.NewModel(svcs, errs, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runReset forgets the configured server and removes every on-disk cache
// directory. Runs before any store is opened, so nothing holds the files.
// The next launch goes through the setup flow again.
func runReset() error {
	if err := adapter.ClearServerConfig(); err != nil {
		return fmt.Errorf("failed to clear server config: %w", err)
	}
	if err := adapter.ClearCache(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// runSetupFlow prompts for the backend URL on first run
func runSetupFlow(cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Sports360!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter the Sports360 server URL (e.g., https://api.sports360.example): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read server URL: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
			fmt.Println("The URL must start with http:// or https://")
			continue
		}
		cfg.Server.URL = strings.TrimRight(input, "/")
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// runLoginFlow prompts for credentials with hidden password input.
// Declining (empty email) continues in guest mode.
func runLoginFlow(svc *session.Service) error {
	fmt.Println()
	fmt.Println("Log in to Sports360 (leave email empty for guest mode)")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // Add newline after hidden input

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sess, err := svc.Login(ctx, email, string(passwordBytes))
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return err
	}

	fmt.Printf("Welcome, %s!\n", sess.Name)
	return nil
}
