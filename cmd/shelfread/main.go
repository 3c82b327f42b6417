package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"shelfread"
	"shelfread/fetch"
	"shelfread/goquery"
	shelfhttp "shelfread/http"
	shelfslog "shelfread/slog"
	"shelfread/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the library service.
	DB *sqlite.DB

	// LibraryService for end-to-end testing.
	LibraryService shelfread.LibraryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("shelfread"),
		kong.Description("Fetch and export Goodreads shelf libraries"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'shelfread --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	if dir := filepath.Dir(m.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory %q: %w", dir, err)
		}
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SHELFREAD_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.LibraryService = sqlite.NewLibraryService(m.DB)
	deps.Libraries = m.LibraryService

	// The harvester is only needed for sync, and its validation mode
	// depends on the parsed flags.
	if cmd == "sync" {
		mode := shelfread.ValidationLenient
		if cli.Sync.Strict {
			mode = shelfread.ValidationStrict
		}

		fetcher := shelfslog.NewLoggingFetcher(shelfhttp.NewFetcher(), deps.Logger)
		shelfParser := goquery.NewParser(goquery.WithValidationMode(mode))

		deps.Harvester = &fetch.Harvester{
			Fetcher:     fetcher,
			Parser:      shelfslog.NewLoggingParser(shelfParser, deps.Logger),
			Pages:       shelfParser,
			Limiter:     fetch.NewLimiter(cli.Sync.RPS),
			Concurrency: cli.Sync.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// defaultDBPath returns the database path, honoring SHELFREAD_DB.
func defaultDBPath() string {
	if path := os.Getenv("SHELFREAD_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "shelfread.db"
	}
	return filepath.Join(home, ".shelfread", "shelfread.db")
}
