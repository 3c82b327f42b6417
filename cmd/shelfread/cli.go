package main

import (
	"context"
	"io"
	"log/slog"

	"shelfread"
	"shelfread/fetch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Libraries shelfread.LibraryService
	Harvester *fetch.Harvester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Sync   SyncCmd   `cmd:"" help:"Fetch a user's shelf and store it"`
	List   ListCmd   `cmd:"" help:"List stored libraries"`
	Show   ShowCmd   `cmd:"" help:"Print a stored library as a table"`
	Export ExportCmd `cmd:"" help:"Export a stored library to a CSV file"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored library"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	UserID      int64   `arg:"" name:"user-id" help:"Goodreads user ID"`
	Strict      bool    `help:"Drop reviews without a read date"`
	Concurrency int     `short:"c" default:"5" help:"Concurrent page fetch limit"`
	RPS         float64 `name:"rps" default:"1" help:"Maximum requests per second"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	UserID int64 `arg:"" name:"user-id" help:"Goodreads user ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	UserID int64  `arg:"" name:"user-id" help:"Goodreads user ID"`
	Path   string `arg:"" help:"Output CSV path"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	UserID int64 `arg:"" name:"user-id" help:"Goodreads user ID"`
	Force  bool  `help:"Confirm deletion"`
}
