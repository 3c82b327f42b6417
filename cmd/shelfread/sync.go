package main

import (
	"fmt"

	"shelfread"
	"shelfread/fetch"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Syncing shelf for user %d...\n", c.UserID)

	lib, err := deps.Harvester.Harvest(deps.Ctx, c.UserID, func(ev fetch.ProgressEvent) {
		switch ev.Type {
		case fetch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d page(s)\n", ev.Total)
		case fetch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "Fetched page %d/%d\n", ev.Page, ev.Total)
		case fetch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "Page %d failed: %s\n", ev.Page, shelfread.ErrorMessage(ev.Err))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shelfread.ErrorMessage(err))
		return err
	}

	if err := deps.Libraries.SaveLibrary(deps.Ctx, lib); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shelfread.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d book(s) for user %d\n", len(lib.Books), lib.UserID)
	return nil
}
