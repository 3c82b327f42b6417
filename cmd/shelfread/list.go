package main

import (
	"fmt"

	"shelfread"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	infos, err := deps.Libraries.ListLibraries(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shelfread.ErrorMessage(err))
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(deps.Stdout, "No libraries found. Use 'shelfread sync' to fetch one.")
		return nil
	}

	for _, info := range infos {
		fmt.Fprintf(deps.Stdout, "%d  %d book(s)  synced %s\n",
			info.UserID, info.BookCount, info.SyncedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
