package main

import (
	"fmt"
	"os"

	"shelfread"
	"shelfread/csv"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	lib, err := deps.Libraries.FindLibraryByUserID(deps.Ctx, c.UserID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shelfread.ErrorMessage(err))
		return err
	}

	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", c.Path, err)
	}
	defer f.Close()

	if err := csv.NewWriter().Write(f, lib); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shelfread.ErrorMessage(err))
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %q: %w", c.Path, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d book(s) to %s\n", len(lib.Books), c.Path)
	return nil
}
