package main

import (
	"fmt"

	"shelfread"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return shelfread.Errorf(shelfread.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Libraries.DeleteLibrary(deps.Ctx, c.UserID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shelfread.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted library %d\n", c.UserID)
	return nil
}
