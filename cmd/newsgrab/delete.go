package main

import (
	"fmt"

	"github.com/fwojciec/newsgrab"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return newsgrab.Errorf(newsgrab.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.RunID); err != nil {
		if newsgrab.ErrorCode(err) == newsgrab.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'newsgrab runs' to see saved runs.\n", c.RunID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %q\n", c.RunID)
	return nil
}
