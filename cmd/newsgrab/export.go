package main

import (
	"fmt"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/csv"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	records, err := deps.Records.FindRecordsByRun(deps.Ctx, c.RunID)
	if err != nil {
		if newsgrab.ErrorCode(err) == newsgrab.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'newsgrab runs' to see saved runs.\n", c.RunID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		}
		return err
	}

	if c.Out == "" {
		return csv.Write(deps.Stdout, records)
	}

	if err := csv.WriteFile(c.Out, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d records to %s\n", len(records), c.Out)
	return nil
}
