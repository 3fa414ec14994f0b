package main

import (
	"fmt"

	"github.com/fwojciec/newsgrab"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := newsgrab.RunFilter{Limit: c.Limit}
	if c.Source != "" {
		source := newsgrab.Source(c.Source)
		if !source.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown source %q\n", c.Source)
			return newsgrab.Errorf(newsgrab.EINVALID, "unknown source %q", c.Source)
		}
		filter.Source = &source
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'newsgrab grab --save' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-10s  saved=%d failed=%d  %q\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.Saved, r.Failed, r.Query)
	}

	return nil
}
