package main

import (
	"fmt"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/csv"
	"github.com/fwojciec/newsgrab/pipeline"
)

// Run executes the grab command.
func (c *GrabCmd) Run(deps *Dependencies) error {
	source := newsgrab.Source(c.Source)

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d items\n", event.Total)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case pipeline.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Runner.Run(deps.Ctx, c.Query, source, c.Limit, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	records := result.Set.Records()
	fmt.Fprintf(deps.Stdout, "  Saved %d records (%d failed)\n", result.Saved(), result.Failed())

	if c.CSV != "" {
		if err := csv.WriteFile(c.CSV, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Wrote %s\n", c.CSV)
	}

	if c.Save {
		run := &newsgrab.Run{
			Query:  c.Query,
			Source: source,
			Limit:  c.Limit,
			Saved:  result.Saved(),
			Failed: result.Failed(),
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Run %s\n", run.ID)
	}

	if c.CSV == "" && !c.Save {
		for _, rec := range records {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", rec.Title, rec.URL)
		}
	}

	return nil
}
