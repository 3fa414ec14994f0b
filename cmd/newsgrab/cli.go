package main

import (
	"context"
	"io"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/pipeline"
	"github.com/fwojciec/newsgrab/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Runs    newsgrab.RunService
	Records newsgrab.RecordService
	Runner  *pipeline.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Grab   GrabCmd   `cmd:"" help:"Search a source and extract article text"`
	Runs   RunsCmd   `cmd:"" help:"List saved runs"`
	Export ExportCmd `cmd:"" help:"Export a saved run as CSV"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved run and its records"`
}

// GrabCmd is the "grab" subcommand.
type GrabCmd struct {
	Query       string `arg:"" help:"Search query, subreddit name, or Reddit post URL"`
	Source      string `short:"s" default:"googlenews" enum:"googlenews,reddit" help:"Source to search (googlenews, reddit)"`
	Limit       int    `short:"l" default:"10" help:"Maximum number of items"`
	CSV         string `help:"Write extracted records to a CSV file"`
	Save        bool   `help:"Save the run to the local database"`
	Country     string `default:"US" help:"Google News country edition"`
	Sweep       bool   `help:"Scrape the Google News search page across time ranges instead of the RSS feed"`
	Sort        string `default:"hot" enum:"hot,new,top,rising" help:"Reddit listing sort"`
	TimeRange   string `default:"week" enum:"hour,day,week,month,year,all" help:"Reddit top/rising time range"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent fetch limit"`
	Verbose     bool   `short:"v" help:"Log searches and fetches"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source string `short:"s" help:"Only show runs for this source"`
	Limit  int    `short:"l" help:"Maximum number of runs to show"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	RunID string `arg:"" help:"Run ID to export"`
	Out   string `short:"o" help:"Output file (default stdout)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	RunID string `arg:"" help:"Run ID to delete"`
	Force bool   `help:"Confirm deletion"`
}
