package mock

import (
	"context"

	"github.com/fwojciec/newsgrab"
)

var _ newsgrab.RunService = (*RunService)(nil)

// RunService is a mock implementation of newsgrab.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *newsgrab.Run, records []*newsgrab.Record) error
	FindRunByIDFn func(ctx context.Context, id string) (*newsgrab.Run, error)
	FindRunsFn    func(ctx context.Context, filter newsgrab.RunFilter) ([]*newsgrab.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *newsgrab.Run, records []*newsgrab.Record) error {
	return s.CreateRunFn(ctx, run, records)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*newsgrab.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter newsgrab.RunFilter) ([]*newsgrab.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}

var _ newsgrab.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of newsgrab.RecordService.
type RecordService struct {
	FindRecordsByRunFn func(ctx context.Context, runID string) ([]*newsgrab.Record, error)
}

func (s *RecordService) FindRecordsByRun(ctx context.Context, runID string) ([]*newsgrab.Record, error) {
	return s.FindRecordsByRunFn(ctx, runID)
}
