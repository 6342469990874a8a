package runlog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/carrental/core/rental"
	"github.com/kilianp07/carrental/core/solver"
)

// Params are the inputs of a run.
type Params struct {
	Problem rental.Config `json:"problem"`
	Solver  solver.Config `json:"solver"`
}

// RunRecord captures one solver run and its result.
type RunRecord struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Params     Params      `json:"params"`
	Converged  bool        `json:"converged"`
	Error      string      `json:"error,omitempty"`
	Iterations int         `json:"iterations"`
	Sweeps     int         `json:"sweeps"`
	DurationMS int64       `json:"duration_ms"`
	Policy     [][]int     `json:"policy,omitempty"`
	Values     [][]float64 `json:"values,omitempty"`
}

// NewRecord builds a record for a run. res may be nil when the run failed,
// in which case runErr is stored.
func NewRecord(params Params, res *solver.Result, runErr error) RunRecord {
	rec := RunRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Params:    params,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if res != nil {
		rec.Converged = runErr == nil
		rec.Iterations = res.Iterations
		rec.Sweeps = res.Sweeps
		rec.DurationMS = res.Duration.Milliseconds()
		if res.Policy != nil {
			rec.Policy = res.Policy.Rows()
		}
		if res.Values != nil {
			rec.Values = res.Values.Rows()
		}
	}
	return rec
}

// RunQuery defines filters for retrieving records. Zero values match all.
type RunQuery struct {
	Start    time.Time
	End      time.Time
	Modified *bool
}

func (q RunQuery) matches(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Modified != nil && r.Params.Solver.Modified != *q.Modified {
		return false
	}
	return true
}

// RunStore persists RunRecords and supports querying.
type RunStore interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q RunQuery) ([]RunRecord, error)
	Close() error
}
