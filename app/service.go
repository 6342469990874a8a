package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/carrental/config"
	coremetrics "github.com/kilianp07/carrental/core/metrics"
	"github.com/kilianp07/carrental/core/poisson"
	"github.com/kilianp07/carrental/core/rental"
	"github.com/kilianp07/carrental/core/runlog"
	"github.com/kilianp07/carrental/core/solver"
	"github.com/kilianp07/carrental/infra/logger"
	"github.com/kilianp07/carrental/infra/metrics"
	"github.com/kilianp07/carrental/internal/eventbus"
	"github.com/kilianp07/carrental/pkg/export"
	"github.com/kilianp07/carrental/pkg/report"
)

// Service wires one policy iteration run: the model, the solver, progress
// metrics, the run log and export of the final grids.
type Service struct {
	cfg      *config.Config
	model    *rental.Model
	sink     coremetrics.MetricsSink
	store    runlog.RunStore
	observer solver.Observer
	log      logger.Logger
}

// New creates a Service from the configuration. Grids are printed to out.
func New(cfg *config.Config, out io.Writer, color bool) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	model, err := rental.NewModel(cfg.Problem, poisson.NewCache())
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := runlog.Open(cfg.RunLog)
	if err != nil {
		return nil, fmt.Errorf("run log: %w", err)
	}
	var observer solver.Observer
	if out != nil {
		observer = report.NewPrinter(out, color, report.WithLogger(logger.New("report")))
	}
	return &Service{
		cfg:      cfg,
		model:    model,
		sink:     sink,
		store:    store,
		observer: observer,
		log:      logger.New("service"),
	}, nil
}

// Model returns the problem instance.
func (s *Service) Model() *rental.Model { return s.model }

// Run solves the problem and records the run. The run is logged and
// recorded even when the solver fails.
func (s *Service) Run(ctx context.Context) (*solver.Result, error) {
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		promCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := metrics.StartPromServer(promCtx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	runID := uuid.NewString()
	bus := eventbus.NewTyped[solver.Event]()
	done := metrics.StartEventCollector(bus, s.sink, runID, s.log)

	sv, err := solver.New(s.model, s.cfg.Solver,
		solver.WithLogger(logger.New("solver")),
		solver.WithPublisher(bus),
		solver.WithObserver(s.observer),
	)
	if err != nil {
		bus.Close()
		<-done
		return nil, err
	}
	started := time.Now()
	res, runErr := sv.Solve(ctx)
	bus.Close()
	<-done
	if n := bus.Dropped(); n > 0 {
		s.log.Warnf("%d progress events dropped", n)
	}

	ev := coremetrics.RunEvent{
		RunID:     runID,
		Modified:  s.cfg.Solver.Modified,
		Gamma:     s.cfg.Solver.Gamma,
		Epsilon:   s.cfg.Solver.Epsilon,
		Duration:  time.Since(started),
		Converged: runErr == nil,
		Time:      time.Now(),
	}
	if res != nil {
		ev.Iterations = res.Iterations
		ev.Sweeps = res.Sweeps
	}
	if runErr != nil {
		ev.Error = runErr.Error()
	}
	if err := s.sink.RecordRun(ev); err != nil {
		s.log.Warnf("record run: %v", err)
	}

	if s.store != nil {
		rec := runlog.NewRecord(runlog.Params{Problem: s.cfg.Problem, Solver: s.cfg.Solver}, res, runErr)
		rec.ID = runID
		// record the run even if ctx was canceled
		if err := s.store.Append(context.WithoutCancel(ctx), rec); err != nil {
			s.log.Errorf("append run log: %v", err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	if err := s.export(res); err != nil {
		return res, err
	}
	s.log.Infof("run %s converged after %d iterations and %d sweeps", runID, res.Iterations, res.Sweeps)
	return res, nil
}

func (s *Service) export(res *solver.Result) error {
	if s.cfg.Export.Dir == "" {
		return nil
	}
	snap := export.NewSnapshot(res)
	for _, format := range s.cfg.Export.Formats {
		path, err := export.WriteFile(s.cfg.Export.Dir, "result", format, snap)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		s.log.Infof("wrote %s", path)
	}
	return nil
}

// Store returns the run log store, nil when disabled.
func (s *Service) Store() runlog.RunStore { return s.store }

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
