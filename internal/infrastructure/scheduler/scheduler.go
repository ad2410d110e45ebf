package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/biabrauna/econsciente-api/internal/domain/ports"
)

// JobObserver registra execuções
type JobObserver interface {
	JobRun(job string, success bool)
}

// Job é uma rotina de manutenção periódica
type Job struct {
	Name    string
	Spec    string // expressão cron de 5 campos
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler executa Jobs com robfig/cron. Execuções sobrepostas do mesmo
// job são puladas.
type Scheduler struct {
	cron     *cron.Cron
	logger   ports.Logger
	observer JobObserver
	jobs     map[string]Job
}

// New cria um Scheduler parado
func New(logger ports.Logger, observer JobObserver) *Scheduler {
	log := logger.With("component", "scheduler")
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{log}),
			cron.SkipIfStillRunning(cronLogger{log}),
		)),
		logger:   log,
		observer: observer,
		jobs:     make(map[string]Job),
	}
}

// Add registra um job; a expressão é validada imediatamente
func (s *Scheduler) Add(job Job) error {
	if _, err := s.cron.AddFunc(job.Spec, func() { _ = s.RunNow(context.Background(), job.Name) }); err != nil {
		return fmt.Errorf("invalid schedule for %s: %w", job.Name, err)
	}
	s.jobs[job.Name] = job
	return nil
}

// RunNow executa um job registrado de forma síncrona
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %s", name)
	}

	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	if s.observer != nil {
		s.observer.JobRun(name, err == nil)
	}
	if err != nil {
		s.logger.Error("scheduled job failed", "job", name, "error", err)
		return err
	}

	s.logger.Info("scheduled job finished", "job", name, "duration", time.Since(start).String())
	return nil
}

// Start inicia o agendador em background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop para de agendar e espera jobs em execução terminarem ou ctx expirar
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapta ports.Logger para cron.Logger
type cronLogger struct {
	logger ports.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
