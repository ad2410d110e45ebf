package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/biabrauna/econsciente-api/internal/domain/ports"
)

var (
	ErrQueueFull   = errors.New("task queue is full")
	ErrQueueClosed = errors.New("task queue is closed")
)

// TaskObserver recebe o resultado de cada tentativa
type TaskObserver interface {
	TaskFinished(task, status string)
	SetQueueDepth(n int)
}

// Options configura o Dispatcher
type Options struct {
	Workers     int
	QueueSize   int
	MaxAttempts int
	Backoff     time.Duration // espera entre tentativas = Backoff * tentativa
	TaskTimeout time.Duration
}

type job struct {
	name string
	task ports.Task
}

// Dispatcher executa tarefas em segundo plano num pool fixo de workers.
// As tarefas rodam num contexto desacoplado da requisição de origem.
type Dispatcher struct {
	opts     Options
	logger   ports.Logger
	observer TaskObserver

	jobs   chan job
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

var _ ports.TaskQueue = (*Dispatcher)(nil)

// NewDispatcher inicia os workers imediatamente
func NewDispatcher(opts Options, logger ports.Logger, observer TaskObserver) *Dispatcher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	d := &Dispatcher{
		opts:     opts,
		logger:   logger.With("component", "task_dispatcher"),
		observer: observer,
		jobs:     make(chan job, opts.QueueSize),
		group:    group,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < opts.Workers; i++ {
		group.Go(d.work)
	}

	return d
}

// Enqueue agenda a tarefa sem bloquear
func (d *Dispatcher) Enqueue(name string, task ports.Task) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrQueueClosed
	}

	select {
	case d.jobs <- job{name: name, task: task}:
		d.reportDepth()
		return nil
	default:
		d.report(name, "rejected")
		return fmt.Errorf("%w: %s", ErrQueueFull, name)
	}
}

// Close para de aceitar tarefas e espera a fila esvaziar.
// Se ctx expirar antes, as tarefas em andamento são canceladas.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- d.group.Wait() }()

	select {
	case err := <-done:
		d.cancel()
		return err
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) work() error {
	for j := range d.jobs {
		d.reportDepth()
		d.run(j)
	}
	return nil
}

func (d *Dispatcher) run(j job) {
	log := d.logger.With("task", j.name)

	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		err := d.attempt(j)
		if err == nil {
			d.report(j.name, "ok")
			return
		}

		if attempt == d.opts.MaxAttempts || d.ctx.Err() != nil {
			d.report(j.name, "failed")
			log.Error("background task failed", "attempts", attempt, "error", err)
			return
		}

		d.report(j.name, "retry")
		log.Warn("background task failed, retrying", "attempt", attempt, "error", err)

		select {
		case <-time.After(d.opts.Backoff * time.Duration(attempt)):
		case <-d.ctx.Done():
		}
	}
}

func (d *Dispatcher) attempt(j job) (err error) {
	ctx := d.ctx
	if d.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.TaskTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	return j.task(ctx)
}

func (d *Dispatcher) report(task, status string) {
	if d.observer != nil {
		d.observer.TaskFinished(task, status)
	}
}

func (d *Dispatcher) reportDepth() {
	if d.observer != nil {
		d.observer.SetQueueDepth(len(d.jobs))
	}
}
