package producer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/pkg/contracts/events"
)

// Async entrega os eventos ao Publisher seguinte numa goroutine própria.
// Publicar nunca bloqueia: com a fila cheia o evento é descartado.
type Async struct {
	next Publisher
	log  *zap.Logger
	jobs chan job
	done chan struct{}

	mu     sync.RWMutex
	closed bool

	OnDropped func(kind string) // métricas
}

type job struct {
	kind string
	run  func(ctx context.Context)
}

// NewAsync inicia o worker com uma fila de size eventos
func NewAsync(next Publisher, size int, log *zap.Logger) *Async {
	if log == nil {
		log = zap.NewNop()
	}
	if size <= 0 {
		size = 1
	}
	a := &Async{next: next, log: log, jobs: make(chan job, size), done: make(chan struct{})}
	go a.loop()
	return a
}

func (a *Async) loop() {
	defer close(a.done)
	for j := range a.jobs {
		j.run(context.Background())
	}
}

// PublishBetActivity enfileira o evento; a entrega ignora o contexto do chamador
func (a *Async) PublishBetActivity(_ context.Context, e events.BetActivity) error {
	a.enqueue(job{kind: e.Kind, run: func(ctx context.Context) { _ = a.next.PublishBetActivity(ctx, e) }})
	return nil
}

func (a *Async) PublishSessionChanged(_ context.Context, e events.SessionChanged) error {
	a.enqueue(job{kind: "session_changed", run: func(ctx context.Context) { _ = a.next.PublishSessionChanged(ctx, e) }})
	return nil
}

func (a *Async) enqueue(j job) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.drop(j.kind, "publisher closed")
		return
	}
	select {
	case a.jobs <- j:
	default:
		a.drop(j.kind, "queue full")
	}
}

func (a *Async) drop(kind, reason string) {
	a.log.Warn("activity event dropped", zap.String("kind", kind), zap.String("reason", reason))
	if a.OnDropped != nil {
		a.OnDropped(kind)
	}
}

// Close para de aceitar eventos e espera a fila esvaziar ou ctx expirar
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.jobs)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
