package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink recebe eventos de auditoria sem bloquear o fluxo que os gerou.
type Sink interface {
	Dispatch(ev Event)
}

// Nop descarta tudo (testes e ambientes sem banco).
type Nop struct{}

func (Nop) Dispatch(Event) {}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
	done   sync.WaitGroup
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	d.done.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.done.Done()

	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity_id", ev.EntityID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// fila cheia: o evento é descartado, a API nunca quebra por auditoria
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close esvazia a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.done.Wait()
}

// --------------------------------------------------
// Ator da requisição
// --------------------------------------------------

type actorKey struct{}

func WithActor(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func ActorFrom(ctx context.Context) *uint {
	if id, ok := ctx.Value(actorKey{}).(uint); ok {
		return &id
	}
	return nil
}
