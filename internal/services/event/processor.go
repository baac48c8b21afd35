package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/event"
	"salesdrive/internal/domain/order"
	"salesdrive/internal/store/repositories"
)

// Handler reacts to one processed event
type Handler interface {
	Handle(ctx context.Context, evt *event.Event) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, evt *event.Event) error

func (f HandlerFunc) Handle(ctx context.Context, evt *event.Event) error {
	return f(ctx, evt)
}

// OrderFinder loads the current state of an order. The order service
// satisfies it.
type OrderFinder interface {
	FindByID(ctx context.Context, id int) (*order.Order, error)
}

// Processor enriches events and fans them out to the registered handlers
type Processor struct {
	eventRepo repositories.EventRepository
	orders    OrderFinder
	log       zerolog.Logger

	mu       sync.RWMutex
	handlers map[event.Type][]Handler
}

// NewProcessor creates a new event processor. orders may be nil, in which
// case order events are not enriched.
func NewProcessor(eventRepo repositories.EventRepository, orders OrderFinder, logger zerolog.Logger) *Processor {
	return &Processor{
		eventRepo: eventRepo,
		orders:    orders,
		log:       logger.With().Str("component", "processor").Logger(),
		handlers:  make(map[event.Type][]Handler),
	}
}

// Register adds h for events of type t
func (p *Processor) Register(t event.Type, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[t] = append(p.handlers[t], h)
}

func (p *Processor) handlersFor(t event.Type) []Handler {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Handler(nil), p.handlers[t]...)
}

// ProcessEvent runs every handler for evt and records the outcome. Events
// without handlers are completed.
func (p *Processor) ProcessEvent(ctx context.Context, evt *event.Event) error {
	if err := p.enrich(ctx, evt); err != nil {
		return p.finish(ctx, evt, err)
	}

	var result *multierror.Error
	for _, h := range p.handlersFor(evt.Type) {
		if err := h.Handle(ctx, evt); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return p.finish(ctx, evt, result.ErrorOrNil())
}

func (p *Processor) enrich(ctx context.Context, evt *event.Event) error {
	if evt.Type != event.TypeOrder || evt.EntityID <= 0 || p.orders == nil {
		return nil
	}

	o, err := p.orders.FindByID(ctx, evt.EntityID)
	switch {
	case errors.Is(err, apierr.ErrNotFound):
		p.log.Warn().
			Int64("event_id", evt.ID).
			Int("order_id", evt.EntityID).
			Msg("order from webhook not found, continuing without it")
		return nil
	case err != nil:
		return fmt.Errorf("load order %d: %w", evt.EntityID, err)
	}
	evt.Order = o
	return nil
}

func (p *Processor) finish(ctx context.Context, evt *event.Event, procErr error) error {
	status := event.ProcessingCompleted
	lastError := ""
	if procErr != nil {
		status = event.ProcessingFailed
		lastError = procErr.Error()
	}

	if err := p.eventRepo.MarkProcessed(ctx, evt.ID, status, lastError); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	if err := evt.UpdateProcessingStatus(status); err != nil {
		p.log.Debug().Err(err).Int64("event_id", evt.ID).Msg("in-memory status not updated")
	}
	evt.LastError = lastError
	return procErr
}
