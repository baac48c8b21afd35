package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"salesdrive/internal/domain"
	"salesdrive/internal/domain/order"
)

// Event is one webhook delivery pushed by SalesDrive
type Event struct {
	ID               int64
	UUID             string
	Type             Type
	Name             string
	Account          string
	EntityID         int
	Payload          json.RawMessage
	RawJSON          []byte
	ReceivedAt       time.Time
	ProcessedAt      *time.Time
	ProcessingStatus ProcessingStatus
	Attempts         int
	LastError        string

	// Order is filled in by the processor for order events
	Order *order.Order
}

// Type is the webhookType sent in the info block
type Type string

const (
	TypeOrder   Type = "order"
	TypeContact Type = "contact"
	TypePayment Type = "payment"
)

// ProcessingStatus represents the event processing status
type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingQueued    ProcessingStatus = "queued"
	ProcessingCompleted ProcessingStatus = "completed"
	ProcessingFailed    ProcessingStatus = "failed"
)

// namespace for delivery UUIDs; identical bodies map to the same UUID
var namespace = uuid.MustParse("6f1c2d0e-8a43-5b7e-9c1d-2a3b4c5d6e7f")

type envelope struct {
	Info struct {
		WebhookType  string `json:"webhookType"`
		WebhookEvent string `json:"webhookEvent"`
		Account      string `json:"account"`
	} `json:"info"`
	Data json.RawMessage `json:"data"`
}

// Parse builds a pending Event from a raw webhook body
func Parse(raw []byte, receivedAt time.Time) (*Event, error) {
	raw = bytes.TrimSpace(raw)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid webhook body: %w", err)
	}
	evt, err := NewEvent(Type(env.Info.WebhookType), env.Info.WebhookEvent, env.Info.Account, env.Data, raw)
	if err != nil {
		return nil, err
	}
	evt.ReceivedAt = receivedAt
	return evt, nil
}

// NewEvent creates a new event with validation
func NewEvent(eventType Type, name, account string, payload json.RawMessage, rawJSON []byte) (*Event, error) {
	if err := validateEventCreation(eventType, payload); err != nil {
		return nil, err
	}

	return &Event{
		UUID:             uuid.NewSHA1(namespace, rawJSON).String(),
		Type:             eventType,
		Name:             name,
		Account:          account,
		EntityID:         entityID(payload),
		Payload:          payload,
		RawJSON:          rawJSON,
		ReceivedAt:       time.Now(),
		ProcessingStatus: ProcessingPending,
	}, nil
}

// UpdateProcessingStatus updates the event processing status
func (e *Event) UpdateProcessingStatus(status ProcessingStatus) error {
	if !e.CanChangeStatus(status) {
		return fmt.Errorf("cannot change status from %s to %s", e.ProcessingStatus, status)
	}

	e.ProcessingStatus = status
	if status == ProcessingCompleted || status == ProcessingFailed {
		now := time.Now()
		e.ProcessedAt = &now
		e.Attempts++
	}
	return nil
}

// MarkForReprocessing puts a finished event back in the queue
func (e *Event) MarkForReprocessing() error {
	if e.ProcessingStatus == ProcessingPending || e.ProcessingStatus == ProcessingQueued {
		return fmt.Errorf("event is already waiting for processing")
	}

	e.ProcessingStatus = ProcessingQueued
	e.ProcessedAt = nil
	return nil
}

// IsProcessed checks if the event has been processed
func (e *Event) IsProcessed() bool {
	return e.ProcessingStatus == ProcessingCompleted || e.ProcessingStatus == ProcessingFailed
}

// CanChangeStatus checks if status can be changed
func (e *Event) CanChangeStatus(newStatus ProcessingStatus) bool {
	switch e.ProcessingStatus {
	case ProcessingPending:
		return newStatus == ProcessingQueued || newStatus == ProcessingCompleted || newStatus == ProcessingFailed
	case ProcessingQueued:
		return newStatus == ProcessingCompleted || newStatus == ProcessingFailed
	case ProcessingCompleted, ProcessingFailed:
		return newStatus == ProcessingQueued
	}
	return false
}

func validateEventCreation(eventType Type, payload json.RawMessage) error {
	if strings.TrimSpace(string(eventType)) == "" {
		return fmt.Errorf("webhook type is required")
	}
	p := bytes.TrimSpace(payload)
	if len(p) == 0 || p[0] != '{' {
		return fmt.Errorf("webhook data must be an object")
	}
	return nil
}

func entityID(payload json.RawMessage) int {
	var v struct {
		ID domain.Flex `json:"id"`
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return 0
	}
	return int(v.ID)
}
