package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdrive/internal/domain/event"
	"salesdrive/internal/store/repositories"
)

const schema = `
CREATE TABLE IF NOT EXISTS webhook_events (
	id                BIGSERIAL PRIMARY KEY,
	event_uuid        TEXT        NOT NULL UNIQUE,
	event_type        TEXT        NOT NULL,
	event_name        TEXT        NOT NULL DEFAULT '',
	account           TEXT        NOT NULL DEFAULT '',
	entity_id         BIGINT      NOT NULL DEFAULT 0,
	payload_json      JSONB       NOT NULL,
	received_at       TIMESTAMPTZ NOT NULL,
	processed_at      TIMESTAMPTZ,
	processing_status TEXT        NOT NULL DEFAULT 'pending',
	attempts          INT         NOT NULL DEFAULT 0,
	last_error        TEXT        NOT NULL DEFAULT '',
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS webhook_events_queue_idx ON webhook_events (processing_status, received_at);`

const selectColumns = `
	SELECT id, event_uuid, event_type, event_name, account, entity_id, payload_json,
	       received_at, processed_at, processing_status, attempts, last_error
	FROM webhook_events`

// eventRepository implements EventRepository on top of a pgx pool
type eventRepository struct {
	db *pgxpool.Pool
}

var _ repositories.EventRepository = (*eventRepository)(nil)

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *eventRepository {
	return &eventRepository{db: db}
}

// EnsureSchema creates the webhook_events table if it is missing
func (r *eventRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// Save inserts a new event or updates an existing one. Inserting a UUID that
// is already stored returns the existing row id.
func (r *eventRepository) Save(ctx context.Context, e *event.Event) error {
	if e.ID == 0 {
		return r.insert(ctx, e)
	}
	return r.update(ctx, e)
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (*event.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrEventNotFound
	}
	return e, err
}

// FindUnprocessed returns pending and queued events, oldest first
func (r *eventRepository) FindUnprocessed(ctx context.Context, limit int) ([]*event.Event, error) {
	rows, err := r.db.Query(ctx, selectColumns+`
		WHERE processing_status IN ('pending', 'queued')
		ORDER BY received_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ListRecent returns events newest first
func (r *eventRepository) ListRecent(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	rows, err := r.db.Query(ctx, selectColumns+`
		ORDER BY received_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *eventRepository) FindIDsInWindow(ctx context.Context, since, until *time.Time, max int) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM webhook_events
		WHERE ($1::timestamptz IS NULL OR received_at >= $1)
		  AND ($2::timestamptz IS NULL OR received_at <= $2)
		ORDER BY received_at ASC
		LIMIT $3`, since, until, max)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (r *eventRepository) MarkProcessed(ctx context.Context, id int64, status event.ProcessingStatus, lastError string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE webhook_events
		SET processing_status = $1, last_error = $2, attempts = attempts + 1,
		    processed_at = now(), updated_at = now()
		WHERE id = $3`, string(status), lastError, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) MarkForReprocessing(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE webhook_events
		SET processing_status = 'queued', processed_at = NULL, updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) insert(ctx context.Context, e *event.Event) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO webhook_events (event_uuid, event_type, event_name, account, entity_id,
		                            payload_json, received_at, processing_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_uuid) DO UPDATE SET updated_at = now()
		RETURNING id`,
		e.UUID, string(e.Type), e.Name, e.Account, e.EntityID,
		[]byte(e.Payload), e.ReceivedAt, string(e.ProcessingStatus)).Scan(&e.ID)
}

func (r *eventRepository) update(ctx context.Context, e *event.Event) error {
	_, err := r.db.Exec(ctx, `
		UPDATE webhook_events
		SET event_type = $1, event_name = $2, account = $3, entity_id = $4,
		    payload_json = $5, processed_at = $6, processing_status = $7,
		    attempts = $8, last_error = $9, updated_at = now()
		WHERE id = $10`,
		string(e.Type), e.Name, e.Account, e.EntityID,
		[]byte(e.Payload), e.ProcessedAt, string(e.ProcessingStatus),
		e.Attempts, e.LastError, e.ID)
	return err
}

func scanEvent(row pgx.Row) (*event.Event, error) {
	var (
		e       event.Event
		payload []byte
	)
	err := row.Scan(
		&e.ID, &e.UUID, &e.Type, &e.Name, &e.Account, &e.EntityID, &payload,
		&e.ReceivedAt, &e.ProcessedAt, &e.ProcessingStatus, &e.Attempts, &e.LastError)
	if err != nil {
		return nil, err
	}
	e.Payload = payload
	return &e, nil
}

func scanEvents(rows pgx.Rows) ([]*event.Event, error) {
	defer rows.Close()
	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
