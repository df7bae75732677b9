package repo

import (
	"context"
	"fmt"

	"github.com/cecepns/trailrun/internal/model"
)

const eventColumns = `
	e.id, e.title, e.description, e.date, e.time, e.location, e.category,
	e.distance, e.price, e.max_participants, e.image, e.created_at, e.updated_at,
	COALESCE(COUNT(r.id), 0) AS registered_count
`

const eventJoin = `
	FROM events e
	LEFT JOIN registrations r ON e.id = r.event_id AND r.payment_status = 'confirmed'
`

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.Time,
		&e.Location,
		&e.Category,
		&e.Distance,
		&e.Price,
		&e.MaxParticipants,
		&e.Image,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.RegisteredCount,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	query := `
		INSERT INTO events (title, description, date, time, location, category, distance, price, max_participants, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id
	`

	row := r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Location, e.Category,
		e.Distance, e.Price, e.MaxParticipants, e.Image,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (r *repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET title = $1, description = $2, date = $3, time = $4, location = $5,
		    category = $6, distance = $7, price = $8, max_participants = $9,
		    image = $10, updated_at = NOW()
		WHERE id = $11
	`, e.Title, e.Description, e.Date, e.Time, e.Location, e.Category,
		e.Distance, e.Price, e.MaxParticipants, e.Image, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRowAffected(res, ErrEventNotFound)
}

// DeleteEvent relies on ON DELETE CASCADE to drop dependent registrations.
func (r *repository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRowAffected(res, ErrEventNotFound)
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + eventJoin + `
		WHERE e.id = $1
		GROUP BY e.id
	`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (r *repository) ListEvents(ctx context.Context) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + eventJoin + `
		GROUP BY e.id
		ORDER BY e.date ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}

	return events, rows.Err()
}

// ConfirmedCount is always computed fresh from the registrations table.
func (r *repository) ConfirmedCount(ctx context.Context, eventID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND payment_status = 'confirmed'
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

func (r *repository) UpcomingEvents(ctx context.Context, limit int) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + eventJoin + `
		WHERE e.date >= CURRENT_DATE
		GROUP BY e.id
		ORDER BY e.date ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0, limit)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}

	return events, rows.Err()
}
