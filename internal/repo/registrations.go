package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cecepns/trailrun/internal/model"
)

// RegisterTx creates a pending registration for (eventID, userID) inside a
// single transaction. The event row is locked FOR UPDATE so two callers
// racing on the last slot serialize on the capacity check, and the
// UNIQUE (event_id, user_id) constraint turns a concurrent duplicate insert
// into a detectable write failure instead of relying on the pre-check alone.
// Only confirmed registrations count toward capacity.
func (r *repository) RegisterTx(ctx context.Context, eventID, userID int64) (int64, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var event model.Event
	err = tx.QueryRowContext(ctx, `
		SELECT id, max_participants
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, eventID).Scan(&event.ID, &event.MaxParticipants)
	if err != nil {
		_ = tx.Rollback()
		return 0, ErrEventNotFound
	}

	var existing int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID).Scan(&existing)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to check duplicate registration: %w", err)
	}
	if existing > 0 {
		_ = tx.Rollback()
		return 0, ErrDuplicateRegistration
	}

	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND payment_status = 'confirmed'
	`, eventID).Scan(&event.RegisteredCount)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	if event.IsFull() {
		_ = tx.Rollback()
		return 0, ErrEventFull
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (event_id, user_id, payment_status, created_at, updated_at)
		VALUES ($1, $2, 'pending', NOW(), NOW())
		RETURNING id
	`, eventID, userID).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return 0, ErrDuplicateRegistration
		}
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func (r *repository) GetRegistrationByID(ctx context.Context, id int64) (*model.Registration, error) {
	query := `
		SELECT id, event_id, user_id, payment_status, payment_method_id, shirt_size, created_at, updated_at
		FROM registrations
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var reg model.Registration
	if err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.PaymentStatus,
		&reg.PaymentMethodID,
		&reg.ShirtSize,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	); err != nil {
		return nil, ErrRegistrationNotFound
	}

	return &reg, nil
}

func scanRegistrationDetail(row interface{ Scan(...any) error }) (*model.RegistrationDetail, error) {
	var reg model.RegistrationDetail
	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.PaymentStatus,
		&reg.PaymentMethodID,
		&reg.ShirtSize,
		&reg.CreatedAt,
		&reg.UpdatedAt,
		&reg.EventTitle,
		&reg.EventDescription,
		&reg.EventDate,
		&reg.EventTime,
		&reg.EventLocation,
		&reg.EventCategory,
		&reg.EventDistance,
		&reg.EventPrice,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

const registrationDetailColumns = `
	r.id, r.event_id, r.user_id, r.payment_status, r.payment_method_id, r.shirt_size,
	r.created_at, r.updated_at,
	e.title, e.description, e.date, e.time, e.location, e.category, e.distance, e.price
`

// GetRegistrationForUser enforces ownership in the query itself: a row that
// exists but belongs to someone else is indistinguishable from a missing one.
func (r *repository) GetRegistrationForUser(ctx context.Context, id, userID int64) (*model.RegistrationDetail, error) {
	query := `
		SELECT ` + registrationDetailColumns + `
		FROM registrations r
		JOIN events e ON r.event_id = e.id
		WHERE r.id = $1 AND r.user_id = $2
	`
	reg, err := scanRegistrationDetail(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, ErrRegistrationNotFound
	}
	return reg, nil
}

func (r *repository) ListRegistrationsByUser(ctx context.Context, userID int64) ([]model.RegistrationDetail, error) {
	query := `
		SELECT ` + registrationDetailColumns + `
		FROM registrations r
		JOIN events e ON r.event_id = e.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]model.RegistrationDetail, 0)
	for rows.Next() {
		reg, err := scanRegistrationDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}

	return regs, rows.Err()
}

func (r *repository) ListRegistrationsAdmin(ctx context.Context, status, search string) ([]model.AdminRegistration, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.payment_status, r.payment_method_id, r.shirt_size,
		       r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email,
		       e.title AS event_title, e.price AS event_price
		FROM registrations r
		JOIN users u ON r.user_id = u.id
		JOIN events e ON r.event_id = e.id
	`

	var (
		args  []any
		where string
	)
	if status != "" {
		args = append(args, status)
		where = fmt.Sprintf(" WHERE r.payment_status = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		clause := fmt.Sprintf("(u.name ILIKE $%d OR u.email ILIKE $%d OR e.title ILIKE $%d)",
			len(args), len(args), len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	rows, err := r.db.QueryContext(ctx, query+where+" ORDER BY r.created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]model.AdminRegistration, 0)
	for rows.Next() {
		var reg model.AdminRegistration
		if err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.PaymentStatus,
			&reg.PaymentMethodID,
			&reg.ShirtSize,
			&reg.CreatedAt,
			&reg.UpdatedAt,
			&reg.UserName,
			&reg.UserEmail,
			&reg.EventTitle,
			&reg.EventPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// SetPaymentMethod overwrites the payment method reference. Calling it again
// with a different method simply replaces the previous choice.
func (r *repository) SetPaymentMethod(ctx context.Context, id, userID, methodID int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE registrations
		SET payment_method_id = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, methodID, id, userID)
	if err != nil {
		return fmt.Errorf("failed to set payment method: %w", err)
	}
	return requireRowAffected(res, ErrRegistrationNotFound)
}

func (r *repository) SetShirtSize(ctx context.Context, id, userID int64, size string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE registrations
		SET shirt_size = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, size, id, userID)
	if err != nil {
		return fmt.Errorf("failed to set shirt size: %w", err)
	}
	return requireRowAffected(res, ErrRegistrationNotFound)
}

// UpdateRegistrationStatusTx overwrites the payment status unconditionally.
// There is no prior-status check and no capacity re-validation: an admin can
// confirm past capacity. Known gap, kept on purpose.
func (r *repository) UpdateRegistrationStatusTx(ctx context.Context, id int64, newStatus string) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	query := `
		UPDATE registrations
		SET payment_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updated int64
	if err := tx.QueryRowContext(ctx, query, newStatus, id).Scan(&updated); err != nil {
		_ = tx.Rollback()
		if err == sql.ErrNoRows {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to update registration status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func requireRowAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
