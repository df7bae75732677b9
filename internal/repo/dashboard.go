package repo

import (
	"context"
	"fmt"

	"github.com/cecepns/trailrun/internal/model"
)

func (r *repository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(e.price), 0)
		FROM registrations r
		JOIN events e ON r.event_id = e.id
		WHERE r.payment_status = 'confirmed'
	`).Scan(&stats.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations WHERE payment_status = 'pending'
	`).Scan(&stats.PendingPayments); err != nil {
		return nil, fmt.Errorf("failed to count pending payments: %w", err)
	}

	return &stats, nil
}

func (r *repository) RecentRegistrations(ctx context.Context, limit int) ([]model.AdminRegistration, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.payment_status, r.payment_method_id, r.shirt_size,
		       r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email,
		       e.title AS event_title, e.price AS event_price
		FROM registrations r
		JOIN users u ON r.user_id = u.id
		JOIN events e ON r.event_id = e.id
		ORDER BY r.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]model.AdminRegistration, 0, limit)
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
