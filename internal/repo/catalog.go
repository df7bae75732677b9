package repo

import (
	"context"
	"fmt"

	"github.com/cecepns/trailrun/internal/model"
)

func (r *repository) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error) {
	query := `
		SELECT id, name, type, description, account_number, account_name, qr_code, active, created_at, updated_at
		FROM payment_methods
	`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment methods: %w", err)
	}
	defer rows.Close()

	methods := make([]model.PaymentMethod, 0)
	for rows.Next() {
		var m model.PaymentMethod
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Type, &m.Description, &m.AccountNumber, &m.AccountName,
			&m.QRCode, &m.Active, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, m)
	}

	return methods, rows.Err()
}

func (r *repository) GetPaymentMethodByID(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	query := `
		SELECT id, name, type, description, account_number, account_name, qr_code, active, created_at, updated_at
		FROM payment_methods
		WHERE id = $1
	`
	var m model.PaymentMethod
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Type, &m.Description, &m.AccountNumber, &m.AccountName,
		&m.QRCode, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, ErrPaymentMethodNotFound
	}
	return &m, nil
}

func (r *repository) CreatePaymentMethod(ctx context.Context, m *model.PaymentMethod) (int64, error) {
	query := `
		INSERT INTO payment_methods (name, type, description, account_number, account_name, qr_code, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.Type, m.Description, m.AccountNumber, m.AccountName, m.QRCode, m.Active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert payment method: %w", err)
	}
	return id, nil
}

func (r *repository) UpdatePaymentMethod(ctx context.Context, m *model.PaymentMethod) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_methods
		SET name = $1, type = $2, description = $3, account_number = $4,
		    account_name = $5, qr_code = $6, active = $7, updated_at = NOW()
		WHERE id = $8
	`, m.Name, m.Type, m.Description, m.AccountNumber, m.AccountName, m.QRCode, m.Active, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	return requireRowAffected(res, ErrPaymentMethodNotFound)
}

func (r *repository) DeletePaymentMethod(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return requireRowAffected(res, ErrPaymentMethodNotFound)
}

func (r *repository) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	query := `
		SELECT id, question, answer, created_at, updated_at
		FROM faqs
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get faqs: %w", err)
	}
	defer rows.Close()

	faqs := make([]model.FAQ, 0)
	for rows.Next() {
		var f model.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}

	return faqs, rows.Err()
}

func (r *repository) CreateFAQ(ctx context.Context, f *model.FAQ) (int64, error) {
	query := `
		INSERT INTO faqs (question, answer, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, f.Question, f.Answer).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert faq: %w", err)
	}
	return id, nil
}

func (r *repository) UpdateFAQ(ctx context.Context, f *model.FAQ) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE faqs SET question = $1, answer = $2, updated_at = NOW() WHERE id = $3
	`, f.Question, f.Answer, f.ID)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
	}
	return requireRowAffected(res, ErrFAQNotFound)
}

func (r *repository) DeleteFAQ(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	return requireRowAffected(res, ErrFAQNotFound)
}
