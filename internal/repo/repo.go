package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"github.com/cecepns/trailrun/internal/model"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventFull             = errors.New("event is full")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrFAQNotFound           = errors.New("faq not found")
)

const uniqueViolation = "23505"

type Repository interface {
	// users
	CreateUser(ctx context.Context, u *model.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error

	// events
	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	ConfirmedCount(ctx context.Context, eventID int64) (int, error)

	// registrations
	RegisterTx(ctx context.Context, eventID, userID int64) (int64, error)
	GetRegistrationByID(ctx context.Context, id int64) (*model.Registration, error)
	GetRegistrationForUser(ctx context.Context, id, userID int64) (*model.RegistrationDetail, error)
	ListRegistrationsByUser(ctx context.Context, userID int64) ([]model.RegistrationDetail, error)
	ListRegistrationsAdmin(ctx context.Context, status, search string) ([]model.AdminRegistration, error)
	SetPaymentMethod(ctx context.Context, id, userID, methodID int64) error
	SetShirtSize(ctx context.Context, id, userID int64, size string) error
	UpdateRegistrationStatusTx(ctx context.Context, id int64, newStatus string) error

	// payment methods
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error)
	GetPaymentMethodByID(ctx context.Context, id int64) (*model.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, m *model.PaymentMethod) (int64, error)
	UpdatePaymentMethod(ctx context.Context, m *model.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, id int64) error

	// faqs
	ListFAQs(ctx context.Context) ([]model.FAQ, error)
	CreateFAQ(ctx context.Context, f *model.FAQ) (int64, error)
	UpdateFAQ(ctx context.Context, f *model.FAQ) error
	DeleteFAQ(ctx context.Context, id int64) error

	// dashboard
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	RecentRegistrations(ctx context.Context, limit int) ([]model.AdminRegistration, error)
	UpcomingEvents(ctx context.Context, limit int) ([]model.Event, error)

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}
