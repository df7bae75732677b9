package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type User struct {
	ID               int64     `db:"id"`
	Name             string    `db:"name"`
	Email            string    `db:"email"`
	Password         string    `db:"password"`
	Phone            string    `db:"phone"`
	EmergencyContact string    `db:"emergency_contact"`
	Role             string    `db:"role"`
	CreatedAt        time.Time `db:"created_at"`

	// RegistrationCount is filled by the admin users listing only.
	RegistrationCount int `db:"-"`
}

type Event struct {
	ID              int64     `db:"id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Date            time.Time `db:"date"`
	Time            string    `db:"time"`
	Location        string    `db:"location"`
	Category        string    `db:"category"`
	Distance        string    `db:"distance"`
	Price           float64   `db:"price"`
	MaxParticipants int       `db:"max_participants"`
	Image           *string   `db:"image"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	// RegisteredCount is the number of confirmed registrations, recomputed
	// on every read and never stored.
	RegisteredCount int `db:"-"`
}

// IsFull reports whether confirmed registrations have reached capacity.
// Pending registrations do not count toward capacity.
func (e *Event) IsFull() bool {
	return e.RegisteredCount >= e.MaxParticipants
}

func (e *Event) RemainingSlots() int {
	if left := e.MaxParticipants - e.RegisteredCount; left > 0 {
		return left
	}
	return 0
}

type Registration struct {
	ID              int64     `db:"id"`
	EventID         int64     `db:"event_id"`
	UserID          int64     `db:"user_id"`
	PaymentStatus   string    `db:"payment_status"`
	PaymentMethodID *int64    `db:"payment_method_id"`
	ShirtSize       *string   `db:"shirt_size"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// RegistrationDetail is a registration joined with its event summary,
// as returned to the registrant.
type RegistrationDetail struct {
	Registration
	EventTitle       string    `db:"title"`
	EventDescription string    `db:"description"`
	EventDate        time.Time `db:"date"`
	EventTime        string    `db:"time"`
	EventLocation    string    `db:"location"`
	EventCategory    string    `db:"category"`
	EventDistance    string    `db:"distance"`
	EventPrice       float64   `db:"price"`
}

// AdminRegistration is a registration joined with user and event summaries
// for the payment verification screens.
type AdminRegistration struct {
	Registration
	UserName   string  `db:"user_name"`
	UserEmail  string  `db:"user_email"`
	EventTitle string  `db:"event_title"`
	EventPrice float64 `db:"event_price"`
}

type PaymentMethod struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	Type          string    `db:"type"`
	Description   string    `db:"description"`
	AccountNumber *string   `db:"account_number"`
	AccountName   *string   `db:"account_name"`
	QRCode        *string   `db:"qr_code"`
	Active        bool      `db:"active"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type FAQ struct {
	ID        int64     `db:"id"`
	Question  string    `db:"question"`
	Answer    string    `db:"answer"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DashboardStats aggregates the admin dashboard counters.
type DashboardStats struct {
	TotalUsers      int
	TotalEvents     int
	TotalRevenue    float64
	PendingPayments int
}
