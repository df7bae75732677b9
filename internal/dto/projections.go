package dto

import (
	"time"

	"github.com/cecepns/trailrun/internal/model"
)

// The SPA consumes camelCase projections of the snake_case storage columns.
// Every entity is mapped exactly once, here.

type UserResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	EmergencyContact string    `json:"emergencyContact"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		EmergencyContact: u.EmergencyContact,
		Role:             u.Role,
		CreatedAt:        u.CreatedAt,
	}
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type EventResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Time            string    `json:"time"`
	Location        string    `json:"location"`
	Category        string    `json:"category"`
	Distance        string    `json:"distance"`
	Price           float64   `json:"price"`
	MaxParticipants int       `json:"maxParticipants"`
	Image           *string   `json:"image"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	RegisteredCount int       `json:"registeredCount"`
	RemainingSlots  int       `json:"remainingSlots"`
}

func NewEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Date:            e.Date,
		Time:            e.Time,
		Location:        e.Location,
		Category:        e.Category,
		Distance:        e.Distance,
		Price:           e.Price,
		MaxParticipants: e.MaxParticipants,
		Image:           e.Image,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		RegisteredCount: e.RegisteredCount,
		RemainingSlots:  e.RemainingSlots(),
	}
}

func NewEventResponses(events []model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}

type EventSummary struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Distance    string    `json:"distance"`
	Price       float64   `json:"price"`
}

type RegistrationResponse struct {
	ID              int64        `json:"id"`
	PaymentStatus   string       `json:"paymentStatus"`
	PaymentMethodID *int64       `json:"paymentMethodId"`
	ShirtSize       *string      `json:"shirtSize"`
	CreatedAt       time.Time    `json:"createdAt"`
	Event           EventSummary `json:"event"`
}

func NewRegistrationResponse(r *model.RegistrationDetail) RegistrationResponse {
	return RegistrationResponse{
		ID:              r.ID,
		PaymentStatus:   r.PaymentStatus,
		PaymentMethodID: r.PaymentMethodID,
		ShirtSize:       r.ShirtSize,
		CreatedAt:       r.CreatedAt,
		Event: EventSummary{
			Title:       r.EventTitle,
			Description: r.EventDescription,
			Date:        r.EventDate,
			Time:        r.EventTime,
			Location:    r.EventLocation,
			Category:    r.EventCategory,
			Distance:    r.EventDistance,
			Price:       r.EventPrice,
		},
	}
}

func NewRegistrationResponses(regs []model.RegistrationDetail) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(regs))
	for i := range regs {
		out = append(out, NewRegistrationResponse(&regs[i]))
	}
	return out
}

type RegistrationCreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	EventID int64  `json:"eventId"`
	UserID  int64  `json:"userId"`
}

type AdminPaymentResponse struct {
	ID              int64     `json:"id"`
	PaymentStatus   string    `json:"paymentStatus"`
	PaymentMethodID *int64    `json:"paymentMethodId"`
	ShirtSize       *string   `json:"shirtSize"`
	CreatedAt       time.Time `json:"createdAt"`
	User            struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Event struct {
		Title string  `json:"title"`
		Price float64 `json:"price"`
	} `json:"event"`
}

func NewAdminPaymentResponse(r *model.AdminRegistration) AdminPaymentResponse {
	resp := AdminPaymentResponse{
		ID:              r.ID,
		PaymentStatus:   r.PaymentStatus,
		PaymentMethodID: r.PaymentMethodID,
		ShirtSize:       r.ShirtSize,
		CreatedAt:       r.CreatedAt,
	}
	resp.User.Name = r.UserName
	resp.User.Email = r.UserEmail
	resp.Event.Title = r.EventTitle
	resp.Event.Price = r.EventPrice
	return resp
}

func NewAdminPaymentResponses(regs []model.AdminRegistration) []AdminPaymentResponse {
	out := make([]AdminPaymentResponse, 0, len(regs))
	for i := range regs {
		out = append(out, NewAdminPaymentResponse(&regs[i]))
	}
	return out
}

type PaymentMethodResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	AccountNumber *string   `json:"accountNumber"`
	AccountName   *string   `json:"accountName"`
	QRCode        *string   `json:"qrCode"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewPaymentMethodResponse(m *model.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:            m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Description:   m.Description,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		QRCode:        m.QRCode,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func NewPaymentMethodResponses(methods []model.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		out = append(out, NewPaymentMethodResponse(&methods[i]))
	}
	return out
}

type FAQResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewFAQResponse(f *model.FAQ) FAQResponse {
	return FAQResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func NewFAQResponses(faqs []model.FAQ) []FAQResponse {
	out := make([]FAQResponse, 0, len(faqs))
	for i := range faqs {
		out = append(out, NewFAQResponse(&faqs[i]))
	}
	return out
}

type AdminUserResponse struct {
	UserResponse
	RegistrationCount int `json:"registrationCount"`
}

func NewAdminUserResponses(users []model.User) []AdminUserResponse {
	out := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, AdminUserResponse{
			UserResponse:      NewUserResponse(&users[i]),
			RegistrationCount: users[i].RegistrationCount,
		})
	}
	return out
}

type DashboardRegistration struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	PaymentStatus string    `json:"paymentStatus"`
	User          struct {
		Name string `json:"name"`
	} `json:"user"`
	Event struct {
		Title string `json:"title"`
	} `json:"event"`
}

type DashboardEvent struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"maxParticipants"`
	RegisteredCount int       `json:"registeredCount"`
}

type DashboardResponse struct {
	TotalUsers          int                     `json:"totalUsers"`
	TotalEvents         int                     `json:"totalEvents"`
	TotalRevenue        float64                 `json:"totalRevenue"`
	PendingPayments     int                     `json:"pendingPayments"`
	RecentRegistrations []DashboardRegistration `json:"recentRegistrations"`
	UpcomingEvents      []DashboardEvent        `json:"upcomingEvents"`
}

// RegistrationNotification is the message published to RabbitMQ whenever a
// registration is created or its payment status changes.
type RegistrationNotification struct {
	RegistrationID int64  `json:"registrationId"`
	EventID        int64  `json:"eventId"`
	UserID         int64  `json:"userId"`
	Status         string `json:"status"`
}
