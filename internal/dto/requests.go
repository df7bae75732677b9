package dto

type RegisterUserRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=255"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
	Phone            string `json:"phone" validate:"required"`
	EmergencyContact string `json:"emergencyContact" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EventRequest struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Description     string  `json:"description"`
	Date            string  `json:"date" validate:"required"`
	Time            string  `json:"time" validate:"required"`
	Location        string  `json:"location" validate:"required"`
	Category        string  `json:"category" validate:"required,category"`
	Distance        string  `json:"distance" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	MaxParticipants int     `json:"maxParticipants" validate:"positive"`
	Image           *string `json:"image"`
}

type AttachPaymentRequest struct {
	PaymentMethodID int64 `json:"paymentMethodId" validate:"positive"`
}

type ShirtSizeRequest struct {
	ShirtSize string `json:"shirtSize" validate:"required,shirtsize"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

type PaymentMethodRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Type          string  `json:"type" validate:"required,paytype"`
	Description   string  `json:"description"`
	AccountNumber *string `json:"accountNumber"`
	AccountName   *string `json:"accountName"`
	QRCode        *string `json:"qrCode"`
	Active        *bool   `json:"active"`
}

type FAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}
