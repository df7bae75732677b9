package service

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/cecepns/trailrun/cmd/middleware"
	"github.com/cecepns/trailrun/internal/dto"
	"github.com/cecepns/trailrun/internal/rabbit"
	"github.com/cecepns/trailrun/internal/repo"
	"github.com/cecepns/trailrun/pkg/token"
)

type Service interface {
	SignUp(ctx *ginext.Context)
	Login(ctx *ginext.Context)
	Me(ctx *ginext.Context)

	GetAllEvents(ctx *ginext.Context)
	GetEvent(ctx *ginext.Context)

	RegisterForEvent(ctx *ginext.Context)
	GetMyRegistrations(ctx *ginext.Context)
	GetMyRegistration(ctx *ginext.Context)
	AttachPayment(ctx *ginext.Context)
	SetShirtSize(ctx *ginext.Context)

	GetActivePaymentMethods(ctx *ginext.Context)
	GetFAQs(ctx *ginext.Context)

	Dashboard(ctx *ginext.Context)
	AdminGetEvents(ctx *ginext.Context)
	AdminCreateEvent(ctx *ginext.Context)
	AdminUpdateEvent(ctx *ginext.Context)
	AdminDeleteEvent(ctx *ginext.Context)
	AdminGetPayments(ctx *ginext.Context)
	AdminUpdatePaymentStatus(ctx *ginext.Context)
	AdminGetPaymentMethods(ctx *ginext.Context)
	AdminCreatePaymentMethod(ctx *ginext.Context)
	AdminUpdatePaymentMethod(ctx *ginext.Context)
	AdminDeletePaymentMethod(ctx *ginext.Context)
	AdminGetFAQs(ctx *ginext.Context)
	AdminCreateFAQ(ctx *ginext.Context)
	AdminUpdateFAQ(ctx *ginext.Context)
	AdminDeleteFAQ(ctx *ginext.Context)
	AdminGetUsers(ctx *ginext.Context)
	AdminUpdateUserRole(ctx *ginext.Context)
	AdminUpdateUserPassword(ctx *ginext.Context)
}

type service struct {
	repo repo.Repository
	log  *zerolog.Logger
	rbt  *rabbit.Client
}

func NewService(repo repo.Repository, logger *zerolog.Logger, rbt *rabbit.Client) Service {
	return &service{
		repo: repo,
		log:  logger,
		rbt:  rbt,
	}
}

// caller returns the verified claims set by the auth middleware. Routes
// behind Authenticate always have them; a miss means a wiring bug.
func (s *service) caller(ctx *ginext.Context) (*token.Claims, bool) {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		s.log.Error().Str("path", ctx.Request.URL.Path).Msg("missing auth claims on protected route")
		dto.UnauthorizedError(ctx, dto.MsgTokenRequired)
	}
	return claims, ok
}

// notify publishes a registration lifecycle message. Failures are logged and
// never surfaced to the API caller.
func (s *service) notify(registrationID, eventID, userID int64, status string) {
	if s.rbt == nil {
		return
	}

	msg := dto.RegistrationNotification{
		RegistrationID: registrationID,
		EventID:        eventID,
		UserID:         userID,
		Status:         status,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal registration notification")
		return
	}
	if err := s.rbt.Publish(payload); err != nil {
		s.log.Error().Err(err).Msg("failed to publish registration notification")
	}
}
