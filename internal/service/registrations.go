package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"github.com/cecepns/trailrun/internal/dto"
	"github.com/cecepns/trailrun/internal/model"
	"github.com/cecepns/trailrun/internal/repo"
	"github.com/cecepns/trailrun/pkg/validator"
)

func (s *service) RegisterForEvent(ctx *ginext.Context) {
	claims, ok := s.caller(ctx)
	if !ok {
		return
	}

	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid event ID")
		return
	}

	id, err := s.repo.RegisterTx(ctx.Request.Context(), eventID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEventNotFound):
			dto.NotFoundError(ctx, dto.MsgEventNotFound)
		case errors.Is(err, repo.ErrEventFull):
			dto.BadRequestError(ctx, dto.MsgEventFull)
		case errors.Is(err, repo.ErrDuplicateRegistration):
			dto.BadRequestError(ctx, dto.MsgAlreadyRegistered)
		default:
			s.log.Error().Err(err).Msg("failed to register for event")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Int64("registration_id", id).
		Int64("event_id", eventID).
		Int64("user_id", claims.UserID).
		Msg("registration created")

	s.notify(id, eventID, claims.UserID, model.StatusPending)

	dto.SuccessCreatedResponse(ctx, dto.RegistrationCreatedResponse{
		Message: "Registration successful",
		ID:      id,
		EventID: eventID,
		UserID:  claims.UserID,
	})
}

func (s *service) GetMyRegistrations(ctx *ginext.Context) {
	claims, ok := s.caller(ctx)
	if !ok {
		return
	}

	regs, err := s.repo.ListRegistrationsByUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list registrations")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewRegistrationResponses(regs))
}

func (s *service) GetMyRegistration(ctx *ginext.Context) {
	claims, ok := s.caller(ctx)
	if !ok {
		return
	}

	regID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid registration ID")
		return
	}

	reg, err := s.repo.GetRegistrationForUser(ctx.Request.Context(), regID, claims.UserID)
	if err != nil {
		dto.NotFoundError(ctx, dto.MsgRegNotFound)
		return
	}

	dto.SuccessResponse(ctx, dto.NewRegistrationResponse(reg))
}

// AttachPayment records which payment method the registrant paid with. The
// status stays whatever it was; only an admin moves it.
func (s *service) AttachPayment(ctx *ginext.Context) {
	claims, ok := s.caller(ctx)
	if !ok {
		return
	}

	regID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid registration ID")
		return
	}

	var req dto.AttachPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	if _, err := s.repo.GetPaymentMethodByID(ctx.Request.Context(), req.PaymentMethodID); err != nil {
		dto.NotFoundError(ctx, dto.MsgMethodNotFound)
		return
	}

	err = s.repo.SetPaymentMethod(ctx.Request.Context(), regID, claims.UserID, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, repo.ErrRegistrationNotFound) {
			dto.NotFoundError(ctx, dto.MsgRegNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to attach payment method")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "Payment confirmation submitted"})
}

func (s *service) SetShirtSize(ctx *ginext.Context) {
	claims, ok := s.caller(ctx)
	if !ok {
		return
	}

	regID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid registration ID")
		return
	}

	var req dto.ShirtSizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	err = s.repo.SetShirtSize(ctx.Request.Context(), regID, claims.UserID, req.ShirtSize)
	if err != nil {
		if errors.Is(err, repo.ErrRegistrationNotFound) {
			dto.NotFoundError(ctx, dto.MsgRegNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to set shirt size")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "Shirt size updated"})
}
