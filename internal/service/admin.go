package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/wb-go/wbf/ginext"

	"github.com/cecepns/trailrun/internal/dto"
	"github.com/cecepns/trailrun/internal/model"
	"github.com/cecepns/trailrun/internal/repo"
	"github.com/cecepns/trailrun/pkg/password"
	"github.com/cecepns/trailrun/pkg/validator"
)

const dashboardLimit = 5

func (s *service) Dashboard(ctx *ginext.Context) {
	stats, err := s.repo.DashboardStats(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load dashboard stats")
		dto.InternalServerError(ctx)
		return
	}

	recent, err := s.repo.RecentRegistrations(ctx.Request.Context(), dashboardLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load recent registrations")
		dto.InternalServerError(ctx)
		return
	}

	upcoming, err := s.repo.UpcomingEvents(ctx.Request.Context(), dashboardLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load upcoming events")
		dto.InternalServerError(ctx)
		return
	}

	resp := dto.DashboardResponse{
		TotalUsers:          stats.TotalUsers,
		TotalEvents:         stats.TotalEvents,
		TotalRevenue:        stats.TotalRevenue,
		PendingPayments:     stats.PendingPayments,
		RecentRegistrations: make([]dto.DashboardRegistration, 0, len(recent)),
		UpcomingEvents:      make([]dto.DashboardEvent, 0, len(upcoming)),
	}

	for _, r := range recent {
		item := dto.DashboardRegistration{
			ID:            r.ID,
			CreatedAt:     r.CreatedAt,
			PaymentStatus: r.PaymentStatus,
		}
		item.User.Name = r.UserName
		item.Event.Title = r.EventTitle
		resp.RecentRegistrations = append(resp.RecentRegistrations, item)
	}

	for _, e := range upcoming {
		resp.UpcomingEvents = append(resp.UpcomingEvents, dto.DashboardEvent{
			ID:              e.ID,
			Title:           e.Title,
			Date:            e.Date,
			Location:        e.Location,
			MaxParticipants: e.MaxParticipants,
			RegisteredCount: e.RegisteredCount,
		})
	}

	dto.SuccessResponse(ctx, resp)
}

func (s *service) AdminGetEvents(ctx *ginext.Context) {
	s.GetAllEvents(ctx)
}

func eventFromRequest(req *dto.EventRequest) (*model.Event, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}

	return &model.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            date,
		Time:            req.Time,
		Location:        req.Location,
		Category:        req.Category,
		Distance:        req.Distance,
		Price:           req.Price,
		MaxParticipants: req.MaxParticipants,
		Image:           req.Image,
	}, nil
}

func (s *service) AdminCreateEvent(ctx *ginext.Context) {
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	event, err := eventFromRequest(&req)
	if err != nil {
		dto.BadRequestError(ctx, err.Error())
		return
	}

	id, err := s.repo.CreateEvent(ctx.Request.Context(), event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", id).Msg("event created")

	dto.SuccessCreatedResponse(ctx, struct {
		dto.Message
		ID int64 `json:"id"`
	}{Message: dto.Message{Message: "Event created successfully"}, ID: id})
}

func (s *service) AdminUpdateEvent(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid event ID")
		return
	}

	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	event, err := eventFromRequest(&req)
	if err != nil {
		dto.BadRequestError(ctx, err.Error())
		return
	}
	event.ID = eventID

	if err := s.repo.UpdateEvent(ctx.Request.Context(), event); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.NotFoundError(ctx, dto.MsgEventNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "Event updated successfully"})
}

// AdminDeleteEvent cascades to the event's registrations in the store.
func (s *service) AdminDeleteEvent(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid event ID")
		return
	}

	if err := s.repo.DeleteEvent(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.NotFoundError(ctx, dto.MsgEventNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete event")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "Event deleted successfully"})
}

func (s *service) AdminGetPayments(ctx *ginext.Context) {
	status := ctx.Query("status")
	if status != "" && status != model.StatusPending && status != model.StatusConfirmed && status != model.StatusCancelled {
		dto.BadRequestError(ctx, "Invalid status filter")
		return
	}

	regs, err := s.repo.ListRegistrationsAdmin(ctx.Request.Context(), status, ctx.Query("q"))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list payments")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewAdminPaymentResponses(regs))
}

// AdminUpdatePaymentStatus overwrites the payment status with no
// prior-status check and no capacity re-validation. Admins are trusted to
// confirm judiciously; confirming past capacity is possible.
func (s *service) AdminUpdatePaymentStatus(ctx *ginext.Context) {
	regID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid registration ID")
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	reg, err := s.repo.GetRegistrationByID(ctx.Request.Context(), regID)
	if err != nil {
		dto.NotFoundError(ctx, dto.MsgRegNotFound)
		return
	}

	if err := s.repo.UpdateRegistrationStatusTx(ctx.Request.Context(), regID, req.Status); err != nil {
		if errors.Is(err, repo.ErrRegistrationNotFound) {
			dto.NotFoundError(ctx, dto.MsgRegNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to update payment status")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Int64("registration_id", regID).
		Str("status", req.Status).
		Msg("payment status updated")

	s.notify(reg.ID, reg.EventID, reg.UserID, req.Status)

	dto.SuccessResponse(ctx, dto.Message{Message: "Payment status updated successfully"})
}

func (s *service) AdminGetPaymentMethods(ctx *ginext.Context) {
	methods, err := s.repo.ListPaymentMethods(ctx.Request.Context(), false)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list payment methods")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewPaymentMethodResponses(methods))
}

func paymentMethodFromRequest(req *dto.PaymentMethodRequest) *model.PaymentMethod {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &model.PaymentMethod{
		Name:          req.Name,
		Type:          req.Type,
		Description:   req.Description,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		QRCode:        req.QRCode,
		Active:        active,
	}
}

func (s *service) AdminCreatePaymentMethod(ctx *ginext.Context) {
	var req dto.PaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	id, err := s.repo.CreatePaymentMethod(ctx.Request.Context(), paymentMethodFromRequest(&req))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create payment method")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessCreatedResponse(ctx, struct {
		dto.Message
		ID int64 `json:"id"`
	}{Message: dto.Message{Message: "Payment method created successfully"}, ID: id})
}

func (s *service) AdminUpdatePaymentMethod(ctx *ginext.Context) {
	methodID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid payment method ID")
		return
	}

	var req dto.PaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	method := paymentMethodFromRequest(&req)
	method.ID = methodID

	if err := s.repo.UpdatePaymentMethod(ctx.Request.Context(), method); err != nil {
		if errors.Is(err, repo.ErrPaymentMethodNotFound) {
			dto.NotFoundError(ctx, dto.MsgMethodNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to update payment method")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "Payment method updated successfully"})
}

func (s *service) AdminDeletePaymentMethod(ctx *ginext.Context) {
	methodID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid payment method ID")
		return
	}

	if err := s.repo.DeletePaymentMethod(ctx.Request.Context(), methodID); err != nil {
		if errors.Is(err, repo.ErrPaymentMethodNotFound) {
			dto.NotFoundError(ctx, dto.MsgMethodNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete payment method")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "Payment method deleted successfully"})
}

func (s *service) AdminGetFAQs(ctx *ginext.Context) {
	s.GetFAQs(ctx)
}

func (s *service) AdminCreateFAQ(ctx *ginext.Context) {
	var req dto.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	id, err := s.repo.CreateFAQ(ctx.Request.Context(), &model.FAQ{Question: req.Question, Answer: req.Answer})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create faq")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessCreatedResponse(ctx, struct {
		dto.Message
		ID int64 `json:"id"`
	}{Message: dto.Message{Message: "FAQ created successfully"}, ID: id})
}

func (s *service) AdminUpdateFAQ(ctx *ginext.Context) {
	faqID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid FAQ ID")
		return
	}

	var req dto.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	faq := &model.FAQ{ID: faqID, Question: req.Question, Answer: req.Answer}
	if err := s.repo.UpdateFAQ(ctx.Request.Context(), faq); err != nil {
		if errors.Is(err, repo.ErrFAQNotFound) {
			dto.NotFoundError(ctx, dto.MsgFAQNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to update faq")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "FAQ updated successfully"})
}

func (s *service) AdminDeleteFAQ(ctx *ginext.Context) {
	faqID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid FAQ ID")
		return
	}

	if err := s.repo.DeleteFAQ(ctx.Request.Context(), faqID); err != nil {
		if errors.Is(err, repo.ErrFAQNotFound) {
			dto.NotFoundError(ctx, dto.MsgFAQNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete faq")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "FAQ deleted successfully"})
}

func (s *service) AdminGetUsers(ctx *ginext.Context) {
	users, err := s.repo.ListUsers(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewAdminUserResponses(users))
}

func (s *service) AdminUpdateUserRole(ctx *ginext.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid user ID")
		return
	}

	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.repo.UpdateUserRole(ctx.Request.Context(), userID, req.Role); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.NotFoundError(ctx, dto.MsgUserNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to update user role")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "User role updated successfully"})
}

func (s *service) AdminUpdateUserPassword(ctx *ginext.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid user ID")
		return
	}

	var req dto.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		dto.InternalServerError(ctx)
		return
	}

	if err := s.repo.UpdateUserPassword(ctx.Request.Context(), userID, hashed); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			dto.NotFoundError(ctx, dto.MsgUserNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to update user password")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.Message{Message: "User password updated successfully"})
}
