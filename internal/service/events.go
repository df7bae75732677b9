package service

import (
	"errors"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"github.com/cecepns/trailrun/internal/dto"
	"github.com/cecepns/trailrun/internal/repo"
)

func (s *service) GetAllEvents(ctx *ginext.Context) {
	events, err := s.repo.ListEvents(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewEventResponses(events))
}

func (s *service) GetEvent(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadRequestError(ctx, "Invalid event ID")
		return
	}

	event, err := s.repo.GetEventByID(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.NotFoundError(ctx, dto.MsgEventNotFound)
			return
		}
		s.log.Error().Err(err).Msg("failed to get event")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewEventResponse(event))
}
