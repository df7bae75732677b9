package service

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/cecepns/trailrun/internal/dto"
)

func (s *service) GetActivePaymentMethods(ctx *ginext.Context) {
	methods, err := s.repo.ListPaymentMethods(ctx.Request.Context(), true)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list payment methods")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewPaymentMethodResponses(methods))
}

func (s *service) GetFAQs(ctx *ginext.Context) {
	faqs, err := s.repo.ListFAQs(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list faqs")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewFAQResponses(faqs))
}
