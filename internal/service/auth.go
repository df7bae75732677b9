package service

import (
	"errors"
	"fmt"

	"github.com/wb-go/wbf/ginext"

	"github.com/cecepns/trailrun/internal/dto"
	"github.com/cecepns/trailrun/internal/model"
	"github.com/cecepns/trailrun/internal/repo"
	"github.com/cecepns/trailrun/pkg/password"
	"github.com/cecepns/trailrun/pkg/token"
	"github.com/cecepns/trailrun/pkg/validator"
)

func (s *service) SignUp(ctx *ginext.Context) {
	var req dto.RegisterUserRequest
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

	user := &model.User{
		Name:             req.Name,
		Email:            req.Email,
		Password:         hashed,
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		Role:             model.RoleUser,
	}

	id, err := s.repo.CreateUser(ctx.Request.Context(), user)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			dto.BadRequestError(ctx, dto.MsgEmailTaken)
			return
		}
		s.log.Error().Err(err).Msg("failed to create user")
		dto.InternalServerError(ctx)
		return
	}
	user.ID = id

	created, err := s.repo.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load created user")
		dto.InternalServerError(ctx)
		return
	}

	tok, err := token.Generate(created.ID, created.Email, created.Role)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to generate token")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("user_id", id).Msg("user registered")

	dto.SuccessCreatedResponse(ctx, dto.AuthResponse{
		Message: "User created successfully",
		Token:   tok,
		User:    dto.NewUserResponse(created),
	})
}

func (s *service) Login(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	user, err := s.repo.GetUserByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		dto.BadRequestError(ctx, dto.MsgBadCredentials)
		return
	}

	if !password.Check(req.Password, user.Password) {
		dto.BadRequestError(ctx, dto.MsgBadCredentials)
		return
	}

	tok, err := token.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to generate token")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.AuthResponse{
		Message: "Login successful",
		Token:   tok,
		User:    dto.NewUserResponse(user),
	})
}

func (s *service) Me(ctx *ginext.Context) {
	claims, ok := s.caller(ctx)
	if !ok {
		return
	}

	user, err := s.repo.GetUserByID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		dto.NotFoundError(ctx, dto.MsgUserNotFound)
		return
	}

	dto.SuccessResponse(ctx, struct {
		User dto.UserResponse `json:"user"`
	}{User: dto.NewUserResponse(user)})
}
