package dto

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

const (
	MsgInvalidJSON       = "Invalid request body"
	MsgServerError       = "Server error"
	MsgInvalidToken      = "Invalid token"
	MsgTokenRequired     = "Access token required"
	MsgAdminRequired     = "Admin access required"
	MsgEventNotFound     = "Event not found"
	MsgEventFull         = "Event is full"
	MsgAlreadyRegistered = "Already registered for this event"
	MsgRegNotFound       = "Registration not found"
	MsgMethodNotFound    = "Payment method not found"
	MsgUserNotFound      = "User not found"
	MsgFAQNotFound       = "FAQ not found"
	MsgEmailTaken        = "Email already registered"
	MsgBadCredentials    = "Invalid credentials"
)

type Message struct {
	Message string `json:"message"`
}

func BadRequestError(c *ginext.Context, msg string) {
	c.JSON(http.StatusBadRequest, Message{Message: msg})
}

func UnauthorizedError(c *ginext.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Message{Message: msg})
}

func ForbiddenError(c *ginext.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Message{Message: msg})
}

func NotFoundError(c *ginext.Context, msg string) {
	c.JSON(http.StatusNotFound, Message{Message: msg})
}

// InternalServerError hides store failures behind a generic message; the
// cause is logged at the call site only.
func InternalServerError(c *ginext.Context) {
	c.JSON(http.StatusInternalServerError, Message{Message: MsgServerError})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
