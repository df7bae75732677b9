package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/cecepns/trailrun/cmd/middleware"
	"github.com/cecepns/trailrun/internal/service"
)

type Routers struct {
	Service service.Service
	Log     *zerolog.Logger
	Redis   *redis.Client
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware(r.Log))
	app.Use(cors.Default())

	authLimiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     1,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	authQuota := middleware.Quota(r.Redis, middleware.QuotaRule{
		Limit:  30,
		Window: time.Hour,
		KeyFn: func(c *ginext.Context) string {
			return "quota:auth:" + c.ClientIP()
		},
	})

	apiGroup := app.Group("/api/trailrun")

	auth := apiGroup.Group("/auth")
	auth.POST("/register", authLimiter.Middleware(middleware.ByClientIP), authQuota, r.Service.SignUp)
	auth.POST("/login", authLimiter.Middleware(middleware.ByClientIP), authQuota, r.Service.Login)
	auth.GET("/me", middleware.Authenticate(), r.Service.Me)

	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.GET("/events/:id", r.Service.GetEvent)
	apiGroup.GET("/payment-methods", r.Service.GetActivePaymentMethods)
	apiGroup.GET("/faqs", r.Service.GetFAQs)

	user := apiGroup.Group("", middleware.Authenticate())
	user.POST("/events/:id/register", r.Service.RegisterForEvent)
	user.GET("/registrations/user", r.Service.GetMyRegistrations)
	user.GET("/registrations/:id", r.Service.GetMyRegistration)
	user.POST("/registrations/:id/payment", r.Service.AttachPayment)
	user.PUT("/registrations/:id/shirt-size", r.Service.SetShirtSize)

	admin := apiGroup.Group("/admin", middleware.Authenticate(), middleware.RequireAdmin())
	admin.GET("/dashboard", r.Service.Dashboard)
	admin.GET("/events", r.Service.AdminGetEvents)
	admin.POST("/events", r.Service.AdminCreateEvent)
	admin.PUT("/events/:id", r.Service.AdminUpdateEvent)
	admin.DELETE("/events/:id", r.Service.AdminDeleteEvent)
	admin.GET("/payments", r.Service.AdminGetPayments)
	admin.PUT("/payments/:id", r.Service.AdminUpdatePaymentStatus)
	admin.GET("/payment-methods", r.Service.AdminGetPaymentMethods)
	admin.POST("/payment-methods", r.Service.AdminCreatePaymentMethod)
	admin.PUT("/payment-methods/:id", r.Service.AdminUpdatePaymentMethod)
	admin.DELETE("/payment-methods/:id", r.Service.AdminDeletePaymentMethod)
	admin.GET("/faqs", r.Service.AdminGetFAQs)
	admin.POST("/faqs", r.Service.AdminCreateFAQ)
	admin.PUT("/faqs/:id", r.Service.AdminUpdateFAQ)
	admin.DELETE("/faqs/:id", r.Service.AdminDeleteFAQ)
	admin.GET("/users", r.Service.AdminGetUsers)
	admin.PUT("/users/:id/role", r.Service.AdminUpdateUserRole)
	admin.PUT("/users/:id/password", r.Service.AdminUpdateUserPassword)

	return app
}
