package service_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecepns/trailrun/cmd/middleware"
	"github.com/cecepns/trailrun/internal/model"
	"github.com/cecepns/trailrun/internal/service"
	"github.com/cecepns/trailrun/pkg/password"
	"github.com/cecepns/trailrun/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
	token.Init("test-secret", time.Hour)
}

func setupRouter(f *fakeRepo) *gin.Engine {
	logger := zerolog.Nop()
	svc := service.NewService(f, &logger, nil)

	r := gin.New()
	api := r.Group("/api/trailrun")

	api.POST("/auth/register", svc.SignUp)
	api.POST("/auth/login", svc.Login)
	api.GET("/auth/me", middleware.Authenticate(), svc.Me)
	api.GET("/events", svc.GetAllEvents)
	api.GET("/events/:id", svc.GetEvent)
	api.GET("/payment-methods", svc.GetActivePaymentMethods)
	api.GET("/faqs", svc.GetFAQs)

	user := api.Group("", middleware.Authenticate())
	user.POST("/events/:id/register", svc.RegisterForEvent)
	user.GET("/registrations/user", svc.GetMyRegistrations)
	user.GET("/registrations/:id", svc.GetMyRegistration)
	user.POST("/registrations/:id/payment", svc.AttachPayment)
	user.PUT("/registrations/:id/shirt-size", svc.SetShirtSize)

	admin := api.Group("/admin", middleware.Authenticate(), middleware.RequireAdmin())
	admin.GET("/dashboard", svc.Dashboard)
	admin.POST("/events", svc.AdminCreateEvent)
	admin.GET("/payments", svc.AdminGetPayments)
	admin.PUT("/payments/:id", svc.AdminUpdatePaymentStatus)
	admin.GET("/users", svc.AdminGetUsers)

	return r
}

func bearerFor(t *testing.T, u *model.User) string {
	t.Helper()
	tok, err := token.Generate(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterForEvent(t *testing.T) {
	f := newFakeRepo()
	user := f.addUser("Budi", "budi@example.com", model.RoleUser)
	event := f.addEvent("Bukit Trail 15K", 100)
	r := setupRouter(f)
	auth := bearerFor(t, user)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), auth, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Registration successful", body["message"])
	assert.Equal(t, float64(event.ID), body["eventId"])
	assert.Equal(t, float64(user.ID), body["userId"])

	// second attempt against the same event is rejected regardless of status
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), auth, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already registered for this event", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/trailrun/events/9999/register", auth, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCapacityCountsConfirmedOnly(t *testing.T) {
	f := newFakeRepo()
	event := f.addEvent("Gunung Ultra 50K", 2)
	admin := f.addUser("Admin", "admin@example.com", model.RoleAdmin)
	r := setupRouter(f)
	adminAuth := bearerFor(t, admin)

	register := func(u *model.User) *httptest.ResponseRecorder {
		return doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), bearerFor(t, u), nil)
	}

	a := f.addUser("A", "a@example.com", model.RoleUser)
	b := f.addUser("B", "b@example.com", model.RoleUser)
	c := f.addUser("C", "c@example.com", model.RoleUser)
	d := f.addUser("D", "d@example.com", model.RoleUser)

	wa := register(a)
	wb := register(b)
	require.Equal(t, http.StatusCreated, wa.Code)
	require.Equal(t, http.StatusCreated, wb.Code)

	// both pending: the event is not full yet
	w := register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// public view still reports zero taken slots
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/trailrun/events/%d", event.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)
	assert.Equal(t, float64(0), view["registeredCount"])
	assert.Equal(t, float64(2), view["remainingSlots"])

	confirm := func(w *httptest.ResponseRecorder) {
		regID := decode(t, w)["id"]
		resp := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/trailrun/admin/payments/%v", regID), adminAuth,
			map[string]string{"status": model.StatusConfirmed})
		require.Equal(t, http.StatusOK, resp.Code)
	}
	confirm(wa)
	confirm(wb)

	// two confirmed out of two slots: new registrations bounce
	w = register(d)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Event is full", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/trailrun/events/%d", event.ID), "", nil)
	view = decode(t, w)
	assert.Equal(t, float64(2), view["registeredCount"])
	assert.Equal(t, float64(0), view["remainingSlots"])
}

func TestCancellingFreesSlot(t *testing.T) {
	f := newFakeRepo()
	event := f.addEvent("Hutan Fun Run 5K", 1)
	admin := f.addUser("Admin", "admin@example.com", model.RoleAdmin)
	a := f.addUser("A", "a@example.com", model.RoleUser)
	b := f.addUser("B", "b@example.com", model.RoleUser)
	r := setupRouter(f)
	adminAuth := bearerFor(t, admin)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), bearerFor(t, a), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	regID := decode(t, w)["id"]

	resp := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/trailrun/admin/payments/%v", regID), adminAuth,
		map[string]string{"status": model.StatusConfirmed})
	require.Equal(t, http.StatusOK, resp.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), bearerFor(t, b), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/trailrun/admin/payments/%v", regID), adminAuth,
		map[string]string{"status": model.StatusCancelled})
	require.Equal(t, http.StatusOK, resp.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), bearerFor(t, b), nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAttachPaymentAndShirtSize(t *testing.T) {
	f := newFakeRepo()
	event := f.addEvent("Bukit Trail 15K", 10)
	method := f.addMethod("BCA Transfer", "bank")
	a := f.addUser("A", "a@example.com", model.RoleUser)
	b := f.addUser("B", "b@example.com", model.RoleUser)
	r := setupRouter(f)
	authA := bearerFor(t, a)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), authA, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	regID := decode(t, w)["id"]

	// unknown payment method
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/registrations/%v/payment", regID), authA,
		map[string]any{"paymentMethodId": 9999})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Payment method not found", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/registrations/%v/payment", regID), authA,
		map[string]any{"paymentMethodId": method.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Payment confirmation submitted", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/trailrun/registrations/%v/shirt-size", regID), authA,
		map[string]string{"shirtSize": "L"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/trailrun/registrations/%v", regID), authA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reg := decode(t, w)
	assert.Equal(t, model.StatusPending, reg["paymentStatus"])
	assert.Equal(t, float64(method.ID), reg["paymentMethodId"])
	assert.Equal(t, "L", reg["shirtSize"])
	assert.Equal(t, event.Title, reg["event"].(map[string]any)["title"])

	// someone else's registration looks like a missing one
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/trailrun/registrations/%v", regID), bearerFor(t, b), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/registrations/%v/payment", regID), bearerFor(t, b),
		map[string]any{"paymentMethodId": method.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelledKeepsPaymentDetails(t *testing.T) {
	f := newFakeRepo()
	event := f.addEvent("Bukit Trail 15K", 10)
	method := f.addMethod("OVO", "ewallet")
	admin := f.addUser("Admin", "admin@example.com", model.RoleAdmin)
	a := f.addUser("A", "a@example.com", model.RoleUser)
	r := setupRouter(f)
	authA := bearerFor(t, a)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), authA, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	regID := decode(t, w)["id"]

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/registrations/%v/payment", regID), authA,
		map[string]any{"paymentMethodId": method.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/trailrun/admin/payments/%v", regID), bearerFor(t, admin),
		map[string]string{"status": model.StatusCancelled})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/trailrun/registrations/%v", regID), authA, nil)
	reg := decode(t, w)
	assert.Equal(t, model.StatusCancelled, reg["paymentStatus"])
	assert.Equal(t, float64(method.ID), reg["paymentMethodId"])
}

func TestAdminUpdatePaymentStatusValidation(t *testing.T) {
	f := newFakeRepo()
	admin := f.addUser("Admin", "admin@example.com", model.RoleAdmin)
	user := f.addUser("A", "a@example.com", model.RoleUser)
	r := setupRouter(f)

	w := doJSON(t, r, http.MethodPut, "/api/trailrun/admin/payments/123", bearerFor(t, admin),
		map[string]string{"status": "paid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/trailrun/admin/payments/123", bearerFor(t, admin),
		map[string]string{"status": model.StatusConfirmed})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Registration not found", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPut, "/api/trailrun/admin/payments/123", bearerFor(t, user),
		map[string]string{"status": model.StatusConfirmed})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/trailrun/admin/payments/123", "",
		map[string]string{"status": model.StatusConfirmed})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthFlow(t *testing.T) {
	f := newFakeRepo()
	r := setupRouter(f)

	payload := map[string]string{
		"name":             "Budi Santoso",
		"email":            "budi@example.com",
		"password":         "rahasia123",
		"phone":            "081234567890",
		"emergencyContact": "081298765432",
	}

	w := doJSON(t, r, http.MethodPost, "/api/trailrun/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotEmpty(t, body["token"])
	userBody := body["user"].(map[string]any)
	assert.Equal(t, "budi@example.com", userBody["email"])
	assert.Equal(t, model.RoleUser, userBody["role"])
	assert.Equal(t, "081298765432", userBody["emergencyContact"])

	// same email again
	w = doJSON(t, r, http.MethodPost, "/api/trailrun/auth/register", "", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/trailrun/auth/login", "",
		map[string]string{"email": "budi@example.com", "password": "rahasia123"})
	require.Equal(t, http.StatusOK, w.Code)
	tok := decode(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/trailrun/auth/login", "",
		map[string]string{"email": "budi@example.com", "password": "salah"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/api/trailrun/auth/me", "Bearer "+tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Budi Santoso", me["name"])
}

func TestLoginChecksHash(t *testing.T) {
	f := newFakeRepo()
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)
	u := f.addUser("A", "a@example.com", model.RoleUser)
	u.Password = hash
	r := setupRouter(f)

	w := doJSON(t, r, http.MethodPost, "/api/trailrun/auth/login", "",
		map[string]string{"email": "a@example.com", "password": "correct-horse"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboard(t *testing.T) {
	f := newFakeRepo()
	admin := f.addUser("Admin", "admin@example.com", model.RoleAdmin)
	a := f.addUser("A", "a@example.com", model.RoleUser)
	b := f.addUser("B", "b@example.com", model.RoleUser)
	event := f.addEvent("Bukit Trail 15K", 10)
	r := setupRouter(f)

	wa := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), bearerFor(t, a), nil)
	require.Equal(t, http.StatusCreated, wa.Code)
	wb := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), bearerFor(t, b), nil)
	require.Equal(t, http.StatusCreated, wb.Code)

	regID := decode(t, wa)["id"]
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/trailrun/admin/payments/%v", regID), bearerFor(t, admin),
		map[string]string{"status": model.StatusConfirmed})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/trailrun/admin/dashboard", bearerFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(3), body["totalUsers"])
	assert.Equal(t, float64(1), body["totalEvents"])
	assert.Equal(t, event.Price, body["totalRevenue"])
	assert.Equal(t, float64(1), body["pendingPayments"])
	assert.Len(t, body["recentRegistrations"], 2)
	assert.Len(t, body["upcomingEvents"], 1)
}

func TestAdminGetPaymentsStatusFilter(t *testing.T) {
	f := newFakeRepo()
	admin := f.addUser("Admin", "admin@example.com", model.RoleAdmin)
	a := f.addUser("A", "a@example.com", model.RoleUser)
	event := f.addEvent("Bukit Trail 15K", 10)
	r := setupRouter(f)
	adminAuth := bearerFor(t, admin)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/trailrun/events/%d/register", event.ID), bearerFor(t, a), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/trailrun/admin/payments?status=pending", adminAuth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var regs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
	require.Len(t, regs, 1)
	assert.Equal(t, "A", regs[0]["user"].(map[string]any)["name"])
	assert.Equal(t, event.Title, regs[0]["event"].(map[string]any)["title"])

	w = doJSON(t, r, http.MethodGet, "/api/trailrun/admin/payments?status=confirmed", adminAuth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
	assert.Empty(t, regs)

	w = doJSON(t, r, http.MethodGet, "/api/trailrun/admin/payments?status=refunded", adminAuth, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
