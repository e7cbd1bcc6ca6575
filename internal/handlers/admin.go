package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"activity-registration-storefront/internal/middleware"
	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/repositories"
	"activity-registration-storefront/internal/services"
)

// AdminHandler serves the back office: login, the dashboard, order
// management and payment verification, and the activity catalog CRUD.
type AdminHandler struct {
	authService     *services.AdminAuthService
	orderService    *services.OrderService
	activityService *services.ActivityService
	logger          *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *services.AdminAuthService, orderService *services.OrderService, activityService *services.ActivityService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		authService:     authService,
		orderService:    orderService,
		activityService: activityService,
		logger:          logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warn("admin login failed", zap.String("email", req.Email))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, recent, err := h.orderService.DashboardStats(10)
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":         stats,
		"recent_orders": recent,
	})
}

// ListOrders handles GET /api/admin/orders with optional status, date
// range, and paging filters.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := repositories.OrderSearchFilters{
		Status:   models.PaymentStatus(q.Get("status")),
		Limit:    parseIntParam(q.Get("limit"), 50),
		Offset:   parseIntParam(q.Get("offset"), 0),
		SortDesc: true,
	}
	if from, err := time.Parse("2006-01-02", q.Get("date_from")); err == nil {
		filters.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", q.Get("date_to")); err == nil {
		filters.DateTo = &to
	}

	orders, err := h.orderService.List(filters)
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type paymentUpdateRequest struct {
	Status models.PaymentStatus `json:"status"`
	Notes  string               `json:"notes"`
}

// UpdatePaymentStatus handles PUT /api/admin/orders/{id}/payment
func (h *AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req paymentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin := middleware.GetAdminFromContext(r.Context())
	if admin == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	order, err := h.orderService.VerifyPayment(orderID, req.Status, admin, req.Notes)
	if err != nil {
		writeModelError(w, err)
		return
	}

	h.logger.Info("payment status updated",
		zap.String("order_code", order.OrderCode),
		zap.String("status", string(order.PaymentStatus)),
		zap.String("verified_by", admin))

	writeJSON(w, http.StatusOK, order)
}

// ListActivities handles GET /api/admin/activities
func (h *AdminHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.ListAll()
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// CreateActivity handles POST /api/admin/activities
func (h *AdminHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.activityService.Create(&req)
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// UpdateActivity handles PUT /api/admin/activities/{id}
func (h *AdminHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ActivityUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.activityService.Update(id, &req)
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// DeleteActivity handles DELETE /api/admin/activities/{id}
func (h *AdminHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.activityService.Delete(id); err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ActivityStats handles GET /api/admin/activities/stats
func (h *AdminHandler) ActivityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orderService.ActivityStats()
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
