package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/services"
)

// CheckoutHandler turns the session cart plus the submitted registrant
// into a persisted order. The session cart survives any failure and is
// cleared only once the order exists.
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	store           sessions.Store
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *services.CheckoutService, store sessions.Store, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		store:           store,
		logger:          logger,
	}
}

// Submit handles POST /api/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var registrant models.RegistrationRequest
	if err := decodeJSON(r, &registrant); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, c, err := loadSessionCart(h.store, h.logger, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	result, err := h.checkoutService.Submit(c.Snapshot(), registrant)
	if err != nil {
		writeModelError(w, err)
		return
	}

	// Order is persisted; only now does the cart reset.
	c.Clear()
	if !saveSessionCart(session, c, r, w) {
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
