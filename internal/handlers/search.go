package handlers

import (
	"net/http"

	"activity-registration-storefront/internal/services"
)

// SearchHandler serves the public order lookup page. Registrants find
// their orders by the order code from the confirmation email or by the
// phone number they registered with.
type SearchHandler struct {
	orderService *services.OrderService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(orderService *services.OrderService) *SearchHandler {
	return &SearchHandler{orderService: orderService}
}

// SearchOrders handles GET /api/orders/search?by=order_code&q=REG-...
func (h *SearchHandler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	searchBy := r.URL.Query().Get("by")
	if searchBy == "" {
		searchBy = services.SearchByOrderCode
	}
	query := r.URL.Query().Get("q")

	summaries, err := h.orderService.Lookup(searchBy, query)
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
