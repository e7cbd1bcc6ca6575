package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/services"
)

// UnitLister provides the organizational units shown in the
// registration form.
type UnitLister interface {
	List() ([]*models.Unit, error)
}

// PublicHandler serves the unauthenticated storefront endpoints:
// activity listings, the participant roster, and the unit directory.
type PublicHandler struct {
	activityService *services.ActivityService
	orderService    *services.OrderService
	units           UnitLister
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(activityService *services.ActivityService, orderService *services.OrderService, units UnitLister) *PublicHandler {
	return &PublicHandler{
		activityService: activityService,
		orderService:    orderService,
		units:           units,
	}
}

// ListActivities handles GET /api/activities
func (h *PublicHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.ListActive()
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// GetActivity handles GET /api/activities/{id}
func (h *PublicHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	activity, err := h.activityService.GetByID(id)
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// ListParticipants handles GET /api/activities/{id}/participants. It
// returns the activity title alongside the roster of primary
// attendees.
func (h *PublicHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	activity, err := h.activityService.GetByID(id)
	if err != nil {
		writeModelError(w, err)
		return
	}

	participants, err := h.orderService.Participants(activity.ID)
	if err != nil {
		writeModelError(w, err)
		return
	}
	if participants == nil {
		participants = []*models.Participant{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"activity_id":    activity.ID,
		"activity_title": activity.Title,
		"participants":   participants,
	})
}

// ListUnits handles GET /api/units
func (h *PublicHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.units.List()
	if err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
