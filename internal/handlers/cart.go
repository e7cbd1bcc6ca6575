package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"activity-registration-storefront/internal/cart"
	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/services"
)

const (
	sessionName    = "session"
	cartSessionKey = "cart"
	cartTTL        = 15 * time.Minute
)

// sessionCart is the JSON shape of the cart stored in the session
// cookie; the snapshot's totals are re-derived on load rather than
// trusted.
type sessionCart struct {
	Snapshot  cart.Snapshot `json:"snapshot"`
	ExpiresAt int64         `json:"expires_at"`
}

// cartView is the cart payload returned to the storefront
type cartView struct {
	Items          []cart.LineItem `json:"items"`
	TotalAmount    models.Money    `json:"total_amount"`
	TotalItems     int             `json:"total_items"`
	TotalFormatted string          `json:"total_formatted"`
}

// CartHandler handles shopping cart requests. The cart lives in the
// caller's session cookie; every mutation loads it, applies one
// action, and saves it back.
type CartHandler struct {
	activityService *services.ActivityService
	store           sessions.Store
	logger          *zap.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(activityService *services.ActivityService, store sessions.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		activityService: activityService,
		store:           store,
		logger:          logger,
	}
}

type cartItemRequest struct {
	ActivityID  string             `json:"activity_id"`
	PricingTier models.PricingTier `json:"pricing_tier"`
	Quantity    int                `json:"quantity"`
}

// ViewCart returns the current cart
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, c, err := h.loadCart(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	// Persist expiry cleanup if the stored cart had lapsed
	h.saveCart(session, c, r, w)
	writeJSON(w, http.StatusOK, viewOf(c))
}

// AddToCart adds a ticket selection to the cart. Title and unit price
// are snapshotted from the activity catalog at this moment.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, price, err := h.activityService.PriceForTier(req.ActivityID, req.PricingTier)
	if err != nil {
		writeModelError(w, err)
		return
	}

	session, c, err := h.loadCart(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	notice, err := c.Apply(cart.Action{
		Type:        cart.ActionAddItem,
		ActivityID:  activity.ID,
		Title:       activity.Title,
		PricingTier: req.PricingTier,
		UnitPrice:   price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeModelError(w, err)
		return
	}

	if !h.saveCart(session, c, r, w) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cart":   viewOf(c),
		"notice": notice,
	})
}

// UpdateItem sets the quantity of a cart line. Quantities below 1 are
// rejected; removal goes through RemoveItem.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, c, err := h.loadCart(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	if _, err := c.Apply(cart.Action{
		Type:        cart.ActionUpdateQuantity,
		ActivityID:  req.ActivityID,
		PricingTier: req.PricingTier,
		Quantity:    req.Quantity,
	}); err != nil {
		writeModelError(w, err)
		return
	}

	if !h.saveCart(session, c, r, w) {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

// RemoveItem removes a cart line; removing an absent line is a no-op
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, c, err := h.loadCart(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	if _, err := c.Apply(cart.Action{
		Type:        cart.ActionRemoveItem,
		ActivityID:  req.ActivityID,
		PricingTier: req.PricingTier,
	}); err != nil {
		writeModelError(w, err)
		return
	}

	if !h.saveCart(session, c, r, w) {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

// ClearCart empties the cart on explicit user request
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, c, err := h.loadCart(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	c.Clear()
	if !h.saveCart(session, c, r, w) {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) loadCart(r *http.Request) (*sessions.Session, *cart.Cart, error) {
	return loadSessionCart(h.store, h.logger, r)
}

func (h *CartHandler) saveCart(session *sessions.Session, c *cart.Cart, r *http.Request, w http.ResponseWriter) bool {
	return saveSessionCart(session, c, r, w)
}

// loadSessionCart reads the cart from the session, rebuilding the
// aggregate from the stored snapshot. An expired, missing, or corrupt
// cart yields a fresh empty one.
func loadSessionCart(store sessions.Store, logger *zap.Logger, r *http.Request) (*sessions.Session, *cart.Cart, error) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes as an error; start over
		// with the fresh session gorilla returns alongside it.
		if session == nil {
			return nil, nil, err
		}
	}

	raw, ok := session.Values[cartSessionKey].(string)
	if !ok {
		return session, cart.New(), nil
	}

	var stored sessionCart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return session, cart.New(), nil
	}

	if stored.ExpiresAt > 0 && time.Now().Unix() > stored.ExpiresAt {
		return session, cart.New(), nil
	}

	c, err := cart.FromSnapshot(stored.Snapshot)
	if err != nil {
		logger.Warn("discarding corrupt session cart", zap.Error(err))
		return session, cart.New(), nil
	}

	return session, c, nil
}

// saveSessionCart writes the cart back to the session with a fresh
// TTL. Returns false after writing an error response.
func saveSessionCart(session *sessions.Session, c *cart.Cart, r *http.Request, w http.ResponseWriter) bool {
	stored := sessionCart{
		Snapshot:  c.Snapshot(),
		ExpiresAt: time.Now().Add(cartTTL).Unix(),
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save cart")
		return false
	}
	session.Values[cartSessionKey] = string(raw)

	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return false
	}
	return true
}

func viewOf(c *cart.Cart) cartView {
	snap := c.Snapshot()
	items := snap.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	return cartView{
		Items:          items,
		TotalAmount:    snap.TotalAmount,
		TotalItems:     snap.TotalItems,
		TotalFormatted: models.FormatVND(snap.TotalAmount),
	}
}
