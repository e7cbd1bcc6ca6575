package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"activity-registration-storefront/internal/checkout"
	"activity-registration-storefront/internal/models"
)

// OrderRepository is the persistence side of a checkout: it writes the
// whole order graph (registration, order, items, attendees) in one
// transaction, so callers see the write as atomic-or-failed.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderSearchFilters represents filters for the admin order list
type OrderSearchFilters struct {
	Status   models.PaymentStatus // Filter by payment status
	DateFrom *time.Time           // Orders created from this date
	DateTo   *time.Time           // Orders created before this date
	Limit    int                  // Number of results to return
	Offset   int                  // Number of results to skip
	SortDesc bool                 // Sort by creation time descending
}

// QRURLBuilder builds the payment QR image URL for an order code and
// amount. Injected so the repository can rebuild the URL if the order
// code has to be regenerated on collision.
type QRURLBuilder func(orderCode string, amount models.Money) string

// CreateFromCheckout persists a checkout payload: registration, order,
// order items and attendees, plus the follow-up QR URL update, all in
// a single transaction. On order-code collision the code is
// regenerated and retried a few times before giving up.
func (r *OrderRepository) CreateFromCheckout(payload *checkout.Payload, buildQRURL QRURLBuilder) (*models.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var registrationID string
	err = tx.QueryRow(`
		INSERT INTO registrations (full_name, phone_number, email, unit_id, title, seat_req, spec_req, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		strings.TrimSpace(payload.Registration.FullName),
		strings.TrimSpace(payload.Registration.PhoneNumber),
		strings.TrimSpace(payload.Registration.Email),
		payload.Registration.UnitID,
		payload.Registration.Title,
		payload.Registration.SeatReq,
		payload.Registration.SpecReq,
		payload.Registration.Note,
		now,
		now,
	).Scan(&registrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	// Ensure the order code is unique, regenerating on collision
	orderCode := payload.Order.OrderCode
	for i := 0; i < 5; i++ {
		var exists bool
		if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM orders WHERE order_code = $1)", orderCode).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check order code uniqueness: %w", err)
		}
		if !exists {
			break
		}
		orderCode = models.GenerateOrderCode()
	}

	order := &models.Order{}
	err = tx.QueryRow(`
		INSERT INTO orders (order_code, registration_id, total_amount, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, order_code, registration_id, total_amount, payment_status, qr_code_url, notes, created_at, updated_at`,
		orderCode,
		registrationID,
		payload.Order.TotalAmount,
		payload.Order.PaymentStatus,
		now,
		now,
	).Scan(
		&order.ID,
		&order.OrderCode,
		&order.RegistrationID,
		&order.TotalAmount,
		&order.PaymentStatus,
		&order.QRCodeURL,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range payload.Items {
		_, err = tx.Exec(`
			INSERT INTO order_items (order_id, activity_id, quantity, price_per_unit, subtotal, pricing_tier, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID,
			item.ActivityID,
			item.Quantity,
			item.PricePerUnit,
			item.Subtotal,
			item.PricingTier,
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}

		_, err = tx.Exec(`
			UPDATE activities SET current_participants = current_participants + $1, updated_at = $2 WHERE id = $3`,
			item.Quantity, now, item.ActivityID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update participant count: %w", err)
		}
	}

	for _, attendee := range payload.Attendees {
		_, err = tx.Exec(`
			INSERT INTO attendees (order_id, activity_id, full_name, phone_number, email, unit_id, is_primary, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.ID,
			attendee.ActivityID,
			attendee.FullName,
			attendee.PhoneNumber,
			attendee.Email,
			attendee.UnitID,
			attendee.IsPrimary,
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create attendee: %w", err)
		}
	}

	if buildQRURL != nil {
		order.QRCodeURL = buildQRURL(order.OrderCode, order.TotalAmount)
		if _, err := tx.Exec("UPDATE orders SET qr_code_url = $1, updated_at = $2 WHERE id = $3",
			order.QRCodeURL, now, order.ID); err != nil {
			return nil, fmt.Errorf("failed to attach QR code URL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return order, nil
}

const orderSummaryQuery = `
	SELECT o.id, o.order_code, r.full_name, r.phone_number, r.email,
		COALESCE(u.name, ''), o.total_amount, o.payment_status,
		COALESCE((SELECT SUM(oi.quantity) FROM order_items oi WHERE oi.order_id = o.id), 0),
		o.created_at
	FROM orders o
	JOIN registrations r ON r.id = o.registration_id
	LEFT JOIN units u ON u.id = r.unit_id`

func scanOrderSummary(row interface{ Scan(...any) error }) (*models.OrderSummary, error) {
	s := &models.OrderSummary{}
	err := row.Scan(
		&s.OrderID,
		&s.OrderCode,
		&s.FullName,
		&s.PhoneNumber,
		&s.Email,
		&s.UnitName,
		&s.TotalAmount,
		&s.PaymentStatus,
		&s.ItemCount,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByCode retrieves an order summary with items and attendees by
// its order code
func (r *OrderRepository) GetByCode(orderCode string) (*models.OrderSummary, error) {
	summary, err := scanOrderSummary(r.db.QueryRow(orderSummaryQuery+" WHERE o.order_code = $1", orderCode))
	if err == sql.ErrNoRows {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.attachDetails(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// SearchByPhone retrieves order summaries for a registrant phone
// number, newest first
func (r *OrderRepository) SearchByPhone(phoneNumber string) ([]*models.OrderSummary, error) {
	rows, err := r.db.Query(orderSummaryQuery+" WHERE r.phone_number = $1 ORDER BY o.created_at DESC", phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	defer rows.Close()

	var summaries []*models.OrderSummary
	for rows.Next() {
		summary, err := scanOrderSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		if err := r.attachDetails(summary); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// attachDetails loads the items and attendees of an order summary
func (r *OrderRepository) attachDetails(summary *models.OrderSummary) error {
	rows, err := r.db.Query(`
		SELECT oi.id, oi.order_id, oi.activity_id, oi.quantity, oi.price_per_unit,
			oi.subtotal, oi.pricing_tier, oi.created_at, COALESCE(a.title, '')
		FROM order_items oi
		LEFT JOIN activities a ON a.id = oi.activity_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at`, summary.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ActivityID,
			&item.Quantity,
			&item.PricePerUnit,
			&item.Subtotal,
			&item.PricingTier,
			&item.CreatedAt,
			&item.ActivityTitle,
		); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		summary.Items = append(summary.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	attendeeRows, err := r.db.Query(`
		SELECT id, order_id, activity_id, full_name, phone_number, email,
			COALESCE(unit_id::text, ''), is_primary, created_at
		FROM attendees
		WHERE order_id = $1
		ORDER BY created_at`, summary.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load attendees: %w", err)
	}
	defer attendeeRows.Close()

	for attendeeRows.Next() {
		attendee := &models.Attendee{}
		if err := attendeeRows.Scan(
			&attendee.ID,
			&attendee.OrderID,
			&attendee.ActivityID,
			&attendee.FullName,
			&attendee.PhoneNumber,
			&attendee.Email,
			&attendee.UnitID,
			&attendee.IsPrimary,
			&attendee.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan attendee: %w", err)
		}
		summary.Attendees = append(summary.Attendees, attendee)
	}
	return attendeeRows.Err()
}

// List retrieves order summaries for the admin back office
func (r *OrderRepository) List(filters OrderSearchFilters) ([]*models.OrderSummary, error) {
	query := orderSummaryQuery
	var conditions []string
	var args []any

	if filters.Status != "" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("o.payment_status = $%d", len(args)))
	}
	if filters.DateFrom != nil {
		args = append(args, *filters.DateFrom)
		conditions = append(conditions, fmt.Sprintf("o.created_at >= $%d", len(args)))
	}
	if filters.DateTo != nil {
		args = append(args, *filters.DateTo)
		conditions = append(conditions, fmt.Sprintf("o.created_at < $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if filters.SortDesc {
		query += " ORDER BY o.created_at DESC"
	} else {
		query += " ORDER BY o.created_at"
	}

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var summaries []*models.OrderSummary
	for rows.Next() {
		summary, err := scanOrderSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// ListParticipants retrieves the public roster for one activity: the
// primary attendee of every order containing it, in registration
// order
func (r *OrderRepository) ListParticipants(activityID string) ([]*models.Participant, error) {
	rows, err := r.db.Query(`
		SELECT r.full_name, r.phone_number, r.email, COALESCE(u.name, '')
		FROM attendees att
		JOIN orders o ON o.id = att.order_id
		JOIN registrations r ON r.id = o.registration_id
		LEFT JOIN units u ON u.id = r.unit_id
		WHERE att.activity_id = $1 AND att.is_primary
		ORDER BY att.created_at`, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		if err := rows.Scan(&p.FullName, &p.PhoneNumber, &p.Email, &p.UnitName); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// UpdatePaymentStatus transitions an order's payment status and
// records the change in payment_history, in one transaction
func (r *OrderRepository) UpdatePaymentStatus(orderID string, newStatus models.PaymentStatus, verifiedBy, notes string) (*models.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order := &models.Order{}
	err = tx.QueryRow(`
		SELECT id, order_code, registration_id, total_amount, payment_status, qr_code_url, notes, created_at, updated_at
		FROM orders WHERE id = $1
		FOR UPDATE`, orderID).Scan(
		&order.ID,
		&order.OrderCode,
		&order.RegistrationID,
		&order.TotalAmount,
		&order.PaymentStatus,
		&order.QRCodeURL,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if !order.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("cannot change payment status from %s to %s: %w",
			order.PaymentStatus, newStatus, models.ErrInvalidInput)
	}

	now := time.Now()
	previousStatus := order.PaymentStatus

	if _, err := tx.Exec("UPDATE orders SET payment_status = $1, updated_at = $2 WHERE id = $3",
		newStatus, now, orderID); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO payment_history (order_id, previous_status, new_status, verified_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		orderID, previousStatus, newStatus, verifiedBy, notes, now); err != nil {
		return nil, fmt.Errorf("failed to record payment history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	order.PaymentStatus = newStatus
	order.UpdatedAt = now
	return order, nil
}

// GetAdminStats aggregates the dashboard numbers
func (r *OrderRepository) GetAdminStats() (*models.AdminStats, error) {
	stats := &models.AdminStats{}

	err := r.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM activities),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = 'paid'),
			(SELECT COUNT(*) FROM orders WHERE payment_status = 'pending'),
			(SELECT COUNT(*) FROM registrations),
			(SELECT COUNT(*) FROM orders WHERE payment_status = 'paid')`).Scan(
		&stats.TotalActivities,
		&stats.TotalOrders,
		&stats.TotalRevenue,
		&stats.PendingPayments,
		&stats.TotalRegistrations,
		&stats.PaidOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin stats: %w", err)
	}

	return stats, nil
}

// GetActivityStats aggregates registrations and revenue per activity.
// Cancelled orders are excluded from quantities and revenue.
func (r *OrderRepository) GetActivityStats() ([]*models.ActivityStats, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.title, a.price_member, a.price_non_member, a.max_participants, a.status,
			COUNT(DISTINCT oi.order_id),
			COALESCE(SUM(oi.quantity) FILTER (WHERE o.payment_status <> 'cancelled'), 0),
			COALESCE(SUM(oi.subtotal) FILTER (WHERE o.payment_status = 'paid'), 0)
		FROM activities a
		LEFT JOIN order_items oi ON oi.activity_id = a.id
		LEFT JOIN orders o ON o.id = oi.order_id
		GROUP BY a.id, a.title, a.price_member, a.price_non_member, a.max_participants, a.status
		ORDER BY a.title`)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.ActivityStats
	for rows.Next() {
		s := &models.ActivityStats{}
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.PriceMember,
			&s.PriceNonMember,
			&s.MaxParticipants,
			&s.Status,
			&s.Registrations,
			&s.TotalQuantity,
			&s.Revenue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
