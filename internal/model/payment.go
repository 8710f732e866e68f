package model

import "time"

// PaymentMethodID uniquely identifies a payment method
type PaymentMethodID string

// PaymentMethod is a stored payment option for a user. At most one method
// per user may be the default; the payment service enforces this.
// Deactivated methods are kept for record purposes but cannot be the default.
type PaymentMethod struct {
	ID        PaymentMethodID
	OwnerID   UserID
	Kind      string // e.g. "card", "paypal"
	Label     string // display label, e.g. "Visa ending 4242"
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SelectionID implements selection.Item
func (m *PaymentMethod) SelectionID() string {
	return string(m.ID)
}

// Primary implements selection.Item
func (m *PaymentMethod) Primary() bool {
	return m.IsDefault
}

// SetPrimary implements selection.Item
func (m *PaymentMethod) SetPrimary(primary bool) {
	m.IsDefault = primary
}
