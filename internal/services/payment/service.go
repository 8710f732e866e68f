package payment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eytgaming/eytgaming/internal/dependencies/clock"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/selection"
	"github.com/eytgaming/eytgaming/internal/storage"
)

// Service manages a user's payment methods, including the
// at-most-one-default invariant
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new payment service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Add stores a payment method for the owner. When asDefault is set, any
// existing default is demoted in the same atomic update.
func (s *Service) Add(ctx context.Context, ownerID model.UserID, kind, label string, asDefault bool) (*model.PaymentMethod, error) {
	if _, err := s.storage.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	method := &model.PaymentMethod{
		ID:        model.PaymentMethodID("pm_" + uuid.NewString()),
		OwnerID:   ownerID,
		Kind:      kind,
		Label:     label,
		IsDefault: asDefault,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.storage.UpdatePaymentMethods(ctx, ownerID, func(methods []*model.PaymentMethod) ([]*model.PaymentMethod, error) {
		if asDefault {
			selection.DemoteAll(methods)
		}
		return append(methods, method), nil
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// SetDefault marks the given method as the owner's sole default. An
// inactive method cannot become the default; reactivate it first.
func (s *Service) SetDefault(ctx context.Context, ownerID model.UserID, methodID model.PaymentMethodID) error {
	return s.storage.UpdatePaymentMethods(ctx, ownerID, func(methods []*model.PaymentMethod) ([]*model.PaymentMethod, error) {
		for _, m := range methods {
			if m.ID == methodID && !m.IsActive {
				return nil, model.ErrPaymentMethodInactive
			}
		}
		if !selection.Promote(methods, string(methodID)) {
			return nil, model.ErrPaymentMethodNotFound
		}
		for _, m := range methods {
			if m.ID == methodID {
				m.UpdatedAt = s.clock.Now()
			}
		}
		return methods, nil
	})
}

// Deactivate disables a method. A deactivated default loses its default
// flag, leaving the owner with no default; no other method is promoted.
func (s *Service) Deactivate(ctx context.Context, ownerID model.UserID, methodID model.PaymentMethodID) error {
	return s.storage.UpdatePaymentMethods(ctx, ownerID, func(methods []*model.PaymentMethod) ([]*model.PaymentMethod, error) {
		for _, m := range methods {
			if m.ID == methodID {
				m.IsActive = false
				m.IsDefault = false
				m.UpdatedAt = s.clock.Now()
				return methods, nil
			}
		}
		return nil, model.ErrPaymentMethodNotFound
	})
}

// Reactivate re-enables a deactivated method without touching the default
// selection
func (s *Service) Reactivate(ctx context.Context, ownerID model.UserID, methodID model.PaymentMethodID) error {
	return s.storage.UpdatePaymentMethods(ctx, ownerID, func(methods []*model.PaymentMethod) ([]*model.PaymentMethod, error) {
		for _, m := range methods {
			if m.ID == methodID {
				m.IsActive = true
				m.UpdatedAt = s.clock.Now()
				return methods, nil
			}
		}
		return nil, model.ErrPaymentMethodNotFound
	})
}

// Delete removes a method. Deleting the default leaves the owner with no
// default; no auto-promote.
func (s *Service) Delete(ctx context.Context, ownerID model.UserID, methodID model.PaymentMethodID) error {
	return s.storage.UpdatePaymentMethods(ctx, ownerID, func(methods []*model.PaymentMethod) ([]*model.PaymentMethod, error) {
		for i, m := range methods {
			if m.ID == methodID {
				return append(methods[:i], methods[i+1:]...), nil
			}
		}
		return nil, model.ErrPaymentMethodNotFound
	})
}

// Get retrieves a single method owned by the given user
func (s *Service) Get(ctx context.Context, ownerID model.UserID, methodID model.PaymentMethodID) (*model.PaymentMethod, error) {
	methods, err := s.storage.ListPaymentMethods(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if m.ID == methodID {
			return m, nil
		}
	}
	return nil, model.ErrPaymentMethodNotFound
}

// GetDefault returns the owner's default method. More than one default is
// a data-integrity bug and is surfaced as such.
func (s *Service) GetDefault(ctx context.Context, ownerID model.UserID) (*model.PaymentMethod, error) {
	methods, err := s.storage.ListPaymentMethods(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	def, ok, violation := selection.Primary(methods)
	if violation {
		s.logger.Error("multiple default payment methods observed",
			slog.String("user_id", string(ownerID)),
		)
		return nil, model.ErrIntegrityViolation
	}
	if !ok {
		return nil, model.ErrPaymentMethodNotFound
	}
	return def, nil
}

// List returns the owner's methods in display order: default first, then
// insertion order
func (s *Service) List(ctx context.Context, ownerID model.UserID) ([]*model.PaymentMethod, error) {
	methods, err := s.storage.ListPaymentMethods(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return selection.Order(methods, func(a, b *model.PaymentMethod) bool {
		// No secondary attribute; stable sort keeps insertion order
		return false
	}), nil
}
