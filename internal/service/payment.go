package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowhaven/glowbot/internal/domain"
	"github.com/glowhaven/glowbot/internal/repository"
)

type PaymentService struct {
	store *repository.Store
}

func NewPaymentService(store *repository.Store) *PaymentService {
	return &PaymentService{store: store}
}

// Record atomically increments the booking's deposit total and appends a
// payment row with a freshly generated transaction id. Either both writes
// commit or neither does.
func (s *PaymentService) Record(ctx context.Context, bookingID int64, amount decimal.Decimal) (domain.PaymentReceipt, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.PaymentReceipt{}, domain.ErrInvalidAmount
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return domain.PaymentReceipt{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	total, err := s.store.AddDeposit(ctx, tx, bookingID, amount)
	if err != nil {
		return domain.PaymentReceipt{}, fmt.Errorf("add deposit: %w", err)
	}

	transactionID := "GH-TXN-" + uuid.NewString()
	if _, _, err := s.store.InsertPayment(ctx, tx, bookingID, amount, transactionID); err != nil {
		return domain.PaymentReceipt{}, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.PaymentReceipt{}, fmt.Errorf("commit: %w", err)
	}

	return domain.PaymentReceipt{
		BookingID:     bookingID,
		Amount:        amount,
		TotalPaid:     total,
		TransactionID: transactionID,
	}, nil
}
