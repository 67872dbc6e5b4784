package service

import (
	"context"

	"go.uber.org/zap"

	"mealhub/internal/domain"
)

// LedgerService owns balance movements. Imbalanced transfers indicate a
// caller bug: they are logged in full and rejected before any mutation.
type LedgerService struct {
	repo LedgerRepository
	log  *zap.Logger
}

func NewLedgerService(repo LedgerRepository, log *zap.Logger) *LedgerService {
	return &LedgerService{repo: repo, log: log}
}

func (s *LedgerService) Transfer(ctx context.Context, transfer domain.Transfer) error {
	if err := transfer.Validate(); err != nil {
		s.log.Error("rejected transfer",
			zap.String("order_id", transfer.OrderID),
			zap.Error(err))
		return err
	}
	return s.repo.Transfer(ctx, transfer)
}

// SettlementTransfer builds the three-leg split for an order: the customer
// pays subtotal plus fee, the restaurant receives the subtotal, the
// platform receives the fee. Debit equals the credit sum by construction.
func SettlementTransfer(orderID string, customerAccount, restaurantAccount, platformAccount int, split domain.FeeSplit) domain.Transfer {
	return domain.Transfer{
		OrderID: orderID,
		Debits: []domain.TransferLeg{
			{AccountID: customerAccount, Amount: split.Total},
		},
		Credits: []domain.TransferLeg{
			{AccountID: restaurantAccount, Amount: split.Subtotal},
			{AccountID: platformAccount, Amount: split.Fee},
		},
	}
}
