package domain

import (
	"errors"
	"fmt"
)

// ErrImbalancedTransfer means a transfer would create or destroy money.
// It indicates a caller bug, never a user-facing condition.
var ErrImbalancedTransfer = errors.New("transfer debits and credits do not balance")

// InsufficientFundsError carries the shortfall so callers can build a
// useful user-facing message.
type InsufficientFundsError struct {
	AccountID int
	Shortfall Cents
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %d is short %s", e.AccountID, e.Shortfall)
}

// TransferLeg is one side of a balance movement, always a positive amount.
type TransferLeg struct {
	AccountID int
	Amount    Cents
}

// Transfer is an atomic multi-party balance movement. Either every leg
// applies or none do.
type Transfer struct {
	OrderID string
	Debits  []TransferLeg
	Credits []TransferLeg
}

// Validate rejects transfers before any mutation: non-positive legs and
// imbalanced debit/credit sums never reach the store.
func (t Transfer) Validate() error {
	if len(t.Debits) == 0 || len(t.Credits) == 0 {
		return ErrImbalancedTransfer
	}
	var debits, credits Cents
	for _, leg := range t.Debits {
		if leg.Amount <= 0 {
			return ErrImbalancedTransfer
		}
		debits += leg.Amount
	}
	for _, leg := range t.Credits {
		if leg.Amount <= 0 {
			return ErrImbalancedTransfer
		}
		credits += leg.Amount
	}
	if debits != credits {
		return ErrImbalancedTransfer
	}
	return nil
}

// AccountIDs returns every touched account id in ascending order. The
// store locks rows in exactly this order to stay deadlock-free.
func (t Transfer) AccountIDs() []int {
	seen := map[int]bool{}
	var ids []int
	for _, leg := range append(append([]TransferLeg{}, t.Debits...), t.Credits...) {
		if !seen[leg.AccountID] {
			seen[leg.AccountID] = true
			ids = append(ids, leg.AccountID)
		}
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}
