package domain

import (
	"fmt"
	"math"
)

// Cents is a monetary amount in integer cents.
type Cents int64

func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// FeeSplit is the three-way settlement breakdown of an order.
// Total == Subtotal + Fee always holds, so the customer debit equals the
// restaurant credit plus the platform credit exactly; any rounding
// remainder of the percentage lands in the fee.
type FeeSplit struct {
	Subtotal Cents
	Fee      Cents
	Total    Cents
}

// SplitSubtotal applies the platform service fee to a subtotal.
// The fee is rounded half-up to a whole cent.
func SplitSubtotal(subtotal Cents, feeRatePercent int64) FeeSplit {
	fee := Cents((int64(subtotal)*feeRatePercent + 50) / 100)
	return FeeSplit{
		Subtotal: subtotal,
		Fee:      fee,
		Total:    subtotal + fee,
	}
}

// RoundRating rounds an average rating to one decimal place,
// half away from zero.
func RoundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}
