// Package payment holds the payment-schedule policy shared by the salary
// deduction form and the confirmation email. Both must describe the same
// schedule for the same order, so the rule lives in one place.
package payment

import (
	"github.com/shopspring/decimal"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
)

// Kind classifies the schedule selected for an order
type Kind int

const (
	// KindNone means no payment date is known yet
	KindNone Kind = iota
	// KindPlan is the three-installment salary deduction plan
	KindPlan
	// KindFull is a single payment on a nominated date
	KindFull
)

// Installment is one deduction of a payment plan
type Installment struct {
	Date    string
	Amount  decimal.Decimal
	Percent int // rounded share shown to the reader, not used in arithmetic
}

// Schedule is the computed payment schedule for one order
type Schedule struct {
	Kind         Kind
	Total        decimal.Decimal
	Installments []Installment // populated for KindPlan
	PaymentDate  string        // populated for KindFull
}

// Compute derives the schedule from the order's payment fields.
//
// For the plan type the first two installments are total/3 rounded to the
// cent and the third absorbs the remainder, so the three always sum exactly
// to the total. planDates are the fixed deduction dates for the current
// ordering round.
func Compute(paymentType, paymentDate string, total decimal.Decimal, planDates [3]string) Schedule {
	switch {
	case paymentType == models.PaymentTypePlan:
		third := total.Div(decimal.NewFromInt(3)).Round(2)
		last := total.Sub(third.Mul(decimal.NewFromInt(2)))
		return Schedule{
			Kind:  KindPlan,
			Total: total,
			Installments: []Installment{
				{Date: planDates[0], Amount: third, Percent: 33},
				{Date: planDates[1], Amount: third, Percent: 33},
				{Date: planDates[2], Amount: last, Percent: 34},
			},
		}
	case paymentDate != "" && paymentDate != models.PaymentDateNA:
		return Schedule{
			Kind:        KindFull,
			Total:       total,
			PaymentDate: paymentDate,
		}
	default:
		return Schedule{Kind: KindNone, Total: total}
	}
}

// CommencementText is the "date to commence payments" line printed on the
// salary deduction form.
func (s Schedule) CommencementText() string {
	switch s.Kind {
	case KindPlan:
		return s.Installments[0].Date + " (First Payment - 3 installments)"
	case KindFull:
		return s.PaymentDate + " (Payment in Full)"
	default:
		return "To be determined"
	}
}
