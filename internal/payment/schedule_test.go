package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

var testPlanDates = [3]string{"13/08/2025", "27/08/2025", "10/09/2025"}

func TestCompute_PlanInstallmentsSumToTotal(t *testing.T) {
	totals := []string{
		"100.00",
		"50.00",
		"99.99",
		"0.01",
		"1.00",
		"149.97",
		"75.50",
		"33.33",
		"200.01",
	}

	for _, totalStr := range totals {
		t.Run(totalStr, func(t *testing.T) {
			total := decimal.RequireFromString(totalStr)
			schedule := Compute("plan", "N/A", total, testPlanDates)

			if schedule.Kind != KindPlan {
				t.Fatalf("kind = %v, want KindPlan", schedule.Kind)
			}
			if len(schedule.Installments) != 3 {
				t.Fatalf("installments = %d, want 3", len(schedule.Installments))
			}

			sum := decimal.Zero
			for _, inst := range schedule.Installments {
				sum = sum.Add(inst.Amount)
			}
			if !sum.Equal(total) {
				t.Errorf("installments sum to %s, want %s", sum, total)
			}

			// The first two installments are equal; the third absorbs the remainder
			if !schedule.Installments[0].Amount.Equal(schedule.Installments[1].Amount) {
				t.Errorf("first two installments differ: %s vs %s",
					schedule.Installments[0].Amount, schedule.Installments[1].Amount)
			}
		})
	}
}

func TestCompute_PlanAmounts(t *testing.T) {
	total := decimal.RequireFromString("100.00")
	schedule := Compute("plan", "N/A", total, testPlanDates)

	want := []struct {
		date    string
		amount  string
		percent int
	}{
		{"13/08/2025", "33.33", 33},
		{"27/08/2025", "33.33", 33},
		{"10/09/2025", "33.34", 34},
	}

	for i, w := range want {
		inst := schedule.Installments[i]
		if inst.Date != w.date {
			t.Errorf("installment %d date = %s, want %s", i+1, inst.Date, w.date)
		}
		if inst.Amount.StringFixed(2) != w.amount {
			t.Errorf("installment %d amount = %s, want %s", i+1, inst.Amount.StringFixed(2), w.amount)
		}
		if inst.Percent != w.percent {
			t.Errorf("installment %d percent = %d, want %d", i+1, inst.Percent, w.percent)
		}
	}
}

func TestCompute_Kinds(t *testing.T) {
	total := decimal.RequireFromString("150.00")

	tests := []struct {
		name        string
		paymentType string
		paymentDate string
		wantKind    Kind
	}{
		{"plan", "plan", "N/A", KindPlan},
		{"plan ignores payment date", "plan", "20/08/2025", KindPlan},
		{"full with date", "full", "20/08/2025", KindFull},
		{"other type with date", "once", "20/08/2025", KindFull},
		{"full without date", "full", "N/A", KindNone},
		{"full with empty date", "full", "", KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := Compute(tt.paymentType, tt.paymentDate, total, testPlanDates)
			if schedule.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", schedule.Kind, tt.wantKind)
			}
		})
	}
}

func TestCommencementText(t *testing.T) {
	total := decimal.RequireFromString("90.00")

	tests := []struct {
		name        string
		paymentType string
		paymentDate string
		want        string
	}{
		{"plan", "plan", "N/A", "13/08/2025 (First Payment - 3 installments)"},
		{"full", "full", "20/08/2025", "20/08/2025 (Payment in Full)"},
		{"undetermined", "full", "N/A", "To be determined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := Compute(tt.paymentType, tt.paymentDate, total, testPlanDates)
			if got := schedule.CommencementText(); got != tt.want {
				t.Errorf("commencement text = %q, want %q", got, tt.want)
			}
		})
	}
}
