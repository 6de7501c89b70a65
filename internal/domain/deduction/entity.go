package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies one of the four table-driven deduction schemes. The order
// of the constants is the mandatory computation order: the three
// contributions are resolved on the contribution base, then withholding tax
// on income net of the three.
type Kind string

const (
	KindSocialSecurity  Kind = "social_security"
	KindHealthInsurance Kind = "health_insurance"
	KindProvidentFund   Kind = "provident_fund"
	KindWithholdingTax  Kind = "withholding_tax"
)

// MandatoryKinds lists the table-driven kinds in computation order.
var MandatoryKinds = []Kind{
	KindSocialSecurity,
	KindHealthInsurance,
	KindProvidentFund,
	KindWithholdingTax,
}

func (k Kind) Valid() bool {
	switch k {
	case KindSocialSecurity, KindHealthInsurance, KindProvidentFund, KindWithholdingTax:
		return true
	}
	return false
}

// DeductionRule is one bracket row. A nil bound leaves that side open. A nil
// PeriodID marks a master rule; a period-scoped rule overrides the master
// table for that period only.
//
// Flat-amount kinds set Amount. Percentage kinds set Rate with optional
// MinAmount/MaxAmount clamps on the result. Progressive tax sets Rate plus
// BaseAmount, resolving to base + (income - lower) * rate.
type DeductionRule struct {
	ID         string
	Kind       Kind
	LowerBound *decimal.Decimal
	UpperBound *decimal.Decimal
	Amount     *decimal.Decimal
	Rate       *decimal.Decimal
	BaseAmount *decimal.Decimal
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	PeriodID   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r DeductionRule) IsMaster() bool {
	return r.PeriodID == nil
}

// Matches reports whether income falls inside [LowerBound, UpperBound].
func (r DeductionRule) Matches(income decimal.Decimal) bool {
	if r.LowerBound != nil && income.LessThan(*r.LowerBound) {
		return false
	}
	if r.UpperBound != nil && income.GreaterThan(*r.UpperBound) {
		return false
	}
	return true
}

// Overlaps reports whether two rules' income ranges intersect.
func (r DeductionRule) Overlaps(other DeductionRule) bool {
	// r entirely below other or entirely above it.
	if r.UpperBound != nil && other.LowerBound != nil && r.UpperBound.LessThan(*other.LowerBound) {
		return false
	}
	if r.LowerBound != nil && other.UpperBound != nil && r.LowerBound.GreaterThan(*other.UpperBound) {
		return false
	}
	return true
}

// Breakdown carries the four resolved mandatory deductions for one income.
type Breakdown struct {
	SocialSecurity  decimal.Decimal
	HealthInsurance decimal.Decimal
	ProvidentFund   decimal.Decimal
	WithholdingTax  decimal.Decimal
}

func (b Breakdown) Total() decimal.Decimal {
	return b.SocialSecurity.
		Add(b.HealthInsurance).
		Add(b.ProvidentFund).
		Add(b.WithholdingTax)
}

// Contributions is the sum of the three pre-tax kinds.
func (b Breakdown) Contributions() decimal.Decimal {
	return b.SocialSecurity.Add(b.HealthInsurance).Add(b.ProvidentFund)
}

func (b Breakdown) ByKind() map[Kind]decimal.Decimal {
	return map[Kind]decimal.Decimal{
		KindSocialSecurity:  b.SocialSecurity,
		KindHealthInsurance: b.HealthInsurance,
		KindProvidentFund:   b.ProvidentFund,
		KindWithholdingTax:  b.WithholdingTax,
	}
}
