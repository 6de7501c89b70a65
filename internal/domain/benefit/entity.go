package benefit

import (
	"time"

	"github.com/shopspring/decimal"
)

// BenefitAssignment grants a monthly benefit amount to every holder of a
// position title.
type BenefitAssignment struct {
	ID            string
	PositionTitle string
	BenefitName   string
	Amount        decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
