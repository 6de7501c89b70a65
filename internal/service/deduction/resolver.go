package deduction

import (
	"context"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Resolver answers "how much of each deduction kind does this income owe"
// from the data-driven bracket tables. Absence of a matching bracket is a
// legitimate no-liability outcome, never an error; a misconfigured table is
// surfaced separately through ValidateTables.
type Resolver struct {
	repo       deduction.DeductionRuleRepository
	moneyScale int32
}

func NewResolver(repo deduction.DeductionRuleRepository, moneyScale int32) *Resolver {
	return &Resolver{repo: repo, moneyScale: moneyScale}
}

// Resolve returns the deduction for one kind. The repository returns the
// bracket table ordered by ascending lower bound with period overrides
// already applied; the first bracket containing the income wins.
func (r *Resolver) Resolve(ctx context.Context, kind deduction.Kind, income decimal.Decimal, periodID *string) (decimal.Decimal, error) {
	if !kind.Valid() {
		return decimal.Zero, deduction.ErrInvalidKind
	}

	rules, err := r.repo.ListByKind(ctx, kind, periodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load %s brackets: %w", kind, err)
	}

	for _, rule := range rules {
		if rule.Matches(income) {
			return r.apply(rule, income)
		}
	}

	// No bracket covers this income: no liability.
	return decimal.Zero, nil
}

func (r *Resolver) apply(rule deduction.DeductionRule, income decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case rule.Amount != nil:
		return rule.Amount.Round(r.moneyScale), nil

	case rule.Rate != nil:
		var amount decimal.Decimal
		if rule.BaseAmount != nil {
			// Progressive: base + (income - lower) * rate.
			lower := decimal.Zero
			if rule.LowerBound != nil {
				lower = *rule.LowerBound
			}
			amount = rule.BaseAmount.Add(income.Sub(lower).Mul(*rule.Rate))
		} else {
			amount = income.Mul(*rule.Rate)
		}
		if rule.MinAmount != nil && amount.LessThan(*rule.MinAmount) {
			amount = *rule.MinAmount
		}
		if rule.MaxAmount != nil && amount.GreaterThan(*rule.MaxAmount) {
			amount = *rule.MaxAmount
		}
		return amount.Round(r.moneyScale), nil

	default:
		return decimal.Zero, fmt.Errorf("rule %s: %w", rule.ID, deduction.ErrMisconfiguredRule)
	}
}

// MandatoryDeductions computes the four table-driven kinds in their fixed
// order: the three contributions on the contribution base, then withholding
// tax on income net of the three.
func (r *Resolver) MandatoryDeductions(ctx context.Context, income decimal.Decimal, periodID *string) (deduction.Breakdown, error) {
	var breakdown deduction.Breakdown
	var err error

	if breakdown.SocialSecurity, err = r.Resolve(ctx, deduction.KindSocialSecurity, income, periodID); err != nil {
		return deduction.Breakdown{}, err
	}
	if breakdown.HealthInsurance, err = r.Resolve(ctx, deduction.KindHealthInsurance, income, periodID); err != nil {
		return deduction.Breakdown{}, err
	}
	if breakdown.ProvidentFund, err = r.Resolve(ctx, deduction.KindProvidentFund, income, periodID); err != nil {
		return deduction.Breakdown{}, err
	}

	taxable := income.Sub(breakdown.Contributions())
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	if breakdown.WithholdingTax, err = r.Resolve(ctx, deduction.KindWithholdingTax, taxable, periodID); err != nil {
		return deduction.Breakdown{}, err
	}

	return breakdown, nil
}

// TardinessPenalty is the fifth deduction kind. It bypasses the bracket
// table entirely and applies only to rank-and-file employees.
func (r *Resolver) TardinessPenalty(class employee.PayRuleClass, lateHours, hourlyRate decimal.Decimal) decimal.Decimal {
	if class != employee.ClassRankAndFile {
		return decimal.Zero
	}
	if !lateHours.IsPositive() {
		return decimal.Zero
	}
	return lateHours.Mul(hourlyRate).Round(r.moneyScale)
}

// ValidateTables scans every bracket table for overlapping rules within the
// same kind and scope. An empty result means every lookup is deterministic.
func (r *Resolver) ValidateTables(ctx context.Context) ([]deduction.TableViolation, error) {
	rules, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deduction rules: %w", err)
	}

	grouped := make(map[string][]deduction.DeductionRule)
	for _, rule := range rules {
		scope := "master"
		if rule.PeriodID != nil {
			scope = *rule.PeriodID
		}
		key := string(rule.Kind) + "/" + scope
		grouped[key] = append(grouped[key], rule)
	}

	var violations []deduction.TableViolation
	for _, table := range grouped {
		sort.SliceStable(table, func(i, j int) bool {
			return lowerOf(table[i]).LessThan(lowerOf(table[j]))
		})
		for i := 1; i < len(table); i++ {
			prev, curr := table[i-1], table[i]
			if prev.Overlaps(curr) {
				violations = append(violations, deduction.TableViolation{
					Kind:    string(curr.Kind),
					RuleID:  prev.ID,
					OtherID: curr.ID,
					Message: "bracket ranges overlap",
				})
			}
		}
	}

	return violations, nil
}

// CreateRule adds a bracket row to the catalog.
func (r *Resolver) CreateRule(ctx context.Context, req deduction.CreateRuleRequest) (deduction.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.RuleResponse{}, err
	}

	rule := deduction.DeductionRule{
		ID:         uuid.NewString(),
		Kind:       deduction.Kind(req.Kind),
		LowerBound: req.LowerBound,
		UpperBound: req.UpperBound,
		Amount:     req.Amount,
		Rate:       req.Rate,
		BaseAmount: req.BaseAmount,
		MinAmount:  req.MinAmount,
		MaxAmount:  req.MaxAmount,
		PeriodID:   req.PeriodID,
	}

	created, err := r.repo.Create(ctx, rule)
	if err != nil {
		return deduction.RuleResponse{}, fmt.Errorf("failed to create deduction rule: %w", err)
	}

	return toRuleResponse(created), nil
}

// DeleteRule removes a bracket row.
func (r *Resolver) DeleteRule(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

// ListRules returns the whole catalog, master and period-scoped rows alike.
func (r *Resolver) ListRules(ctx context.Context) ([]deduction.RuleResponse, error) {
	rules, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction rules: %w", err)
	}

	responses := make([]deduction.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, toRuleResponse(rule))
	}
	return responses, nil
}

func toRuleResponse(rule deduction.DeductionRule) deduction.RuleResponse {
	return deduction.RuleResponse{
		ID:         rule.ID,
		Kind:       string(rule.Kind),
		LowerBound: rule.LowerBound,
		UpperBound: rule.UpperBound,
		Amount:     rule.Amount,
		Rate:       rule.Rate,
		BaseAmount: rule.BaseAmount,
		MinAmount:  rule.MinAmount,
		MaxAmount:  rule.MaxAmount,
		PeriodID:   rule.PeriodID,
	}
}

func lowerOf(rule deduction.DeductionRule) decimal.Decimal {
	if rule.LowerBound == nil {
		// Open lower bound sorts before every bounded bracket.
		return decimal.New(-1, 12)
	}
	return *rule.LowerBound
}
