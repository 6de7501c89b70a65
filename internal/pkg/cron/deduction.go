package cron

import (
	"context"
	"fmt"
	"log/slog"

	deductionService "github.com/cmlabs-hris/payroll-engine-go/internal/service/deduction"
)

// DeductionJobs audits the bracket tables in the background. An operator can
// insert an overlapping bracket at any time; the audit catches it before the
// next payroll run trips over a non-deterministic lookup.
type DeductionJobs struct {
	resolver *deductionService.Resolver
}

func NewDeductionJobs(resolver *deductionService.Resolver) *DeductionJobs {
	return &DeductionJobs{resolver: resolver}
}

// AuditTables checks every deduction table for overlapping brackets and logs
// each violation. It returns an error only when the tables cannot be read.
func (j *DeductionJobs) AuditTables(ctx context.Context) error {
	violations, err := j.resolver.ValidateTables(ctx)
	if err != nil {
		return fmt.Errorf("deduction table audit: %w", err)
	}

	for _, v := range violations {
		slog.Warn("Overlapping deduction brackets",
			"kind", v.Kind,
			"rule_id", v.RuleID,
			"other_id", v.OtherID,
		)
	}

	if len(violations) == 0 {
		slog.Debug("Deduction tables clean")
	}

	return nil
}
