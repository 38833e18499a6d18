package service

import (
	"fmt"

	"github.com/aeroxpay/credit-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// ComplianceMonitor – independent re-validation of generated option sets
// ---------------------------------------------------------------------------

// ComplianceMonitor re-checks every generated option against the hard limits,
// independently of the optimizer that produced it. All violations are
// accumulated rather than stopping at the first, so an audit record names
// every failure in the set.
type ComplianceMonitor struct {
	constraints RiskConstraints
}

// NewComplianceMonitor returns a monitor bound to the given constraints.
func NewComplianceMonitor(constraints RiskConstraints) *ComplianceMonitor {
	return &ComplianceMonitor{constraints: constraints}
}

// Validate checks the option set. An empty set is trivially compliant; the
// caller decides what an empty set means for the request.
func (m *ComplianceMonitor) Validate(options []model.TermOption) model.ComplianceResult {
	var violations []string
	for _, opt := range options {
		if opt.ExpectedLoss.GreaterThan(m.constraints.MaxExpectedLoss) {
			violations = append(violations, fmt.Sprintf(
				"option %s: expected loss ₹%s exceeds cap ₹%s by ₹%s",
				opt.ID,
				opt.ExpectedLoss.StringFixed(2),
				m.constraints.MaxExpectedLoss.StringFixed(2),
				opt.ExpectedLoss.Sub(m.constraints.MaxExpectedLoss).StringFixed(2),
			))
		}
		if opt.UpfrontAmount.GreaterThan(opt.ApprovedAmount) {
			violations = append(violations, fmt.Sprintf(
				"option %s: upfront ₹%s exceeds approved amount ₹%s",
				opt.ID,
				opt.UpfrontAmount.StringFixed(2),
				opt.ApprovedAmount.StringFixed(2),
			))
		}
		if opt.SettlementDays < m.constraints.SettlementDaysMin || opt.SettlementDays > m.constraints.SettlementDaysMax {
			violations = append(violations, fmt.Sprintf(
				"option %s: settlement period %d days outside allowed range [%d, %d]",
				opt.ID,
				opt.SettlementDays,
				m.constraints.SettlementDaysMin,
				m.constraints.SettlementDaysMax,
			))
		}
	}
	return model.ComplianceResult{
		Compliant:    len(violations) == 0,
		Violations:   violations,
		OptionsCount: len(options),
	}
}
