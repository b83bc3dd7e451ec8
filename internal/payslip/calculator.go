package payslip

import (
	"sort"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/deduction"
	"go-payroll/internal/salarystructure"

	"github.com/google/uuid"
)

const bpsScale = 10000

// roundHalfUp rounds a/b to the nearest minor unit, halves away from zero.
// Inputs are non-negative throughout the calculator.
func roundHalfUp(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return (2*a + b) / (2 * b)
}

func percentOf(amount, rateBps int64) int64 {
	return roundHalfUp(amount*rateBps, bpsScale)
}

// CalculationInput is everything the pure calculator needs. It performs no
// I/O and mutates nothing; the coordinator owns the ledger side effects.
type CalculationInput struct {
	CompanyID   uuid.UUID
	EmployeeID  uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time

	Structure  *salarystructure.SalaryStructure
	Attendance *attendance.AttendanceSummary // nil means full presence

	// Deductions is the employee's ACTIVE snapshot for the period.
	Deductions []*deduction.Deduction
	// LoanQuotes holds the amortizer's per-period quote per loan deduction.
	LoanQuotes map[uuid.UUID]int64
}

// Charge is one deduction's requested and applied amount for the period.
type Charge struct {
	DeductionID uuid.UUID
	Name        string
	Category    string
	Priority    string
	Requested   int64
	Applied     int64
	// LedgerAdvancing charges (loans, non-recurring deductions) consume
	// ledger state only when fully applied; when gross cannot cover them
	// they defer whole, so the next period retries the same obligation.
	LedgerAdvancing bool
}

// Deferral records the unresolved portion of a charge.
type Deferral struct {
	DeductionID uuid.UUID
	Name        string
	Amount      int64
}

type Result struct {
	Payslip   Payslip
	Charges   []Charge
	Deferrals []Deferral
	// FullyApplied lists deduction ids whose ledger state the coordinator
	// may advance this period.
	FullyApplied []uuid.UUID
}

// Calculate builds one payslip for one employee and period.
//
// Allowances resolve in two passes: percent-of-gross rules are computed over
// basic plus fixed plus percent-of-basic allowances only, which keeps the
// definition of gross non-circular. Deductions apply in a deterministic
// order (priority desc, effective_from asc, id asc). When requested
// deductions exceed gross, the lowest priorities are reduced or deferred
// first and net never goes below zero.
func Calculate(in CalculationInput) Result {
	structure := in.Structure
	basic := structure.BasicSalary

	// Pass 1: fixed and percent-of-basic allowances.
	allowanceLines := make([]PayslipLine, 0, len(structure.Allowances))
	var allowanceTotal int64
	for _, rule := range structure.Allowances {
		var amount int64
		switch rule.Kind {
		case salarystructure.AllowanceFixed:
			amount = rule.Amount
		case salarystructure.AllowancePercentOfBasic:
			amount = percentOf(basic, rule.RateBps)
		default:
			continue
		}
		allowanceTotal += amount
		allowanceLines = append(allowanceLines, PayslipLine{
			Category: CategoryAllowance,
			Name:     rule.Name,
			Amount:   amount,
		})
	}

	// Pass 2: percent-of-gross allowances over the pass-1 base.
	grossBase := basic + allowanceTotal
	for _, rule := range structure.Allowances {
		if rule.Kind != salarystructure.AllowancePercentOfGross {
			continue
		}
		amount := percentOf(grossBase, rule.RateBps)
		allowanceTotal += amount
		allowanceLines = append(allowanceLines, PayslipLine{
			Category: CategoryAllowance,
			Name:     rule.Name,
			Amount:   amount,
		})
	}

	gross := basic + allowanceTotal

	// Leave deduction: unpaid absence days charged at the per-day gross
	// rate. Zero working days means no charge.
	var leaveDeduction int64
	var workingDays, presentDays, absentDays, paidLeaveDays int
	if in.Attendance != nil {
		workingDays = in.Attendance.WorkingDays
		presentDays = in.Attendance.PresentDays
		absentDays = in.Attendance.AbsentDays
		paidLeaveDays = in.Attendance.PaidLeaveDays
		if unpaid := in.Attendance.UnpaidAbsenceDays(); unpaid > 0 && workingDays > 0 {
			leaveDeduction = roundHalfUp(gross*int64(unpaid), int64(workingDays))
		}
	}

	charges := buildCharges(in, basic, gross)
	deferrals := applyInsufficientGrossPolicy(charges, gross, leaveDeduction)

	var chargeTotal int64
	for i := range charges {
		chargeTotal += charges[i].Applied
	}
	totalDeductions := leaveDeduction + chargeTotal

	net := gross - totalDeductions
	if net < 0 {
		net = 0
	}

	// Employer-side contributions mirror the structure's employer rates and
	// never reduce net pay.
	employerLines, employerTotal := employerContributions(structure, basic, gross)

	lines := allowanceLines
	for i := range charges {
		if charges[i].Applied == 0 {
			continue
		}
		id := charges[i].DeductionID
		lines = append(lines, PayslipLine{
			Category:    charges[i].Category,
			Name:        charges[i].Name,
			DeductionID: uuidPtr(id),
			Amount:      charges[i].Applied,
		})
	}
	for _, deferral := range deferrals {
		id := deferral.DeductionID
		lines = append(lines, PayslipLine{
			Category:    CategoryDeferred,
			Name:        deferral.Name,
			DeductionID: uuidPtr(id),
			Amount:      deferral.Amount,
		})
	}
	lines = append(lines, employerLines...)

	slip := Payslip{
		CompanyID:            in.CompanyID,
		EmployeeID:           in.EmployeeID,
		PeriodStart:          in.PeriodStart,
		PeriodEnd:            in.PeriodEnd,
		BasicSalary:          basic,
		GrossSalary:          gross,
		LeaveDeduction:       leaveDeduction,
		TotalDeductions:      totalDeductions,
		NetSalary:            net,
		TotalEmployerContrib: employerTotal,
		WorkingDays:          workingDays,
		PresentDays:          presentDays,
		AbsentDays:           absentDays,
		PaidLeaveDays:        paidLeaveDays,
		Status:               StatusCommitted,
		Lines:                lines,
	}

	fullyApplied := make([]uuid.UUID, 0, len(charges))
	for i := range charges {
		if charges[i].Requested > 0 && charges[i].Applied == charges[i].Requested {
			fullyApplied = append(fullyApplied, charges[i].DeductionID)
		}
	}

	return Result{
		Payslip:      slip,
		Charges:      charges,
		Deferrals:    deferrals,
		FullyApplied: fullyApplied,
	}
}

// buildCharges resolves each active deduction's requested amount, plus the
// structure-level statutory withholdings, in application order.
func buildCharges(in CalculationInput, basic, gross int64) []Charge {
	structure := in.Structure

	charges := make([]Charge, 0, len(in.Deductions)+3)

	// Structure statutory rates rank above every ledger priority: they are
	// withheld first and deferred last.
	if structure.PFRateBps > 0 {
		charges = append(charges, Charge{
			Name:      "Provident Fund",
			Category:  CategoryStatutory,
			Priority:  deduction.PriorityUrgent,
			Requested: percentOf(basic, structure.PFRateBps),
		})
	}
	if structure.ESIRateBps > 0 {
		charges = append(charges, Charge{
			Name:      "Employee State Insurance",
			Category:  CategoryStatutory,
			Priority:  deduction.PriorityUrgent,
			Requested: percentOf(gross, structure.ESIRateBps),
		})
	}
	if structure.ProfessionalTax > 0 {
		charges = append(charges, Charge{
			Name:      "Professional Tax",
			Category:  CategoryStatutory,
			Priority:  deduction.PriorityUrgent,
			Requested: structure.ProfessionalTax,
		})
	}

	ordered := make([]*deduction.Deduction, len(in.Deductions))
	copy(ordered, in.Deductions)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := deduction.PriorityRank(ordered[i].Priority), deduction.PriorityRank(ordered[j].Priority)
		if ri != rj {
			return ri > rj
		}
		if !ordered[i].EffectiveFrom.Equal(ordered[j].EffectiveFrom) {
			return ordered[i].EffectiveFrom.Before(ordered[j].EffectiveFrom)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	for _, d := range ordered {
		var requested int64
		if d.IsLoan() {
			requested = in.LoanQuotes[d.ID]
		} else {
			switch d.Method {
			case deduction.MethodFixed:
				requested = d.BaseAmount
			case deduction.MethodPercentOfGross:
				requested = percentOf(gross, d.RateBps)
			case deduction.MethodPercentOfBasic:
				requested = percentOf(basic, d.RateBps)
			}
		}
		if requested == 0 {
			continue
		}

		charges = append(charges, Charge{
			DeductionID:     d.ID,
			Name:            d.Description,
			Category:        chargeCategory(d),
			Priority:        d.Priority,
			Requested:       requested,
			LedgerAdvancing: d.IsLoan() || !d.IsRecurring,
		})
	}

	for i := range charges {
		charges[i].Applied = charges[i].Requested
	}

	return charges
}

// applyInsufficientGrossPolicy reduces or defers charges, lowest priority
// first, until total deductions fit within gross. Ledger-advancing charges
// defer whole so no partial installment is ever consumed.
func applyInsufficientGrossPolicy(charges []Charge, gross, leaveDeduction int64) []Deferral {
	var total int64 = leaveDeduction
	for i := range charges {
		total += charges[i].Applied
	}
	excess := total - gross
	if excess <= 0 {
		return nil
	}

	// Walk charges from the lowest priority (reverse of application order,
	// with structure statutory pinned first in the slice and deferred last).
	var deferrals []Deferral
	for i := len(charges) - 1; i >= 0 && excess > 0; i-- {
		charge := &charges[i]
		if charge.Applied == 0 {
			continue
		}

		reduce := excess
		if reduce > charge.Applied || charge.LedgerAdvancing {
			reduce = charge.Applied
		}

		charge.Applied -= reduce
		excess -= reduce
		deferrals = append(deferrals, Deferral{
			DeductionID: charge.DeductionID,
			Name:        charge.Name,
			Amount:      reduce,
		})
	}

	return deferrals
}

func employerContributions(structure *salarystructure.SalaryStructure, basic, gross int64) ([]PayslipLine, int64) {
	var lines []PayslipLine
	var total int64

	if structure.EmployerPFRateBps > 0 {
		amount := percentOf(basic, structure.EmployerPFRateBps)
		total += amount
		lines = append(lines, PayslipLine{
			Category: CategoryEmployerContribution,
			Name:     "Employer Provident Fund",
			Amount:   amount,
		})
	}
	if structure.EmployerESIBps > 0 {
		amount := percentOf(gross, structure.EmployerESIBps)
		total += amount
		lines = append(lines, PayslipLine{
			Category: CategoryEmployerContribution,
			Name:     "Employer State Insurance",
			Amount:   amount,
		})
	}

	return lines, total
}

func chargeCategory(d *deduction.Deduction) string {
	switch {
	case d.IsLoan():
		return CategoryLoanInstallment
	case d.Type == deduction.TypeStatutory:
		return CategoryStatutory
	case d.Type == deduction.TypeVoluntary:
		return CategoryVoluntary
	case d.Type == deduction.TypeDisciplinary:
		return CategoryDisciplinary
	default:
		return CategoryOther
	}
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
