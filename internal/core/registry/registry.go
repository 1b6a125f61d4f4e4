// Package registry is the static catalog of document types the engine
// recognizes. The catalog is India-specific domain data (Aadhaar, PAN, CIBIL)
// compiled once at init and never mutated.
package registry

import (
	"fmt"
	"regexp"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

// TypeSpec describes one registered document type. Patterns are searched
// case-insensitively anywhere in the text. RequiredFields is the extraction
// schema; PromptFields, when set, is the richer field list the generative
// prompt asks for (salary slips and CIBIL reports carry more than the
// required minimum). Validation, when set, is the canonical format for the
// type's primary identifier.
type TypeSpec struct {
	Kind           domain.TypeKind
	Name           string
	Patterns       []*regexp.Regexp
	RequiredFields []string
	PromptFields   []string
	Validation     *regexp.Regexp
}

var specs = []TypeSpec{
	{
		Kind: domain.TypeAadhaar,
		Name: "Aadhaar Card",
		Patterns: compile(
			`\d{4}\s?\d{4}\s?\d{4}`,
			`aadhaar`,
			`आधार`,
			`uidai`,
		),
		RequiredFields: []string{"aadhaar_number", "name", "address", "dob"},
		Validation:     regexp.MustCompile(`^[2-9][0-9]{3}\s?[0-9]{4}\s?[0-9]{4}$`),
	},
	{
		Kind: domain.TypePAN,
		Name: "PAN Card",
		Patterns: compile(
			`[a-z]{5}[0-9]{4}[a-z]`,
			`permanent account number`,
			`income tax`,
		),
		RequiredFields: []string{"pan_number", "name", "father_name", "dob"},
		Validation:     regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`),
	},
	{
		Kind: domain.TypeSalarySlip,
		Name: "Salary Slip",
		Patterns: compile(
			`salary slip`,
			`pay slip`,
			`payslip`,
			`net pay`,
			`gross salary`,
		),
		RequiredFields: []string{"employee_name", "employee_id", "basic_pay", "net_pay", "pay_date"},
		PromptFields: []string{
			"Employee Name", "Employee ID", "Designation", "Company Name",
			"Pay Date", "Month", "Year", "Basic Pay", "HRA", "Other Allowances",
			"Gross Salary", "Deductions", "Net Pay", "Annual CTC",
		},
	},
	{
		Kind: domain.TypeITR,
		Name: "Income Tax Return",
		Patterns: compile(
			`income tax return`,
			`itr`,
			`assessment year`,
			`total income`,
		),
		RequiredFields: []string{"name", "pan_number", "assessment_year", "total_income"},
	},
	{
		Kind: domain.TypeBankStatement,
		Name: "Bank Statement",
		Patterns: compile(
			`bank statement`,
			`account statement`,
			`current balance`,
			`account number`,
		),
		RequiredFields: []string{"account_number", "bank_name", "account_holder_name", "balance"},
	},
	{
		Kind: domain.TypeCIBILReport,
		Name: "CIBIL Report",
		Patterns: compile(
			`cibil`,
			`credit score`,
			`credit report`,
			`transunion`,
		),
		RequiredFields: []string{"cibil_score", "name", "pan_number", "report_date"},
		PromptFields: []string{
			"CIBIL Score", "Name", "PAN Number", "Report Date",
			"Credit Accounts", "Total Credit Limit", "Credit Utilization",
			"Payment History", "Credit Age", "Recent Inquiries",
		},
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// All returns the registered specs in their fixed registration order. The
// classifier's tie-break depends on this order, so it is part of the
// contract, not an accident of iteration.
func All() []TypeSpec {
	return specs
}

// Lookup resolves a kind to its spec. The sentinel TypeOther and anything
// outside the closed set yield ErrUnknownDocType.
func Lookup(kind domain.TypeKind) (TypeSpec, error) {
	for _, s := range specs {
		if s.Kind == kind {
			return s, nil
		}
	}
	return TypeSpec{}, domain.WrapError(domain.ErrUnknownDocType, "registry lookup", fmt.Errorf("kind %q", kind))
}
