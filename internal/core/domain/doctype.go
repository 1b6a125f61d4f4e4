package domain

// TypeKind is the closed set of document kinds the engine understands.
// TypeOther is the unclassified sentinel, never a registry entry.
type TypeKind string

const (
	TypeAadhaar       TypeKind = "aadhaar"
	TypePAN           TypeKind = "pan"
	TypeSalarySlip    TypeKind = "salary_slip"
	TypeITR           TypeKind = "itr"
	TypeBankStatement TypeKind = "bank_statement"
	TypeCIBILReport   TypeKind = "cibil_report"
	TypeOther         TypeKind = "other"
)

// ParseTypeKind maps an external type string onto the closed kind set.
func ParseTypeKind(s string) (TypeKind, bool) {
	switch TypeKind(s) {
	case TypeAadhaar, TypePAN, TypeSalarySlip, TypeITR, TypeBankStatement, TypeCIBILReport, TypeOther:
		return TypeKind(s), true
	default:
		return TypeOther, false
	}
}

// Classification is the classifier's answer for one text: the winning kind
// and the raw per-kind pattern match counts behind it.
type Classification struct {
	Kind   TypeKind         `json:"document_type"`
	Scores map[TypeKind]int `json:"scores"`
}
