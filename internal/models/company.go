package models

// Company is the companies table row.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	TaxID     string `db:"tax_id"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	Address   string `db:"address"`
	Notes     string `db:"notes"`
	AuditFields
}

// Patient mirrors the patients table maintained by the clinical side.
// The ledger only reads it for name resolution.
type Patient struct {
	PatientID string `db:"patient_id"`
	FullName  string `db:"full_name"`
}
