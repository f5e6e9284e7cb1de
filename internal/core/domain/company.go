package domain

// Company is a supplier counterparty for expense transactions.
// A company's debt is derived from its transactions and payments, never stored.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	TaxID     string `json:"taxID"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
	AuditFields
}
