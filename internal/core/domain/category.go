package domain

// Category classifies transactions in the income/expense taxonomy.
// Pure reference data, rarely mutated.
type Category struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	AppliesTo  TransactionType `json:"appliesTo"` // INCOME or EXPENSE
	IsActive   bool            `json:"isActive"`
	AuditFields
}
