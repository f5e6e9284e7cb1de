package models

// Category is the categories table row.
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	AppliesTo  string `db:"applies_to"` // INCOME or EXPENSE
	IsActive   bool   `db:"is_active"`
	AuditFields
}
