package domain

// OverdraftPolicy says, per account kind, whether a movement may take the
// balance below zero. The clinic UI historically allowed negative balances
// everywhere (overdrafts and data-entry correction windows), so the default
// policy permits them; deployments can tighten this per kind.
type OverdraftPolicy struct {
	AllowNegative map[AccountKind]bool
}

// DefaultOverdraftPolicy permits negative balances on every account kind.
func DefaultOverdraftPolicy() OverdraftPolicy {
	return OverdraftPolicy{AllowNegative: map[AccountKind]bool{
		Cash: true,
		Bank: true,
		POS:  true,
	}}
}

// Allows reports whether the policy permits a negative balance for the kind.
func (p OverdraftPolicy) Allows(kind AccountKind) bool {
	allowed, ok := p.AllowNegative[kind]
	return ok && allowed
}
