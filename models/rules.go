package models

// Default transaction descriptions when the caller omits one.
const (
	DefaultEarnDescription  = "Tokens added"
	DefaultSpendDescription = "Tokens spent"
)

// ApplyTokenDelta computes a jar's new count after applying a signed delta,
// clamped at zero. The clamp is a defensive floor: spend callers reject
// insufficient balances before ever reaching it.
func ApplyTokenDelta(count, amount int) int {
	next := count + amount
	if next < 0 {
		return 0
	}
	return next
}

// CanAfford reports whether a jar balance covers a spend amount.
func CanAfford(count, amount int) bool {
	return count >= amount
}

// TxDescription resolves the description for an earn/spend log entry,
// substituting the fixed placeholder when the request carried none.
func TxDescription(desc, txKind string) string {
	if desc != "" {
		return desc
	}
	if txKind == TxSpend {
		return DefaultSpendDescription
	}
	return DefaultEarnDescription
}
