package storage

const (
	// KeyUser holds the current identity (no credential).
	KeyUser = "user"

	// KeyUsers holds the roster of registered accounts.
	KeyUsers = "users"

	// KeyLegacyExpenses is the unpartitioned ledger key used by builds that
	// predate per-identity partitions. It is never written.
	KeyLegacyExpenses = "expenses"
)

// ExpensesKey returns the ledger partition key for an identity.
func ExpensesKey(identityID string) string {
	return "expenses-" + identityID
}

// SettingsKey returns the preferences partition key for an identity.
func SettingsKey(identityID string) string {
	return "settings-" + identityID
}
