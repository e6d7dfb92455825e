// Package models defines the core domain models for pocketledger.
//
// # Models
//
//   - Identity: an authenticated user as seen by the rest of the application
//   - Account: a roster entry (an Identity plus its password hash)
//   - Preferences: per-identity display and notification settings
//   - Expense: a single expense record owned by at most one Identity
//
// # Design Principles
//
//  1. **Plain data**: models carry no behaviour beyond validation and formatting
//  2. **Weak references**: Expense.OwnerID is an ID string, never a pointer to an Identity
//  3. **Stable serialization**: JSON field names match the persisted key layout, so a stored
//     payload written by an older build still decodes
//  4. **Exact money**: amounts are decimals, never floats
package models
