// Package api holds the JSON wire types exchanged between the REST server
// and its clients.
package api

import "fmt"

// AccountType is the marketplace role of a user. A freshly registered user
// is AccountTypeUnset until onboarding picks buyer or seller.
type AccountType string

const (
	AccountTypeUnset  AccountType = "unset"
	AccountTypeBuyer  AccountType = "buyer"
	AccountTypeSeller AccountType = "seller"
)

// ParseAccountType accepts the three known values.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case AccountTypeUnset, AccountTypeBuyer, AccountTypeSeller:
		return t, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Settable reports whether t can be chosen during onboarding.
func (t AccountType) Settable() bool {
	return t == AccountTypeBuyer || t == AccountTypeSeller
}

// Onboarded is the same as Settable, read from the user's side: the user has
// a finalised role.
func (t AccountType) Onboarded() bool {
	return t.Settable()
}
