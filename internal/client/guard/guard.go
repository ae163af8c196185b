// Package guard decides whether a navigation may proceed.
package guard

import (
	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/client/session"
	"github.com/dmitrijs2005/shopnet/internal/common"
)

type Kind int

const (
	Allow Kind = iota
	Redirect
)

func (k Kind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "allow"
}

// Decision is the outcome for one navigation. Target is set for Redirect.
type Decision struct {
	Kind   Kind
	Target string
}

// Decide must be called on every navigation. The result depends only on its
// arguments, so a role change mid-session is picked up on the next call.
//
//   - no token: redirect to the login page, whatever the path;
//   - token and an unset role: redirect to account setup unless already there;
//   - otherwise allow.
func Decide(state session.State, path string) Decision {
	if !state.Authenticated() {
		return Decision{Kind: Redirect, Target: common.LoginPath}
	}
	if state.AccountType() == api.AccountTypeUnset && path != common.AccountSetupPath {
		return Decision{Kind: Redirect, Target: common.AccountSetupPath}
	}
	return Decision{Kind: Allow}
}
