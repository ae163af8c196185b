package wizard

import "github.com/dmitrijs2005/shopnet/internal/api"

// State is one of SelectingRole, EnteringDetails or Confirming. The details
// and confirmation states always carry a chosen role.
type State interface {
	Step() int
	isState()
}

// SelectingRole is step 0. Selected is the role picked so far, if any; it
// survives going back from the details step.
type SelectingRole struct {
	Selected api.AccountType
}

// EnteringDetails is step 1, filling the form of Role.
type EnteringDetails struct {
	Role api.AccountType
}

// Confirming is step 2, reviewing the form of Role before submitting.
type Confirming struct {
	Role api.AccountType
}

func (SelectingRole) Step() int   { return 0 }
func (EnteringDetails) Step() int { return 1 }
func (Confirming) Step() int      { return 2 }

func (SelectingRole) isState()   {}
func (EnteringDetails) isState() {}
func (Confirming) isState()      {}

var (
	sellerSteps = []string{"Account Type", "Business Details", "Verification"}
	buyerSteps  = []string{"Account Type", "Personal Details", "Preferences"}
)

// roleOf returns the role a state is about, or "" before one is chosen.
func roleOf(s State) api.AccountType {
	switch st := s.(type) {
	case SelectingRole:
		return st.Selected
	case EnteringDetails:
		return st.Role
	case Confirming:
		return st.Role
	}
	return ""
}
