// Package wizard drives account setup: pick a role, fill the role's form,
// confirm and submit. The form is checked with the same rules the server
// applies.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/validation"
)

var (
	// ErrWrongStep is returned by an action that the current step does not
	// offer.
	ErrWrongStep = errors.New("action not available at this step")
	// ErrBusy is returned by Submit while a previous submit is pending.
	ErrBusy = errors.New("submission already in progress")
	// ErrUnknownField is returned by SetField for a field the role's form
	// does not have.
	ErrUnknownField = errors.New("unknown field")
)

// Submitter completes onboarding on the server.
type Submitter interface {
	UpdateAccountType(ctx context.Context, accountType api.AccountType, profile api.ProfileFields) (*api.User, error)
}

// Wizard is safe for concurrent use.
type Wizard struct {
	submitter Submitter

	mu          sync.Mutex
	state       State
	seller      api.ProfileFields
	buyer       api.ProfileFields
	fieldErrors map[string]string
	lastError   string
	submitting  bool
	done        bool
}

func New(submitter Submitter) *Wizard {
	return &Wizard{
		submitter:   submitter,
		state:       SelectingRole{},
		fieldErrors: map[string]string{},
	}
}

// State returns the current step.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Step is the zero-based step number.
func (w *Wizard) Step() int {
	return w.State().Step()
}

// Role is the chosen role, or "" before one is picked.
func (w *Wizard) Role() api.AccountType {
	return roleOf(w.State())
}

// StepTitles names the three steps for the chosen role. Buyer titles are
// shown until a role is picked.
func (w *Wizard) StepTitles() []string {
	if w.Role() == api.AccountTypeSeller {
		return append([]string(nil), sellerSteps...)
	}
	return append([]string(nil), buyerSteps...)
}

// Form returns the form data of the chosen role.
func (w *Wizard) Form() api.ProfileFields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submission(roleOf(w.state))
}

func (w *Wizard) FieldErrors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.fieldErrors))
	for k, v := range w.fieldErrors {
		out[k] = v
	}
	return out
}

// LastError is the message to show the user, or "".
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Done reports whether the server accepted the setup.
func (w *Wizard) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// SelectRole picks buyer or seller on the first step. Data already typed
// into either form is kept.
func (w *Wizard) SelectRole(role api.AccountType) error {
	if !role.Settable() {
		return common.ErrInvalidAccountType
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.state.(SelectingRole); !ok {
		return ErrWrongStep
	}
	w.state = SelectingRole{Selected: role}
	w.lastError = ""
	return nil
}

// SetField writes one field of the current role's form and clears its
// error.
func (w *Wizard) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	st, ok := w.state.(EnteringDetails)
	if !ok {
		return ErrWrongStep
	}

	form := &w.buyer
	if st.Role == api.AccountTypeSeller {
		form = &w.seller
	}
	dst := field(st.Role, form, name)
	if dst == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	*dst = value
	delete(w.fieldErrors, name)
	return nil
}

// Fields lists the form fields for role in display order.
func Fields(role api.AccountType) []string {
	if role == api.AccountTypeSeller {
		return []string{"businessName", "businessDescription", "phone", "address"}
	}
	return []string{"phone", "address", "preferences"}
}

func field(role api.AccountType, f *api.ProfileFields, name string) *string {
	switch name {
	case "phone":
		return &f.Phone
	case "address":
		return &f.Address
	}
	if role == api.AccountTypeSeller {
		switch name {
		case "businessName":
			return &f.BusinessName
		case "businessDescription":
			return &f.BusinessDescription
		}
		return nil
	}
	if name == "preferences" {
		return &f.Preferences
	}
	return nil
}

// submission is the profile sent for role: only that role's fields.
func (w *Wizard) submission(role api.AccountType) api.ProfileFields {
	switch role {
	case api.AccountTypeSeller:
		return api.ProfileFields{
			BusinessName:        w.seller.BusinessName,
			BusinessDescription: w.seller.BusinessDescription,
			Phone:               w.seller.Phone,
			Address:             w.seller.Address,
		}
	case api.AccountTypeBuyer:
		return api.ProfileFields{
			Phone:       w.buyer.Phone,
			Address:     w.buyer.Address,
			Preferences: w.buyer.Preferences,
		}
	}
	return api.ProfileFields{}
}

// validate records the failures for role and returns the first one.
func (w *Wizard) validate(role api.AccountType) error {
	errs := validation.AccountSetup(role, w.submission(role))
	w.fieldErrors = errs.ByField()
	if err := errs.First(); err != nil {
		w.lastError = err.Error()
		return err
	}
	w.lastError = ""
	return nil
}

// Next moves forward one step. Leaving the first step needs a role; leaving
// the details step needs a valid form. On failure the step does not change.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch st := w.state.(type) {
	case SelectingRole:
		if !st.Selected.Settable() {
			return w.validate(st.Selected)
		}
		w.state = EnteringDetails{Role: st.Selected}
		w.lastError = ""
		return nil
	case EnteringDetails:
		if err := w.validate(st.Role); err != nil {
			return err
		}
		w.state = Confirming{Role: st.Role}
		return nil
	}
	return ErrWrongStep
}

// Back moves to the previous step without validating. It does nothing on
// the first step or while a submit is pending.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return
	}
	switch st := w.state.(type) {
	case EnteringDetails:
		w.state = SelectingRole{Selected: st.Role}
	case Confirming:
		w.state = EnteringDetails{Role: st.Role}
	default:
		return
	}
	w.lastError = ""
}

// Submit sends the confirmed form. On success Done becomes true and the
// updated user is returned; on failure the wizard stays on the
// confirmation step with the server's message in LastError.
func (w *Wizard) Submit(ctx context.Context) (*api.User, error) {
	w.mu.Lock()
	st, ok := w.state.(Confirming)
	if !ok {
		w.mu.Unlock()
		return nil, ErrWrongStep
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	if err := w.validate(st.Role); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	profile := w.submission(st.Role)
	w.submitting = true
	w.mu.Unlock()

	u, err := w.submitter.UpdateAccountType(ctx, st.Role, profile)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.lastError = err.Error()
		return nil, err
	}
	w.done = true
	w.lastError = ""
	return u, nil
}

// FieldValue reads a form field by name, "" for an unknown name.
func FieldValue(f api.ProfileFields, name string) string {
	if p := field(api.AccountTypeSeller, &f, name); p != nil {
		return *p
	}
	if p := field(api.AccountTypeBuyer, &f, name); p != nil {
		return *p
	}
	return ""
}
