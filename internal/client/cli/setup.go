package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/client/wizard"
	"github.com/dmitrijs2005/shopnet/internal/common"
)

var fieldLabels = map[string]string{
	"businessName":        "Business name",
	"businessDescription": "Business description (optional)",
	"phone":               "Phone number",
	"address":             "Address",
	"preferences":         "Product preferences (optional)",
}

// Setup runs the account setup wizard. At any prompt "back" returns to the
// previous step and "cancel" leaves the wizard. On success the user is taken
// to the dashboard.
func (a *App) Setup(ctx context.Context) error {
	if !a.enter(common.AccountSetupPath) {
		return nil
	}

	w := wizard.New(a.store)
	for !w.Done() {
		titles := w.StepTitles()
		a.println(fmt.Sprintf("Step %d of %d: %s", w.Step()+1, len(titles), titles[w.Step()]))

		var (
			cont bool
			err  error
		)
		switch st := w.State().(type) {
		case wizard.SelectingRole:
			cont, err = a.selectRole(w)
		case wizard.EnteringDetails:
			cont, err = a.enterDetails(w, st.Role)
		case wizard.Confirming:
			cont, err = a.confirm(ctx, w, st.Role)
		}
		if err != nil {
			return err
		}
		if !cont {
			a.println("Account setup cancelled")
			return nil
		}
	}

	a.println("Account setup completed successfully!")
	return a.Navigate(ctx, DashboardPath)
}

func (a *App) selectRole(w *wizard.Wizard) (bool, error) {
	choice, err := getSimpleText(a.reader, "Choose account type: buyer or seller", a.out)
	if err != nil {
		return false, err
	}
	switch choice = strings.ToLower(choice); choice {
	case "cancel":
		return false, nil
	case "back":
		return true, nil
	case "":
	default:
		if err := w.SelectRole(api.AccountType(choice)); err != nil {
			a.println("Please choose buyer or seller")
			return true, nil
		}
	}
	if err := w.Next(); err != nil {
		a.println(w.LastError())
	}
	return true, nil
}

func (a *App) enterDetails(w *wizard.Wizard, role api.AccountType) (bool, error) {
	current := w.Form()

	for _, f := range wizard.Fields(role) {
		prompt := fieldLabels[f]
		if v := wizard.FieldValue(current, f); v != "" {
			prompt = fmt.Sprintf("%s [%s]", prompt, v)
		}
		in, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return false, err
		}
		switch in {
		case "cancel":
			return false, nil
		case "back":
			w.Back()
			return true, nil
		case "":
			continue
		}
		if err := w.SetField(f, in); err != nil {
			return false, err
		}
	}

	if err := w.Next(); err != nil {
		a.println(w.LastError())
	}
	return true, nil
}

func (a *App) confirm(ctx context.Context, w *wizard.Wizard, role api.AccountType) (bool, error) {
	f := w.Form()
	a.println("Account type:", role)
	for _, name := range wizard.Fields(role) {
		if v := wizard.FieldValue(f, name); v != "" {
			a.println(fmt.Sprintf("  %s: %s", strings.TrimSuffix(fieldLabels[name], " (optional)"), v))
		}
	}

	choice, err := getSimpleText(a.reader, "Type submit to finish, back to edit or cancel", a.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(choice) {
	case "cancel":
		return false, nil
	case "back":
		w.Back()
		return true, nil
	case "submit":
	default:
		return true, nil
	}

	if _, err := w.Submit(ctx); err != nil {
		if !a.isLoggedIn() {
			a.path = common.LoginPath
			return false, err
		}
		a.println("Account setup failed:", w.LastError())
	}
	return true, nil
}
