package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// ExpenseFormValues backs the add/edit form. Amount and Date stay text until
// submit so the form can validate them field by field.
type ExpenseFormValues struct {
	Title  string
	Amount string
	PaidBy model.Payer
	Type   model.Kind
	Date   string
	Note   string
}

// NewExpenseFormValues returns defaults for a new expense dated today.
func NewExpenseFormValues(today time.Time) *ExpenseFormValues {
	return &ExpenseFormValues{
		PaidBy: model.PayerA,
		Type:   model.Shared,
		Date:   model.DateOf(today).String(),
	}
}

// ExpenseFormValuesOf pre-fills the form from an existing expense.
func ExpenseFormValuesOf(e model.Expense) *ExpenseFormValues {
	d := model.DraftOf(e)
	return &ExpenseFormValues{
		Title:  d.Title,
		Amount: d.Amount,
		PaidBy: d.PaidBy,
		Type:   d.Type,
		Date:   d.Date.String(),
		Note:   d.Note,
	}
}

// Draft converts the form values into a model.Draft. An unparseable date is
// left zero so Validate reports it.
func (v *ExpenseFormValues) Draft() model.Draft {
	date, _ := model.ParseDate(strings.TrimSpace(v.Date))
	return model.Draft{
		Title:  v.Title,
		Amount: v.Amount,
		PaidBy: v.PaidBy,
		Type:   v.Type,
		Date:   date,
		Note:   v.Note,
	}
}

// fieldCheck adapts Draft.Validate to a single huh field.
func fieldCheck(field string, fill func(*model.Draft, string)) func(string) error {
	return func(s string) error {
		d := model.Draft{Title: "x", Amount: "1", PaidBy: model.PayerA, Type: model.Shared, Date: model.NewDate(2000, 1, 1)}
		fill(&d, s)
		if msg, ok := d.Validate()[field]; ok {
			return errors.New(msg)
		}
		return nil
	}
}

var (
	validateTitle = fieldCheck(model.FieldTitle, func(d *model.Draft, s string) { d.Title = s })

	validateAmount = fieldCheck(model.FieldAmount, func(d *model.Draft, s string) { d.Amount = s })

	validateDate = func(s string) error {
		if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
			return errors.New("Date must be YYYY-MM-DD")
		}
		return nil
	}
)

// formKeyMap lets esc cancel a form as well as ctrl+c.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

// NewExpenseForm builds the add/edit form bound to vals.
func NewExpenseForm(title string, vals *ExpenseFormValues, names pipeline.Names) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Groceries").
				Value(&vals.Title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&vals.Amount).
				Validate(validateAmount),
			huh.NewSelect[model.Payer]().
				Title("Paid by").
				Options(
					huh.NewOption(names.Of(model.PayerA), model.PayerA),
					huh.NewOption(names.Of(model.PayerB), model.PayerB),
				).
				Value(&vals.PaidBy),
			huh.NewSelect[model.Kind]().
				Title("Type").
				Options(
					huh.NewOption(model.Shared.DisplayName(), model.Shared),
					huh.NewOption(model.Individual.DisplayName(), model.Individual),
				).
				Value(&vals.Type),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&vals.Date).
				Validate(validateDate),
			huh.NewText().
				Title("Note").
				Lines(2).
				Value(&vals.Note),
		).Title(title),
	).WithKeyMap(formKeyMap()).WithShowHelp(true)
}

// NewDeleteForm asks for confirmation before deleting title.
func NewDeleteForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete \"" + title + "\"?").
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(confirmed),
		),
	).WithKeyMap(formKeyMap())
}

// SetupValues backs the first-run wizard.
type SetupValues struct {
	NameA      string
	NameB      string
	Currency   string
	Theme      string
	MonthsBack int
}

// SetupValuesOf pre-fills the wizard from cfg.
func SetupValuesOf(cfg config.Config) *SetupValues {
	return &SetupValues{
		NameA:      cfg.Participants.A,
		NameB:      cfg.Participants.B,
		Currency:   cfg.Appearance.CurrencySymbol,
		Theme:      cfg.Appearance.Theme,
		MonthsBack: cfg.General.MonthsBack,
	}
}

// Apply copies the wizard answers onto cfg.
func (v *SetupValues) Apply(cfg config.Config) config.Config {
	if s := strings.TrimSpace(v.NameA); s != "" {
		cfg.Participants.A = s
	}
	if s := strings.TrimSpace(v.NameB); s != "" {
		cfg.Participants.B = s
	}
	cfg.Appearance.CurrencySymbol = strings.TrimSpace(v.Currency)
	cfg.Appearance.Theme = v.Theme
	if v.MonthsBack > 0 {
		cfg.General.MonthsBack = v.MonthsBack
	}
	return cfg
}

// NewSetupForm builds the first-run wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tally").
				Description("Two people, one ledger. Let's set a few things up."),
			huh.NewInput().Title("First person").Value(&vals.NameA),
			huh.NewInput().Title("Second person").Value(&vals.NameB),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Description("Shown before amounts, e.g. € or $. Leave blank for none.").
				CharLimit(4).
				Value(&vals.Currency),
			huh.NewSelect[int]().
				Title("Months in the summary chart").
				Options(huh.NewOption("3", 3), huh.NewOption("6", 6), huh.NewOption("12", 12)).
				Value(&vals.MonthsBack),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithKeyMap(formKeyMap())
}
