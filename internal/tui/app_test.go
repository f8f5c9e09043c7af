package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tui/components"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func seedExpense(t *testing.T, title, amount string, paidBy model.Payer, kind model.Kind, date model.Date) model.Expense {
	t.Helper()
	e, err := model.Draft{Title: title, Amount: amount, PaidBy: paidBy, Type: kind, Date: date}.Expense(model.NewID())
	if err != nil {
		t.Fatalf("seed %q: %v", title, err)
	}
	return e
}

func newTestApp(t *testing.T, kv store.ByteStore, seed ...model.Expense) App {
	t.Helper()
	repo := store.NewRepository(kv)
	if len(seed) > 0 {
		repo.Save(seed)
		if err := repo.LastSaveErr(); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
	a := NewApp(Options{Repo: repo, Config: config.DefaultConfig(), Now: fixedNow})
	a = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
	a = update(t, a, ExpensesLoadedMsg{Expenses: repo.Load()})
	return a
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

// run executes cmd and feeds its message back into the app.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) App {
	t.Helper()
	a := m.(App)
	if cmd == nil {
		return a
	}
	return update(t, a, cmd())
}

// submit applies the open form and processes the resulting write.
func submit(t *testing.T, a App) App {
	t.Helper()
	m, cmd := a.submitForm()
	return run(t, m, cmd)
}

func press(t *testing.T, a App, key string) App {
	t.Helper()
	return update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func TestMonthNavigation(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0),
		seedExpense(t, "Rent", "900", model.PayerA, model.Shared, model.NewDate(2026, time.March, 1)),
		seedExpense(t, "Taxi", "20", model.PayerB, model.Individual, model.NewDate(2026, time.March, 10)),
		seedExpense(t, "Gift", "35", model.PayerB, model.Shared, model.NewDate(2026, time.February, 14)),
	)

	if len(a.monthRows) != 2 {
		t.Fatalf("March rows = %d, want 2", len(a.monthRows))
	}
	if a.monthRows[0].Title != "Taxi" {
		t.Errorf("newest first: got %q, want Taxi", a.monthRows[0].Title)
	}
	if a.monthSum != "920.00" {
		t.Errorf("monthSum = %q, want 920.00", a.monthSum)
	}

	a = press(t, a, "h")
	if a.month != time.February || len(a.monthRows) != 1 {
		t.Errorf("after h: month=%v rows=%d", a.month, len(a.monthRows))
	}

	a = press(t, a, "l")
	a = press(t, a, "l")
	if a.month != time.April || len(a.monthRows) != 0 {
		t.Errorf("after l l: month=%v rows=%d", a.month, len(a.monthRows))
	}

	a = press(t, a, "t")
	if a.month != time.March || a.year != 2026 {
		t.Errorf("after t: %v %d", a.month, a.year)
	}
}

func TestMonthNavigationAcrossYear(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0))
	for range 3 {
		a = press(t, a, "h")
	}
	if a.year != 2025 || a.month != time.December {
		t.Errorf("got %v %d, want December 2025", a.month, a.year)
	}
}

func TestTabSwitching(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0))
	if a.activeTab != tabMonth {
		t.Fatalf("initial tab = %d", a.activeTab)
	}
	a = press(t, a, "s")
	if a.activeTab != tabSummary {
		t.Errorf("after s: tab = %d", a.activeTab)
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabMonth {
		t.Errorf("after right: tab = %d, want wrap to month", a.activeTab)
	}
	a = press(t, a, "?")
	if !a.showHelp {
		t.Error("? should open help")
	}
	a = press(t, a, "x")
	if a.showHelp {
		t.Error("any key should close help")
	}
}

func TestAddExpense(t *testing.T) {
	kv := store.NewMemoryStore(0)
	a := newTestApp(t, kv)

	m, _ := a.startAdd()
	a = m.(App)
	if a.form == nil || a.mode != formAdd {
		t.Fatal("add form not open")
	}
	if a.formVals.Date != "2026-03-15" {
		t.Errorf("default date = %q, want today", a.formVals.Date)
	}

	a.formVals.Title = "  Groceries "
	a.formVals.Amount = "42,5"
	a.formVals.PaidBy = model.PayerB
	a = submit(t, a)

	if a.form != nil {
		t.Error("form still open after submit")
	}
	if len(a.expenses) != 1 || a.expenses[0].Title != "Groceries" {
		t.Fatalf("expenses = %+v", a.expenses)
	}
	if a.status != "Added Groceries" {
		t.Errorf("status = %q", a.status)
	}
	if got := store.NewRepository(kv).Load(); len(got) != 1 || got[0].Amount.String() != "42.50" {
		t.Errorf("persisted = %+v", got)
	}
	if a.balance.TotalB.String() != "42.5" {
		t.Errorf("balance not recomputed: TotalB = %s", a.balance.TotalB)
	}
}

func TestAddExpense_DefaultsToBrowsedMonth(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0))
	a = press(t, a, "h")
	m, _ := a.startAdd()
	if got := m.(App).formVals.Date; got != "2026-02-01" {
		t.Errorf("default date = %q, want 2026-02-01", got)
	}
}

func TestAddExpense_InvalidNotSaved(t *testing.T) {
	kv := store.NewMemoryStore(0)
	a := newTestApp(t, kv)

	m, _ := a.startAdd()
	a = m.(App)
	a.formVals.Title = "Coffee"
	a.formVals.Amount = "0"
	m, cmd := a.submitForm()
	a = m.(App)

	if cmd != nil {
		t.Error("invalid draft should not produce a write")
	}
	if !strings.Contains(a.status, "Amount must be greater than 0") {
		t.Errorf("status = %q", a.status)
	}
	if kv.Writes() != 0 {
		t.Errorf("writes = %d, want 0", kv.Writes())
	}
}

func TestEditExpense(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0),
		seedExpense(t, "Rent", "900", model.PayerA, model.Shared, model.NewDate(2026, time.March, 1)),
	)

	m, _ := a.startEdit()
	a = m.(App)
	if a.mode != formEdit || a.formVals.Amount != "900.00" {
		t.Fatalf("edit form: mode=%d vals=%+v", a.mode, a.formVals)
	}
	id := a.targetID
	a.formVals.Amount = "950"
	a.formVals.Date = "2026-04-01"
	a = submit(t, a)

	if len(a.expenses) != 1 || a.expenses[0].ID != id || a.expenses[0].Amount.String() != "950.00" {
		t.Fatalf("expenses = %+v", a.expenses)
	}
	if a.month != time.April {
		t.Errorf("view should follow the edited date, month = %v", a.month)
	}
}

func TestDeleteExpense(t *testing.T) {
	kv := store.NewMemoryStore(0)
	a := newTestApp(t, kv,
		seedExpense(t, "Rent", "900", model.PayerA, model.Shared, model.NewDate(2026, time.March, 1)),
	)
	writes := kv.Writes()

	m, _ := a.startDelete()
	a = m.(App)
	if a.mode != formDelete {
		t.Fatal("delete form not open")
	}
	a = submit(t, a) // not confirmed
	if len(a.expenses) != 1 || kv.Writes() != writes {
		t.Fatal("delete without confirmation changed data")
	}

	m, _ = a.startDelete()
	a = m.(App)
	*a.confirmed = true
	a = submit(t, a)
	if len(a.expenses) != 0 || len(a.monthRows) != 0 {
		t.Fatalf("expenses after delete = %+v", a.expenses)
	}
}

func TestFirstRowSelectedAfterRefresh(t *testing.T) {
	for n := 1; n <= 3; n++ {
		var seed []model.Expense
		for d := 1; d <= n; d++ {
			seed = append(seed, seedExpense(t, "Day", "5", model.PayerA, model.Shared, model.NewDate(2026, time.March, d)))
		}
		a := newTestApp(t, store.NewMemoryStore(0), seed...)

		if got := a.table.Cursor(); got != 0 {
			t.Errorf("%d rows: cursor after load = %d, want 0", n, got)
		}
		if _, ok := a.selected(); !ok {
			t.Errorf("%d rows: nothing selected after load", n)
		}

		a = press(t, a, "h")
		a = press(t, a, "l")
		a = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
		if a.mode != formEdit {
			t.Errorf("%d rows: enter after changing month: mode = %d, want edit form", n, a.mode)
		}
	}
}

func TestCursorKeptAcrossRefresh(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0),
		seedExpense(t, "One", "1", model.PayerA, model.Shared, model.NewDate(2026, time.March, 1)),
		seedExpense(t, "Two", "2", model.PayerA, model.Shared, model.NewDate(2026, time.March, 2)),
		seedExpense(t, "Three", "3", model.PayerA, model.Shared, model.NewDate(2026, time.March, 3)),
	)
	a = press(t, a, "j")
	if got := a.table.Cursor(); got != 1 {
		t.Fatalf("cursor after j = %d, want 1", got)
	}

	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 30})
	if e, ok := a.selected(); !ok || e.Title != "Two" {
		t.Errorf("selected after resize = %q, %v, want Two", e.Title, ok)
	}

	m, _ := a.startDelete()
	a = m.(App)
	*a.confirmed = true
	a = submit(t, a)
	if got := a.table.Cursor(); got != 1 {
		t.Errorf("cursor after delete = %d, want 1", got)
	}
	if e, ok := a.selected(); !ok || e.Title != "One" {
		t.Errorf("selected after delete = %q, %v, want One", e.Title, ok)
	}
}

func TestEditDeleteOnEmptyMonthIsNoOp(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0))
	if m, cmd := a.startEdit(); m.(App).form != nil || cmd != nil {
		t.Error("edit on empty month opened a form")
	}
	if m, cmd := a.startDelete(); m.(App).form != nil || cmd != nil {
		t.Error("delete on empty month opened a form")
	}
}

type failingStore struct{ *store.MemoryStore }

func (failingStore) Set(string, []byte) error { return errors.New("disk full") }

func TestSaveFailureShowsWarning(t *testing.T) {
	a := newTestApp(t, failingStore{store.NewMemoryStore(0)})

	m, _ := a.startAdd()
	a = m.(App)
	a.formVals.Title = "Lunch"
	a.formVals.Amount = "12"
	a = submit(t, a)

	if a.saveErr == nil {
		t.Fatal("saveErr = nil, want the write error")
	}
	if w := a.statusWarning(); !strings.Contains(w, "changes were not saved") || !strings.Contains(w, "disk full") {
		t.Errorf("statusWarning = %q", w)
	}
	if len(a.expenses) != 1 {
		t.Errorf("in-memory collection should still show the entry, got %d", len(a.expenses))
	}
	if !strings.Contains(a.View(), "changes were not saved") {
		t.Error("warning missing from the rendered view")
	}
}

func TestSetupWizardSavesConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	repo := store.NewRepository(store.NewMemoryStore(0))
	a := NewApp(Options{Repo: repo, Config: config.DefaultConfig(), NeedSetup: true, Now: fixedNow})
	a = update(t, a, ExpensesLoadedMsg{Expenses: repo.Load()})
	if a.mode != formSetup {
		t.Fatalf("mode = %d, want setup form", a.mode)
	}

	a.setupVals.NameA = "Ann"
	a.setupVals.NameB = "Ben"
	a.setupVals.Currency = "€"
	m, _ := a.submitForm()
	a = m.(App)

	if a.needSetup || a.form != nil {
		t.Error("setup still pending")
	}
	if a.cfg.Participants.A != "Ann" || a.cfg.Appearance.CurrencySymbol != "€" {
		t.Errorf("cfg = %+v", a.cfg)
	}
	if !config.Exists() {
		t.Error("config file not written")
	}
}

func TestSetupWizardLeavesOverridesOutOfFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stored := config.DefaultConfig()
	stored.Export.Label = "Home"
	if err := config.Save(stored); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	session := stored
	session.General.DataDir = t.TempDir()
	session.General.Backend = "memory"

	repo := store.NewRepository(store.NewMemoryStore(0))
	a := NewApp(Options{Repo: repo, Config: session, NeedSetup: true, Now: fixedNow})
	a = update(t, a, ExpensesLoadedMsg{Expenses: repo.Load()})
	a.setupVals.NameA = "Ann"
	m, _ := a.submitForm()
	a = m.(App)

	if a.cfg.General.Backend != "memory" || a.cfg.Participants.A != "Ann" {
		t.Errorf("session cfg = %+v", a.cfg.General)
	}
	onDisk, err := config.LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if onDisk.Participants.A != "Ann" || onDisk.Export.Label != "Home" {
		t.Errorf("file = %+v", onDisk)
	}
	if onDisk.General.DataDir != "" || onDisk.General.Backend != "file" {
		t.Errorf("session overrides written to file: %+v", onDisk.General)
	}
}

func TestTabAtX(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Errorf("active=%d x=%d -> %d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("past last tab -> %d, want -1", got)
		}
	}
}

func TestView(t *testing.T) {
	a := newTestApp(t, store.NewMemoryStore(0),
		seedExpense(t, "Rent", "100", model.PayerA, model.Shared, model.NewDate(2026, time.March, 1)),
		seedExpense(t, "Food", "60", model.PayerB, model.Shared, model.NewDate(2026, time.March, 2)),
	)

	month := a.View()
	for _, want := range []string{"March 2026", "Rent", "160.00"} {
		if !strings.Contains(month, want) {
			t.Errorf("month view missing %q", want)
		}
	}

	a = press(t, a, "s")
	summary := a.View()
	for _, want := range []string{"Settle up", "Person B owes Person A 40.00", "Share of spend"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary view missing %q", want)
		}
	}

	narrow := update(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(narrow.View(), "too narrow") {
		t.Error("narrow terminal message missing")
	}
}
