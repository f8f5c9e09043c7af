// Package tui provides the interactive Bubble Tea dashboard for tally.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// Tab indexes, matching components.Tabs.
const (
	tabMonth = iota
	tabSummary
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// ExpensesLoadedMsg carries the collection read at startup.
type ExpensesLoadedMsg struct {
	Expenses []model.Expense
}

// ExpensesChangedMsg carries the collection after an add, edit or delete,
// plus the outcome of writing it.
type ExpensesChangedMsg struct {
	Expenses []model.Expense
	SaveErr  error
	Status   string
	Focus    *model.Date // month to show afterwards, if any
}

type formMode int

const (
	formNone formMode = iota
	formAdd
	formEdit
	formDelete
	formSetup
)

// Options configures a new App.
type Options struct {
	Repo      *store.Repository
	Config    config.Config
	NeedSetup bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	repo *store.Repository
	cfg  config.Config
	now  func() time.Time

	// Data
	expenses []model.Expense
	loaded   bool

	// Derived
	balance   model.Balance
	monthly   []model.MonthlyTotal
	monthRows []model.Expense
	monthSum  string

	// Selected month
	year  int
	month time.Month

	table table.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	needSetup bool

	// Active huh form, if any
	form      *huh.Form
	mode      formMode
	formVals  *ExpenseFormValues
	setupVals *SetupValues
	confirmed *bool
	targetID  string

	status  string
	saveErr error
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	today := now()

	tbl := table.New(table.WithFocused(true))
	tbl.SetStyles(tableStyles())

	return App{
		repo:      opts.Repo,
		cfg:       opts.Config,
		now:       now,
		year:      today.Year(),
		month:     today.Month(),
		table:     tbl,
		needSetup: opts.NeedSetup,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.EnableMouseCellMotion, loadCmd(a.repo))
}

func loadCmd(repo *store.Repository) tea.Cmd {
	return func() tea.Msg {
		return ExpensesLoadedMsg{Expenses: repo.Load()}
	}
}

// mutateCmd runs a repository write and reports the result.
func mutateCmd(repo *store.Repository, status string, focus *model.Date, fn func() []model.Expense) tea.Cmd {
	return func() tea.Msg {
		expenses := fn()
		return ExpensesChangedMsg{
			Expenses: expenses,
			SaveErr:  repo.LastSaveErr(),
			Status:   status,
			Focus:    focus,
		}
	}
}

func (a App) names() pipeline.Names { return a.cfg.Names() }

func (a App) money(d model.Amount) string {
	return cli.FormatAmount(d.Decimal, a.cfg.Appearance.CurrencySymbol)
}

// recompute refreshes every derived view after the data or month changed.
func (a *App) recompute() {
	a.balance = pipeline.ComputeBalance(a.expenses)
	a.monthly = pipeline.AggregateMonths(a.expenses, a.cfg.General.MonthsBack, a.now())
	a.monthRows = pipeline.FilterByMonth(a.expenses, a.year, a.month)
	a.monthSum = cli.FormatAmount(pipeline.SumAmounts(a.monthRows), a.cfg.Appearance.CurrencySymbol)
	a.syncTable()
}

// shiftMonth moves the selected month by delta.
func (a *App) shiftMonth(delta int) {
	t := time.Date(a.year, a.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	a.year, a.month = t.Year(), t.Month()
	a.table.SetCursor(0)
	a.recompute()
}

// selected returns the expense under the table cursor.
func (a App) selected() (model.Expense, bool) {
	i := a.table.Cursor()
	if i < 0 || i >= len(a.monthRows) {
		return model.Expense{}, false
	}
	return a.monthRows[i], true
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		a.syncTable()
		return a, nil

	case ExpensesLoadedMsg:
		a.expenses = msg.Expenses
		a.loaded = true
		a.recompute()
		if a.needSetup {
			return a.startSetup()
		}
		return a, nil

	case ExpensesChangedMsg:
		a.expenses = msg.Expenses
		a.saveErr = msg.SaveErr
		if msg.SaveErr == nil {
			a.status = msg.Status
		} else {
			a.status = ""
		}
		if msg.Focus != nil {
			a.year, a.month = msg.Focus.Year, msg.Focus.Month
		}
		a.recompute()
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp || !a.loaded {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
			return a, nil
		}
		if a.activeTab == tabMonth {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				a.table.MoveUp(1)
			case tea.MouseButtonWheelDown:
				a.table.MoveDown(1)
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		if !a.loaded {
			return a, nil
		}
		return a.updateKeys(msg)
	}

	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "?":
		a.showHelp = true
		return a, nil
	case "q":
		return a, tea.Quit
	case "tab", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab", "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "a":
		return a.startAdd()
	case "h", "[":
		a.shiftMonth(-1)
		return a, nil
	case "l", "]":
		a.shiftMonth(1)
		return a, nil
	case "t":
		today := a.now()
		a.year, a.month = today.Year(), today.Month()
		a.recompute()
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	if a.activeTab != tabMonth {
		return a, nil
	}

	switch key {
	case "e", "enter":
		return a.startEdit()
	case "d", "x":
		return a.startDelete()
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// ─── Forms ──────────────────────────────────────────────────────

func (a App) formWidth() int {
	return min(max(a.width-8, 30), 70)
}

func (a App) openForm(f *huh.Form, mode formMode) (tea.Model, tea.Cmd) {
	a.form = f.WithWidth(a.formWidth())
	a.mode = mode
	a.status = ""
	return a, a.form.Init()
}

func (a App) startAdd() (tea.Model, tea.Cmd) {
	a.formVals = NewExpenseFormValues(a.defaultDate())
	a.targetID = ""
	return a.openForm(NewExpenseForm("Add expense", a.formVals, a.names()), formAdd)
}

// defaultDate is today when browsing the current month, otherwise the first
// of the browsed month so new entries land where the user is looking.
func (a App) defaultDate() time.Time {
	today := a.now()
	if today.Year() == a.year && today.Month() == a.month {
		return today
	}
	return time.Date(a.year, a.month, 1, 0, 0, 0, 0, time.UTC)
}

func (a App) startEdit() (tea.Model, tea.Cmd) {
	e, ok := a.selected()
	if !ok {
		return a, nil
	}
	a.formVals = ExpenseFormValuesOf(e)
	a.targetID = e.ID
	return a.openForm(NewExpenseForm("Edit expense", a.formVals, a.names()), formEdit)
}

func (a App) startDelete() (tea.Model, tea.Cmd) {
	e, ok := a.selected()
	if !ok {
		return a, nil
	}
	a.confirmed = new(bool)
	a.targetID = e.ID
	return a.openForm(NewDeleteForm(e.Title, a.confirmed), formDelete)
}

func (a App) startSetup() (tea.Model, tea.Cmd) {
	a.setupVals = SetupValuesOf(a.cfg)
	return a.openForm(NewSetupForm(a.setupVals), formSetup)
}

func (a App) closeForm() App {
	a.form = nil
	a.mode = formNone
	a.formVals = nil
	a.setupVals = nil
	a.confirmed = nil
	a.targetID = ""
	return a
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submitForm()
	case huh.StateAborted:
		if a.mode == formSetup {
			a.needSetup = false
		}
		return a.closeForm(), nil
	}
	return a, cmd
}

// submitForm applies the answers of the open form.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	mode, vals, id := a.mode, a.formVals, a.targetID
	confirmed, setup := a.confirmed, a.setupVals
	a = a.closeForm()

	switch mode {
	case formAdd, formEdit:
		if mode == formAdd {
			id = model.NewID()
		}
		e, err := vals.Draft().Expense(id)
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		focus := e.Date
		if mode == formAdd {
			return a, mutateCmd(a.repo, "Added "+e.Title, &focus, func() []model.Expense { return a.repo.Add(e) })
		}
		return a, mutateCmd(a.repo, "Updated "+e.Title, &focus, func() []model.Expense { return a.repo.Update(e) })

	case formDelete:
		if confirmed == nil || !*confirmed {
			return a, nil
		}
		return a, mutateCmd(a.repo, "Deleted", nil, func() []model.Expense { return a.repo.Delete(id) })

	case formSetup:
		a.needSetup = false
		a.cfg = setup.Apply(a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.table.SetStyles(tableStyles())
		if _, err := config.Update(setup.Apply); err != nil {
			a.status = "Settings apply to this session only: " + err.Error()
		} else {
			a.status = "Saved " + config.ConfigPath()
		}
		a.recompute()
	}
	return a, nil
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewCentered(lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render("Loading expenses…"))
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  tally needs at least %d columns.\n",
		a.width, minTerminalWidth)
	h := max(a.height, 5)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewCentered(body string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(theme.Active.Background))
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return a.viewCentered(card)
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	sections := []struct {
		name     string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"m s", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"h l [ ]", "Previous / Next month"},
			{"t", "Current month"},
			{"j k", "Move selection"},
		}},
		{"Actions", [][2]string{
			{"a", "Add expense"},
			{"e Enter", "Edit selected"},
			{"d", "Delete selected"},
			{"Esc", "Cancel form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.name))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("Press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())
	return a.viewCentered(card)
}

func (a App) statusHints() string {
	if a.activeTab == tabMonth {
		return "[a]dd [e]dit [d]elete [h/l] month [?]help [q]uit"
	}
	return "[a]dd [m]onth [?]help [q]uit"
}

func (a App) statusWarning() string {
	if a.saveErr == nil {
		return ""
	}
	return "changes were not saved: " + a.saveErr.Error()
}

func (a App) statusMessage() string {
	if a.status != "" {
		return a.status
	}
	return cli.FormatCount(len(a.expenses), "expense")
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.statusMessage(), a.statusWarning())

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabMonth:
		content = a.renderMonthTab(cw)
	case tabSummary:
		content = a.renderSummaryTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
