package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/nairawise/internal/game"
	"github.com/tatianab/nairawise/internal/models"
)

type sessionState int

const (
	stateSetup sessionState = iota
	stateLoading
	statePlaying
	stateGameOver
	stateError
)

type tab int

const (
	tabLife tab = iota
	tabExchange
	tabJournal
)

const (
	fieldName = iota
	fieldCity
	fieldJob
	fieldSalary
	fieldCount
)

// The goal list sits after the text fields in the setup focus order.
const (
	focusGoals = fieldCount
	focusCount = fieldCount + 1
)

type model struct {
	state   sessionState
	tab     tab
	game    *game.Game
	leaders func() ([]models.LeaderboardEntry, error)

	inputs     []textinput.Model
	focus      int
	challenges []game.Challenge
	challenge  int
	goals      []models.Goal
	picked     []bool
	goalCursor int

	spinner  spinner.Model
	loading  string
	market   table.Model
	journal  viewport.Model
	trigger  textinput.Model
	editing  game.TriggerKind
	notices  []string
	summary  string
	err      error
	setupErr string
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true).
			Underline(true)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F43F5E")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	choiceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(1).
			PaddingRight(1)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#059669")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1)
)

func NewModel(g *game.Game, leaders func() ([]models.LeaderboardEntry, error)) model {
	placeholders := []string{"Your name", "City / state", "Job (e.g. Junior Consultant)", "Monthly salary in naira"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldName].Focus()

	trigger := textinput.New()
	trigger.Placeholder = "₦ price, empty to clear"
	trigger.CharLimit = 16
	trigger.Width = 24

	goals := game.Goals()
	picked := make([]bool, len(goals))
	for i := range picked {
		picked[i] = true
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		state:      stateSetup,
		game:       g,
		leaders:    leaders,
		inputs:     inputs,
		challenges: game.Challenges(),
		goals:      goals,
		picked:     picked,
		spinner:    sp,
		market:     newMarketTable(),
		journal:    viewport.New(80, 20),
		trigger:    trigger,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type gameStartedMsg struct {
	err error
}

type proceededMsg struct {
	notes []string
	err   error
}

type summaryMsg struct {
	text string
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateSetup:
			return m.updateSetup(msg)
		case statePlaying:
			return m.updatePlaying(msg)
		case stateGameOver, stateError:
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			case "n":
				return m.restart(), textinput.Blink
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.journal.Width = int(float64(msg.Width) * 0.7)
		m.journal.Height = max(5, msg.Height-10)
		m.market.SetHeight(min(10, max(3, msg.Height-14)))
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading && !(m.state == stateGameOver && m.summary == "") {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case gameStartedMsg:
		if msg.err != nil {
			var setupErr *game.SetupError
			if errors.As(msg.err, &setupErr) {
				m.state = stateSetup
				m.setupErr = setupErr.Error()
				return m, nil
			}
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.enterPlaying()
		return m, nil

	case proceededMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.notices = msg.notes
		m.enterPlaying()
		return m, nil

	case summaryMsg:
		m.summary = msg.text
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	if m.state == stateSetup {
		return m.updateSetupInputs(msg)
	}
	return m, nil
}

func (m model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusGoals && len(m.goals) > 0 {
		switch msg.Type {
		case tea.KeyRight:
			m.goalCursor = (m.goalCursor + 1) % len(m.goals)
			return m, nil
		case tea.KeyLeft:
			m.goalCursor = (m.goalCursor + len(m.goals) - 1) % len(m.goals)
			return m, nil
		case tea.KeySpace:
			m.picked[m.goalCursor] = !m.picked[m.goalCursor]
			return m, nil
		}
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.focus + 1) % focusCount)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case tea.KeyCtrlRight:
		m.challenge = (m.challenge + 1) % len(m.challenges)
		return m, nil
	case tea.KeyCtrlLeft:
		m.challenge = (m.challenge + len(m.challenges) - 1) % len(m.challenges)
		return m, nil
	case tea.KeyEnter:
		if m.focus < focusGoals {
			m.focusField(m.focus + 1)
			return m, nil
		}
		in, err := m.setupInput()
		if err == nil {
			err = in.Validate()
		}
		if err != nil {
			m.setupErr = err.Error()
			return m, nil
		}
		m.setupErr = ""
		return m.startLoading("Consulting the Oracle for week 1..."), tea.Batch(m.spinner.Tick, m.startGame(in))
	}
	return m.updateSetupInputs(msg)
}

func (m model) updateSetupInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) focusField(i int) {
	if m.focus < fieldCount {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if m.focus < fieldCount {
		m.inputs[m.focus].Focus()
	}
}

func (m model) setupInput() (game.SetupInput, error) {
	raw := strings.NewReplacer(",", "", "₦", "", " ", "").Replace(m.inputs[fieldSalary].Value())
	salary, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return game.SetupInput{}, &game.SetupError{Field: "salary", Reason: "salary must be a whole number"}
	}
	in := game.SetupInput{
		Name:   m.inputs[fieldName].Value(),
		City:   m.inputs[fieldCity].Value(),
		Job:    m.inputs[fieldJob].Value(),
		Salary: salary,
	}
	if len(m.challenges) > 0 {
		in.Challenge = m.challenges[m.challenge].ID
	}
	for i, g := range m.goals {
		if m.picked[i] {
			in.GoalIDs = append(in.GoalIDs, g.ID)
		}
	}
	return in, nil
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing != "" {
		return m.updateTrigger(msg)
	}

	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "1":
		m.tab = tabLife
		return m, nil
	case "2":
		m.tab = tabExchange
		m.refreshMarket()
		return m, nil
	case "3":
		m.tab = tabJournal
		m.refreshJournal()
		return m, nil
	case "r":
		if err := m.game.Retire(); err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		return m.enterGameOver(), tea.Batch(m.spinner.Tick, m.summarize())
	}

	switch m.tab {
	case tabLife:
		return m.updateLife(msg)
	case tabExchange:
		return m.updateExchange(msg)
	case tabJournal:
		var cmd tea.Cmd
		m.journal, cmd = m.journal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateLife(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.game.Session()
	if session.LastConsequence != "" {
		if msg.Type == tea.KeyEnter {
			return m.startLoading("Preparing next week..."), tea.Batch(m.spinner.Tick, m.proceed())
		}
		return m, nil
	}

	key := msg.String()
	if len(key) != 1 || key[0] < 'a' || key[0] > 'd' {
		return m, nil
	}
	out, err := m.game.Choose(context.Background(), int(key[0]-'a'))
	if errors.Is(err, game.ErrBadChoice) {
		return m, nil
	}
	if err != nil {
		return m, func() tea.Msg { return errMsg{err} }
	}
	m.notices = nil
	if out.Status.Terminal() {
		return m.enterGameOver(), tea.Batch(m.spinner.Tick, m.summarize())
	}
	return m, nil
}

func (m model) updateExchange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.selectedStock()
	switch msg.String() {
	case "b":
		if _, err := m.game.Buy(id); err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		m.refreshMarket()
		return m, nil
	case "s":
		if _, err := m.game.Sell(id); err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		m.refreshMarket()
		return m, nil
	case "t", "l":
		if _, ok := m.game.Session().Holding(id); !ok {
			return m, nil
		}
		m.editing = game.TakeProfit
		if msg.String() == "l" {
			m.editing = game.StopLoss
		}
		m.trigger.Reset()
		m.trigger.Focus()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.market, cmd = m.market.Update(msg)
	return m, cmd
}

func (m model) updateTrigger(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = ""
		m.trigger.Blur()
		return m, nil
	case tea.KeyEnter:
		var value *int64
		if raw := strings.TrimSpace(m.trigger.Value()); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v <= 0 {
				return m, nil
			}
			value = &v
		}
		if _, err := m.game.SetTrigger(m.selectedStock(), m.editing, value); err != nil {
			return m, func() tea.Msg { return errMsg{err} }
		}
		m.editing = ""
		m.trigger.Blur()
		m.refreshMarket()
		return m, nil
	}
	var cmd tea.Cmd
	m.trigger, cmd = m.trigger.Update(msg)
	return m, cmd
}

func (m model) startLoading(label string) model {
	m.state = stateLoading
	m.loading = label
	return m
}

func (m *model) enterPlaying() {
	m.state = statePlaying
	m.tab = tabLife
	m.refreshMarket()
	m.refreshJournal()
}

func (m model) enterGameOver() model {
	m.state = stateGameOver
	m.summary = ""
	return m
}

func (m model) restart() model {
	fresh := NewModel(m.game, m.leaders)
	fresh.width, fresh.height = m.width, m.height
	return fresh
}

func (m model) selectedStock() string {
	row := m.market.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateSetup:
		s = m.viewSetup()

	case stateLoading:
		s = fmt.Sprintf("\n  %s %s\n", m.spinner.View(), m.loading)

	case statePlaying:
		var body string
		switch m.tab {
		case tabLife:
			body = m.viewLife()
		case tabExchange:
			body = m.viewExchange()
		case tabJournal:
			body = m.journal.View()
		}
		mainView := lipgloss.JoinHorizontal(lipgloss.Top, body, m.viewStats())
		help := helpStyle.Render("1 Life · 2 Exchange · 3 Journal · r retire · q quit")
		s = lipgloss.JoinVertical(lipgloss.Left, m.viewTabs(), "", mainView, "", help)

	case stateGameOver:
		s = m.viewGameOver()

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress n for a new game or Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) viewSetup() string {
	labels := []string{"Name", "City", "Job", "Salary"}
	var b strings.Builder
	b.WriteString(titleStyle.Render("NairaWise") + "\n")
	b.WriteString("Survival in the Naira economy. Master your income, manage Sapa, build your empire.\n\n")
	for i, in := range m.inputs {
		fmt.Fprintf(&b, "%-8s %s\n", labels[i], in.View())
	}
	if len(m.challenges) > 0 {
		ch := m.challenges[m.challenge]
		fmt.Fprintf(&b, "\n%-8s ‹ %s › (₦%d balance, ₦%d savings, ₦%d debt)\n", "Start", ch.Title, ch.Balance, ch.Savings, ch.Debt)
	}

	b.WriteString("\nGoals")
	if m.focus == focusGoals {
		b.WriteString(" (←/→ move · space toggle · none picked means all)")
	}
	b.WriteString("\n")
	for i, g := range m.goals {
		cursor := "  "
		if m.focus == focusGoals && i == m.goalCursor {
			cursor = "> "
		}
		mark := "[ ]"
		if m.picked[i] {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %s (₦%d)\n", cursor, mark, g.Title, g.Target)
	}

	if m.setupErr != "" {
		b.WriteString("\n" + errStyle.Render(m.setupErr) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab next field · ctrl+←/→ change start · enter on goals begins · esc quit"))
	return b.String()
}

func (m model) viewTabs() string {
	names := []string{"Life", "Exchange", "Journal"}
	out := make([]string, len(names))
	for i, n := range names {
		if tab(i) == m.tab {
			out[i] = activeTabStyle.Render(n)
		} else {
			out[i] = inactiveTabStyle.Render(n)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m model) viewLife() string {
	session := m.game.Session()
	width := m.bodyWidth()
	var b strings.Builder

	for _, n := range m.notices {
		b.WriteString(noticeStyle.Render("🔔 "+n) + "\n")
	}
	if len(m.notices) > 0 {
		b.WriteString("\n")
	}

	sc := session.CurrentScenario
	if session.LastConsequence != "" {
		title := ""
		if len(session.History) > 0 {
			title = session.History[len(session.History)-1].Title
		}
		b.WriteString(titleStyle.Render(title) + "\n\n")
		b.WriteString(textStyle.Width(width).Render("“"+session.LastConsequence+"”") + "\n\n")
		ready := "next week is loading"
		if m.game.NextReady() {
			ready = "next week is ready"
		}
		b.WriteString(helpStyle.Render("enter next week · " + ready))
		return b.String()
	}
	if sc == nil {
		return "No scenario."
	}

	b.WriteString(titleStyle.Render(sc.Title) + "\n\n")
	b.WriteString(textStyle.Width(width).Render(sc.Description) + "\n\n")
	for i, c := range sc.Choices {
		label := fmt.Sprintf("%c) %s", 'a'+i, c.Text)
		b.WriteString(choiceStyle.Width(width-4).Render(label) + "\n")
	}
	return b.String()
}

func (m model) viewExchange() string {
	session := m.game.Session()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Nigeria Stock Exchange (NairaWise)") + "\n\n")
	b.WriteString(m.market.View() + "\n\n")
	if m.editing != "" {
		label := "Take-profit"
		if m.editing == game.StopLoss {
			label = "Stop-loss"
		}
		fmt.Fprintf(&b, "%s for %s: %s\n\n", label, m.selectedStock(), m.trigger.View())
	}
	b.WriteString(helpStyle.Render("↑/↓ select · b buy · s sell · t take-profit · l stop-loss") + "\n\n")

	b.WriteString(titleStyle.Render("Market News") + "\n")
	if len(session.MarketNews) == 0 {
		b.WriteString("(quiet week)\n")
	}
	for i := len(session.MarketNews) - 1; i >= 0 && i >= len(session.MarketNews)-5; i-- {
		n := session.MarketNews[i]
		fmt.Fprintf(&b, "W%d [%s] %s\n", n.Week, n.Impact, n.Headline)
	}
	return b.String()
}

func (m model) viewStats() string {
	store := m.game.Store()
	if store == nil {
		return ""
	}
	st := store.Session().Stats

	stats := titleStyle.Render("DASHBOARD") + "\n"
	stats += fmt.Sprintf("%s · %s\n", st.Name, st.Job)
	stats += fmt.Sprintf("Week: %d\n", st.CurrentWeek)
	stats += fmt.Sprintf("Balance: ₦%d\n", st.Balance)
	stats += fmt.Sprintf("Savings: ₦%d\n", st.Savings)
	stats += fmt.Sprintf("Debt: ₦%d\n", st.Debt)
	stats += fmt.Sprintf("Happiness: %d%%\n", st.Happiness)
	stats += fmt.Sprintf("Portfolio: ₦%d\n", store.PortfolioValue())
	stats += fmt.Sprintf("Net assets: ₦%d\n\n", store.NetAssets())

	stats += titleStyle.Render("GOALS") + "\n"
	for _, g := range store.Session().Goals {
		mark := "[ ]"
		if g.Completed {
			mark = "[x]"
		}
		stats += fmt.Sprintf("%s %s (₦%d)\n", mark, g.Title, g.Target)
	}

	width := int(float64(m.width) * 0.28)
	return statsStyle.Width(width).Render(stats)
}

func (m model) viewGameOver() string {
	session := m.game.Session()
	var b strings.Builder

	heading := "Game over"
	switch session.EndReason {
	case models.EndBankrupt:
		heading = "Sapa has won this round"
	case models.EndUnhappy:
		heading = "Happiness ran out"
	case models.EndWeekLimit:
		heading = "You made it through the year"
	case models.EndRetired:
		heading = "You retired"
	}
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	net := m.game.Store().NetAssets()
	fmt.Fprintf(&b, "Final week %d · net assets ₦%d · %s\n\n", session.Stats.CurrentWeek, net, game.RankLabel(net))

	if m.summary == "" {
		b.WriteString(m.spinner.View() + " The Wise Oga is reviewing your decisions...\n\n")
	} else {
		b.WriteString(textStyle.Width(m.bodyWidth()).Render(m.summary) + "\n\n")
	}

	if m.leaders != nil {
		if rows, err := m.leaders(); err == nil && len(rows) > 0 {
			b.WriteString(titleStyle.Render("LEADERBOARD") + "\n")
			for i, r := range rows {
				fmt.Fprintf(&b, "%2d. %-16s %-12s ₦%-12d %s\n", i+1, r.Name, r.City, r.NetAssets, r.Rank)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString(helpStyle.Render("n new game · q quit"))
	return b.String()
}

func (m model) bodyWidth() int {
	if m.width == 0 {
		return 70
	}
	return int(float64(m.width) * 0.68)
}

func (m *model) refreshJournal() {
	session := m.game.Session()
	if session == nil {
		return
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("JOURNAL") + "\n\n")
	if len(session.History) == 0 {
		b.WriteString("Nothing yet. Make your first decision.\n")
	}
	for i := len(session.History) - 1; i >= 0; i-- {
		h := session.History[i]
		fmt.Fprintf(&b, "Week %d · %s\n  > %s\n  %s\n\n", h.Week, h.Title, h.Decision, h.Consequence)
	}
	m.journal.SetContent(b.String())
	m.journal.GotoTop()
}

func newMarketTable() table.Model {
	cols := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Name", Width: 22},
		{Title: "Price", Width: 10},
		{Title: "Chg", Width: 7},
		{Title: "Held", Width: 5},
		{Title: "Avg", Width: 9},
		{Title: "TP/SL", Width: 15},
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(7))
	return t
}

func (m *model) refreshMarket() {
	session := m.game.Session()
	if session == nil {
		return
	}
	rows := make([]table.Row, 0, len(session.Stocks))
	for _, s := range session.Stocks {
		change := "0.00%"
		if n := len(s.History); n > 1 && s.History[n-2] != 0 {
			prev := s.History[n-2]
			change = fmt.Sprintf("%+.2f%%", float64(s.Price-prev)/float64(prev)*100)
		}
		held, avg, triggers := "", "", ""
		if h, ok := session.Holding(s.ID); ok {
			held = strconv.FormatInt(h.Shares, 10)
			avg = strconv.FormatInt(h.AveragePrice, 10)
			triggers = formatTrigger(h.TakeProfit) + "/" + formatTrigger(h.StopLoss)
		}
		rows = append(rows, table.Row{s.ID, s.Name, strconv.FormatInt(s.Price, 10), change, held, avg, triggers})
	}
	m.market.SetRows(rows)
}

func formatTrigger(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func (m model) startGame(in game.SetupInput) tea.Cmd {
	return func() tea.Msg {
		return gameStartedMsg{m.game.NewGame(context.Background(), in)}
	}
}

func (m model) resumeGame(id string) tea.Cmd {
	return func() tea.Msg {
		return gameStartedMsg{m.game.Resume(context.Background(), id)}
	}
}

func (m model) proceed() tea.Cmd {
	return func() tea.Msg {
		notes, err := m.game.Proceed(context.Background())
		return proceededMsg{notes, err}
	}
}

func (m model) summarize() tea.Cmd {
	return func() tea.Msg {
		return summaryMsg{m.game.Summarize(context.Background())}
	}
}

// Run starts the TUI. A non-empty resumeID continues that saved session
// instead of showing the setup form.
func Run(g *game.Game, leaders func() ([]models.LeaderboardEntry, error), resumeID string) error {
	m := NewModel(g, leaders)
	var initial tea.Model = m
	if resumeID != "" {
		m = m.startLoading("Loading your saved game...")
		initial = resumeModel{model: m, id: resumeID}
	}
	p := tea.NewProgram(initial, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// resumeModel kicks off loading a saved session from Init.
type resumeModel struct {
	model
	id string
}

func (r resumeModel) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, r.resumeGame(r.id))
}
