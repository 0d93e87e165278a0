package main

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/td0m/taskboard/internal/ui"
	"github.com/td0m/taskboard/pkg/dateinput"
	"github.com/td0m/taskboard/pkg/task"
)

const (
	headerHeight = 3
	bannerHeight = 1
	footerHeight = 2

	laneTitleHeight = 2
)

type mode int

const (
	modeNormal mode = iota
	modeCreate
	modeRename
	modeDue
	modeSearch
	modeConfirmClear
)

type (
	snapshotMsg task.Snapshot
	overdueMsg  []task.ID
)

type app struct {
	mode mode

	viewport viewport.Model
	input    textinput.Model
	due      dateinput.Model
	tabs     ui.Tabs

	// cursor of every lane, indexed like task.Statuses
	cursors []int
	lanes   map[task.Status][]task.Task
	query   string

	overdue   []task.ID
	dismissed bool

	// a title typed for a new ongoing task, waiting for its due date
	draft *string
	// a move into the ongoing lane, waiting for a due date
	moving task.ID

	store     *task.Store
	snapshots <-chan task.Snapshot
	checks    <-chan []task.ID
	now       func() time.Time
}

func newApp(store *task.Store, snapshots <-chan task.Snapshot, checks <-chan []task.ID) *app {
	i := textinput.NewModel()
	i.Focus()
	i.Prompt = ""
	i.Width = 40
	i.CharLimit = 120

	a := &app{
		input:     i,
		tabs:      ui.NewTabs(task.Statuses),
		cursors:   make([]int, len(task.Statuses)),
		store:     store,
		snapshots: snapshots,
		checks:    checks,
		now:       time.Now,
	}
	a.due = dateinput.NewModel(a.now)
	a.refresh()
	return a
}

func waitForSnapshot(sub <-chan task.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-sub
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func waitForOverdue(checks <-chan []task.ID) tea.Cmd {
	return func() tea.Msg {
		ids, ok := <-checks
		if !ok {
			return nil
		}
		return overdueMsg(ids)
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m app) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapshots), waitForOverdue(m.checks))
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - bannerHeight - footerHeight
		m.tabs.Width = msg.Width
	case snapshotMsg:
		// the lanes are read again below
		cmd = waitForSnapshot(m.snapshots)
	case overdueMsg:
		// the first check ends loading
		m.store.SetLoading(false)
		if !slices.Equal(m.overdue, msg) {
			m.dismissed = false
		}
		m.overdue = msg
		cmd = waitForOverdue(m.checks)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.cancel()
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.refresh()
	return m, cmd
}

// handle keys differently based on the current mode
func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeCreate, modeRename:
		if msg.Type != tea.KeyEnter {
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
		title := m.input.Value()
		if title == "" {
			m.mode = modeNormal
			return nil
		}
		if m.mode == modeRename {
			if t := m.atCursor(); t != nil {
				m.store.Update(t.ID, task.Fields{Title: &title})
			}
			m.mode = modeNormal
			return nil
		}
		if m.tabs.Lane() == task.Ongoing {
			m.draft = &title
			m.editDue(nil)
			return nil
		}
		m.create(title, nil)
		m.mode = modeNormal
	case modeDue:
		if msg.Type != tea.KeyEnter {
			m.due, cmd = m.due.Update(msg)
			return cmd
		}
		m.submitDue()
	case modeSearch:
		if msg.Type == tea.KeyEnter {
			m.mode = modeNormal
			return nil
		}
		m.input, cmd = m.input.Update(msg)
		m.query = m.input.Value()
		m.cursors[m.tabs.Value()] = 0
	case modeConfirmClear:
		if msg.String() == "y" {
			m.store.DeleteAll()
			for i := range m.cursors {
				m.cursors[i] = 0
			}
		}
		m.mode = modeNormal
	case modeNormal:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "h", "left", "l", "right":
			m.tabs, cmd = m.tabs.Update(msg)
		case "j", "down":
			m.setCursor(m.cursor() + 1)
		case "k", "up":
			m.setCursor(m.cursor() - 1)
		case "g":
			m.setCursor(0)
		case "G":
			m.setCursor(len(m.visible()) - 1)
		case "H":
			m.move(-1)
		case "L":
			m.move(1)
		case "n":
			m.edit(modeCreate, "")
		case "e":
			if t := m.atCursor(); t != nil {
				m.edit(modeRename, t.Title)
			}
		case "d":
			if t := m.atCursor(); t != nil {
				m.editDue(t.DueDate)
			}
		case "p":
			if t := m.atCursor(); t != nil {
				p := nextPriority(t.Priority)
				m.store.Update(t.ID, task.Fields{Priority: &p})
			}
		case "y":
			if t := m.atCursor(); t != nil {
				m.store.Duplicate(t.ID)
			}
		case "x", tea.KeyDelete.String():
			if t := m.atCursor(); t != nil {
				m.store.Delete(t.ID)
			}
		case "X":
			if len(m.store.Tasks()) > 0 {
				m.mode = modeConfirmClear
			}
		case "/":
			m.edit(modeSearch, m.query)
		case "c":
			m.dismissed = true
		}
	}
	return cmd
}

func (m *app) cancel() {
	if m.mode == modeSearch || (m.mode == modeNormal && m.query != "") {
		m.query = ""
	}
	m.draft = nil
	m.moving = ""
	m.mode = modeNormal
}

func (m *app) edit(mode mode, value string) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.SetCursor(len(value))
}

func (m *app) editDue(current *time.Time) {
	m.mode = modeDue
	m.due = dateinput.NewModel(m.now)
	m.due.SetValue(current)
}

// submitDue finishes whatever asked for the due date: a new ongoing task, a
// move into the ongoing lane, or a plain due date edit
func (m *app) submitDue() {
	due := m.due.Value()
	switch {
	case m.draft != nil:
		if due == nil {
			// ongoing tasks need a due date
			return
		}
		m.create(*m.draft, due)
		m.draft = nil
	case m.moving != "":
		if due == nil {
			return
		}
		m.store.Update(m.moving, task.Fields{DueDate: due})
		m.store.Move(m.moving, task.Ongoing)
		m.moving = ""
	default:
		t := m.atCursor()
		switch {
		case t == nil:
		case m.due.Empty():
			m.store.Update(t.ID, task.Fields{ClearDueDate: true})
		case due != nil:
			m.store.Update(t.ID, task.Fields{DueDate: due})
		default:
			return
		}
	}
	m.mode = modeNormal
}

func (m *app) create(title string, due *time.Time) {
	lane := m.tabs.Lane()
	d := task.Draft{
		Title:         title,
		Status:        lane,
		Priority:      task.Medium,
		AssigneeCount: 1,
		DueDate:       due,
	}
	now := m.now()
	switch lane {
	case task.Ongoing:
		d.MovedToOngoingAt = &now
	case task.Done:
		d.CompletedAt = &now
	}
	t := m.store.Create(d)
	m.store.RefreshOverdue(t.ID)
	m.setCursor(0)
}

// move sends the task under the cursor to the neighbouring lane
func (m *app) move(by int) {
	t := m.atCursor()
	to := m.tabs.Value() + by
	if t == nil || to < 0 || to >= len(task.Statuses) {
		return
	}
	status := task.Statuses[to]
	if status == task.Ongoing && t.DueDate == nil {
		m.moving = t.ID
		m.editDue(nil)
		return
	}
	m.store.Move(t.ID, status)
}

func nextPriority(p task.Priority) task.Priority {
	switch p {
	case task.Low:
		return task.Medium
	case task.Medium:
		return task.High
	}
	return task.Low
}

// refresh reloads the lanes from the store and keeps the cursor visible
func (m *app) refresh() {
	tasks := m.store.Search(m.query)
	m.lanes = map[task.Status][]task.Task{}
	for _, t := range tasks {
		m.lanes[t.Status] = append(m.lanes[t.Status], t)
	}
	m.tabs.SetCounts(m.store.Tasks())
	m.tabs.Info = m.tabs.Summary()
	m.setCursor(m.cursor())
	m.viewport.SetContent(m.viewLanes())
}

func (m app) visible() []task.Task {
	return m.lanes[m.tabs.Lane()]
}

func (m app) cursor() int {
	return m.cursors[m.tabs.Value()]
}

func (m *app) setCursor(value int) {
	size := len(m.visible())
	c := min(max(value, 0), max(size-1, 0))
	m.cursors[m.tabs.Value()] = c

	if m.viewport.Height <= 0 {
		return
	}
	// the first card scrolls the lane titles back in
	top := 0
	if c > 0 {
		top = laneTitleHeight + c*ui.CardHeight
	}
	bottom := laneTitleHeight + (c+1)*ui.CardHeight
	if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = bottom - m.viewport.Height
	}
	if top < m.viewport.YOffset {
		m.viewport.YOffset = top
	}
	m.viewport.YOffset = max(m.viewport.YOffset, 0)
}

func (m app) atCursor() *task.Task {
	tasks := m.visible()
	if m.cursor() >= len(tasks) {
		return nil
	}
	t := tasks[m.cursor()]
	return &t
}
