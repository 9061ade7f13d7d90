package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/bloom/internal/diary"
	"github.com/five82/bloom/internal/prefs"
)

// mode is what currently owns the keyboard.
type mode int

const (
	modeBrowse mode = iota
	modeQuestion
	modeTask
)

// Operation names carried by opDoneMsg.
const (
	opRefresh      = "refresh"
	opOpenQuestion = "open question"
	opSaveAnswer   = "save answer"
	opSaveTask     = "save task"
	opCloseSave    = "save on close"
	opAddTask      = "add task"
	opDeleteTask   = "delete task"
)

// Options configures the UI.
type Options struct {
	Context         context.Context
	Screen          *diary.Screen
	Notices         *NoticeQueue
	Logger          *logrus.Logger
	Tick            time.Duration
	ThemeName       string
	HideEmptyAnswer bool
	PrefsPath       string
	// Now overrides the clock used for toasts. Used by tests.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	screen    *diary.Screen
	notices   *NoticeQueue
	log       *logrus.Entry
	prefsPath string
	tick      time.Duration
	now       func() time.Time

	// UI state
	theme           Theme
	keys            keyMap
	mode            mode
	width           int
	height          int
	ready           bool
	showHelp        bool
	hideEmptyAnswer bool

	// Data state
	snapshot    diary.Snapshot
	lastUpdated time.Time
	selectedRow int

	// Widgets
	listViewport viewport.Model
	answerInput  textarea.Model
	titleInput   textinput.Model
	contentInput textarea.Model
	contentFocus bool
	spinner      spinner.Model

	// Overlays
	prompt   Modal
	toasts   toastQueue
	inFlight int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick == 0 {
		tick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	log := logrus.NewEntry(logrus.StandardLogger())
	if opts.Logger != nil {
		log = opts.Logger.WithField("component", "ui")
	}

	m := Model{
		ctx:             ctx,
		screen:          opts.Screen,
		notices:         opts.Notices,
		log:             log,
		prefsPath:       prefsPath,
		tick:            tick,
		now:             now,
		theme:           GetTheme(themeName),
		keys:            DefaultKeyMap(),
		hideEmptyAnswer: opts.HideEmptyAnswer,
		listViewport:    viewport.New(0, 0),
		answerInput:     newTextarea("Write your answer...", AnswerCharLimit),
		titleInput:      newTitleInput(),
		contentInput:    newTextarea("What did you get done?", ContentCharLimit),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if m.screen != nil {
		m.refreshSnapshot()
	}
	return m
}

func newTextarea(placeholder string, limit int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = limit
	ta.ShowLineNumbers = false
	ta.SetHeight(EditorHeight)
	return ta
}

func newTitleInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = TitleCharLimit
	ti.Prompt = ""
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if cmd := waitNoticeCmd(m.notices); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case noticeMsg:
		m.toasts.push(diary.Notice(msg), m.now())
		return m, waitNoticeCmd(m.notices)

	case opDoneMsg:
		return m.handleOpDone(msg)

	case decisionMsg:
		return m.resolveClose(msg.decision)

	case deleteDecisionMsg:
		if !msg.confirmed {
			m.screen.CancelDelete()
			m.refreshSnapshot()
			return m, nil
		}
		return m.startOp(opDeleteTask, m.screen.ConfirmDelete)

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.prompt != nil {
		return m.prompt.View(m.theme, m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey routes keyboard input to the overlay or mode that owns it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.prompt != nil {
		next, cmd, done := m.prompt.Update(msg, m.keys)
		if done {
			m.prompt = nil
		} else {
			m.prompt = next
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeQuestion:
		return m.handleQuestionKey(msg)
	case modeTask:
		return m.handleTaskKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleBrowseKey processes keys on the day view.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleEmptyCard):
		m.hideEmptyAnswer = !m.hideEmptyAnswer
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		return m.moveDate(-1)

	case key.Matches(msg, m.keys.NextDay):
		return m.moveDate(1)

	case key.Matches(msg, m.keys.Today):
		m.screen.GoToday()
		return m.reloadDay()

	case key.Matches(msg, m.keys.Refresh):
		return m.startOp(opRefresh, m.screen.Refresh)

	case key.Matches(msg, m.keys.Answer):
		return m.startOp(opOpenQuestion, m.screen.OpenQuestion)

	case key.Matches(msg, m.keys.OpenTask):
		return m.openSelectedTask()

	case key.Matches(msg, m.keys.AddTask):
		return m.startOp(opAddTask, m.screen.AddTask)

	case key.Matches(msg, m.keys.DeleteTask):
		return m.requestDelete()
	}

	m.handleListKey(msg)
	return m, nil
}

// handleListKey moves the selection. Movement is ignored while scrolling is
// suspended.
func (m *Model) handleListKey(msg tea.KeyMsg) {
	count := len(m.snapshot.Tasks)
	if count == 0 || !m.snapshot.ScrollEnabled {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	}
	m.updateListViewport()
}

func (m Model) moveDate(days int) (tea.Model, tea.Cmd) {
	m.screen.ShiftDate(days)
	return m.reloadDay()
}

func (m Model) reloadDay() (tea.Model, tea.Cmd) {
	m.selectedRow = 0
	m.refreshSnapshot()
	return m.startOp(opRefresh, m.screen.Refresh)
}

func (m Model) openSelectedTask() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if err := m.screen.OpenTask(task.ID); err != nil {
		m.log.WithError(err).WithField("item_id", task.ID).Debug("open task refused")
		return m, nil
	}

	fields := m.screen.Task().Fields()
	m.titleInput.CharLimit = fitLimit(TitleCharLimit, fields.Title)
	m.titleInput.SetValue(fields.Title)
	m.contentInput.CharLimit = fitLimit(ContentCharLimit, fields.Content)
	m.contentInput.SetValue(fields.Content)
	m.contentFocus = false
	m.contentInput.Blur()
	m.mode = modeTask
	m.refreshSnapshot()
	cmd := m.titleInput.Focus()
	return m, cmd
}

func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if err := m.screen.RequestDelete(task.ID); err != nil {
		m.log.WithError(err).WithField("item_id", task.ID).Debug("delete refused")
		return m, nil
	}
	m.prompt = newConfirmModal(task.Title)
	m.refreshSnapshot()
	return m, nil
}

func (m Model) selectedTask() (diary.Task, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Tasks) {
		return diary.Task{}, false
	}
	return m.snapshot.Tasks[m.selectedRow], true
}

// handleQuestionKey processes keys while the answer editor is open.
func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.requestClose(m.screen.QuestionModal)
	case key.Matches(msg, m.keys.Save):
		return m.startOp(opSaveAnswer, m.screen.QuestionModal.Save)
	}

	if !m.screen.Question().Editable() {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.answerInput.Value()
	m.answerInput, cmd = m.answerInput.Update(msg)
	if v := m.answerInput.Value(); v != before {
		m.screen.Question().SetAnswer(v)
	}
	m.refreshSnapshot()
	return m, cmd
}

// handleTaskKey processes keys while the task editor is open.
func (m Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.requestClose(m.screen.TaskModal)
	case key.Matches(msg, m.keys.Save):
		return m.startOp(opSaveTask, m.screen.TaskModal.Save)
	case key.Matches(msg, m.keys.NextField):
		cmd := m.switchTaskField()
		return m, cmd
	}

	// Widgets normalize what they are given, so only a changed value counts
	// as an edit.
	var cmd tea.Cmd
	if m.contentFocus {
		before := m.contentInput.Value()
		m.contentInput, cmd = m.contentInput.Update(msg)
		if v := m.contentInput.Value(); v != before {
			m.screen.Task().SetContent(v)
		}
	} else {
		before := m.titleInput.Value()
		m.titleInput, cmd = m.titleInput.Update(msg)
		if v := m.titleInput.Value(); v != before {
			m.screen.Task().SetTitle(v)
		}
	}
	return m, cmd
}

func (m *Model) switchTaskField() tea.Cmd {
	m.contentFocus = !m.contentFocus
	if m.contentFocus {
		m.titleInput.Blur()
		return m.contentInput.Focus()
	}
	m.contentInput.Blur()
	return m.titleInput.Focus()
}

// requestClose runs the guarded close for the open editor. A dirty editor
// raises the unsaved-changes prompt.
func (m Model) requestClose(modal *diary.ModalSession) (tea.Model, tea.Cmd) {
	switch modal.RequestClose() {
	case diary.ModalConfirming:
		m.prompt = newPromptModal(diary.UnsavedChangesPrompt)
	case diary.ModalClosed:
		m.leaveEditor()
	}
	return m, nil
}

// resolveClose applies the prompt decision. Save closes at once and runs the
// commit in the background; its failure arrives as a notice.
func (m Model) resolveClose(decision diary.Decision) (tea.Model, tea.Cmd) {
	modal := m.activeModal()
	if modal == nil {
		return m, nil
	}

	committer, err := modal.Dismiss(decision)
	if err != nil {
		m.log.WithError(err).WithField("decision", decision.String()).Debug("close decision ignored")
		return m, nil
	}

	if modal.Visible() {
		cmd := m.focusEditor()
		return m, cmd
	}

	m.leaveEditor()
	if committer == nil {
		return m, nil
	}
	return m.startOp(opCloseSave, committer.CommitEdit)
}

func (m Model) activeModal() *diary.ModalSession {
	switch m.mode {
	case modeQuestion:
		return m.screen.QuestionModal
	case modeTask:
		return m.screen.TaskModal
	}
	return nil
}

func (m *Model) focusEditor() tea.Cmd {
	switch m.mode {
	case modeQuestion:
		if m.screen.Question().Editable() {
			return m.answerInput.Focus()
		}
	case modeTask:
		if m.contentFocus {
			return m.contentInput.Focus()
		}
		return m.titleInput.Focus()
	}
	return nil
}

func (m *Model) enterQuestion() tea.Cmd {
	answer := m.screen.Question().Answer()
	m.answerInput.CharLimit = fitLimit(AnswerCharLimit, answer)
	m.answerInput.SetValue(answer)
	m.mode = modeQuestion
	m.refreshSnapshot()
	if !m.screen.Question().Editable() {
		m.answerInput.Blur()
		return nil
	}
	return m.answerInput.Focus()
}

func (m *Model) leaveEditor() {
	m.mode = modeBrowse
	m.answerInput.Blur()
	m.titleInput.Blur()
	m.contentInput.Blur()
	m.refreshSnapshot()
}

// startOp runs fn as a command and counts it as in flight until its
// opDoneMsg arrives.
func (m Model) startOp(op string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	m.inFlight++
	cmd := runOpCmd(m.ctx, op, fn)
	if m.inFlight == 1 {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	m.refreshSnapshot()

	err := msg.err
	switch {
	case err == nil:
	case errors.Is(err, diary.ErrStale), errors.Is(err, context.Canceled):
		return m, nil
	case errors.Is(err, diary.ErrNoQuestion):
		m.toasts.push(diary.Notice{
			Kind:   diary.NoticeInfo,
			Title:  "No question for this day.",
			Detail: m.snapshot.LocalDate,
		}, m.now())
		return m, nil
	default:
		// Remote failures have already been surfaced by the diary core.
		m.log.WithError(err).WithField("op", msg.op).Debug("operation failed")
		return m, nil
	}

	if msg.op == opOpenQuestion {
		cmd := m.enterQuestion()
		return m, cmd
	}
	return m, nil
}

// handleTick expires toasts and re-reads the screen.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.toasts.expire(m.now())
	if m.screen != nil {
		m.refreshSnapshot()
	}
	return m, tickCmd(m.tick)
}

func (m *Model) refreshSnapshot() {
	m.snapshot = m.screen.Snapshot()
	m.lastUpdated = m.now()
	m.selectedRow = clamp(m.selectedRow, 0, len(m.snapshot.Tasks)-1)
	m.updateListViewport()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	err := prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:           m.theme.Name,
		HideEmptyAnswer: m.hideEmptyAnswer,
	})
	if err != nil {
		m.log.WithError(err).Warn("save preferences failed")
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return m.theme.Styles().Background.
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

// renderContent renders the main area based on the current mode.
func (m Model) renderContent() string {
	switch m.mode {
	case modeQuestion:
		return m.renderQuestionEditor()
	case modeTask:
		return m.renderTaskEditor()
	default:
		return m.renderDay()
	}
}

// Messages

type tickMsg time.Time

// opDoneMsg reports the end of a remote operation started with startOp.
type opDoneMsg struct {
	op  string
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func runOpCmd(ctx context.Context, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
