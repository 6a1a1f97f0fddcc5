// internal/tui/app.go
//
// The profile editor TUI. It follows The Elm Architecture the same way the
// rest of bubbletea does: an immutable-ish model, messages produced by
// asynchronous work, an Update that folds messages into new state, and a
// View that renders whatever state holds right now.
//
// Every field of the profile is one lifecycle.Value. The Update function is
// the only place a field changes, and it always changes through one of the
// four named lifecycle transitions — there is no generic "set state".

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/kingrea/remotedata/internal/store"
	"github.com/kingrea/remotedata/lifecycle"
)

// Backend is the asynchronous record source the editor talks to. The real
// implementation is *store.Store; tests inject stubs.
type Backend interface {
	Load(ctx context.Context) (store.Record, error)
	Save(ctx context.Context, rec store.Record) error
}

// field identifies one editable profile field.
type field int

const (
	fieldName field = iota
	fieldEmail
	fieldBio
	fieldCount
)

func (f field) label() string {
	switch f {
	case fieldName:
		return "Name"
	case fieldEmail:
		return "Email"
	case fieldBio:
		return "Bio"
	}
	return "?"
}

// fieldState is what the lifecycle library calls Value[T, E] for our T and E.
type fieldState = lifecycle.Value[string, error]

// Messages produced by backend commands.
type loadedMsg struct {
	rec   store.Record
	token string
}

type loadEmptyMsg struct {
	token string
}

type loadFailedMsg struct {
	err   error
	token string
}

type savedMsg struct {
	rec   store.Record
	token string
}

type saveFailedMsg struct {
	err   error
	token string
}

type fileChangedMsg struct{}

// validationError marks a locally caught problem with a field value.
type validationError struct {
	field  field
	detail string
}

func (e validationError) Error() string {
	return fmt.Sprintf("%s: %s", strings.ToLower(e.field.label()), e.detail)
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithBackend overrides the record backend.
func WithBackend(b Backend) AppOption {
	return func(a *App) {
		if b != nil {
			a.backend = b
		}
	}
}

// WithWatchEvents wires an external-change channel, normally the store
// watcher's.
func WithWatchEvents(events <-chan struct{}) AppOption {
	return func(a *App) {
		a.watch = events
	}
}

// WithLogger sets the session logger.
func WithLogger(log zerolog.Logger) AppOption {
	return func(a *App) {
		a.log = log
	}
}

// App is the bubbletea model. It holds one lifecycle value per profile field
// plus the editing widgets around them.
type App struct {
	backend Backend
	log     zerolog.Logger
	watch   <-chan struct{}

	fields [fieldCount]fieldState
	focus  field

	editing bool
	input   textinput.Model
	spin    spinner.Model

	// expectSelfChange suppresses the watcher event caused by our own save.
	expectSelfChange bool

	statusMsg string
	width     int
	height    int
	quitting  bool
}

// NewApp builds the editor around a backend.
func NewApp(backend Backend, opts ...AppOption) *App {
	input := textinput.New()
	input.CharLimit = 256
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	a := &App{
		backend: backend,
		log:     zerolog.Nop(),
		input:   input,
		spin:    spin,
	}
	for i := range a.fields {
		a.fields[i] = lifecycle.Uninitialized[string, error]{}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init kicks off the first load and the background subscriptions.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spin.Tick, a.startLoad()}
	if a.watch != nil {
		cmds = append(cmds, a.waitForChange())
	}
	return tea.Batch(cmds...)
}

// startLoad transitions every field to Loading and returns the command that
// performs the backend load under the minted operation token.
func (a *App) startLoad() tea.Cmd {
	token := store.NewOpToken()
	for i := range a.fields {
		a.transition(field(i), lifecycle.ToLoading(a.fields[i], token), "load started")
	}
	backend := a.backend
	return func() tea.Msg {
		rec, err := backend.Load(context.Background())
		switch {
		case errors.Is(err, store.ErrNotFound):
			return loadEmptyMsg{token: token}
		case err != nil:
			return loadFailedMsg{err: err, token: token}
		case rec.IsZero():
			return loadEmptyMsg{token: token}
		}
		return loadedMsg{rec: rec, token: token}
	}
}

// startSave transitions every field to Updating and returns the save command.
// It refuses when any field has no usable value to send.
func (a *App) startSave() tea.Cmd {
	rec, ok := a.currentRecord()
	if !ok {
		a.statusMsg = "nothing to save yet"
		return nil
	}
	token := store.NewOpToken()
	values := [fieldCount]string{rec.Name, rec.Email, rec.Bio}
	for i := range a.fields {
		a.transition(field(i), lifecycle.ToUpdating(a.fields[i], values[i], token), "save started")
	}
	a.expectSelfChange = true
	backend := a.backend
	return func() tea.Msg {
		if err := backend.Save(context.Background(), rec); err != nil {
			return saveFailedMsg{err: err, token: token}
		}
		return savedMsg{rec: rec, token: token}
	}
}

// currentRecord assembles a record from whatever each field can show. The
// collapse goes through lifecycle.ValueOrNil, so in-progress and stale
// values count; only fields with nothing at all block the save.
func (a *App) currentRecord() (store.Record, bool) {
	var values [fieldCount]string
	for i := range a.fields {
		v := lifecycle.ValueOrNil(a.fields[i])
		if v == nil {
			return store.Record{}, false
		}
		values[i] = *v
	}
	return store.Record{Name: values[fieldName], Email: values[fieldEmail], Bio: values[fieldBio]}, true
}

// waitForChange blocks on the watcher channel and resubscribes after each
// delivery.
func (a *App) waitForChange() tea.Cmd {
	events := a.watch
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// transition replaces one field's state and logs the edge.
func (a *App) transition(f field, next fieldState, why string) {
	a.fields[f] = next
	a.log.Info().
		Str("field", strings.ToLower(f.label())).
		Str("state", stateName(next)).
		Msg(why)
}

// Update is the single place field state changes.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(m)
		return a, cmd

	case loadedMsg:
		a.applyLoaded(m.rec)
		a.statusMsg = "loaded"
		return a, nil

	case loadEmptyMsg:
		for i := range a.fields {
			a.transition(field(i), lifecycle.Empty[string, error]{}, "load found empty record")
		}
		a.statusMsg = "no profile yet — press e to start one"
		return a, nil

	case loadFailedMsg:
		for i := range a.fields {
			a.transition(field(i), lifecycle.ToFailure(a.fields[i], m.err), "load failed")
		}
		a.statusMsg = "load failed"
		return a, nil

	case savedMsg:
		a.applyLoaded(m.rec)
		a.statusMsg = "saved"
		return a, nil

	case saveFailedMsg:
		for i := range a.fields {
			a.transition(field(i), lifecycle.ToFailure(a.fields[i], m.err), "save failed")
		}
		a.expectSelfChange = false
		a.statusMsg = "save failed — fix and press s to retry"
		return a, nil

	case fileChangedMsg:
		cmd := a.handleFileChanged()
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(m)
	}

	if a.editing {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// applyLoaded confirms every field from a backend record.
func (a *App) applyLoaded(rec store.Record) {
	values := [fieldCount]string{rec.Name, rec.Email, rec.Bio}
	for i := range a.fields {
		a.transition(field(i), lifecycle.Ready[string, error]{Value: values[i]}, "value confirmed")
	}
}

// handleFileChanged marks fields as cache-sourced when the file changed
// under us, skipping the event caused by our own save rename.
func (a *App) handleFileChanged() tea.Cmd {
	resubscribe := a.waitForChange()
	if a.expectSelfChange {
		a.expectSelfChange = false
		return resubscribe
	}
	for i := range a.fields {
		if v := lifecycle.ValueOrNil(a.fields[i]); v != nil {
			a.transition(field(i), lifecycle.ToDirty(a.fields[i], *v, lifecycle.WithReason(lifecycle.Cached)), "file changed on disk")
		}
	}
	a.statusMsg = "profile changed on disk — press r to reload"
	return resubscribe
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		return a.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		a.quitting = true
		return a, tea.Quit

	case "up", "k":
		if a.focus > 0 {
			a.focus--
		}
		return a, nil

	case "down", "j", "tab":
		if a.focus < fieldCount-1 {
			a.focus++
		}
		return a, nil

	case "e", "enter":
		a.beginEdit()
		return a, textinput.Blink

	case "v":
		a.validateFocused()
		return a, nil

	case "s":
		return a, a.startSave()

	case "r":
		return a, a.startLoad()
	}
	return a, nil
}

func (a *App) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.editing = false
		a.input.Blur()
		return a, nil

	case "enter":
		a.editing = false
		a.input.Blur()
		a.transition(a.focus,
			lifecycle.ToDirty(a.fields[a.focus], a.input.Value(), lifecycle.WithEditedAt(time.Now())),
			"field edited")
		a.statusMsg = "edited — press v to validate, s to save"
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// beginEdit opens the text input prefilled with the best value the focused
// field can still show.
func (a *App) beginEdit() {
	current := ""
	if v := lifecycle.ValueOrNil(a.fields[a.focus]); v != nil {
		current = *v
	}
	a.input.SetValue(current)
	a.input.CursorEnd()
	a.input.Focus()
	a.editing = true
}

// validateFocused checks the focused field locally and records the outcome
// as either a Validated dirty value or a Failure.
func (a *App) validateFocused() {
	v := lifecycle.ValueOrNil(a.fields[a.focus])
	if v == nil {
		a.statusMsg = "nothing to validate"
		return
	}
	if err := checkField(a.focus, *v); err != nil {
		a.transition(a.focus, lifecycle.ToFailure(a.fields[a.focus], err), "validation failed")
		a.statusMsg = "validation failed"
		return
	}
	a.transition(a.focus,
		lifecycle.ToDirty(a.fields[a.focus], *v, lifecycle.WithReason(lifecycle.Validated)),
		"validation passed")
	a.statusMsg = "validated — press s to save"
}

// checkField applies the editor's local rules. Anything heavier belongs in
// the backend, not here.
func checkField(f field, value string) error {
	trimmed := strings.TrimSpace(value)
	switch f {
	case fieldName:
		if trimmed == "" {
			return validationError{field: f, detail: "must not be empty"}
		}
	case fieldEmail:
		if !strings.Contains(trimmed, "@") {
			return validationError{field: f, detail: "must contain @"}
		}
	}
	return nil
}

// stateName names a lifecycle variant for logs and labels.
func stateName(v fieldState) string {
	switch v.(type) {
	case lifecycle.Uninitialized[string, error]:
		return "uninitialized"
	case lifecycle.Loading[string, error]:
		return "loading"
	case lifecycle.Empty[string, error]:
		return "empty"
	case lifecycle.Ready[string, error]:
		return "ready"
	case lifecycle.Dirty[string, error]:
		return "dirty"
	case lifecycle.Updating[string, error]:
		return "updating"
	case lifecycle.Failure[string, error]:
		return "failure"
	}
	return "unknown"
}
