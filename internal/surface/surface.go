// Package surface holds the interaction state behind the comeback form:
// input text, intensity, the current results and the history list.
// It is driven from one goroutine; only Run may be called from elsewhere.
package surface

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/comeback-api/internal/history"
	"github.com/Conceptual-Machines/comeback-api/internal/logger"
	"github.com/Conceptual-Machines/comeback-api/internal/models"
	"github.com/Conceptual-Machines/comeback-api/internal/prompt"
)

var (
	ErrBlankInput     = errors.New("opponent text is blank")
	ErrBusy           = errors.New("a generation is already in progress")
	ErrNoSuchResponse = errors.New("no response at that position")
	ErrNoClipboard    = errors.New("clipboard not available")
	ErrGeneratorPanic = errors.New("generator panicked")
)

// State is the submission state of the surface
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Outcome is how the last submission ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// Generator produces responses for a request. The retry client never fails,
// so an empty or fallback list still counts as success.
type Generator interface {
	Generate(ctx context.Context, opponentText string, intensity int) []string
}

// Clipboard is the copy target for a response
type Clipboard interface {
	WriteAll(text string) error
}

// NoticeKind distinguishes transient notifications
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// Notice is a transient message for the user
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Notifier shows a notice
type Notifier func(Notice)

// Request is the input captured when a submission begins
type Request struct {
	OpponentText string
	Intensity    int
}

// RecentHistorySize is how many history entries are shown
const RecentHistorySize = 3

type Surface struct {
	generator Generator
	history   *history.Manager
	clipboard Clipboard
	notify    Notifier

	text      string
	intensity int
	responses []string
	state     State
	outcome   Outcome
	mounted   bool
}

type Option func(*Surface)

func WithClipboard(clipboard Clipboard) Option {
	return func(s *Surface) { s.clipboard = clipboard }
}

func WithNotifier(notify Notifier) Option {
	return func(s *Surface) { s.notify = notify }
}

func New(generator Generator, hist *history.Manager, opts ...Option) *Surface {
	s := &Surface{
		generator: generator,
		history:   hist,
		notify:    func(Notice) {},
		intensity: prompt.DefaultIntensity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount loads persisted history. Later calls do nothing.
func (s *Surface) Mount() error {
	if s.mounted {
		return nil
	}
	s.mounted = true
	return s.history.Load()
}

func (s *Surface) Text() string         { return s.text }
func (s *Surface) Intensity() int       { return s.intensity }
func (s *Surface) State() State         { return s.state }
func (s *Surface) LastOutcome() Outcome { return s.outcome }
func (s *Surface) Submitting() bool     { return s.state == StateSubmitting }
func (s *Surface) ToneLabel() string    { return prompt.ToneLabel(s.intensity) }
func (s *Surface) Responses() []string  { return append([]string(nil), s.responses...) }
func (s *Surface) HistoryLen() int      { return s.history.Len() }
func (s *Surface) CanSubmit() bool      { return !s.Submitting() && strings.TrimSpace(s.text) != "" }

// SetText replaces the input text; ignored while submitting
func (s *Surface) SetText(text string) {
	if s.Submitting() {
		return
	}
	s.text = text
}

// SetIntensity clamps to the 1-10 range; ignored while submitting
func (s *Surface) SetIntensity(intensity int) {
	if s.Submitting() {
		return
	}
	s.intensity = prompt.ClampIntensity(intensity)
}

// Begin validates the input and enters the submitting state.
// Previous results are cleared.
func (s *Surface) Begin() (Request, error) {
	if s.Submitting() {
		return Request{}, ErrBusy
	}
	if strings.TrimSpace(s.text) == "" {
		s.notify(Notice{
			Kind:    NoticeError,
			Title:   "Enter what they said",
			Message: "Type the other side's words before generating a comeback.",
		})
		return Request{}, ErrBlankInput
	}
	if err := s.Mount(); err != nil {
		logger.Warn("Failed to load history", logger.Fields{"error": err.Error()})
	}

	s.state = StateSubmitting
	s.responses = nil
	return Request{OpponentText: s.text, Intensity: s.intensity}, nil
}

// Run calls the generator for req. It touches no surface state and may run on another goroutine.
func (s *Surface) Run(ctx context.Context, req Request) (responses []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrGeneratorPanic, r)
		}
	}()
	return s.generator.Generate(ctx, req.OpponentText, req.Intensity), nil
}

// Finish ends a submission. On success the results are shown and a history entry is prepended;
// on failure a notice is shown and history is left alone. Either way the surface returns to idle.
func (s *Surface) Finish(req Request, responses []string, err error) {
	defer func() { s.state = StateIdle }()

	if err != nil {
		s.outcome = OutcomeFailure
		logger.Warn("Generation failed", logger.Fields{"error": err.Error()})
		s.notify(Notice{
			Kind:    NoticeError,
			Title:   "Generation failed",
			Message: "Could not generate responses, please try again later.",
		})
		return
	}

	s.outcome = OutcomeSuccess
	s.responses = append([]string(nil), responses...)
	if err := s.history.Add(models.HistoryEntry{
		Opponent:  req.OpponentText,
		Intensity: req.Intensity,
		Responses: s.responses,
	}); err != nil {
		logger.Warn("Failed to save history", logger.Fields{"error": err.Error()})
	}
}

// Submit runs a whole submission synchronously
func (s *Surface) Submit(ctx context.Context) error {
	req, err := s.Begin()
	if err != nil {
		return err
	}
	responses, err := s.Run(ctx, req)
	s.Finish(req, responses, err)
	return err
}

// SelectHistory restores input and results from history entry i without generating
func (s *Surface) SelectHistory(i int) error {
	if s.Submitting() {
		return ErrBusy
	}
	entry, err := s.history.Get(i)
	if err != nil {
		return err
	}
	s.text = entry.Opponent
	s.intensity = prompt.ClampIntensity(entry.Intensity)
	s.responses = append([]string(nil), entry.Responses...)
	return nil
}

// ClearResults drops the shown results so recent history is displayed again
func (s *Surface) ClearResults() {
	if s.Submitting() {
		return
	}
	s.responses = nil
}

// Copy writes response i to the clipboard
func (s *Surface) Copy(i int) error {
	if i < 0 || i >= len(s.responses) {
		return fmt.Errorf("%w: %d", ErrNoSuchResponse, i+1)
	}
	if s.clipboard == nil {
		return ErrNoClipboard
	}
	if err := s.clipboard.WriteAll(s.responses[i]); err != nil {
		s.notify(Notice{Kind: NoticeError, Title: "Copy failed", Message: err.Error()})
		return fmt.Errorf("copy response %d: %w", i+1, err)
	}
	s.notify(Notice{
		Kind:    NoticeInfo,
		Title:   "Copied",
		Message: fmt.Sprintf("Response %d copied to clipboard.", i+1),
	})
	return nil
}

// RecentHistory returns the entries to display. Nothing is shown while results
// are visible or a submission is running.
func (s *Surface) RecentHistory() []models.HistoryEntry {
	if !s.mounted || s.Submitting() || len(s.responses) > 0 {
		return nil
	}
	return s.history.Recent(RecentHistorySize)
}
