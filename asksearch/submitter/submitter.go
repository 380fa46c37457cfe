// asksearch/submitter/submitter.go
package submitter

import (
	"asksearch/asksearch/utils/logging"
	"asksearch/asksearch/utils/types"
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateError   State = "error"
	StateSuccess State = "success"
)

// DefaultErrorMessage is shown when a failed request carries no message.
const DefaultErrorMessage = "Failed to get search results. Please try again."

var (
	ErrEmptyQuery     = errors.New("query is empty")
	ErrRequestPending = errors.New("a search request is already pending")
	ErrNoSuchFollowUp = errors.New("no such follow-up question")
)

// Snapshot is a copy of the submitter state, safe to read without locking.
type Snapshot struct {
	State    State
	Input    string
	Results  *types.SearchResponse
	Error    string
	Expanded []bool
}

// Submitter drives at most one search request at a time and holds what a
// front-end needs to render: the input, the outcome and per-item expansion.
type Submitter struct {
	mu        sync.Mutex
	transport Transport
	input     string
	state     State
	results   *types.SearchResponse
	errMsg    string
	expanded  map[int]bool
}

func New(transport Transport) *Submitter {
	return &Submitter{
		transport: transport,
		state:     StateIdle,
		expanded:  map[int]bool{},
	}
}

func (s *Submitter) SetInput(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = input
}

func (s *Submitter) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// CanSubmit reports whether Submit would issue a request right now.
func (s *Submitter) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StatePending && strings.TrimSpace(s.input) != ""
}

// Submit sends the trimmed input. It returns ErrEmptyQuery or
// ErrRequestPending without touching the transport; otherwise it blocks
// until the request resolves and returns the transport error, if any.
func (s *Submitter) Submit(ctx context.Context) error {
	s.mu.Lock()
	query := strings.TrimSpace(s.input)
	if query == "" {
		s.mu.Unlock()
		return ErrEmptyQuery
	}
	if s.state == StatePending {
		s.mu.Unlock()
		return ErrRequestPending
	}
	s.state = StatePending
	s.mu.Unlock()

	resp, err := s.transport.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		logging.ErrorLogger.Error("search request failed", zap.String("query", query), zap.Error(err))
		s.results = nil
		s.expanded = map[int]bool{}
		s.errMsg = err.Error()
		if strings.TrimSpace(s.errMsg) == "" {
			s.errMsg = DefaultErrorMessage
		}
		s.state = StateError
		return err
	}

	s.results = resp
	s.errMsg = ""
	s.expanded = map[int]bool{}
	s.state = StateSuccess
	return nil
}

// Retry re-submits whatever is currently in the input.
func (s *Submitter) Retry(ctx context.Context) error {
	return s.Submit(ctx)
}

// SelectFollowUp copies follow-up i's question into the input. It never
// submits.
func (s *Submitter) SelectFollowUp(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inRange(i) {
		return "", ErrNoSuchFollowUp
	}
	s.input = s.results.PeopleAlsoAsk[i].Question
	return s.input, nil
}

// ToggleExpanded flips follow-up i and returns its new expansion state.
func (s *Submitter) ToggleExpanded(i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inRange(i) {
		return false, ErrNoSuchFollowUp
	}
	s.expanded[i] = !s.expanded[i]
	return s.expanded[i], nil
}

func (s *Submitter) IsExpanded(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[i]
}

// DismissError hides the error panel. Results stay cleared.
func (s *Submitter) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	if s.state == StateError {
		s.state = StateIdle
	}
}

func (s *Submitter) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State: s.state,
		Input: s.input,
		Error: s.errMsg,
	}
	if s.results != nil {
		res := *s.results
		res.PeopleAlsoAsk = append([]types.AnswerItem(nil), s.results.PeopleAlsoAsk...)
		snap.Results = &res
		snap.Expanded = make([]bool, len(res.PeopleAlsoAsk))
		for i := range snap.Expanded {
			snap.Expanded[i] = s.expanded[i]
		}
	}
	return snap
}

func (s *Submitter) inRange(i int) bool {
	return s.results != nil && i >= 0 && i < len(s.results.PeopleAlsoAsk)
}
