package submitter

import (
	"asksearch/asksearch/utils/types"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	resp *types.SearchResponse
	err  error
}

// fakeTransport answers from a queue. When gate is set, each call blocks
// until a value is sent on it.
type fakeTransport struct {
	mu      sync.Mutex
	queries []string
	results []result
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeTransport) Search(ctx context.Context, query string) (*types.SearchResponse, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	var r result
	if len(f.results) > 0 {
		r, f.results = f.results[0], f.results[1:]
	}
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return r.resp, r.err
}

func (f *fakeTransport) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func sampleResponse(answer string, questions ...string) *types.SearchResponse {
	resp := &types.SearchResponse{DirectAnswer: answer}
	for _, q := range questions {
		resp.PeopleAlsoAsk = append(resp.PeopleAlsoAsk, types.AnswerItem{Question: q, Answer: "answer to " + q})
	}
	return resp
}

func TestSubmitEmptyInput(t *testing.T) {
	ft := &fakeTransport{}
	s := New(ft)

	for _, in := range []string{"", "   ", "\t\n"} {
		s.SetInput(in)
		assert.False(t, s.CanSubmit())
		assert.ErrorIs(t, s.Submit(context.Background()), ErrEmptyQuery)
	}
	assert.Empty(t, ft.Queries())
	assert.Equal(t, StateIdle, s.Snapshot().State)
}

func TestSubmitSendsTrimmedQuery(t *testing.T) {
	ft := &fakeTransport{results: []result{{resp: sampleResponse("Go is a language.", "Q1")}}}
	s := New(ft)
	s.SetInput("  what is go?  ")

	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, []string{"what is go?"}, ft.Queries())

	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Equal(t, "Go is a language.", snap.Results.DirectAnswer)
	assert.Empty(t, snap.Error)
}

func TestSubmitWhilePendingIsNoop(t *testing.T) {
	ft := &fakeTransport{
		results: []result{{resp: sampleResponse("first", "Q1")}},
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s := New(ft)
	s.SetInput("first query")

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()

	select {
	case <-ft.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("transport was never called")
	}
	assert.Equal(t, StatePending, s.Snapshot().State)
	assert.False(t, s.CanSubmit())

	s.SetInput("second query")
	assert.ErrorIs(t, s.Submit(context.Background()), ErrRequestPending)
	assert.ErrorIs(t, s.Retry(context.Background()), ErrRequestPending)

	close(ft.gate)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"first query"}, ft.Queries())
	assert.Equal(t, StateSuccess, s.Snapshot().State)
	assert.Equal(t, "second query", s.Input())
}

func TestFailureClearsResults(t *testing.T) {
	upErr := errors.New("upstream API error: 503 Service Unavailable")
	ft := &fakeTransport{results: []result{
		{resp: sampleResponse("ok", "Q1")},
		{err: upErr},
	}}
	s := New(ft)
	s.SetInput("query")

	require.NoError(t, s.Submit(context.Background()))
	require.NotNil(t, s.Snapshot().Results)

	assert.ErrorIs(t, s.Submit(context.Background()), upErr)
	snap := s.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Nil(t, snap.Results)
	assert.Nil(t, snap.Expanded)
	assert.Equal(t, upErr.Error(), snap.Error)
}

func TestFailureWithoutMessageUsesDefault(t *testing.T) {
	ft := &fakeTransport{results: []result{{err: errors.New("")}}}
	s := New(ft)
	s.SetInput("query")

	require.Error(t, s.Submit(context.Background()))
	assert.Equal(t, DefaultErrorMessage, s.Snapshot().Error)
}

func TestRetryAfterFailureClearsError(t *testing.T) {
	ft := &fakeTransport{results: []result{
		{err: errors.New("boom")},
		{resp: sampleResponse("recovered")},
	}}
	s := New(ft)
	s.SetInput("query")

	require.Error(t, s.Submit(context.Background()))
	require.NoError(t, s.Retry(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "recovered", snap.Results.DirectAnswer)
	assert.Equal(t, []string{"query", "query"}, ft.Queries())
}

func TestDismissError(t *testing.T) {
	ft := &fakeTransport{results: []result{{err: errors.New("boom")}}}
	s := New(ft)
	s.SetInput("query")
	require.Error(t, s.Submit(context.Background()))

	s.DismissError()
	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "query", snap.Input)
}

func TestSelectFollowUpOnlyPopulatesInput(t *testing.T) {
	ft := &fakeTransport{results: []result{{resp: sampleResponse("a", "How do maps work?", "What is a slice?")}}}
	s := New(ft)
	s.SetInput("go basics")
	require.NoError(t, s.Submit(context.Background()))

	q, err := s.SelectFollowUp(1)
	require.NoError(t, err)
	assert.Equal(t, "What is a slice?", q)
	assert.Equal(t, "What is a slice?", s.Input())
	assert.Len(t, ft.Queries(), 1)
	assert.Equal(t, StateSuccess, s.Snapshot().State)

	_, err = s.SelectFollowUp(2)
	assert.ErrorIs(t, err, ErrNoSuchFollowUp)
	_, err = s.SelectFollowUp(-1)
	assert.ErrorIs(t, err, ErrNoSuchFollowUp)
}

func TestSelectFollowUpWithoutResults(t *testing.T) {
	s := New(&fakeTransport{})
	_, err := s.SelectFollowUp(0)
	assert.ErrorIs(t, err, ErrNoSuchFollowUp)
	_, err = s.ToggleExpanded(0)
	assert.ErrorIs(t, err, ErrNoSuchFollowUp)
}

func TestToggleExpandedIsPerItem(t *testing.T) {
	ft := &fakeTransport{results: []result{{resp: sampleResponse("a", "Q0", "Q1", "Q2")}}}
	s := New(ft)
	s.SetInput("q")
	require.NoError(t, s.Submit(context.Background()))

	open, err := s.ToggleExpanded(1)
	require.NoError(t, err)
	assert.True(t, open)
	assert.Equal(t, []bool{false, true, false}, s.Snapshot().Expanded)

	_, err = s.ToggleExpanded(2)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, s.Snapshot().Expanded)

	open, err = s.ToggleExpanded(1)
	require.NoError(t, err)
	assert.False(t, open)
	assert.False(t, s.IsExpanded(1))
	assert.True(t, s.IsExpanded(2))
	assert.False(t, s.IsExpanded(0))
}

func TestNewSuccessResetsExpansion(t *testing.T) {
	ft := &fakeTransport{results: []result{
		{resp: sampleResponse("a", "Q0", "Q1")},
		{resp: sampleResponse("b", "R0", "R1")},
	}}
	s := New(ft)
	s.SetInput("q")
	require.NoError(t, s.Submit(context.Background()))
	_, _ = s.ToggleExpanded(0)
	_, _ = s.ToggleExpanded(1)
	assert.Equal(t, []bool{true, true}, s.Snapshot().Expanded)

	require.NoError(t, s.Submit(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, "b", snap.Results.DirectAnswer)
	assert.Equal(t, []bool{false, false}, snap.Expanded)
}

func TestSnapshotIsACopy(t *testing.T) {
	ft := &fakeTransport{results: []result{{resp: sampleResponse("a", "Q0")}}}
	s := New(ft)
	s.SetInput("q")
	require.NoError(t, s.Submit(context.Background()))

	snap := s.Snapshot()
	snap.Results.PeopleAlsoAsk[0].Question = "mutated"
	snap.Results.DirectAnswer = "mutated"

	again := s.Snapshot()
	assert.Equal(t, "Q0", again.Results.PeopleAlsoAsk[0].Question)
	assert.Equal(t, "a", again.Results.DirectAnswer)
}
