// asksearch/controllers/search.go
package controllers

import (
	"asksearch/asksearch/configs"
	"asksearch/asksearch/services/answer"
	"asksearch/asksearch/services/llm"
	"asksearch/asksearch/utils/logging"
	"asksearch/asksearch/utils/metrics"
	"asksearch/asksearch/utils/types"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConfiguration ErrorKind = "configuration"
	KindUpstream      ErrorKind = "upstream"
	KindUpstreamEmpty ErrorKind = "upstream_empty"
)

// SearchError is the only error type Search returns. Status is the HTTP
// status the route should answer with.
type SearchError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

const (
	msgEmptyQuery    = "Query cannot be empty"
	msgMissingAPIKey = "API key not configured. Please set DEEPSEEK_API_KEY in environment variables."
)

// SearchController answers one query per call; it keeps no state between requests.
type SearchController struct {
	llm    llm.Completer
	cfg    *configs.SearchConfig
	apiKey func() string
}

func NewSearchController(completer llm.Completer, cfg *configs.SearchConfig, apiKey func() string) *SearchController {
	return &SearchController{
		llm:    completer,
		cfg:    cfg,
		apiKey: apiKey,
	}
}

func (c *SearchController) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	ctx = logging.WithTraceID(ctx, uuid.New().String())
	defer logging.LogDuration(ctx, "search_controller_search")()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		metrics.RecordSearch(ctx, metrics.OutcomeInvalid)
		return nil, &SearchError{Kind: KindValidation, Status: http.StatusBadRequest, Message: msgEmptyQuery}
	}

	apiKey := c.apiKey()
	if apiKey == "" {
		logging.ErrorLogger.Error("search rejected: missing API key",
			zap.String("trace_id", logging.TraceID(ctx)))
		metrics.RecordSearch(ctx, metrics.OutcomeMisconfigured)
		return nil, &SearchError{Kind: KindConfiguration, Status: http.StatusInternalServerError, Message: msgMissingAPIKey}
	}

	chatReq := llm.UserPrompt(c.cfg.Model, c.cfg.Temperature, c.cfg.MaxTokens, answer.BuildPrompt(query))

	start := time.Now()
	content, err := c.llm.Complete(ctx, apiKey, chatReq)
	metrics.RecordUpstream(ctx, time.Since(start), err != nil)
	if err != nil {
		return nil, c.upstreamFailure(ctx, err)
	}

	resp, path := answer.Normalize(ctx, content)
	metrics.RecordParse(ctx, string(path))
	metrics.RecordSearch(ctx, metrics.OutcomeOK)

	logging.AppLogger.Info("search answered",
		zap.String("trace_id", logging.TraceID(ctx)),
		zap.String("parse_path", string(path)),
		zap.Int("follow_ups", len(resp.PeopleAlsoAsk)),
	)
	return &resp, nil
}

func (c *SearchController) upstreamFailure(ctx context.Context, err error) error {
	if errors.Is(err, llm.ErrEmptyCompletion) {
		metrics.RecordSearch(ctx, metrics.OutcomeUpstreamEmpty)
		return &SearchError{Kind: KindUpstreamEmpty, Status: http.StatusBadGateway, Message: err.Error(), Err: err}
	}

	logging.ErrorLogger.Error("search upstream error",
		zap.Error(err),
		zap.String("trace_id", logging.TraceID(ctx)),
	)
	metrics.RecordSearch(ctx, metrics.OutcomeUpstreamError)

	msg := "An error occurred while processing your search request."
	var upErr *llm.UpstreamError
	if errors.As(err, &upErr) {
		msg = upErr.Error()
	}
	return &SearchError{Kind: KindUpstream, Status: http.StatusBadGateway, Message: msg, Err: err}
}
