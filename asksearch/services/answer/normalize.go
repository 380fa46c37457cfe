// Package answer turns raw model completions into a SearchResponse that is
// always structurally valid.
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"asksearch/asksearch/utils/jsonutils"
	"asksearch/asksearch/utils/logging"
	"asksearch/asksearch/utils/types"

	"go.uber.org/zap"
)

// Path reports how a response was produced.
type Path string

const (
	PathStructured Path = "structured"
	PathFallback   Path = "fallback"
)

var errNoObject = errors.New("no JSON object in completion")

// Normalize never fails: output that cannot be parsed is replaced by a plain
// text answer plus the filler follow-ups.
func Normalize(ctx context.Context, raw string) (types.SearchResponse, Path) {
	resp, err := parseStructured(raw)
	path := PathStructured
	if err != nil {
		logging.ErrorLogger.Error("Failed to parse AI response",
			zap.Error(err),
			zap.Int("raw_len", len(raw)),
			zap.String("trace_id", logging.TraceID(ctx)),
		)
		path = PathFallback
		resp = types.SearchResponse{
			DirectAnswer:  PlainText(raw),
			PeopleAlsoAsk: FillerSet(),
		}
	}

	resp.DirectAnswer = CleanDirectAnswer(resp.DirectAnswer)
	if resp.DirectAnswer == "" {
		resp.DirectAnswer = CleanDirectAnswer(PlainText(raw))
	}
	if resp.DirectAnswer == "" {
		resp.DirectAnswer = strings.TrimSpace(raw)
	}
	if resp.PeopleAlsoAsk == nil {
		resp.PeopleAlsoAsk = FillerSet()
	}
	return resp, path
}

type responseProbe struct {
	DirectAnswer  json.RawMessage `json:"direct_answer"`
	PeopleAlsoAsk json.RawMessage `json:"people_also_ask"`
}

type itemProbe struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// parseStructured accepts only the object schema: a string direct_answer and
// an array of {question, answer} string pairs.
func parseStructured(raw string) (types.SearchResponse, error) {
	repaired, ok := jsonutils.Repair(raw)
	if !ok {
		return types.SearchResponse{}, errNoObject
	}

	var probe responseProbe
	if err := json.Unmarshal([]byte(repaired), &probe); err != nil {
		return types.SearchResponse{}, fmt.Errorf("decode completion: %w", err)
	}

	if !startsWith(probe.DirectAnswer, '"') {
		return types.SearchResponse{}, errors.New("direct_answer is not a string")
	}
	var direct string
	if err := json.Unmarshal(probe.DirectAnswer, &direct); err != nil {
		return types.SearchResponse{}, fmt.Errorf("decode direct_answer: %w", err)
	}

	if !startsWith(probe.PeopleAlsoAsk, '[') {
		return types.SearchResponse{}, errors.New("people_also_ask is not an array")
	}
	var rawItems []json.RawMessage
	if err := json.Unmarshal(probe.PeopleAlsoAsk, &rawItems); err != nil {
		return types.SearchResponse{}, fmt.Errorf("decode people_also_ask: %w", err)
	}

	items := make([]types.AnswerItem, 0, len(rawItems))
	for i, rawItem := range rawItems {
		if !startsWith(rawItem, '{') {
			return types.SearchResponse{}, fmt.Errorf("people_also_ask[%d] is not an object", i)
		}
		var item itemProbe
		if err := json.Unmarshal(rawItem, &item); err != nil {
			return types.SearchResponse{}, fmt.Errorf("decode people_also_ask[%d]: %w", i, err)
		}
		if item.Question == nil || item.Answer == nil {
			return types.SearchResponse{}, fmt.Errorf("people_also_ask[%d] needs question and answer", i)
		}
		items = append(items, types.AnswerItem{Question: *item.Question, Answer: *item.Answer})
	}

	return types.SearchResponse{DirectAnswer: direct, PeopleAlsoAsk: items}, nil
}

func startsWith(raw json.RawMessage, c byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == c
}
