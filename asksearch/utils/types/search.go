// asksearch/utils/types/search.go
package types

type SearchRequest struct {
	Query string `json:"query"`
}

// AnswerItem is one "people also ask" follow-up with its own short answer.
type AnswerItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SearchResponse struct {
	DirectAnswer  string       `json:"direct_answer"`
	PeopleAlsoAsk []AnswerItem `json:"people_also_ask"`
}

// ErrorResponse is the body of every non-200 reply from /api/search.
type ErrorResponse struct {
	Message string `json:"message"`
}
