// asksearch/submitter/transport.go
package submitter

import (
	httputils "asksearch/asksearch/utils/http"
	"asksearch/asksearch/utils/types"
	"context"
	"net/http"
	"strings"
)

const searchPath = "/api/search"

// Transport sends one query to the search proxy.
type Transport interface {
	Search(ctx context.Context, query string) (*types.SearchResponse, error)
}

type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport targets the proxy at baseURL. A nil client uses
// http.DefaultClient.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (t *HTTPTransport) Search(ctx context.Context, query string) (*types.SearchResponse, error) {
	var resp types.SearchResponse
	err := httputils.PostJSON(ctx, t.client, t.baseURL+searchPath, types.SearchRequest{Query: query}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
