package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/wayfinder/pkg/httputil"
	"github.com/matzehuels/wayfinder/pkg/search"
)

// HTTP reads adjacency from a remote graph service. Expansion issues
// GET {base}/nodes/{id}/links and expects a JSON array of links, the same
// shape the serve command produces.
type HTTP struct {
	base   string
	client *httputil.Client
}

// NewHTTP creates a source against a base URL like "http://localhost:8080".
// A nil client gets a default with a 10 second timeout.
func NewHTTP(base string, client *httputil.Client) *HTTP {
	if client == nil {
		client = httputil.NewClient(10 * time.Second)
	}
	return &HTTP{base: strings.TrimRight(base, "/"), client: client}
}

// Expand fetches the outgoing links of node from the remote service.
func (s *HTTP) Expand(ctx context.Context, node string) ([]search.Link[string], error) {
	endpoint := fmt.Sprintf("%s/nodes/%s/links", s.base, url.PathEscape(node))
	var links []search.Link[string]
	if err := s.client.GetJSON(ctx, endpoint, &links); err != nil {
		return nil, fmt.Errorf("http: links of %s: %w", node, err)
	}
	return links, nil
}

var _ search.Expander[string] = (*HTTP)(nil)
