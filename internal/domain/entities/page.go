package entities

import "net/http"

// PageResponse is the raw answer of the listing endpoint for one page.
// The enumerator decodes the body and decides whether to continue.
type PageResponse struct {
	Page       int
	StatusCode int
	Header     http.Header
	Body       []byte
	NextPage   int // page advertised by the Link header (rel="next"), 0 when absent
}

// HasNext reports whether the platform signalled that more pages exist.
func (p *PageResponse) HasNext() bool {
	return p.NextPage > 0
}
