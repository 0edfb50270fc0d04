package ports

import "net/http"

// HTTPClient is the subset of *http.Client the gateway transport needs.
// Tests substitute a stub that returns canned gateway documents.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
