package deps

import "net/http"

// NewHTTPClient returns the client used for upload requests. Transfers run
// until the transport reports completion or failure, so no client-level
// timeout is configured.
func NewHTTPClient() *http.Client {
	return &http.Client{}
}
