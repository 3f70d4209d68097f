package speechall

import "net/http"

// bearerAuth attaches the API key to every outgoing request.
type bearerAuth struct {
	next   http.RoundTripper
	apiKey string
}

func (a *bearerAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	next := a.next
	if next == nil {
		next = http.DefaultTransport
	}

	// RoundTrippers must not modify the caller's request.
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+a.apiKey)
	return next.RoundTrip(authed)
}
