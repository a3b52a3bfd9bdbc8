package http

import "net/http"

// apiKeyTransport injects an API key header into every outbound request.
// Google AI expects the key in x-goog-api-key rather than an Authorization
// bearer token.
type apiKeyTransport struct {
	header    string
	key       string
	transport http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.key != "" {
		reqCopy.Header.Set(t.header, t.key)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAPIKey adds the given key under the given header name on every request.
func WithAPIKey(header, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			header:    header,
			key:       key,
			transport: rt,
		}
	})
}
