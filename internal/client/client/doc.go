// Package client talks to the remote movie catalog (a TMDB-style REST API).
//
// Client is the transport-agnostic contract used by the services layer;
// HTTPClient is the concrete implementation. Three exchanges are supported:
// the top-rated list, a movie detail by id, and a free-text search.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind:
//
//	KindInvalidRequest  the request could not be built (bad base URL, id, page or query)
//	KindTransport       no HTTP response was obtained
//	KindServer          the status code was outside 2xx
//	KindNoData          the body was empty
//	KindDecoding        the body did not match the expected JSON shape
//
// Callers match with errors.Is against ErrInvalidRequest, ErrNoData,
// ErrDecoding, ErrServer, ErrTransport, or ServerError(code) for one status.
//
// HTTPClient is safe for concurrent use. A shared token-bucket limiter gates
// every exchange, and transport failures may be retried with backoff.
package client
