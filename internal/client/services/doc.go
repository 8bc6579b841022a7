// Package services holds the client's application logic: local login and
// logout (AuthService) and the movie sync policy (MovieService), which
// decides per request whether to answer from the cache, fetch from the
// remote catalog, or fall back to data already known.
package services
