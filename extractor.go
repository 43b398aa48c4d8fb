package unifiedauth

import (
	"net/http"

	"github.com/prepbettr/unifiedauth/core"
)

// TokenExtractor is a function that takes a request as input and returns
// either a token or an error. An error should only be returned if an
// attempt to specify a token was found, but the information was somehow
// incorrectly formed. In the case where a token is simply not present,
// this should not be treated as an error; an empty string is returned.
type TokenExtractor func(r *http.Request) (string, error)

// AuthHeaderTokenExtractor extracts a bearer token from the Authorization
// header. Header name lookup is case-insensitive (net/http canonicalizes
// header keys), so both "authorization" and "Authorization" are covered.
func AuthHeaderTokenExtractor(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}
	return core.ExtractBearerToken(header), nil
}

// CookieTokenExtractor builds a TokenExtractor reading the named cookie.
func CookieTokenExtractor(cookieName string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if err == http.ErrNoCookie || cookie == nil {
			return "", nil
		}
		return cookie.Value, nil
	}
}

// MultiTokenExtractor runs multiple extractors and takes the first
// non-empty token. An extractor error is returned immediately.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(r *http.Request) (string, error) {
		for _, ex := range extractors {
			token, err := ex(r)
			if err != nil {
				return "", err
			}
			if token != "" {
				return token, nil
			}
		}
		return "", nil
	}
}
