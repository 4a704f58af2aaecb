package http

import (
	"net/http"
	"time"
)

const (
	voterCookieName  = "uid"
	voterTokenHeader = "X-Voter-Token"
	voterCookieTTL   = 365 * 24 * time.Hour
)

// VoterCookie carries the signed voter token between requests.
type VoterCookie struct {
	Domain string
	Secure bool
}

// Read returns the presented voter token. The cookie wins over the header.
func (c VoterCookie) Read(r *http.Request) string {
	if cookie, err := r.Cookie(voterCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(voterTokenHeader)
}

func (c VoterCookie) Write(w http.ResponseWriter, signed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     voterCookieName,
		Value:    signed,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(voterCookieTTL.Seconds()),
	})
}
