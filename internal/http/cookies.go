package httpx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// ProfileCookieName identifies the browser; the server keeps one token per profile.
	ProfileCookieName = "deptdash_profile"
	// FlashCookieName carries a one-shot toast across a redirect.
	FlashCookieName = "deptdash_flash"

	profileMaxAge = 365 * 24 * 60 * 60
	flashMaxAge   = 60
)

// CookieConfig holds the attributes shared by every cookie the dashboard sets.
type CookieConfig struct {
	Domain string
	Secure bool
}

// secure also honours TLS terminated by a proxy in front of the dashboard.
func (c CookieConfig) secure(r *http.Request) bool {
	return c.Secure || r.TLS != nil || isForwardedHTTPS(r)
}

func isForwardedHTTPS(r *http.Request) bool {
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

type profileKey struct{}

// Profile assigns every browser a random profile id. The id is the key under which
// the browser's token is kept, so two browsers never share a session.
func Profile(cookies CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(cookieValue(r, ProfileCookieName))
			if err != nil {
				id = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     ProfileCookieName,
					Value:    id.String(),
					Path:     "/",
					Domain:   cookies.Domain,
					HttpOnly: true,
					Secure:   cookies.secure(r),
					SameSite: http.SameSiteLaxMode,
					MaxAge:   profileMaxAge,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), profileKey{}, id.String())))
		})
	}
}

// ProfileFromContext returns the profile id assigned by the Profile middleware.
func ProfileFromContext(ctx context.Context) string {
	id, _ := ctx.Value(profileKey{}).(string)
	return id
}

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a toast message shown once on the next rendered page.
type Flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

func setFlash(w http.ResponseWriter, r *http.Request, cookies CookieConfig, f Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Domain:   cookies.Domain,
		HttpOnly: true,
		Secure:   cookies.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   flashMaxAge,
	})
}

// popFlash returns and clears the pending flash, if any.
func popFlash(w http.ResponseWriter, r *http.Request, cookies CookieConfig) *Flash {
	value := cookieValue(r, FlashCookieName)
	if value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cookies.Domain,
		HttpOnly: true,
		Secure:   cookies.secure(r),
		MaxAge:   -1,
	})

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	if f.Kind != FlashSuccess {
		f.Kind = FlashError
	}
	return &f
}
