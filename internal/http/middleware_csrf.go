package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	// CSRFCookieName holds the double-submit token.
	CSRFCookieName = "deptdash_csrf"
	// CSRFFormField is the hidden form field every dashboard form carries.
	CSRFFormField = "csrf_token"
	// CSRFHeaderName lets scripted clients send the token as a header instead.
	CSRFHeaderName = "X-Csrf-Token"

	csrfTokenBytes = 32
	csrfMaxAge     = 12 * 60 * 60
)

// CSRFProtection guards state-changing requests with a double-submit cookie.
// Safe methods pass through and receive a token in their context for templates.
func CSRFProtection(cookies CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookieValue(r, CSRFCookieName)
			if token == "" {
				var err error
				if token, err = newCSRFToken(); err != nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					Domain:   cookies.Domain,
					Secure:   cookies.secure(r),
					SameSite: http.SameSiteStrictMode,
					MaxAge:   csrfMaxAge,
				})
			}

			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			if !isSafeMethod(r.Method) && !csrfTokenMatches(r, token) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// newCSRFToken fails closed: no token is better than a predictable one.
func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func csrfTokenMatches(r *http.Request, want string) bool {
	got := r.Header.Get(CSRFHeaderName)
	if got == "" {
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") && !strings.HasPrefix(ct, "multipart/form-data") {
			return false
		}
		if err := r.ParseForm(); err != nil {
			return false
		}
		got = r.PostFormValue(CSRFFormField)
	}
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

type csrfTokenKey struct{}

// CSRFToken returns the token for the current request, for embedding in forms.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
