package httpx

import (
	"net/http"

	apperrors "github.com/target/deptdash/internal/errors"
)

// MsgTooManyAttempts is shown when credential submissions are throttled.
const MsgTooManyAttempts = "Too many attempts. Please wait a moment and try again."

// statusFor maps an application error onto the status of the page that reports it.
func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotAuthenticated, apperrors.ErrCodeUnauthorized, apperrors.ErrCodeAuthFailed:
		return http.StatusUnauthorized
	case apperrors.ErrCodeRegistrationFailed:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeServer, apperrors.ErrCodeNetwork:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text shown to the user. Internal failures never leak details.
func userMessage(err error) string {
	switch apperrors.GetCode(err) {
	case "", apperrors.ErrCodeInternal:
		return "Something went wrong. Please try again."
	default:
		return apperrors.Message(err)
	}
}

// renderError renders the error page, falling back to plain text if templates fail.
func (h *handlers) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := newPageData(r, PageError, http.StatusText(status))
	data.Error = &ErrorView{Status: status, Message: message}
	if err := h.renderer.Render(w, status, data); err != nil {
		http.Error(w, message, status)
	}
}
