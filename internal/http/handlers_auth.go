package httpx

import (
	"net/http"

	domainauth "github.com/target/deptdash/internal/domain/auth"
)

// MsgRegistered is flashed after a successful registration.
const MsgRegistered = "Registration successful! You can login now."

func (h *handlers) authPage(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	if ws.Auth.Authenticated(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	view := &AuthView{Register: r.URL.Query().Get("mode") == "register"}
	h.renderAuth(w, r, http.StatusOK, view, popFlash(w, r, h.cookies))
}

func (h *handlers) renderAuth(w http.ResponseWriter, r *http.Request, status int, view *AuthView, flash *Flash) {
	title := "Login"
	if view.Register {
		title = "Register"
	}
	data := newPageData(r, PageAuth, title)
	data.Auth = view
	data.Flash = flash
	if err := h.renderer.Render(w, status, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	creds := domainauth.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	ws := h.workspace(r)
	if err := ws.Auth.Login(r.Context(), creds); err != nil {
		h.logger.InfoContext(r.Context(), "login rejected", "profile", ws.Profile, "error", err)
		h.renderAuth(w, r, statusFor(err), &AuthView{Email: creds.Email}, &Flash{Kind: FlashError, Message: userMessage(err)})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	reg := domainauth.Registration{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	ws := h.workspace(r)
	if _, err := ws.Auth.Register(r.Context(), reg); err != nil {
		view := &AuthView{Register: true, Name: reg.Name, Email: reg.Email}
		h.renderAuth(w, r, statusFor(err), view, &Flash{Kind: FlashError, Message: userMessage(err)})
		return
	}
	setFlash(w, r, h.cookies, Flash{Kind: FlashSuccess, Message: MsgRegistered})
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.workspace(r).Auth.Logout(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "logout failed", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, userMessage(err))
		return
	}
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Profile       string `json:"profile"`
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	WriteJSON(w, http.StatusOK, statusResponse{
		Authenticated: ws.Auth.Authenticated(r.Context()),
		Profile:       ws.Profile,
	})
}

func (h *handlers) tooManyAttempts(w http.ResponseWriter, r *http.Request) {
	view := &AuthView{Register: r.URL.Path == "/auth/register"}
	h.renderAuth(w, r, http.StatusTooManyRequests, view, &Flash{Kind: FlashError, Message: MsgTooManyAttempts})
}
