package httpx

import (
	"net/http"
	"strings"

	"github.com/target/deptdash/internal/domain/model"
	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/service"
)

// Toast texts for department mutations.
const (
	MsgDepartmentAdded   = "Department added successfully!"
	MsgDepartmentDeleted = "Department deleted successfully!"
)

func (h *handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	view := &DashboardView{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	flash := popFlash(w, r, h.cookies)

	list, err := ws.Departments.List(r.Context())
	if err != nil {
		if h.sendToLogin(w, r, err) {
			return
		}
		h.renderDashboard(w, r, statusFor(err), view, &Flash{Kind: FlashError, Message: userMessage(err)})
		return
	}
	view.Departments = list
	h.renderDashboard(w, r, http.StatusOK, view, flash)
}

func (h *handlers) addDepartment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	ws := h.workspace(r)
	req := model.CreateDepartmentRequest{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}

	res, err := ws.Departments.Add(r.Context(), req)
	if err != nil {
		view := &DashboardView{}
		if res.Created.IsZero() {
			view.Name, view.Description = req.Name, req.Description
		}
		h.mutationFailed(w, r, ws, view, err)
		return
	}
	h.backToDashboard(w, r, MsgDepartmentAdded)
}

func (h *handlers) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	if _, err := ws.Departments.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.mutationFailed(w, r, ws, &DashboardView{}, err)
		return
	}
	h.backToDashboard(w, r, MsgDepartmentDeleted)
}

// backToDashboard ends a successful mutation with a redirect so a reload
// does not repeat the POST.
func (h *handlers) backToDashboard(w http.ResponseWriter, r *http.Request, msg string) {
	setFlash(w, r, h.cookies, Flash{Kind: FlashSuccess, Message: msg})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// mutationFailed reports a failed add or delete next to a freshly fetched list.
// If that fetch fails as well the list is left empty rather than patched locally.
func (h *handlers) mutationFailed(w http.ResponseWriter, r *http.Request, ws *service.Workspace, view *DashboardView, err error) {
	if h.sendToLogin(w, r, err) {
		return
	}
	if list, listErr := ws.Departments.List(r.Context()); listErr == nil {
		view.Departments = list
	}
	h.renderDashboard(w, r, statusFor(err), view, &Flash{Kind: FlashError, Message: userMessage(err)})
}

func (h *handlers) viewDepartment(w http.ResponseWriter, r *http.Request) {
	ws := h.workspace(r)
	dept, err := ws.Departments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if h.sendToLogin(w, r, err) {
			return
		}
		h.renderError(w, r, statusFor(err), userMessage(err))
		return
	}

	data := newPageData(r, PageDepartment, dept.Name)
	data.Authenticated = true
	data.Department = &dept
	if err := h.renderer.Render(w, http.StatusOK, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handlers) renderDashboard(w http.ResponseWriter, r *http.Request, status int, view *DashboardView, flash *Flash) {
	view.Total = view.Departments.Len()
	view.Departments = view.Departments.Filter(view.Query)

	data := newPageData(r, PageDashboard, "Departments")
	data.Authenticated = true
	data.Dashboard = view
	data.Flash = flash
	if err := h.renderer.Render(w, status, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// sendToLogin redirects to the login page when err means the session is gone.
// The service layer has already dropped a rejected token.
func (h *handlers) sendToLogin(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apperrors.RequiresReauth(err) {
		return false
	}
	setFlash(w, r, h.cookies, Flash{Kind: FlashError, Message: userMessage(err)})
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
	return true
}
