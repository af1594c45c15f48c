package httpx

import (
	"net/http"

	"github.com/target/deptdash/internal/domain/model"
)

// Page names, matching files under templates/pages.
const (
	PageAuth       = "auth"
	PageDashboard  = "dashboard"
	PageDepartment = "department"
	PageError      = "error"
)

// PageData is the root value every page template receives.
type PageData struct {
	Page          string
	Title         string
	CSRFToken     string
	Authenticated bool
	Flash         *Flash

	Auth       *AuthView
	Dashboard  *DashboardView
	Department *model.Department
	Error      *ErrorView
}

// AuthView backs the login/register page.
type AuthView struct {
	Register bool
	Name     string
	Email    string
}

// DashboardView backs the department list.
type DashboardView struct {
	Departments model.DepartmentList
	// Total counts every department, before the search filter.
	Total int
	Query string
	// Name and Description echo the add form after a failed submission.
	Name        string
	Description string
}

// ErrorView backs the generic error page.
type ErrorView struct {
	Status  int
	Message string
}

func newPageData(r *http.Request, page, title string) PageData {
	return PageData{
		Page:      page,
		Title:     title,
		CSRFToken: CSRFToken(r),
	}
}
