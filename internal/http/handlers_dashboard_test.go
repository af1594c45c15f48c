package httpx

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/deptdash/internal/testutil"
)

func TestDashboard_WithoutTokenRedirectsToLogin(t *testing.T) {
	h := newDashboardHarness(t)

	p := h.get("/dashboard")
	require.Equal(t, http.StatusSeeOther, p.Status)
	assert.Equal(t, "/auth", p.Location)
	assert.Equal(t, 0, h.backend.TotalCalls())

	p = h.get("/auth")
	assert.Contains(t, p.Body, "No token found. Please login first.")
}

func TestDashboard_ListsDepartmentsWithCount(t *testing.T) {
	h := newDashboardHarness(t)
	h.backend.Seed("Engineering", "Builds things")
	h.backend.Seed("Finance", "Counts money")
	h.login()

	p := h.get("/dashboard")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, 2, countDepartments(p.Body))
	assert.Contains(t, p.Body, `data-testid="department-count">2<`)
	assert.Contains(t, p.Body, "Engineering")
	assert.Contains(t, p.Body, "Finance")
}

func TestDashboard_EmptyState(t *testing.T) {
	h := newDashboardHarness(t)
	h.login()

	p := h.get("/dashboard")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "No departments found")
	assert.Contains(t, p.Body, "Start by adding your first department")
}

func TestDashboard_SearchFiltersButKeepsTotal(t *testing.T) {
	h := newDashboardHarness(t)
	h.backend.Seed("Engineering", "Builds things")
	h.backend.Seed("Finance", "Counts money")
	h.login()

	p := h.get("/dashboard?q=money")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, 1, countDepartments(p.Body))
	assert.Contains(t, p.Body, `data-testid="department-count">2<`)

	p = h.get("/dashboard?q=legal")
	assert.Contains(t, p.Body, "Try adjusting your search query")
}

func TestDashboard_RejectedTokenIsDropped(t *testing.T) {
	h := newDashboardHarness(t)
	h.login()
	h.backend.Fail(testutil.FakeOpList, http.StatusUnauthorized, `{"Error":"Invalid token"}`)

	p := h.get("/dashboard")
	require.Equal(t, http.StatusSeeOther, p.Status)
	assert.Equal(t, "/auth", p.Location)
	assert.Equal(t, 0, h.tokens.Len())

	p = h.get("/auth")
	assert.Contains(t, p.Body, "Unauthorized. Please login again.")
}

func TestDashboard_ServerErrorShowsToast(t *testing.T) {
	h := newDashboardHarness(t)
	h.login()
	h.backend.Fail(testutil.FakeOpList, http.StatusServiceUnavailable, `{"message":"maintenance window"}`)

	p := h.get("/dashboard")
	assert.Equal(t, http.StatusBadGateway, p.Status)
	assert.Contains(t, p.Body, "maintenance window")
	assert.Equal(t, 1, h.tokens.Len())
}

func TestAddDepartment_RedirectsToDashboard(t *testing.T) {
	h := newDashboardHarness(t)
	h.login()

	p := h.post("/departments", url.Values{"name": {"Engineering"}, "description": {"Builds things"}})
	require.Equal(t, http.StatusSeeOther, p.Status)
	assert.Equal(t, "/dashboard", p.Location)
	assert.Equal(t, 1, h.backend.Calls(testutil.FakeOpAdd))

	p = h.get(p.Location)
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, MsgDepartmentAdded)
	assert.Equal(t, 1, countDepartments(p.Body))

	// Reloading the dashboard neither repeats the add nor the toast.
	p = h.get("/dashboard")
	assert.NotContains(t, p.Body, MsgDepartmentAdded)
	assert.Equal(t, 1, h.backend.Calls(testutil.FakeOpAdd))
	assert.Equal(t, 1, h.backend.DepartmentCount())
}

func TestAddDepartment_MissingFieldsKeepsInput(t *testing.T) {
	h := newDashboardHarness(t)
	h.login()

	p := h.post("/departments", url.Values{"name": {"Engineering"}, "description": {"  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, p.Status)
	assert.Contains(t, p.Body, "Please fill in all fields")
	assert.Contains(t, p.Body, `value="Engineering"`)
	assert.Equal(t, 0, h.backend.Calls(testutil.FakeOpAdd))
}

func TestDeleteDepartment(t *testing.T) {
	h := newDashboardHarness(t)
	id := h.backend.Seed("Engineering", "Builds things")
	h.backend.Seed("Finance", "Counts money")
	h.login()

	p := h.post("/departments/"+id+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, p.Status)
	assert.Equal(t, "/dashboard", p.Location)
	assert.Equal(t, 1, h.backend.DepartmentCount())

	p = h.get(p.Location)
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, MsgDepartmentDeleted)
	assert.Equal(t, 1, countDepartments(p.Body))
	assert.Equal(t, 1, h.backend.Calls(testutil.FakeOpDelete))
}

func TestDeleteDepartment_MissingShowsServerMessage(t *testing.T) {
	h := newDashboardHarness(t)
	h.backend.Seed("Engineering", "Builds things")
	h.login()

	p := h.post("/departments/999/delete", nil)
	assert.Equal(t, http.StatusBadGateway, p.Status)
	assert.Contains(t, p.Body, "Department not found")
	assert.Equal(t, 1, countDepartments(p.Body))
}

func TestViewDepartment(t *testing.T) {
	h := newDashboardHarness(t)
	id := h.backend.Seed("Engineering", "Builds things")
	h.login()

	p := h.get("/department/" + id)
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "<h1>Engineering</h1>")
	assert.Contains(t, p.Body, "Builds things")

	p = h.get("/department/999")
	assert.Equal(t, http.StatusBadGateway, p.Status)
	assert.Contains(t, p.Body, "Department not found")
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	h := newDashboardHarness(t)

	p := h.get("/nope")
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Contains(t, p.Body, "Page not found")
}
