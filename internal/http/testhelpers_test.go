package httpx

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	deptdash "github.com/target/deptdash"
	"github.com/target/deptdash/internal/adapters/deptapi"
	"github.com/target/deptdash/internal/adapters/memory"
	"github.com/target/deptdash/internal/service"
	"github.com/target/deptdash/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTemplates(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(deptdash.TemplateFS, "frontend/templates")
	require.NoError(t, err)
	return sub
}

func testRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: testTemplates(t), Logger: discardLogger()})
	require.NoError(t, err)
	return r
}

type dashboardHarness struct {
	t       *testing.T
	backend *testutil.FakeBackend
	tokens  *memory.TokenStore
	server  *httptest.Server
	client  *http.Client
}

type harnessOption func(*RouterServices)

func newDashboardHarness(t *testing.T, opts ...harnessOption) *dashboardHarness {
	t.Helper()

	fake := testutil.NewFakeBackend(t)
	fake.AddUser("Ada", "ada@example.com", "secret")

	client, err := deptapi.NewClient(deptapi.Config{BaseURL: fake.URL(), Logger: discardLogger()})
	require.NoError(t, err)

	tokens := memory.NewTokenStore()
	svc := RouterServices{
		Workspaces: service.NewWorkspaces(service.WorkspacesOptions{
			Backend:       tokens,
			NewAPI:        client.Factory(),
			Observability: service.Observability{Logger: discardLogger()},
		}),
		Renderer: testRenderer(t),
		Logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(&svc)
	}

	srv := httptest.NewServer(NewRouter(svc))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &dashboardHarness{
		t:       t,
		backend: fake,
		tokens:  tokens,
		server:  srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type page struct {
	Status   int
	Body     string
	Location string
	Header   http.Header
}

func (h *dashboardHarness) get(path string) page {
	h.t.Helper()
	resp, err := h.client.Get(h.server.URL + path)
	require.NoError(h.t, err)
	return readPage(h.t, resp)
}

// post submits a form, attaching the CSRF token a browser would have embedded.
func (h *dashboardHarness) post(path string, form url.Values) page {
	h.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if h.cookie(CSRFCookieName) == "" {
		h.get("/auth")
	}
	form.Set(CSRFFormField, h.cookie(CSRFCookieName))

	resp, err := h.client.PostForm(h.server.URL+path, form)
	require.NoError(h.t, err)
	return readPage(h.t, resp)
}

func (h *dashboardHarness) cookie(name string) string {
	u, err := url.Parse(h.server.URL)
	require.NoError(h.t, err)
	for _, c := range h.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (h *dashboardHarness) login() {
	h.t.Helper()
	p := h.post("/auth/login", url.Values{"email": {"ada@example.com"}, "password": {"secret"}})
	require.Equal(h.t, http.StatusSeeOther, p.Status, p.Body)
}

func readPage(t *testing.T, resp *http.Response) page {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return page{
		Status:   resp.StatusCode,
		Body:     string(body),
		Location: resp.Header.Get("Location"),
		Header:   resp.Header,
	}
}

func countDepartments(body string) int {
	return strings.Count(body, `class="department" data-id=`)
}
