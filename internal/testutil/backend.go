package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// FakeBackendPrefix is the path prefix the fake department service is mounted under,
// mirroring deployments where the API lives below a sub-path.
const FakeBackendPrefix = "/emp"

// FakeBackend is an in-process stand-in for the remote department service.
// It keeps users, tokens and departments in memory and counts every request it sees.
type FakeBackend struct {
	Server *httptest.Server

	// WrapResponses wraps list/single payloads as {"data": ...}.
	WrapResponses bool
	// NestLoginToken returns the login token as {"data":{"token":...}}.
	NestLoginToken bool
	// MongoIDs renders department ids under "_id" instead of "id".
	MongoIDs bool
	// NumericIDs renders department ids as JSON numbers.
	NumericIDs bool
	// RawAuth expects the bare token in the Authorization header instead of "Bearer <token>".
	RawAuth bool
	// InvalidTokenStatus is the status returned for an unknown token (default 401).
	InvalidTokenStatus int

	mu          sync.Mutex
	users       map[string]fakeUser
	tokens      map[string]bool
	departments []fakeDepartment
	nextID      int
	failures    map[string]fakeFailure
	calls       map[string]int
	total       atomic.Int64
	lastAuth    string
}

type fakeUser struct {
	name     string
	password string
}

type fakeDepartment struct {
	id          int
	name        string
	description string
}

type fakeFailure struct {
	status int
	body   string
}

// Fake backend operation names used by Fail and Calls.
const (
	FakeOpLogin    = "login"
	FakeOpRegister = "register"
	FakeOpList     = "list"
	FakeOpAdd      = "add"
	FakeOpDelete   = "delete"
	FakeOpGet      = "get"
)

// NewFakeBackend starts a fake department service. It is closed when the test finishes.
func NewFakeBackend(t TestingTB) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		users:    make(map[string]fakeUser),
		tokens:   make(map[string]bool),
		failures: make(map[string]fakeFailure),
		calls:    make(map[string]int),
		nextID:   1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", b.handle(FakeOpRegister, false, b.register))
	mux.HandleFunc("POST /login", b.handle(FakeOpLogin, false, b.login))
	mux.HandleFunc("GET /departments", b.handle(FakeOpList, true, b.list))
	mux.HandleFunc("POST /add-department", b.handle(FakeOpAdd, true, b.add))
	mux.HandleFunc("DELETE /delete-department/{id}", b.handle(FakeOpDelete, true, b.delete))
	mux.HandleFunc("GET /department/{id}", b.handle(FakeOpGet, true, b.get))

	b.Server = httptest.NewServer(http.StripPrefix(FakeBackendPrefix, mux))
	registerCleanup(t, b.Server.Close)
	return b
}

// URL returns the base URL clients should be configured with.
func (b *FakeBackend) URL() string {
	return b.Server.URL + FakeBackendPrefix
}

// AddUser registers a user that can log in.
func (b *FakeBackend) AddUser(name, email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = fakeUser{name: name, password: password}
}

// IssueToken makes token valid for authenticated endpoints.
func (b *FakeBackend) IssueToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = true
}

// RevokeToken invalidates a previously valid token.
func (b *FakeBackend) RevokeToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

// Seed stores a department directly and returns its id.
func (b *FakeBackend) Seed(name, description string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.insertLocked(name, description)
	return strconv.Itoa(d.id)
}

// Fail makes every subsequent call to op answer with status and the raw body.
func (b *FakeBackend) Fail(op string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = fakeFailure{status: status, body: body}
}

// Recover clears a failure installed by Fail.
func (b *FakeBackend) Recover(op string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, op)
}

// TotalCalls returns the number of requests received.
func (b *FakeBackend) TotalCalls() int {
	return int(b.total.Load())
}

// Calls returns the number of requests received for op.
func (b *FakeBackend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// LastAuthorization returns the Authorization header of the most recent request.
func (b *FakeBackend) LastAuthorization() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth
}

// DepartmentCount returns how many departments the backend holds.
func (b *FakeBackend) DepartmentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.departments)
}

type fakeHandler func(w http.ResponseWriter, r *http.Request)

func (b *FakeBackend) handle(op string, authRequired bool, next fakeHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.total.Add(1)

		b.mu.Lock()
		b.calls[op]++
		b.lastAuth = r.Header.Get("Authorization")
		failure, failing := b.failures[op]
		b.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(failure.status)
			_, _ = w.Write([]byte(failure.body))
			return
		}

		if authRequired && !b.authorized(r) {
			status := b.InvalidTokenStatus
			if status == 0 {
				status = http.StatusUnauthorized
			}
			writeFakeJSON(w, status, map[string]any{"Error": "Invalid token"})
			return
		}

		next(w, r)
	}
}

func (b *FakeBackend) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token := header
	if !b.RawAuth {
		var ok bool
		token, ok = strings.CutPrefix(header, "Bearer ")
		if !ok {
			return false
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokens[token]
}

func (b *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeFakeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "All fields are required"})
		return
	}

	b.mu.Lock()
	_, exists := b.users[req.Email]
	if !exists {
		b.users[req.Email] = fakeUser{name: req.Name, password: req.Password}
	}
	b.mu.Unlock()

	if exists {
		writeFakeJSON(w, http.StatusConflict, map[string]any{"message": "User already exists"})
		return
	}
	writeFakeJSON(w, http.StatusCreated, map[string]any{"message": "User registered successfully"})
}

func (b *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFakeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "Invalid request body"})
		return
	}

	b.mu.Lock()
	user, ok := b.users[req.Email]
	valid := ok && user.password == req.Password
	var token string
	if valid {
		token = "tok-" + strconv.Itoa(len(b.tokens)+1) + "-" + req.Email
		b.tokens[token] = true
	}
	b.mu.Unlock()

	if !valid {
		writeFakeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
		return
	}
	if b.NestLoginToken {
		writeFakeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"token": token}})
		return
	}
	writeFakeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (b *FakeBackend) list(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	items := make([]any, 0, len(b.departments))
	for _, d := range b.departments {
		items = append(items, b.render(d))
	}
	b.mu.Unlock()

	b.writePayload(w, http.StatusOK, items)
}

func (b *FakeBackend) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Description == "" {
		writeFakeJSON(w, http.StatusUnprocessableEntity, map[string]any{"Error": "Name and description are required"})
		return
	}

	b.mu.Lock()
	d := b.insertLocked(req.Name, req.Description)
	payload := b.render(d)
	b.mu.Unlock()

	b.writePayload(w, http.StatusCreated, payload)
}

func (b *FakeBackend) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx >= 0 {
		b.departments = append(b.departments[:idx], b.departments[idx+1:]...)
	}
	b.mu.Unlock()

	if idx < 0 {
		writeFakeJSON(w, http.StatusNotFound, map[string]any{"message": "Department not found"})
		return
	}
	writeFakeJSON(w, http.StatusOK, map[string]any{"message": "Department deleted"})
}

func (b *FakeBackend) get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	idx := b.indexLocked(id)
	var payload map[string]any
	if idx >= 0 {
		payload = b.render(b.departments[idx])
	}
	b.mu.Unlock()

	if idx < 0 {
		writeFakeJSON(w, http.StatusNotFound, map[string]any{"message": "Department not found"})
		return
	}
	b.writePayload(w, http.StatusOK, payload)
}

func (b *FakeBackend) insertLocked(name, description string) fakeDepartment {
	d := fakeDepartment{id: b.nextID, name: name, description: description}
	b.nextID++
	b.departments = append(b.departments, d)
	return d
}

func (b *FakeBackend) indexLocked(id string) int {
	for i, d := range b.departments {
		if strconv.Itoa(d.id) == id {
			return i
		}
	}
	return -1
}

func (b *FakeBackend) render(d fakeDepartment) map[string]any {
	var id any = strconv.Itoa(d.id)
	if b.NumericIDs {
		id = d.id
	}
	key := "id"
	if b.MongoIDs {
		key = "_id"
	}
	return map[string]any{key: id, "name": d.name, "description": d.description}
}

func (b *FakeBackend) writePayload(w http.ResponseWriter, status int, payload any) {
	if b.WrapResponses {
		writeFakeJSON(w, status, map[string]any{"data": payload})
		return
	}
	writeFakeJSON(w, status, payload)
}

func writeFakeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
