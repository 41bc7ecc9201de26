package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// Request is a call received by the API mock.
type Request struct {
	Headers http.Header
	Query   url.Values
	Body    []byte
}

type stubbedResponse struct {
	status int
	body   any
}

// ApiMock is an HTTP server standing in for third-party APIs. Responses are
// stubbed per method and path; unknown routes answer 200 with an empty object.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]Request
	responses map[string]stubbedResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]Request{},
		responses: map[string]stubbedResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	request := Request{
		Headers: r.Header.Clone(),
		Query:   r.URL.Query(),
		Body:    body,
	}

	key := r.Method + r.URL.Path

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], request)
	response, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		response = stubbedResponse{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_ = json.NewEncoder(w).Encode(response.body)
}

// SetResponse stubs the answer of method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = stubbedResponse{status: status, body: body}
}

// Requests returns the calls received on method and path.
func (a *ApiMock) Requests(method, path string) []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests[method+path]...)
}

// Reset forgets received calls and stubs.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = map[string][]Request{}
	a.responses = map[string]stubbedResponse{}
}
