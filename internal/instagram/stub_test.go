package instagram_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tdh8316/igcheck/internal/instagram"
)

const (
	signUpPath = "/accounts/emailsignup/"
	checkPath  = "/accounts/web_create_ajax/attempt/"
)

// recorded is what the stub saw on one validation request.
type recorded struct {
	header  http.Header
	cookies map[string]string
	body    string
}

// stub fakes the sign-up page and the validation endpoint.
type stub struct {
	srv *httptest.Server

	mu          sync.Mutex
	signUpHits  int
	checkCalls  []recorded
	signUp      http.HandlerFunc
	checkStatus int
	checkBody   func(body string) string
	checkSetCk  []*http.Cookie
}

func newStub(t *testing.T) *stub {
	t.Helper()

	s := &stub{
		checkStatus: http.StatusOK,
		checkBody: func(string) string {
			return `{"errors":{"email":[],"username":[],"password":[]},"status":"ok","dryrun_passed":true,"account_created":false,"username_suggestions":[]}`
		},
	}
	s.signUp = setCookies(
		&http.Cookie{Name: "csrftoken", Value: "abc123", Path: "/"},
		&http.Cookie{Name: "mid", Value: "xyz789", Path: "/"},
	)

	mux := http.NewServeMux()
	mux.HandleFunc(signUpPath, func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.signUpHits++
		h := s.signUp
		s.mu.Unlock()
		h(w, r)
	})
	mux.HandleFunc(checkPath, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec := recorded{header: r.Header.Clone(), cookies: map[string]string{}, body: string(b)}
		for _, ck := range r.Cookies() {
			rec.cookies[ck.Name] = ck.Value
		}

		s.mu.Lock()
		s.checkCalls = append(s.checkCalls, rec)
		status, bodyFn, setCk := s.checkStatus, s.checkBody, s.checkSetCk
		s.mu.Unlock()

		for _, ck := range setCk {
			http.SetCookie(w, ck)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, bodyFn(rec.body))
	})

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func setCookies(cookies ...*http.Cookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, ck := range cookies {
			http.SetCookie(w, ck)
		}
		_, _ = io.WriteString(w, "<html>sign up</html>")
	}
}

func (s *stub) endpoints() instagram.Endpoints {
	return instagram.Endpoints{
		Home:   s.srv.URL + "/",
		SignUp: s.srv.URL + signUpPath + "?signupFirst=true",
		Check:  s.srv.URL + checkPath,
	}
}

func (s *stub) checker(opts ...instagram.Option) *instagram.Checker {
	opts = append([]instagram.Option{instagram.WithEndpoints(s.endpoints())}, opts...)
	return instagram.New(s.srv.Client(), opts...)
}

func (s *stub) calls() []recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recorded(nil), s.checkCalls...)
}

func (s *stub) respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkStatus = status
	s.checkBody = func(string) string { return body }
}

func (s *stub) handleSignUp(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signUp = h
}

func (s *stub) respondWith(fn func(body string) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkBody = fn
}

func (s *stub) setCheckCookies(cookies ...*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkSetCk = cookies
}

// userAgentOf installs a sign-up handler that hands out the default tokens
// and reports the User-Agent it was called with.
func (s *stub) userAgentOf() <-chan string {
	ua := make(chan string, 1)
	s.handleSignUp(func(w http.ResponseWriter, r *http.Request) {
		select {
		case ua <- r.Header.Get("User-Agent"):
		default:
		}
		setCookies(
			&http.Cookie{Name: "csrftoken", Value: "abc123", Path: "/"},
			&http.Cookie{Name: "mid", Value: "xyz789", Path: "/"},
			&http.Cookie{Name: "ig_did", Value: "device", Path: "/"},
		)(w, r)
	})
	return ua
}
