package instagram

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tdh8316/igcheck/internal/httpx"
)

// Session carries what the sign-up page handed out: the cookies visible to
// the home page plus the csrftoken and mid values among them. A Session is
// never modified after Initialize returns it.
type Session struct {
	cookies   []*http.Cookie
	csrfToken string
	mid       string
}

func (s Session) CSRFToken() string { return s.csrfToken }

func (s Session) MID() string { return s.mid }

// Cookies returns a copy of the captured cookies.
func (s Session) Cookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(s.cookies))
	for _, c := range s.cookies {
		cp := *c
		out = append(out, &cp)
	}
	return out
}

func (s Session) validate() error {
	if s.csrfToken == "" {
		return &MissingTokenError{Cookie: csrfCookie}
	}
	if s.mid == "" {
		return &MissingTokenError{Cookie: midCookie}
	}
	return nil
}

// Initialize fetches the sign-up page with a fresh cookie jar and builds a
// Session from the cookies it sets.
func Initialize(ctx context.Context, client *http.Client, opts ...Option) (Session, error) {
	return New(client, opts...).Initialize(ctx)
}

func (c *Checker) Initialize(ctx context.Context) (Session, error) {
	ep := c.cfg.endpoints

	home, err := url.Parse(ep.Home)
	if err != nil {
		return Session{}, errors.Wrap(err, "parse home url")
	}

	jar, err := httpx.NewJar()
	if err != nil {
		return Session{}, err
	}
	client := httpx.WithJar(c.client, jar)

	req, err := httpx.NewRequest(ctx, http.MethodGet, ep.SignUp, nil, c.cfg.userAgent)
	if err != nil {
		return Session{}, errors.Wrap(err, "build sign-up request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return Session{}, &NetworkError{Op: http.MethodGet, URL: ep.SignUp, Err: err}
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused for the checks.
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return Session{}, &NetworkError{Op: http.MethodGet, URL: ep.SignUp, Err: err}
	}

	c.cfg.logger.WithFields(logrus.Fields{
		"url":    ep.SignUp,
		"status": resp.StatusCode,
	}).Debug("sign-up page fetched")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, &StatusError{
			Op:         http.MethodGet,
			URL:        ep.SignUp,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	s := Session{cookies: jar.Cookies(home)}
	for _, ck := range s.cookies {
		switch ck.Name {
		case csrfCookie:
			s.csrfToken = ck.Value
		case midCookie:
			s.mid = ck.Value
		}
	}
	if err := s.validate(); err != nil {
		return Session{}, err
	}

	c.cfg.logger.WithField("cookies", len(s.cookies)).Debug("session initialized")
	return s, nil
}
