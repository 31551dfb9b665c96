package instagram

import (
	"context"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tdh8316/igcheck/internal/httpx"
)

// Checker replays the sign-up form validation request. It holds no
// per-session state; pass the Session explicitly to every call.
type Checker struct {
	client *http.Client
	cfg    config
}

// Result is the outcome of a single check.
type Result struct {
	Field     Field
	Value     string
	Available bool
	Response  *Response
}

func New(client *http.Client, opts ...Option) *Checker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Checker{
		client: client,
		cfg:    newConfig(opts),
	}
}

func (c *Checker) CheckEmail(ctx context.Context, s Session, address string) (bool, error) {
	res, err := c.Check(ctx, s, FieldEmail, address)
	if err != nil {
		return false, err
	}
	return res.Available, nil
}

func (c *Checker) CheckUsername(ctx context.Context, s Session, name string) (bool, error) {
	res, err := c.Check(ctx, s, FieldUsername, name)
	if err != nil {
		return false, err
	}
	return res.Available, nil
}

// Check posts field=value to the validation endpoint and reports whether
// the platform raised no error for that field. value is sent as is; it must
// be ASCII and free of '&' and '='.
func (c *Checker) Check(ctx context.Context, s Session, field Field, value string) (Result, error) {
	if !field.Valid() {
		return Result{}, &InvalidValueError{Field: field, Value: value, Reason: "unknown field"}
	}
	if err := s.validate(); err != nil {
		return Result{}, err
	}
	if !isASCII(value) {
		return Result{}, &InvalidValueError{Field: field, Value: value, Reason: "value is not ASCII"}
	}

	ep := c.cfg.endpoints
	body := string(field) + "=" + value

	req, err := httpx.NewRequest(ctx, http.MethodPost, ep.Check, strings.NewReader(body), c.cfg.userAgent)
	if err != nil {
		return Result{}, errors.Wrap(err, "build validation request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", ep.SignUp)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Csrftoken", s.csrfToken)
	req.Header.Set("X-Instagram-Ajax", "1")
	for _, ck := range s.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	// Cookies the endpoint sets must not leak into the session.
	resp, err := httpx.WithoutJar(c.client).Do(req)
	if err != nil {
		return Result{}, &NetworkError{Op: http.MethodPost, URL: ep.Check, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, &NetworkError{Op: http.MethodPost, URL: ep.Check, Err: err}
	}

	log := c.cfg.logger.WithFields(logrus.Fields{
		"field":  field,
		"status": resp.StatusCode,
		"bytes":  len(raw),
	})

	parsed, err := ParseResponse(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if err != nil {
			log.Debug("validation request rejected")
			return Result{}, &StatusError{
				Op:         http.MethodPost,
				URL:        ep.Check,
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
			}
		}
		log.Debug("error status with usable body")
	} else if err != nil {
		log.Debug("validation response malformed")
		return Result{}, err
	}

	res := Result{
		Field:     field,
		Value:     value,
		Available: parsed.Available(field),
		Response:  parsed,
	}
	log.WithField("available", res.Available).Debug("validation response decoded")
	return res, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
