package instagram

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tdh8316/igcheck/internal/httpx"
)

const (
	HomeURL   = "https://www.instagram.com/"
	SignUpURL = "https://www.instagram.com/accounts/emailsignup/?signupFirst=true"
	CheckURL  = "https://www.instagram.com/accounts/web_create_ajax/attempt/"

	csrfCookie = "csrftoken"
	midCookie  = "mid"

	// 2 MiB cap on buffered validation responses.
	maxBodyBytes = 2 << 20
)

// Endpoints groups the URLs a Checker talks to.
type Endpoints struct {
	// Home scopes the cookie lookup after the sign-up page was fetched.
	Home   string
	SignUp string
	Check  string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{Home: HomeURL, SignUp: SignUpURL, Check: CheckURL}
}

type config struct {
	endpoints Endpoints
	userAgent string
	logger    logrus.FieldLogger
}

type Option func(*config)

// WithEndpoints points the checker at other URLs. Intended for test doubles.
func WithEndpoints(e Endpoints) Option {
	return func(c *config) { c.endpoints = e }
}

// WithUserAgent overrides DefaultUserAgent for both requests.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets where debug traces go. Errors are always returned, never logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	cfg := config{
		endpoints: DefaultEndpoints(),
		userAgent: httpx.DefaultUserAgent,
		logger:    discard,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
