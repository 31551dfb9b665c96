// Package candidate vets email addresses and usernames before they are sent
// to the validation endpoint, which receives them without any escaping.
package candidate

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
)

// Usernames on the sign-up form: 1-30 of [A-Za-z0-9._], no "..", no trailing dot.
const usernameExpr = `^(?!.*\.\.)(?!.*\.$)[A-Za-z0-9._]{1,30}$`

// local@domain.tld; the domain must hold a dot followed by a non-empty label.
const emailExpr = `^[^@]+@(?=[^@]*\.[^@.]+$)[A-Za-z0-9](?:[A-Za-z0-9.-]*[A-Za-z0-9])?$`

var (
	compileOnce sync.Once
	usernameRe  *regexp2.Regexp
	emailRe     *regexp2.Regexp
)

func compile() {
	usernameRe = regexp2.MustCompile(usernameExpr, regexp2.None)
	emailRe = regexp2.MustCompile(emailExpr, regexp2.None)
}

// Error describes why a candidate was refused.
type Error struct {
	Kind   string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Reason)
}

// TransportSafe reports whether v can be concatenated into a form body as is.
func TransportSafe(v string) error {
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c == '&' || c == '=':
			return fmt.Errorf("contains %q", c)
		case c <= ' ' || c >= 0x7f:
			return fmt.Errorf("contains byte 0x%02x", c)
		}
	}
	return nil
}

func Username(v string) error {
	compileOnce.Do(compile)

	if err := TransportSafe(v); err != nil {
		return &Error{Kind: "username", Value: v, Reason: err.Error()}
	}
	ok, err := usernameRe.MatchString(v)
	if err != nil {
		return &Error{Kind: "username", Value: v, Reason: err.Error()}
	}
	if !ok {
		return &Error{Kind: "username", Value: v, Reason: "must be 1-30 letters, digits, '.' or '_', without '..' or a trailing '.'"}
	}
	return nil
}

func Email(v string) error {
	compileOnce.Do(compile)

	if err := TransportSafe(v); err != nil {
		return &Error{Kind: "email", Value: v, Reason: err.Error()}
	}
	ok, err := emailRe.MatchString(v)
	if err != nil {
		return &Error{Kind: "email", Value: v, Reason: err.Error()}
	}
	if !ok {
		return &Error{Kind: "email", Value: v, Reason: "not an address of the form local@domain.tld"}
	}
	return nil
}

// Split breaks a comma separated flag value into trimmed, non-empty items.
func Split(csv string) []string {
	raw := strings.Split(csv, ",")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
