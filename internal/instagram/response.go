package instagram

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Field names a sign-up form input the validation endpoint can check.
type Field string

const (
	FieldEmail    Field = "email"
	FieldUsername Field = "username"
)

func (f Field) Valid() bool {
	return f == FieldEmail || f == FieldUsername
}

// FieldErrors holds the validation messages reported per form input.
type FieldErrors struct {
	Username []string `json:"username"`
	Password []string `json:"password"`
	Email    []string `json:"email"`
}

// Response is the body of a web_create_ajax/attempt call.
type Response struct {
	Status              string      `json:"status"`
	DryrunPassed        bool        `json:"dryrun_passed"`
	AccountCreated      bool        `json:"account_created"`
	UsernameSuggestions []string    `json:"username_suggestions"`
	Errors              FieldErrors `json:"errors"`
}

// ParseResponse decodes a validation response. The body must be a JSON
// object with an "errors" object whose entries, when present, are lists.
// Anything else is a *MalformedResponseError.
func ParseResponse(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, &MalformedResponseError{Reason: "body is not valid JSON", Snippet: snippet(body)}
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &MalformedResponseError{Reason: "body is not a JSON object", Snippet: snippet(body)}
	}

	errs := root.Get("errors")
	if !errs.IsObject() {
		return nil, &MalformedResponseError{Reason: `"errors" object is missing`, Snippet: snippet(body)}
	}
	for _, name := range []string{"username", "password", "email"} {
		if v := errs.Get(name); v.Exists() && !v.IsArray() && v.Type != gjson.Null {
			return nil, &MalformedResponseError{
				Reason:  fmt.Sprintf("errors.%s is not a list", name),
				Snippet: snippet(body),
			}
		}
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, &MalformedResponseError{
			Reason:  "decode",
			Snippet: snippet(body),
			Err:     errors.WithStack(err),
		}
	}
	return &r, nil
}

// FieldErrors returns the messages reported for field.
func (r *Response) FieldErrors(field Field) []string {
	switch field {
	case FieldEmail:
		return r.Errors.Email
	case FieldUsername:
		return r.Errors.Username
	default:
		return nil
	}
}

// Available reports whether no error was raised for field. Other fields'
// errors, Status, DryrunPassed and AccountCreated do not take part.
func (r *Response) Available(field Field) bool {
	return len(r.FieldErrors(field)) == 0
}
