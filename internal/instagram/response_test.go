package instagram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdh8316/igcheck/internal/instagram"
)

func TestParseResponse(t *testing.T) {
	r, err := instagram.ParseResponse([]byte(takenEmailBody))
	require.NoError(t, err)

	assert.Equal(t, "ok", r.Status)
	assert.False(t, r.DryrunPassed)
	assert.False(t, r.AccountCreated)
	assert.Empty(t, r.UsernameSuggestions)
	assert.Equal(t, []string{"Another account is using taken@example.com."}, r.Errors.Email)
	assert.False(t, r.Available(instagram.FieldEmail))
	assert.True(t, r.Available(instagram.FieldUsername))
}

func TestParseResponse_Lenient(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		email    bool
		username bool
	}{
		{name: "absent lists", body: `{"errors":{}}`, email: true, username: true},
		{name: "null lists", body: `{"errors":{"email":null,"username":["x"]}}`, email: true, username: false},
		{name: "flags ignored", body: `{"errors":{"email":["bad"]},"status":"ok","dryrun_passed":true,"account_created":true}`, email: false, username: true},
		{name: "non ok status", body: `{"errors":{"username":[]},"status":"fail"}`, email: true, username: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := instagram.ParseResponse([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.email, r.Available(instagram.FieldEmail))
			assert.Equal(t, tt.username, r.Available(instagram.FieldUsername))
		})
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{name: "not json", body: "not json", reason: "not valid JSON"},
		{name: "empty", body: "", reason: "not valid JSON"},
		{name: "array", body: `[1,2]`, reason: "not a JSON object"},
		{name: "no errors", body: `{"status":"ok"}`, reason: `"errors" object is missing`},
		{name: "errors not object", body: `{"errors":["email"]}`, reason: `"errors" object is missing`},
		{name: "errors entry not list", body: `{"errors":{"email":"taken"}}`, reason: "errors.email is not a list"},
		{name: "wrong status type", body: `{"errors":{},"status":1}`, reason: "decode"},
		{name: "message objects", body: `{"errors":{"username":[{"message":"taken"}]}}`, reason: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := instagram.ParseResponse([]byte(tt.body))
			var mre *instagram.MalformedResponseError
			require.ErrorAs(t, err, &mre)
			assert.Contains(t, mre.Reason, tt.reason)
			assert.ErrorIs(t, err, instagram.ErrMalformedResponse)
		})
	}
}

func TestResponse_UnknownField(t *testing.T) {
	r, err := instagram.ParseResponse([]byte(takenEmailBody))
	require.NoError(t, err)
	assert.Nil(t, r.FieldErrors(instagram.Field("password")))
}
