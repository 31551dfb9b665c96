package httpx

import (
	"strings"

	version "github.com/mcuadros/go-version"
)

// ChromeVersion extracts the build number advertised by the "Chrome/" product
// token of a user agent, e.g. "51.0.2704.103".
func ChromeVersion(userAgent string) (string, bool) {
	const token = "Chrome/"

	i := strings.Index(userAgent, token)
	if i < 0 {
		return "", false
	}
	v := userAgent[i+len(token):]
	if j := strings.IndexAny(v, " ;)"); j >= 0 {
		v = v[:j]
	}
	if v == "" {
		return "", false
	}
	return v, true
}

// OlderThanDefault reports whether userAgent advertises a Chrome build older
// than DefaultUserAgent. Non-Chrome agents are never considered older.
func OlderThanDefault(userAgent string) bool {
	got, ok := ChromeVersion(userAgent)
	if !ok {
		return false
	}
	want, _ := ChromeVersion(DefaultUserAgent)
	return version.Compare(version.Normalize(got), version.Normalize(want), "<")
}
