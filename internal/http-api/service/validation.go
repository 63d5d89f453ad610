package service

import (
	"regexp"
	"sort"
	"strings"
)

// FieldErrors maps input field names to human-readable messages. It is
// returned by services whenever a failure is attributable to specific
// request fields, and handlers render it as a 400 with the map as the body.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// The username rule is a prefix match: the name must begin with at least
// three word characters.
var usernameRe = regexp.MustCompile(`^\w{3,}`)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// validateUsername checks the signup username rule. The literal name "me"
// is reserved by the self-service endpoint.
func validateUsername(username string) string {
	if !usernameRe.MatchString(username) {
		return "username must begin with at least three word characters"
	}
	if username == "me" {
		return `username "me" is reserved`
	}
	return ""
}

// validateProfileUsername is the stricter variant used by the user
// resource: any casing of "me" is rejected.
func validateProfileUsername(username string) string {
	if !usernameRe.MatchString(username) {
		return "username must begin with at least three word characters"
	}
	if strings.EqualFold(username, "me") {
		return `username "me" is reserved`
	}
	return ""
}

func validateEmail(email string) string {
	if email == "" {
		return "email is required"
	}
	if len(email) > 254 {
		return "email must be at most 254 characters"
	}
	return ""
}

func validateSlug(slug string) string {
	if slug == "" {
		return "slug is required"
	}
	if len(slug) > 50 {
		return "slug must be at most 50 characters"
	}
	if !slugRe.MatchString(slug) {
		return "slug may only contain letters, digits, hyphens and underscores"
	}
	return ""
}

func validateRole(role string) string {
	switch role {
	case "user", "moderator", "admin":
		return ""
	}
	return "role must be one of user, moderator, admin"
}

func validateScore(score int) string {
	if score < 1 || score > 10 {
		return "score must be between 1 and 10"
	}
	return ""
}
