package middleware

import (
	"net/http"

	"reviewhub/internal/http-api/models"
)

// Permission predicates are plain functions over (role, method, ownership).
// Middlewares and handlers combine them with ordinary && / || at call sites.

// IsSafeMethod reports whether the request method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants full catalog and user management.
func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// IsModerator reports whether the role grants review/comment moderation.
func IsModerator(role string) bool {
	return role == models.RoleModerator
}

// CanModifyResource reports whether a requester may write a review or
// comment: admins and moderators always, everyone else only their own.
func CanModifyResource(role, requesterID, authorID string) bool {
	return IsAdmin(role) || IsModerator(role) || requesterID == authorID
}
