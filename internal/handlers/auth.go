package handlers

import (
	"net/http"

	mw "innerlog/internal/middleware"
)

// requireUserMatch rejects a request whose verified token subject is not the
// user it tries to act for. Deployments without the auth middleware carry no
// subject and skip the check. Returns false after writing the response.
func requireUserMatch(w http.ResponseWriter, r *http.Request, userID string) bool {
	sub := mw.GetSubject(r.Context())
	if sub != "" && sub != userID {
		writeError(w, http.StatusForbidden, "userId does not match authenticated user")
		return false
	}
	return true
}
