package http

import (
	"errors"
	"net/http"

	"github.com/PauKap/rupees/internal/domain"
)

// Identity is resolved by the fronting auth layer and handed to this
// service as trusted headers.
const (
	userIDHeader   = "X-User-Id"
	userRoleHeader = "X-User-Role"
)

var errUnauthenticated = errors.New("missing or invalid identity headers")

func userFromRequest(r *http.Request) (domain.User, error) {
	id := r.Header.Get(userIDHeader)
	role := domain.Role(r.Header.Get(userRoleHeader))
	if id == "" {
		return domain.User{}, errUnauthenticated
	}
	if role != domain.RoleBuyer && role != domain.RoleSeller {
		return domain.User{}, errUnauthenticated
	}
	return domain.User{ID: id, Role: role}, nil
}
