package auth

import "errors"

// ErrForbidden means the caller is authenticated but does not own the
// targeted resource. Distinct from ErrInvalidCredential on purpose.
var ErrForbidden = errors.New("forbidden")

// RequireOwner allows a mutation iff the principal is the resource's
// recorded owner. ownerID must come from the stored row, never from the
// request body. No roles, no delegation.
func RequireOwner(principal *Principal, ownerID string) error {
	if principal == nil || principal.ID == "" || principal.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
