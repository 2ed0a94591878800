package media

import "errors"

var (
	// ErrMediaNotFound is returned when no media row exists for the id.
	ErrMediaNotFound = errors.New("media not found")
	// ErrNotAuthorized is returned when the caller lacks the role an
	// operation requires (owner-only paths, non-participants).
	ErrNotAuthorized = errors.New("not authorized")
	// ErrPermissionExists is returned on duplicate permission fan-out for
	// the same (media, recipient) pair.
	ErrPermissionExists = errors.New("permission already exists")
	// ErrPermissionNotFound is returned when an owner targets a recipient
	// that holds no permission row.
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrInvalidTimer is returned when a non-positive timer is supplied.
	ErrInvalidTimer = errors.New("timer must be positive")
	// ErrInvalidRecipient is returned when the owner appears in the
	// recipient list; owner access is implicit and never gets a row.
	ErrInvalidRecipient = errors.New("owner cannot be a recipient")
)

// Storage sentinels; the minio adapter maps driver errors onto these.
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

// AccessReason tags the expected deny outcomes of an open call. They are
// normal results of ephemeral access, not bugs, and the client renders a
// different UI state for each.
type AccessReason string

const (
	AccessDeleted          AccessReason = "deleted"
	AccessNoPermission     AccessReason = "no_permission"
	AccessRevoked          AccessReason = "revoked"
	AccessExpired          AccessReason = "expired"
	AccessViewOnceConsumed AccessReason = "view_once_consumed"
)

// AccessError is the tagged deny result of the open path.
type AccessError struct {
	Reason AccessReason
}

func (e *AccessError) Error() string {
	return "access denied: " + string(e.Reason)
}

// NewAccessError builds an AccessError for the given reason.
func NewAccessError(reason AccessReason) *AccessError {
	return &AccessError{Reason: reason}
}

// AsAccessError unwraps err into an AccessError if it is one.
func AsAccessError(err error) (*AccessError, bool) {
	var ae *AccessError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
