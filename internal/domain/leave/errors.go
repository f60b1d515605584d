package leave

import "errors"

var (
	ErrNotFound            = errors.New("leave request not found")
	ErrInvalidState        = errors.New("transition not legal from current status")
	ErrForbidden           = errors.New("actor lacks required role for this action")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamUnavailable = errors.New("collaborator query failed")
)
