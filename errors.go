package ldappool

import "errors"

// ErrInvalidConfiguration is returned when the pool is given a setting it cannot use,
// such as an unknown selection method. Use errors.Is to check for it.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrNoServerAvailable matches every *ConnectionError through errors.Is.
//
//nolint:staticcheck // the message is part of the public contract
var ErrNoServerAvailable = errors.New("No LDAP server is available.")

// ConnectionError is returned by Server when no reachable host could be produced:
// discovery came back empty, discovery itself failed, or every candidate was unreachable.
//
// The message is always the same. Err holds the underlying cause when there is one
// (a discovery failure or a cancelled context) and is nil otherwise.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return ErrNoServerAvailable.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNoServerAvailable.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrNoServerAvailable
}
