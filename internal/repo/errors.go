package repo

import "errors"

// ErrNotFound is returned when a record does not exist or is not owned by
// the requesting user. The two cases are deliberately indistinguishable so
// callers cannot probe for other users' records.
var ErrNotFound = errors.New("not found")
