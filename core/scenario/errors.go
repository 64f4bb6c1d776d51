package scenario

import "errors"

// ErrConfig marks invalid profiles, signals or parameters. It is surfaced to
// the caller immediately and never retried.
var ErrConfig = errors.New("invalid scenario configuration")

// ErrZeroBaseline marks a day whose baseline emissions are zero, so no
// reduction percentage can be derived. It is a data edge case: the day is
// flagged and the run continues.
var ErrZeroBaseline = errors.New("baseline emissions are zero")
