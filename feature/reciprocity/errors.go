package reciprocity

import (
	"fmt"

	"follow-check/core/remote"
)

// UnavailableError indicates a list could not be produced at all: the live
// fetch failed and no snapshot exists to fall back on.
type UnavailableError struct {
	Account string
	Kind    remote.ListKind
	Cause   error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s list for %s is unavailable: live fetch failed and no snapshot exists (consider the offline export mode): %v",
		e.Kind, e.Account, e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}
