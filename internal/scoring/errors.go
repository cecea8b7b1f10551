package scoring

import "errors"

// Error kinds surfaced to callers. Match with errors.Is.
var (
	ErrNotAllowed   = errors.New("not_allowed")   // not the match's assigned scorer
	ErrNotCoach     = errors.New("not_coach")     // operation requires the coach role
	ErrNotFound     = errors.New("not_found")     // unknown match or player
	ErrValidation   = errors.New("validation")    // malformed payload
	ErrInvalidState = errors.New("invalid_state") // lifecycle transition not permitted
	ErrNoData       = errors.New("no_data")       // nothing to approve
	ErrInternal     = errors.New("internal")      // storage or commit failure
)

// Kind returns the error-kind code for err, or "internal" when err is not
// one of the known kinds.
func Kind(err error) string {
	for _, k := range []error{
		ErrNotAllowed, ErrNotCoach, ErrNotFound, ErrValidation,
		ErrInvalidState, ErrNoData,
	} {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ErrInternal.Error()
}

// isDomain reports whether err is a caller-facing kind that must be passed
// through unchanged rather than collapsed into ErrInternal.
func isDomain(err error) bool {
	return Kind(err) != ErrInternal.Error()
}
