package scoring

import "errors"

// Failure conditions signalled by the calculators. Callers are expected to
// validate inputs at the request boundary; these exist so degenerate input
// never produces a partial or NaN result.
var (
	ErrInvalidLoanTerms    = errors.New("invalid loan terms")
	ErrInvalidProfileRange = errors.New("profile value out of range")
	ErrUnknownAction       = errors.New("unknown simulation action")
)
