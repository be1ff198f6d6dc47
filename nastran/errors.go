package nastran

import "errors"

// The ways a bulk data deck can be rejected. Each aborts the whole
// conversion; there is no partial result. Returned errors wrap one of
// these sentinels together with the offending field and line number,
// so callers can classify them with errors.Is.
var (
	ErrMissingBulk        = errors.New(`cannot find "BEGIN BULK" entry`)
	ErrMalformedNumber    = errors.New("malformed number")
	ErrUnresolvedPoint    = errors.New("unresolved point reference")
	ErrDuplicateProperty  = errors.New("duplicate property")
	ErrUnknownKeyword     = errors.New("unknown keyword")
	ErrUndeclaredProperty = errors.New("undeclared property")
)
