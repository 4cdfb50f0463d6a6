package textpress

import "errors"

var (
	// ErrTruncated is returned when a code runs past the end of its stream.
	ErrTruncated = errors.New("textpress: truncated code")
	// ErrUnknownID is returned when a dictionary code has no word assigned.
	ErrUnknownID = errors.New("textpress: unknown dictionary id")
	// ErrUnknownSession is returned when a session code recalls an unregistered token.
	ErrUnknownSession = errors.New("textpress: unknown session id")
	// ErrUnterminatedEscape is returned when an escape payload lacks its zero terminator.
	ErrUnterminatedEscape = errors.New("textpress: unterminated escape payload")
	// ErrCorruptNgram is returned for n-gram codes without a table row or with an invalid span.
	ErrCorruptNgram = errors.New("textpress: corrupt n-gram code")
	// ErrUnknownSelector is returned for escape selectors without a fallback coder.
	ErrUnknownSelector = errors.New("textpress: unknown escape selector")
	// ErrInvalidLayout is returned for code space layouts with overlapping ranges.
	ErrInvalidLayout = errors.New("textpress: invalid code space layout")
	// ErrUnresolved is returned in strict mode when a token cannot be coded from dictionaries alone.
	ErrUnresolved = errors.New("textpress: unresolved token")
)
