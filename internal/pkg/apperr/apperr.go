package apperr

import "errors"

// Kind separates business-rule rejections from missing resources and failed
// ownership checks so callers (and tests) can tell them apart.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindAccessDenied
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func AccessDenied(msg string) *Error { return &Error{Kind: KindAccessDenied, Msg: msg} }

func IsValidation(err error) bool   { return kindOf(err) == KindValidation }
func IsNotFound(err error) bool     { return kindOf(err) == KindNotFound }
func IsAccessDenied(err error) bool { return kindOf(err) == KindAccessDenied }

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Kind(-1)
}

// As reports the typed error if err carries one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
