package service

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindAuthorization
	KindNotFound
	KindConflict
	KindConfiguration
)

// Error carries a client-safe message and the category the HTTP layer maps
// to a status code.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrInternal = newError(KindUnknown, "server error")

	ErrMissingSignUpFields = newError(KindValidation, "please enter all fields")
	ErrMissingSignInFields = newError(KindValidation, "please provide email and password")
	ErrEmptyPost           = newError(KindValidation, "post must have either text or an image")
	ErrEmptyComment        = newError(KindValidation, "comment text is required")
	ErrImageTooLarge       = newError(KindValidation, "image must be at most 5MB")
	ErrImageFormat         = newError(KindValidation, "only jpg, jpeg and png images are allowed")
	ErrPasswordTooLong     = newError(KindValidation, "password must be at most 72 bytes")

	ErrInvalidCredentials = newError(KindAuth, "invalid credentials")
	ErrUnauthorized       = newError(KindAuth, "not authorized")

	ErrNotPostOwner = newError(KindAuthorization, "user not authorized to delete this post")

	ErrPostNotFound = newError(KindNotFound, "post not found")

	ErrUserAlreadyExists = newError(KindConflict, "user already exists")

	ErrImageStorageMisconfigured = newError(KindConfiguration, "image storage is misconfigured")
)

// KindOf returns the category of err, KindUnknown for anything that is not
// a service error.
func KindOf(err error) Kind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindUnknown
}
