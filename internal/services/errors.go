package services

import (
	"errors"
)

// 错误类别，handler 按类别映射 HTTP 状态码
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

// Error 带有面向客户端的提示信息，Unwrap 返回所属类别
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrCredentialsRequired = newError(ErrValidation, "Username and password required")
	ErrContentRequired     = newError(ErrValidation, "Content required")
	ErrInvalidDirection    = newError(ErrValidation, "Invalid vote direction")
	ErrSelfFollow          = newError(ErrValidation, "Cannot follow yourself")
	ErrPasswordRequired    = newError(ErrValidation, "New password required")

	// 用户名不存在与密码错误返回的提示不同，仍同属 401
	ErrUnknownUsername = newError(ErrAuthentication, "Incorrect username.")
	ErrWrongPassword   = newError(ErrAuthentication, "Incorrect password.")

	ErrUsernameTaken = newError(ErrConflict, "Username already taken")

	ErrUserNotFound    = newError(ErrNotFound, "User not found")
	ErrPostNotFound    = newError(ErrNotFound, "Post not found")
	ErrCommentNotFound = newError(ErrNotFound, "Comment not found")
)
