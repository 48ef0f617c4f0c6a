package apperrors

import (
	"errors"
	"fmt"
)

// 错误码
const (
	CodeUnknown        = 1000
	CodeInvalidMsg     = 1001
	CodeUnknownVariant = 2001
	CodeUndefinedCard  = 2002
	CodeGameNotFound   = 3001
	CodeBadAction      = 3002
	CodeBadOrder       = 3003
)

// GameError 游戏错误
type GameError struct {
	Code    int
	Message string
	Err     error
}

func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 支持 errors.Unwrap
func (e *GameError) Unwrap() error {
	return e.Err
}

// Is 按错误码匹配，便于 errors.Is 识别包装后的错误
func (e *GameError) Is(target error) bool {
	var t *GameError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// Wrap 携带原始错误返回新的 GameError
func (e *GameError) Wrap(err error) *GameError {
	return &GameError{Code: e.Code, Message: e.Message, Err: err}
}

// Wrapf 以格式化的细节包装
func (e *GameError) Wrapf(format string, args ...any) *GameError {
	return e.Wrap(fmt.Errorf(format, args...))
}

// 预定义错误
var (
	ErrInvalidMsg     = &GameError{Code: CodeInvalidMsg, Message: "invalid message"}
	ErrUnknownVariant = &GameError{Code: CodeUnknownVariant, Message: "unknown variant"}
	ErrUndefinedCard  = &GameError{Code: CodeUndefinedCard, Message: "card identity not defined by variant"}
	ErrGameNotFound   = &GameError{Code: CodeGameNotFound, Message: "game not found"}
	ErrBadAction      = &GameError{Code: CodeBadAction, Message: "invalid action"}
	ErrBadOrder       = &GameError{Code: CodeBadOrder, Message: "invalid card order"}
)

// GetCode 获取错误码，非 GameError 返回 CodeUnknown
func GetCode(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return CodeUnknown
}
