package service

import (
	"context"
	"errors"
	"log"
)

const (
	messageUnexpected = "操作失败，请稍后重试"
	messageTimeout    = "请求超时，请稍后重试"
	messageBadLogin   = "用户名或密码错误"
)

// Result is the uniform shape returned by every mutating operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a successful result.
func OK(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Failure converts err into a failed result. Unexpected errors are logged
// here and replaced with a generic message.
func Failure(err error) Result {
	return Result{Success: false, Message: UserMessage(err)}
}

// ResultOf turns a service return pair into a Result.
func ResultOf(data any, err error, okMessage string) Result {
	if err != nil {
		return Failure(err)
	}
	return OK(okMessage, data)
}

// UserMessage returns the text shown to the admin for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Printf("[mutation] aborted: %v", err)
		return messageTimeout
	}
	if errors.Is(err, ErrInvalidCredentials) {
		return messageBadLogin
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	log.Printf("[mutation] unexpected error: %v", err)
	return messageUnexpected
}
