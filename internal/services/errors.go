package services

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput 客户端请求缺少必要参数
	ErrInvalidInput = errors.New("Text input is required")

	// ErrUpstream 流程服务或数据源调用失败
	ErrUpstream = errors.New("上游服务调用失败")
)

// upstreamError 携带原始错误的上游失败
type upstreamError struct {
	cause error
}

func (e *upstreamError) Error() string { return e.cause.Error() }

func (e *upstreamError) Unwrap() error { return e.cause }

func (e *upstreamError) Is(target error) bool { return target == ErrUpstream }

// Upstream 将错误标记为上游失败，错误信息保持原样
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	return &upstreamError{cause: err}
}

// IsInvalidInput 是否为客户端输入错误
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUpstream 是否为上游失败
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}
