// Package errors 提供统一的错误定义
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1004"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"
	CodePayloadTooLarge    ErrorCode = "1009"

	// 凭据错误 (2xxx)
	CodeCredentialMissing ErrorCode = "2001"

	// 资源错误 (3xxx)
	CodeAudiobookNotFound ErrorCode = "3001"
	CodeAudioNotFound     ErrorCode = "3002"

	// 业务错误 (4xxx)
	CodeEmptyText           ErrorCode = "4001"
	CodeUnsupportedDocument ErrorCode = "4002"
	CodeDocumentParseFailed ErrorCode = "4003"
	CodeTranscriptionEmpty  ErrorCode = "4004"

	// 外部服务错误 (5xxx)
	CodeRewriteFailed       ErrorCode = "5001"
	CodeSynthesisFailed     ErrorCode = "5002"
	CodeTranscriptionFailed ErrorCode = "5003"
	CodeTranslationFailed   ErrorCode = "5004"
	CodeStorageError        ErrorCode = "5005"
	CodeCacheError          ErrorCode = "5006"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，便于 errors.Is 匹配预定义错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail 返回附带详细信息的副本，预定义错误不会被修改
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithError 返回附带底层错误的副本
func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeEmptyText, CodeDocumentParseFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodeAudiobookNotFound, CodeAudioNotFound:
		return http.StatusNotFound
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeUnsupportedDocument:
		return http.StatusUnsupportedMediaType
	case CodeTranscriptionEmpty:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable, CodeCredentialMissing:
		return http.StatusServiceUnavailable
	case CodeRewriteFailed, CodeSynthesisFailed, CodeTranscriptionFailed, CodeTranslationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")
	ErrPayloadTooLarge    = New(CodePayloadTooLarge, "payload too large")

	ErrCredentialMissing = New(CodeCredentialMissing, "required credential not configured")

	ErrAudiobookNotFound = New(CodeAudiobookNotFound, "audiobook not found")
	ErrAudioNotFound     = New(CodeAudioNotFound, "audio not found")

	ErrEmptyText           = New(CodeEmptyText, "please provide some text first")
	ErrUnsupportedDocument = New(CodeUnsupportedDocument, "unsupported document type")
	ErrDocumentParseFailed = New(CodeDocumentParseFailed, "failed to extract document text")
	ErrTranscriptionEmpty  = New(CodeTranscriptionEmpty, "the transcription service returned an empty transcription")

	ErrRewriteFailed       = New(CodeRewriteFailed, "text rewriting failed")
	ErrSynthesisFailed     = New(CodeSynthesisFailed, "speech synthesis failed")
	ErrTranscriptionFailed = New(CodeTranscriptionFailed, "transcription failed")
	ErrTranslationFailed   = New(CodeTranslationFailed, "translation failed")
	ErrStorage             = New(CodeStorageError, "audio storage failed")
	ErrCache               = New(CodeCacheError, "audiobook record store failed")
)

// IsAppError 检查错误链中是否包含 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
