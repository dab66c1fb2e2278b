package tourapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an upstream result code.
type ErrorKind int

const (
	ErrorGeneric ErrorKind = iota
	ErrorCredential
	ErrorQuota
)

var resultCodeMessages = map[string]string{
	"0001": "필수 파라미터 누락",
	"0002": "파라미터 형식 오류",
	"0003": "인증키 오류 (API 키가 유효하지 않음)",
	"0004": "서비스 오류",
	"0005": "일일 트래픽 초과",
	"0006": "월간 트래픽 초과",
}

// APIError is a non-"0000" result code returned inside the response envelope.
type APIError struct {
	Code string
	Msg  string
}

func NewAPIError(code, msg string) *APIError {
	return &APIError{Code: code, Msg: msg}
}

// Kind distinguishes credential and quota failures from the rest.
func (e *APIError) Kind() ErrorKind {
	switch e.Code {
	case "0003":
		return ErrorCredential
	case "0005", "0006":
		return ErrorQuota
	default:
		return ErrorGeneric
	}
}

func (e *APIError) Error() string {
	known := resultCodeMessages[e.Code]
	switch {
	case known != "" && e.Msg != "":
		return fmt.Sprintf("api error [%s]: %s (%s)", e.Code, known, e.Msg)
	case known != "":
		return fmt.Sprintf("api error [%s]: %s", e.Code, known)
	case e.Msg != "":
		return fmt.Sprintf("api error [%s]: %s", e.Code, e.Msg)
	default:
		return fmt.Sprintf("api error [%s]", e.Code)
	}
}

func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	return ok
}
