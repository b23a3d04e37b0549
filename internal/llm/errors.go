package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"google.golang.org/api/googleapi"
)

// ErrorKind tells callers which remediation applies to a service failure.
type ErrorKind string

// Error kinds
const (
	// KindTransient failures may succeed on retry (timeouts, 5xx, rate limits).
	KindTransient ErrorKind = "transient"
	// KindConfiguration failures need operator action (missing key, quota, auth).
	KindConfiguration ErrorKind = "configuration"
	// KindUnknown covers everything else.
	KindUnknown ErrorKind = "unknown"
)

// ServiceError is the typed failure of the advisory text service.
type ServiceError struct {
	Kind     ErrorKind
	Provider Provider
	Message  string
	Cause    error
}

func (e *ServiceError) Error() string {
	prefix := "advisory service"
	if e.Provider != "" {
		prefix = fmt.Sprintf("advisory service (%s)", e.Provider)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s error: %s: %v", prefix, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s error: %s", prefix, e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err is a retryable service failure.
func IsTransient(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindTransient
}

// IsConfiguration reports whether err needs configuration to resolve.
func IsConfiguration(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindConfiguration
}

func missingKeyError(p Provider) error {
	return &ServiceError{Kind: KindConfiguration, Provider: p, Message: "API key is required"}
}

// Classify wraps a provider error in a *ServiceError. Errors that are
// already classified are returned unchanged.
func Classify(p Provider, err error) error {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	return &ServiceError{Kind: classifyKind(err), Provider: p, Message: "request failed", Cause: err}
}

func classifyKind(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	if errors.Is(err, context.Canceled) {
		return KindUnknown
	}

	msg := strings.ToLower(err.Error())
	if status := statusCode(err); status != 0 {
		switch {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return KindConfiguration
		case status == http.StatusTooManyRequests:
			if mentionsQuota(msg) {
				return KindConfiguration
			}
			return KindTransient
		case status == http.StatusRequestTimeout || status >= 500:
			return KindTransient
		}
	}

	switch {
	case mentionsQuota(msg), strings.Contains(msg, "api key"), strings.Contains(msg, "permission denied"):
		return KindConfiguration
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "unavailable"), strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "connection reset"):
		return KindTransient
	}
	return KindUnknown
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	var oerr *openai.Error
	if errors.As(err, &oerr) {
		return oerr.StatusCode
	}
	var coded interface{ HTTPCode() int }
	if errors.As(err, &coded) {
		return coded.HTTPCode()
	}
	return 0
}

func mentionsQuota(msg string) bool {
	return strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted") || strings.Contains(msg, "insufficient_quota") || strings.Contains(msg, "billing")
}
