// Package errors defines the failure taxonomy shared by the workspace setup workflows.
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// Code identifies a class of workspace setup failure.
type Code string

// Failure codes reported by the create and update workflows.
const (
	CodeInvalidCredential    Code = Code("InvalidCredential")
	CodeHostUnavailable      Code = Code("HostUnavailable")
	CodeRepositoryNotFound   Code = Code("RepositoryNotFound")
	CodeForkForbidden        Code = Code("ForkForbidden")
	CodeCloneFailed          Code = Code("CloneFailed")
	CodeRemoteSetupFailed    Code = Code("RemoteSetupFailed")
	CodeLocalCloneMissing    Code = Code("LocalCloneMissing")
	CodeDirectoryUnavailable Code = Code("DirectoryUnavailable")
	CodeRebaseFailed         Code = Code("RebaseFailed")
)

const (
	operationErrorTemplateConstant            = "%s: %s"
	operationErrorWithSubjectTemplateConstant = "%s: %s: %s"
	operationErrorWithCauseTemplateConstant   = "%s: %v"
)

// Sentinels matched by OperationError.Is for the corresponding code.
var (
	ErrInvalidCredential    = stdErrors.New(string(CodeInvalidCredential))
	ErrHostUnavailable      = stdErrors.New(string(CodeHostUnavailable))
	ErrRepositoryNotFound   = stdErrors.New(string(CodeRepositoryNotFound))
	ErrForkForbidden        = stdErrors.New(string(CodeForkForbidden))
	ErrCloneFailed          = stdErrors.New(string(CodeCloneFailed))
	ErrRemoteSetupFailed    = stdErrors.New(string(CodeRemoteSetupFailed))
	ErrLocalCloneMissing    = stdErrors.New(string(CodeLocalCloneMissing))
	ErrDirectoryUnavailable = stdErrors.New(string(CodeDirectoryUnavailable))
	ErrRebaseFailed         = stdErrors.New(string(CodeRebaseFailed))
)

var sentinelByCode = map[Code]error{
	CodeInvalidCredential:    ErrInvalidCredential,
	CodeHostUnavailable:      ErrHostUnavailable,
	CodeRepositoryNotFound:   ErrRepositoryNotFound,
	CodeForkForbidden:        ErrForkForbidden,
	CodeCloneFailed:          ErrCloneFailed,
	CodeRemoteSetupFailed:    ErrRemoteSetupFailed,
	CodeLocalCloneMissing:    ErrLocalCloneMissing,
	CodeDirectoryUnavailable: ErrDirectoryUnavailable,
	CodeRebaseFailed:         ErrRebaseFailed,
}

// OperationError is a classified failure for a single subject (a repository, a directory or the credential).
type OperationError struct {
	Code    Code
	Subject string
	Message string
	Cause   error
}

// New constructs an OperationError.
func New(code Code, subject string, message string, cause error) OperationError {
	return OperationError{Code: code, Subject: subject, Message: message, Cause: cause}
}

// Error renders the code, subject and message; the cause is appended when no message was given.
func (operationError OperationError) Error() string {
	description := strings.TrimSpace(operationError.Message)
	if len(description) == 0 && operationError.Cause != nil {
		description = operationError.Cause.Error()
	}
	subject := strings.TrimSpace(operationError.Subject)
	if len(subject) == 0 {
		return fmt.Sprintf(operationErrorTemplateConstant, operationError.Code, description)
	}
	return fmt.Sprintf(operationErrorWithSubjectTemplateConstant, operationError.Code, subject, description)
}

// Describe renders the message together with its cause for operator-facing output.
func (operationError OperationError) Describe() string {
	description := strings.TrimSpace(operationError.Message)
	if operationError.Cause == nil {
		return description
	}
	if len(description) == 0 {
		return operationError.Cause.Error()
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, description, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// Is reports whether the target is the sentinel for this error's code.
func (operationError OperationError) Is(target error) bool {
	sentinel, known := sentinelByCode[operationError.Code]
	return known && target == sentinel
}

// CodeOf extracts the failure code from an error chain.
func CodeOf(err error) (Code, bool) {
	var operationError OperationError
	if stdErrors.As(err, &operationError) {
		return operationError.Code, true
	}
	return "", false
}
