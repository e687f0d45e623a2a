package githubcli

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/temirov/gareth/internal/execshell"
)

var httpStatusPattern = regexp.MustCompile(`HTTP (\d{3})`)

const alreadyExistsMarkerConstant = "already exists"

func statusCodeFromError(err error) int {
	var failedError execshell.CommandFailedError
	if !errors.As(err, &failedError) {
		return 0
	}
	return parseStatusCode(failedError.Result.StandardError + "\n" + failedError.Result.StandardOutput)
}

func parseStatusCode(output string) int {
	matches := httpStatusPattern.FindStringSubmatch(output)
	if len(matches) != 2 {
		return 0
	}
	statusCode, conversionError := strconv.Atoi(matches[1])
	if conversionError != nil {
		return 0
	}
	return statusCode
}

// StatusCode extracts the HTTP status reported for a failed operation, or zero.
func StatusCode(err error) int {
	var operationError OperationError
	if errors.As(err, &operationError) {
		return operationError.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a GitHub 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether GitHub rejected the credential.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a GitHub 403 response, typically a token lacking scopes.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsAlreadyExists reports whether a create request conflicted with an existing resource.
func IsAlreadyExists(err error) bool {
	statusCode := StatusCode(err)
	if statusCode == http.StatusConflict {
		return true
	}
	if statusCode != http.StatusUnprocessableEntity {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), alreadyExistsMarkerConstant)
}

func describeCause(cause error) string {
	var failedError execshell.CommandFailedError
	if errors.As(cause, &failedError) {
		standardError := strings.TrimSpace(failedError.Result.StandardError)
		if len(standardError) > 0 {
			return standardError
		}
	}
	return cause.Error()
}
