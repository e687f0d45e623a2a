package catalog

import (
	"fmt"
	"strings"
)

const (
	referenceSeparatorConstant                  = "/"
	invalidReferenceErrorTemplateConstant       = "invalid repository reference %q: %s"
	referenceRequiredMessageConstant            = "expected organization/repository"
	referenceSegmentCountMessageConstant        = "expected exactly one '/' separator"
	referenceOrganizationMissingMessageConstant = "organization is empty"
	referenceNameMissingMessageConstant         = "repository name is empty"
	referenceWhitespaceMessageConstant          = "must not contain whitespace"
	referencePathElementMessageConstant         = "must not be \".\" or \"..\""
	referenceBackslashMessageConstant           = "must not contain a backslash"
	currentDirectoryElementConstant             = "."
	parentDirectoryElementConstant              = ".."
	backslashConstant                           = "\\"
)

// RepositoryRef identifies an upstream repository by organization and name.
type RepositoryRef struct {
	Organization string
	Name         string
}

// InvalidRepositoryReferenceError reports a malformed "organization/repository" string.
type InvalidRepositoryReferenceError struct {
	Input  string
	Reason string
}

// Error describes the malformed reference.
func (referenceError InvalidRepositoryReferenceError) Error() string {
	return fmt.Sprintf(invalidReferenceErrorTemplateConstant, referenceError.Input, referenceError.Reason)
}

// ParseRepositoryRef parses "organization/repository" into a RepositoryRef.
func ParseRepositoryRef(raw string) (RepositoryRef, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return RepositoryRef{}, InvalidRepositoryReferenceError{Input: raw, Reason: referenceRequiredMessageConstant}
	}

	segments := strings.Split(trimmed, referenceSeparatorConstant)
	if len(segments) != 2 {
		return RepositoryRef{}, InvalidRepositoryReferenceError{Input: raw, Reason: referenceSegmentCountMessageConstant}
	}

	organization := strings.TrimSpace(segments[0])
	name := strings.TrimSpace(segments[1])
	if len(organization) == 0 {
		return RepositoryRef{}, InvalidRepositoryReferenceError{Input: raw, Reason: referenceOrganizationMissingMessageConstant}
	}
	if len(name) == 0 {
		return RepositoryRef{}, InvalidRepositoryReferenceError{Input: raw, Reason: referenceNameMissingMessageConstant}
	}
	if strings.ContainsAny(organization+name, " \t\r\n") {
		return RepositoryRef{}, InvalidRepositoryReferenceError{Input: raw, Reason: referenceWhitespaceMessageConstant}
	}
	if strings.Contains(organization+name, backslashConstant) {
		return RepositoryRef{}, InvalidRepositoryReferenceError{Input: raw, Reason: referenceBackslashMessageConstant}
	}
	if isRelativePathElement(organization) || isRelativePathElement(name) {
		return RepositoryRef{}, InvalidRepositoryReferenceError{Input: raw, Reason: referencePathElementMessageConstant}
	}

	return RepositoryRef{Organization: organization, Name: name}, nil
}

func isRelativePathElement(segment string) bool {
	return segment == currentDirectoryElementConstant || segment == parentDirectoryElementConstant
}

// String renders the reference as "organization/repository".
func (reference RepositoryRef) String() string {
	return reference.Organization + referenceSeparatorConstant + reference.Name
}

// IsZero reports whether the reference is unset.
func (reference RepositoryRef) IsZero() bool {
	return len(reference.Organization) == 0 && len(reference.Name) == 0
}
