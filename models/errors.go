package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Pipeline error taxonomy.
//
// A failed validation is NOT an error: it is recorded on the Change record
// as the "invalid_fields" list and the task ends normally. The sentinels
// below cover the cases where the task itself must stop.
var (
	// ConfigurationError marks a deployment/code mismatch (e.g. an action
	// with no registered validator or applier). Never retried.
	ConfigurationError = errors.New("configuration error")

	// PermanentExternalError marks a business failure on a collaborating
	// service that retrying cannot fix (e.g. a referenced subscription that
	// no longer exists). Never retried.
	PermanentExternalError = errors.New("permanent external error")
)

var (
	ErrUnknownChangeAction  = errors.Wrap(ConfigurationError, "unknown change action")
	ErrUnknownChangeSource  = errors.Wrap(BadParameterError, "unknown change source")
	ErrChangeDataNotAnObject = errors.Wrap(ConfigurationError, "change data is not a JSON object")
)
