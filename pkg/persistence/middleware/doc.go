// Package middleware wraps a ports.StateStore with encryption at rest and
// PII redaction of stored dialog states.
package middleware
