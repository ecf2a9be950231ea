// Package scryerr is the error taxonomy shared by every layer of the
// query-to-execution pipeline, from HTTP transport down to individual
// procedures. Each Kind carries a fixed message template; call sites New()
// or Wrap() it the same way the rest of the codebase builds errors.
package scryerr

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrAccessDenied is returned when a request's remote address is not on
	// the configured allowlist.
	ErrAccessDenied = errors.NewKind("access denied for remote address %s")

	// ErrRequestMalformed is returned when an incoming HTTP request cannot be
	// turned into a query: wrong method, missing query parameter, or an
	// unsupported direct-POST content type.
	ErrRequestMalformed = errors.NewKind("malformed request: %s")

	// ErrResponseUnacceptable is returned when none of the client's Accept
	// types match a supported response serialization.
	ErrResponseUnacceptable = errors.NewKind("no acceptable response type among: %s")

	// ErrParse is returned when the SPARQL query text cannot be parsed.
	ErrParse = errors.NewKind("parse error: %s")

	// ErrUnknownProcedure is returned when a Call or VarSubCall handler
	// references a procedure URI absent from the registry.
	ErrUnknownProcedure = errors.NewKind("unknown procedure: %s")

	// ErrBadSpecifier is returned when a predicate carries no specifier (or
	// "_") and the target procedure has no default argument for that role,
	// or when a bound value fails an argument's declared type check.
	ErrBadSpecifier = errors.NewKind("bad specifier %q for procedure %s: %s")

	// ErrUnresolvedVariable is returned when the scheduler cannot find any
	// handler that produces a variable some other handler depends on.
	ErrUnresolvedVariable = errors.NewKind("variable %s is never bound by any handler")

	// ErrDependencyCycle is returned when the handler dependency graph
	// contains a cycle, making execution order impossible to determine.
	ErrDependencyCycle = errors.NewKind("dependency cycle detected among handlers: %s")

	// ErrInvalidReturn is returned when a procedure's callable returns a value
	// that cannot be normalized into zero or more output bindings.
	ErrInvalidReturn = errors.NewKind("procedure %s returned an invalid value: %s")

	// ErrRegistryInvalid is returned when a procedure descriptor fails
	// validation at registration time, or a duplicate procedure URI is
	// registered twice.
	ErrRegistryInvalid = errors.NewKind("invalid procedure registration for %s: %s")
)
