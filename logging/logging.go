// Package logging provides the structured request/response and procedure
// audit trail emitted per request: a held *logrus.Entry, .WithFields(...)
// per event, one line per occurrence, rather than free-text request dumps.
package logging

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger emits one structured log line per inbound request and one
// per outgoing response, plus an audit line per procedure-call failure.
type RequestLogger struct {
	log *logrus.Entry
}

// New builds a RequestLogger writing through l. Pass logrus.StandardLogger()
// for the process default, or a logger configured to write under a
// particular log directory.
func New(l *logrus.Logger) *RequestLogger {
	return &RequestLogger{log: l.WithField("system", "scry")}
}

// RequestID is the correlation id threaded through a single request's
// log lines, minted from github.com/google/uuid the same way the graph
// package names its subgraphs.
type RequestID string

// NewRequestID mints a fresh correlation id for one inbound request.
func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

// Request logs an inbound request: method, remote address, and the raw
// query text (if any was found on the request).
func (r *RequestLogger) Request(id RequestID, method, remoteAddr, query string) {
	r.log.WithFields(logrus.Fields{
		"event":      "request",
		"request_id": string(id),
		"method":     method,
		"remote":     remoteAddr,
		"query":      query,
	}).Info("received request")
}

// Response logs an outgoing response: the negotiated MIME type, row count,
// elapsed time, and error (if the query failed).
func (r *RequestLogger) Response(id RequestID, mimeType string, rowCount int, d time.Duration, err error) {
	fields := logrus.Fields{
		"event":      "response",
		"request_id": string(id),
		"mime_type":  mimeType,
		"rows":       rowCount,
		"duration":   d.String(),
		"success":    err == nil,
	}
	if err != nil {
		fields["err"] = err.Error()
		r.log.WithFields(fields).Warn("request failed")
		return
	}
	r.log.WithFields(fields).Info("sent response")
}

// ProcedureFailure logs a single procedure invocation's failure, keyed by
// the PAU it was invoked at. Called from the handler package's Call and
// VarSubCall handlers when a procedure's callable returns an error.
func (r *RequestLogger) ProcedureFailure(id RequestID, pau string, err error) {
	r.log.WithFields(logrus.Fields{
		"event":      "procedure_failure",
		"request_id": string(id),
		"pau":        pau,
		"err":        err.Error(),
	}).Warn("procedure invocation failed")
}
