// Package repository contains the MySQL data access layer.  This file
// defines the sentinel errors shared across repositories so handlers
// and services can map failure modes onto HTTP responses without
// inspecting SQL details.
package repository

import "errors"

// ErrConferenceNotFound indicates the requested conference does not
// exist.  Handlers translate this into a 404.
var ErrConferenceNotFound = errors.New("conference not found")

// ErrSessionNotFound indicates the requested session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrSubmissionNotFound indicates the requested submission does not
// exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrVersionConflict indicates a compare-and-swap update lost to a
// concurrent edit: the caller's version token is stale.  Handlers
// translate this into a 409 so the client can reload and retry.
var ErrVersionConflict = errors.New("version conflict")

// ErrSubmissionScheduled indicates an assignment would give a
// submission a second active presentation.  The service layer rejects
// scheduled submissions up front; this sentinel is the transactional
// backstop for assignments racing each other.
var ErrSubmissionScheduled = errors.New("submission already scheduled")
