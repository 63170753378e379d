// Package services implements the petition engagement rules: signature
// application and deduplication, the success latch, comment appends and
// reactions, and the secret check guarding edits. This file centralizes the
// service-level error values so handlers can map them to HTTP results
// consistently.
package services

import "errors"

var (
	// ErrPetitionNotFound indicates that the requested petition does not exist.
	ErrPetitionNotFound = errors.New("petition not found")

	// ErrCommentNotFound indicates that the petition has no comment with the
	// requested id.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrAlreadySigned is returned when an identity attempts to sign a
	// petition it has already signed.
	ErrAlreadySigned = errors.New("petition already signed")

	// ErrForbidden is returned when the supplied secret does not match the
	// petition's write secret.
	ErrForbidden = errors.New("incorrect petition password")

	// ErrEmptyComment is returned when a comment is empty after trimming.
	ErrEmptyComment = errors.New("comment text is empty")

	// ErrInvalidReaction is returned for a reaction other than like or dislike.
	ErrInvalidReaction = errors.New("invalid reaction")
)
