package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a play session is not registered.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuestionSetNotFound indicates the backing store has no such question set.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrSourceUnavailable wraps transport and status failures of a question source.
	ErrSourceUnavailable = errors.New("question source unavailable")
	// ErrMalformedQuestionSet indicates the source payload is not a sequence of records.
	ErrMalformedQuestionSet = errors.New("question set is not a sequence")
	// ErrEmptyQuestionSet indicates the source yielded no records.
	ErrEmptyQuestionSet = errors.New("question set is empty")
)
