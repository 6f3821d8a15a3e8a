// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTopic is returned when a topic is empty or whitespace-only.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrTopicTooLong is returned when a topic exceeds MaxTopicLength runes.
	ErrTopicTooLong = errors.New("topic is too long")

	// ErrEmptyQuestion is returned when a flashcard has no question text.
	ErrEmptyQuestion = errors.New("flashcard question cannot be empty")

	// ErrEmptyAnswer is returned when a flashcard has no answer text.
	ErrEmptyAnswer = errors.New("flashcard answer cannot be empty")
)
