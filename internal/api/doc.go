// Package api handles incoming HTTP requests, request validation and
// response formatting for the flashcard generator. It serves both the
// server-rendered flip-card page and a JSON API, translating HTTP concerns
// into calls on a generation.Generator and the caller's session viewer.
package api
