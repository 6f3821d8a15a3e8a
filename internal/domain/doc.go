// Package domain contains the core entities of the flashcard generator: the
// topic a user studies and the question/answer cards produced for it. It has
// no knowledge of language models, HTTP or sessions.
package domain
