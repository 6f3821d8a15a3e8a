// Package generation turns a study topic into a deck of flashcards by running
// a short pipeline of LLM stages. In full mode a planning stage proposes
// subtopics and search keywords, a search stage researches them through a
// web-search Tool, and an authoring stage writes the cards. Single mode skips
// straight to authoring.
//
// The package owns the stage prompts, the Q:/A: block parser and the
// Generator interface consumed by the HTTP and CLI front ends. Concrete LLM
// and search providers live under internal/platform and plug in through the
// LLM and Searcher interfaces.
package generation
