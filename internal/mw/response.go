package mw

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotFound means the dictionary has no entry for the word.
	ErrNotFound = errors.New("no dictionary entry")
	// ErrUnauthorized means the API key was missing or rejected.
	ErrUnauthorized = errors.New("api key rejected")
	// ErrInvalidResponse means the body is not a JSON array.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrEmptyWord is returned for blank lookups.
	ErrEmptyWord = errors.New("empty word")
)

// SuggestionsError is returned when the word has no entry but the API
// offered similar words. It matches ErrNotFound with errors.Is.
type SuggestionsError struct {
	Word        string
	Suggestions []string
}

func (e *SuggestionsError) Error() string {
	return fmt.Sprintf("%q: %s (did you mean %s?)", e.Word, ErrNotFound, strings.Join(e.Suggestions, ", "))
}

func (e *SuggestionsError) Unwrap() error {
	return ErrNotFound
}

// Result is a decoded response.
type Result struct {
	Word    string
	Body    []byte
	Entries []gjson.Result
}

// Decode interprets a response body. Objects in the top-level array are
// entries. An array holding only strings is a list of suggestions.
func Decode(word string, body []byte) (Result, error) {
	root := gjson.ParseBytes(body)
	if !gjson.ValidBytes(body) || !root.IsArray() {
		// The API reports key problems as plain text with a 200 status.
		if strings.Contains(strings.ToLower(string(body)), "api key") {
			return Result{}, ErrUnauthorized
		}
		return Result{}, fmt.Errorf("%q: %w", word, ErrInvalidResponse)
	}

	var (
		entries     []gjson.Result
		suggestions []string
	)
	for _, v := range root.Array() {
		switch {
		case v.IsObject():
			entries = append(entries, v)
		case v.Type == gjson.String:
			suggestions = append(suggestions, v.Str)
		}
	}

	if len(entries) == 0 {
		if len(suggestions) > 0 {
			return Result{}, &SuggestionsError{Word: word, Suggestions: suggestions}
		}
		return Result{}, fmt.Errorf("%q: %w", word, ErrNotFound)
	}

	return Result{Word: word, Body: body, Entries: entries}, nil
}
