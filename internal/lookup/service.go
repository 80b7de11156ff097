// Package lookup resolves words to dictionary entries through the response
// cache and the API client.
package lookup

import (
	"context"

	"github.com/f3rmion/define/internal/mw"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of words fetched at once.
const DefaultConcurrency = 4

// Fetcher retrieves a raw response body for a word.
type Fetcher interface {
	Fetch(ctx context.Context, word string) ([]byte, error)
}

// Store keeps raw response bodies between runs.
type Store interface {
	Get(ctx context.Context, word string) ([]byte, bool, error)
	Put(ctx context.Context, word string, body []byte) error
}

// Result is the outcome of a successful lookup.
type Result struct {
	mw.Result
	Cached bool
}

// Outcome pairs a word with its lookup result or error.
type Outcome struct {
	Word   string
	Result Result
	Err    error
}

// Service looks words up.
type Service struct {
	fetcher     Fetcher
	store       Store
	concurrency int
	log         zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStore enables caching in s. Without a store every lookup goes to the
// network.
func WithStore(store Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithConcurrency sets how many words LookupAll fetches at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// NewService creates a lookup service on top of fetcher.
func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the entries for word. A fresh cached response is used
// when available; otherwise the word is fetched and, if it decodes to
// entries, cached. Cache failures are logged and never fail the lookup.
func (s *Service) Lookup(ctx context.Context, word string) (Result, error) {
	if res, ok := s.cached(ctx, word); ok {
		return res, nil
	}

	body, err := s.fetcher.Fetch(ctx, word)
	if err != nil {
		return Result{}, err
	}

	res, err := mw.Decode(word, body)
	if err != nil {
		return Result{}, err
	}

	if s.store != nil {
		if err := s.store.Put(ctx, word, body); err != nil {
			s.log.Warn().Err(err).Str("word", word).Msg("cache write failed")
		}
	}

	return Result{Result: res}, nil
}

func (s *Service) cached(ctx context.Context, word string) (Result, bool) {
	if s.store == nil {
		return Result{}, false
	}

	body, ok, err := s.store.Get(ctx, word)
	if err != nil {
		s.log.Warn().Err(err).Str("word", word).Msg("cache read failed")
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}

	res, err := mw.Decode(word, body)
	if err != nil {
		s.log.Warn().Err(err).Str("word", word).Msg("discarding unreadable cached response")
		return Result{}, false
	}
	return Result{Result: res, Cached: true}, true
}

// LookupAll looks up words concurrently. Outcomes are returned in the
// order of words; a failed word does not stop the others.
func (s *Service) LookupAll(ctx context.Context, words []string) []Outcome {
	out := make([]Outcome, len(words))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, word := range words {
		g.Go(func() error {
			res, err := s.Lookup(ctx, word)
			out[i] = Outcome{Word: word, Result: res, Err: err}
			return nil
		})
	}
	g.Wait()

	return out
}
