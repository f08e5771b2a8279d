package questionbank

import (
	"context"
	"fmt"
	"sync"

	"ap-dojo/internal/logger"
	"ap-dojo/internal/quiz"
)

// LoadError means the question bank could not be fetched or parsed. Nothing
// works without the bank, so callers treat it as fatal.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load question bank from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches the bank once and serves the cached copy afterwards. A failed
// fetch is not cached.
type Loader struct {
	source Source
	log    *logger.Logger

	mu     sync.Mutex
	cached *quiz.Dataset
}

func NewLoader(source Source, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{source: source, log: log}
}

func (l *Loader) Load(ctx context.Context) (*quiz.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}

	raw, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.source.String(), Err: err}
	}

	data, err := decode(raw)
	if err != nil {
		return nil, &LoadError{Source: l.source.String(), Err: fmt.Errorf("malformed document: %w", err)}
	}

	l.cached = data
	l.log.Info("question bank loaded", "source", l.source.String(), "questions", len(data.Questions))
	return data, nil
}
