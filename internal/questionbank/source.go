package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"ap-dojo/internal/quiz"
)

// Source fetches the raw question bank document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

func (s FileSource) String() string {
	return s.Path
}

type HTTPSource struct {
	URL        string
	HTTPClient *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("question bank returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s HTTPSource) String() string {
	return s.URL
}

// NewSource picks an HTTP source for http(s) locations and a file source otherwise.
func NewSource(location string, client *http.Client) Source {
	location = strings.TrimSpace(location)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location, HTTPClient: client}
	}
	return FileSource{Path: location}
}

type document struct {
	Questions *[]quiz.Question `json:"questions"`
}

var errMissingQuestions = errors.New(`document has no "questions" list`)

func decode(raw []byte) (*quiz.Dataset, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Questions == nil {
		return nil, errMissingQuestions
	}
	return &quiz.Dataset{Questions: *doc.Questions}, nil
}
