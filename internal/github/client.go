package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ap-dojo/internal/logger"
	"ap-dojo/internal/quiz"
)

const (
	DefaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github.v3+json"
	answersDir     = "data/answers"
)

type Options struct {
	BaseURL    string
	PagesURL   string
	HTTPClient *http.Client
	// StrictLookup fails the commit when the existing file cannot be read,
	// instead of treating it as absent.
	StrictLookup bool
	Logger       *logger.Logger
	Now          func() time.Time
}

// Client appends answers to a per-user CSV file through the contents API.
type Client struct {
	baseURL      string
	pagesURL     string
	httpClient   *http.Client
	strictLookup bool
	log          *logger.Logger
	now          func() time.Time
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:      baseURL,
		pagesURL:     opts.PagesURL,
		httpClient:   httpClient,
		strictLookup: opts.StrictLookup,
		log:          log,
		now:          now,
	}
}

type lookupOutcome int

const (
	lookupFound lookupOutcome = iota
	lookupAbsent
	lookupUnknown
)

func (o lookupOutcome) String() string {
	switch o {
	case lookupFound:
		return "found"
	case lookupAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

type existingFile struct {
	outcome lookupOutcome
	content string
	sha     string
	err     error
}

type contentResponse struct {
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// CommitAnswers reads the user's CSV file, appends one row per answer and
// writes it back with the revision token from the read.
func (c *Client) CommitAnswers(ctx context.Context, cfg quiz.RemoteConfig, user string, answers []quiz.AnswerRecord) (quiz.SyncReceipt, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return quiz.SyncReceipt{}, &ConfigError{Reason: "token is empty"}
	}
	if strings.TrimSpace(user) == "" {
		return quiz.SyncReceipt{}, &ConfigError{Reason: "user is empty"}
	}
	if len(answers) == 0 {
		return quiz.SyncReceipt{}, nil
	}

	target, err := TargetFromPagesURL(c.pagesURL)
	if err != nil {
		return quiz.SyncReceipt{}, err
	}

	fileURL := c.fileURL(target, user)
	existing := c.lookup(ctx, cfg.Token, fileURL)
	switch existing.outcome {
	case lookupUnknown:
		if c.strictLookup {
			return quiz.SyncReceipt{}, existing.err
		}
		c.log.Warn("existing answers file unreadable; writing as new", "user", user, "error", existing.err)
	case lookupAbsent:
		c.log.Debug("answers file not found; creating", "user", user)
	}

	content := buildContent(existing.content, answers)
	request := putRequest{
		Message: fmt.Sprintf("Add %d answers for %s (%s)", len(answers), user, c.now().UTC().Format("2006-01-02")),
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		SHA:     existing.sha,
	}

	var payload putResponse
	if err := c.doJSON(ctx, http.MethodPut, fileURL, cfg.Token, request, &payload); err != nil {
		return quiz.SyncReceipt{}, err
	}

	c.log.Info("answers committed", "owner", target.Owner, "repo", target.Repo, "user", user, "answers", len(answers), "lookup", existing.outcome.String())
	return quiz.SyncReceipt{
		ContentSHA: payload.Content.SHA,
		CommitSHA:  payload.Commit.SHA,
		HTMLURL:    payload.Content.HTMLURL,
	}, nil
}

func (c *Client) fileURL(target Target, user string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s/%s.csv",
		c.baseURL,
		url.PathEscape(target.Owner),
		url.PathEscape(target.Repo),
		answersDir,
		url.PathEscape(user),
	)
}

func (c *Client) lookup(ctx context.Context, token, fileURL string) existingFile {
	var payload contentResponse
	err := c.doJSON(ctx, http.MethodGet, fileURL, token, nil, &payload)
	if err != nil {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return existingFile{outcome: lookupAbsent}
		}
		return existingFile{outcome: lookupUnknown, err: err}
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return existingFile{outcome: lookupUnknown, err: &RemoteError{StatusCode: http.StatusOK, Err: fmt.Errorf("decode content: %w", err)}}
	}
	return existingFile{outcome: lookupFound, content: string(decoded), sha: payload.SHA}
}

func (c *Client) doJSON(ctx context.Context, method, fullURL, token string, requestBody any, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("Accept", acceptHeader)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &RemoteError{Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		remoteErr := &RemoteError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil {
			remoteErr.Message = strings.TrimSpace(payload.Message)
		}
		return remoteErr
	}

	if responseBody == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(responseBody); err != nil {
		return &RemoteError{StatusCode: response.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
