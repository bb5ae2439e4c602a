package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// DefaultPerPage is the page size used when listing and searching gists.
const DefaultPerPage = 100

// TokenEnvVars are consulted in order when no explicit token is given.
var TokenEnvVars = []string{"GH_TOKEN", "GITHUB_TOKEN"}

// TokenFromEnv returns the first non-empty token found in TokenEnvVars.
func TokenFromEnv() string {
	for _, name := range TokenEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ErrNotFound indicates that no gist with the requested description exists
// among the owner's gists.
var ErrNotFound = errors.New("gist not found")

// FetchError reports a failed GitHub API request.
type FetchError struct {
	Op         string // e.g. "list gists"
	Ref        string // owner or owner/name, when known
	StatusCode int    // zero for transport errors
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.Ref, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to the GitHub Gist API. The zero Token leaves requests
// unauthenticated; private gists then fail with a FetchError.
type Client struct {
	BaseURL string
	Token   string
	PerPage int
	HTTP    *http.Client
}

// NewClient creates a Client. An empty baseURL selects the public GitHub API.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		PerPage: DefaultPerPage,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// fileRef is a file entry as it appears in the gists listing payload.
type fileRef struct {
	Filename string `json:"filename"`
	RawURL   string `json:"raw_url"`
}

// orderedFiles preserves the JSON object order of a gist's files map,
// which a plain Go map would lose.
type orderedFiles []fileRef

func (o *orderedFiles) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("gist files: expected JSON object")
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return err
		}
		var ref fileRef
		if err := dec.Decode(&ref); err != nil {
			return err
		}
		*o = append(*o, ref)
	}
	_, err = dec.Token()
	return err
}

type gistEntry struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Files       orderedFiles `json:"files"`
}

// Find locates the gist whose description matches ref.Name among the
// owner's gists and downloads its file contents in API order.
func (c *Client) Find(ctx context.Context, ref Reference) (*Gist, error) {
	for page := 1; ; page++ {
		entries, err := c.listPage(ctx, ref.Owner, page)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Description == ref.Name {
				return c.download(ctx, ref, e)
			}
		}
		if len(entries) < c.perPage() {
			break
		}
	}
	return nil, &FetchError{Op: "find gist", Ref: ref.String(), Err: ErrNotFound}
}

// List returns the first page of a user's gists.
func (c *Client) List(ctx context.Context, owner string) ([]Summary, error) {
	entries, err := c.listPage(ctx, owner, 1)
	if err != nil {
		return nil, err
	}
	return toSummaries(entries), nil
}

// Search queries public gists for the given query string.
func (c *Client) Search(ctx context.Context, query string) ([]Summary, error) {
	u := c.BaseURL + "/gists/public?" + url.Values{
		"q":        {query},
		"per_page": {strconv.Itoa(c.perPage())},
	}.Encode()
	body, err := c.get(ctx, u, "search gists", query)
	if err != nil {
		return nil, err
	}
	var entries []gistEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &FetchError{Op: "search gists", Ref: query, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return toSummaries(entries), nil
}

func (c *Client) listPage(ctx context.Context, owner string, page int) ([]gistEntry, error) {
	u := c.BaseURL + "/users/" + url.PathEscape(owner) + "/gists?" + url.Values{
		"per_page": {strconv.Itoa(c.perPage())},
		"page":     {strconv.Itoa(page)},
	}.Encode()
	body, err := c.get(ctx, u, "list gists", owner)
	if err != nil {
		return nil, err
	}
	var entries []gistEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &FetchError{Op: "list gists", Ref: owner, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return entries, nil
}

// download fetches every file's raw content, preserving entry order.
func (c *Client) download(ctx context.Context, ref Reference, entry gistEntry) (*Gist, error) {
	g := &Gist{
		ID:          entry.ID,
		Description: entry.Description,
		Files:       make([]File, 0, len(entry.Files)),
	}
	for _, f := range entry.Files {
		content, err := c.get(ctx, f.RawURL, "fetch file", ref.String()+":"+f.Filename)
		if err != nil {
			return nil, err
		}
		g.Files = append(g.Files, File{Name: f.Filename, Content: content})
	}
	return g, nil
}

func (c *Client) get(ctx context.Context, rawURL, op, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Ref: ref, Err: err}
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}
	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Ref: ref, Err: err}
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &FetchError{Op: op, Ref: ref, Err: err}
	}
	if res.StatusCode >= 300 {
		return nil, &FetchError{Op: op, Ref: ref, StatusCode: res.StatusCode}
	}
	return body, nil
}

func (c *Client) perPage() int {
	if c.PerPage > 0 {
		return c.PerPage
	}
	return DefaultPerPage
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func toSummaries(entries []gistEntry) []Summary {
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		out = append(out, Summary{ID: e.ID, Description: e.Description})
	}
	return out
}
