package blogger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// BaseURL is the Blogger API v3 endpoint root.
const BaseURL = "https://www.googleapis.com/blogger/v3"

// Post is the request payload for creating a post.
type Post struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels,omitempty"`
}

// PostInfo is the subset of the API's post resource the tool reports on.
type PostInfo struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// APIError is a non-2xx response from the Blogger API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blogger api error %d: %s", e.StatusCode, e.Message)
}

// errorEnvelope matches Google's standard error response body.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the Blogger API v3 through an authorized resty client.
type Client struct {
	rc *resty.Client
}

// NewClient wraps a resty client that already carries OAuth2 credentials and
// the API base URL.
func NewClient(rc *resty.Client) *Client {
	return &Client{rc: rc}
}

// InsertPost creates one post on the given blog. isDraft controls whether the
// post goes live immediately or is saved as a draft.
func (c *Client) InsertPost(ctx context.Context, blogID string, post Post, isDraft bool) (*PostInfo, error) {
	if post.Kind == "" {
		post.Kind = "blogger#post"
	}

	var info PostInfo
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("isDraft", strconv.FormatBool(isDraft)).
		SetBody(post).
		SetResult(&info).
		Post(fmt.Sprintf("/blogs/%s/posts", blogID))
	if err != nil {
		return nil, fmt.Errorf("calling blogger api: %w", err)
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.String()}
		var envelope errorEnvelope
		if json.Unmarshal(resp.Body(), &envelope) == nil && envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
		return nil, apiErr
	}

	return &info, nil
}
