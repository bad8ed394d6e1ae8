// Package discord is a minimal REST adapter implementing the scanner's
// ChatPort. It speaks just enough of the Discord HTTP API for polling and
// posting; gateway/websocket connectivity is deliberately out of scope
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "codefence/internal/platform/errors"
	"codefence/internal/services/scanner/domain"
)

const defaultBaseURL = "https://discord.com/api/v10"

// Client talks to the Discord REST API with a bot token
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option mutates the client during New
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests)
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithHTTPClient swaps the underlying http client
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// New creates a Client for the given bot token
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// wire shapes; only the fields we read

type wireUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

type wireMember struct {
	Nick string `json:"nick"`
}

type wireMessage struct {
	ID      string      `json:"id"`
	Content string      `json:"content"`
	Author  wireUser    `json:"author"`
	Member  *wireMember `json:"member,omitempty"`
}

// Self returns the bot's own user id
func (c *Client) Self(ctx context.Context) (string, error) {
	var u wireUser
	if err := c.get(ctx, "/users/@me", nil, &u); err != nil {
		return "", err
	}
	return u.ID, nil
}

// MessagesAfter lists up to limit messages in ch newer than after, oldest
// first. Discord returns newest first, so the page is reversed here
func (c *Client) MessagesAfter(ctx context.Context, ch domain.ChannelID, after domain.MessageID, limit int) ([]domain.Message, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		q.Set("after", string(after))
	}

	var page []wireMessage
	if err := c.get(ctx, fmt.Sprintf("/channels/%s/messages", ch), q, &page); err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(page))
	for i := len(page) - 1; i >= 0; i-- {
		wm := page[i]
		name := wm.Author.Username
		if wm.Member != nil && wm.Member.Nick != "" {
			name = wm.Member.Nick
		}
		out = append(out, domain.Message{
			ID:          domain.MessageID(wm.ID),
			ChannelID:   ch,
			AuthorID:    wm.Author.ID,
			AuthorName:  name,
			AuthorIsBot: wm.Author.Bot,
			Content:     wm.Content,
		})
	}
	return out, nil
}

// Send posts content to ch
func (c *Client) Send(ctx context.Context, ch domain.ChannelID, content string) error {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return err
	}
	return c.post(ctx, fmt.Sprintf("/channels/%s/messages", ch), body, nil)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUpstream, "discord request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return perr.Upstreamf("discord %s %s: status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUpstream, "discord decode")
	}
	return nil
}
