// Package apiclient is the typed repository client for the ticket service.
// Pure request/response mapping: no business logic, no retries — failures
// propagate to the caller, which owns user-facing reporting.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/k1networth/fieldops/internal/profile"
	"github.com/k1networth/fieldops/internal/ticket"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListTickets(ctx context.Context) ([]ticket.Ticket, error) {
	var out []ticket.Ticket
	if err := c.doJSON(ctx, http.MethodGet, "/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTicket looks a ticket up by its human-facing code. The service answers
// with a possibly-empty array; the first match wins.
func (c *Client) GetTicket(ctx context.Context, code string) (ticket.Ticket, error) {
	var matches []ticket.Ticket
	path := "/tickets?ticket_id=" + url.QueryEscape(code)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &matches); err != nil {
		return ticket.Ticket{}, err
	}
	if len(matches) == 0 {
		return ticket.Ticket{}, ErrNotFound
	}
	return matches[0], nil
}

// PatchTicket sends only the changed fields and returns the merged ticket.
// Atomic from the caller's point of view: on any error nothing changed
// server-side.
func (c *Client) PatchTicket(ctx context.Context, id string, p ticket.Patch) (ticket.Ticket, error) {
	var out ticket.Ticket
	err := c.doJSON(ctx, http.MethodPatch, "/tickets/"+url.PathEscape(id), p, &out)
	if err != nil {
		var se *ServerError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return ticket.Ticket{}, ErrNotFound
		}
		return ticket.Ticket{}, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context) (profile.User, error) {
	var u profile.User
	if err := c.doJSON(ctx, http.MethodGet, "/user", nil, &u); err != nil {
		return profile.User{}, err
	}
	return u, nil
}

func (c *Client) PutUser(ctx context.Context, u profile.User) (profile.User, error) {
	var out profile.User
	if err := c.doJSON(ctx, http.MethodPut, "/user", u, &out); err != nil {
		return profile.User{}, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &ServerError{Op: op, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &NetworkError{Op: op, Err: err}
		}
	}
	return nil
}
