// Package sheetdb talks to one SheetDB collection over its REST API.
//
// The client holds configuration only. Each method maps to exactly one HTTP
// request; nothing is retried or cached.
package sheetdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/idilsaglam/sheetdb/internal/logx"
	"github.com/idilsaglam/sheetdb/internal/model"
)

const maxErrorBody = 256

// ErrDotID is returned for the ids "." and "..", which would address the
// collection instead of a row once a server normalizes the path.
var ErrDotID = errors.New("sheetdb: id is a dot segment")

// Config addresses one collection: BaseURL + "/" + APIID.
type Config struct {
	BaseURL string
	APIID   string
}

// Client implements list/create/update/delete against one collection.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger replaces the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for cfg. The base URL must parse; config validation
// guarantees that for values coming from the config package.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIID) == "" {
		return nil, errors.New("sheetdb: empty api id")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("sheetdb: parse base url: %w", err)
	}
	c := &Client{
		base:   base.JoinPath(cfg.APIID),
		http:   http.DefaultClient,
		logger: logx.Pkg("sheetdb"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the collection URL.
func (c *Client) Endpoint() string { return c.base.String() }

type batch struct {
	Data []model.Record `json:"data"`
}

// List returns every record in sheet order.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	body, err := c.do(ctx, "list", http.MethodGet, c.base, nil)
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("list_done", "count", len(records))
	return records, nil
}

// Create appends rec, which must already carry its id.
func (c *Client) Create(ctx context.Context, rec model.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("sheetdb create: %w", err)
	}
	_, err := c.do(ctx, "create", http.MethodPost, c.base, batch{Data: []model.Record{rec}})
	return err
}

// Update replaces every field of the row whose id column equals id.
func (c *Client) Update(ctx context.Context, id string, rec model.Record) error {
	if err := checkRowID(id); err != nil {
		return fmt.Errorf("sheetdb update: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("sheetdb update: %w", err)
	}
	_, err := c.do(ctx, "update", http.MethodPatch, c.rowURL(id), batch{Data: []model.Record{rec}})
	return err
}

// Delete removes the row whose id column equals id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := checkRowID(id); err != nil {
		return fmt.Errorf("sheetdb delete: %w", err)
	}
	_, err := c.do(ctx, "delete", http.MethodDelete, c.rowURL(id), nil)
	return err
}

func checkRowID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return model.ErrMissingID
	case id == "." || id == "..":
		return ErrDotID
	}
	return nil
}

// rowURL appends /id/{id} without cleaning the path, so the id always stays
// one escaped segment.
func (c *Client) rowURL(id string) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/id/" + id
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + "/id/" + url.PathEscape(id)
	return &u
}

func (c *Client) do(ctx context.Context, op, method string, u *url.URL, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("sheetdb %s: marshal: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Method: method, URL: u.String(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request_failed", "op", op, "method", method, "err", err)
		return nil, &TransportError{Op: op, Method: method, URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Method: method, URL: u.String(), StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	durMS := float64(time.Since(start).Microseconds()) / 1000.0
	c.logger.Debug("request_done",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"dur_ms", durMS,
		"resp_bytes", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Op:         op,
			Method:     method,
			URL:        u.String(),
			StatusCode: resp.StatusCode,
			Body:       logx.Truncate(string(body), maxErrorBody),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return body, nil
}

// decodeRecords validates the list body element by element so a bad row
// names its index instead of surfacing as untyped data.
func decodeRecords(body []byte) ([]model.Record, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ParseError{Op: "list", Index: -1, Err: err}
	}

	records := make([]model.Record, 0, len(raw))
	for i, row := range raw {
		var rec model.Record
		for key, dst := range map[string]*string{"id": &rec.ID, "a": &rec.A, "b": &rec.B} {
			v, ok := row[key]
			if !ok {
				if key == "id" {
					return nil, &ParseError{Op: "list", Index: i, Err: model.ErrMissingID}
				}
				continue
			}
			if err := decodeCell(v, dst); err != nil {
				return nil, &ParseError{Op: "list", Index: i, Err: fmt.Errorf("column %q: %w", key, err)}
			}
		}
		if strings.TrimSpace(rec.ID) == "" {
			return nil, &ParseError{Op: "list", Index: i, Err: model.ErrMissingID}
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeCell accepts a string cell, and a JSON number for sheets that were
// edited by hand and return numeric cells.
func decodeCell(v json.RawMessage, dst *string) error {
	if err := json.Unmarshal(v, dst); err == nil {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return fmt.Errorf("not a string: %s", logx.Truncate(string(v), 32))
	}
	*dst = n.String()
	return nil
}
