// Package upstream is the client for the marketplace subgraph. It sends one
// fixed query per call and reports transport and decode failures as
// classified errors; protocol-level errors are returned inside the Result.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"demo/minimart/internal/model"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
	"github.com/pkg/errors"
)

// OrdersQuery lists the OrderListed events matching the given tokens and
// contracts.
const OrdersQuery = `query GetOrders($tokenIds: [BigInt!], $nftContracts: [Bytes!]) {
  orderListeds(where: {tokenId_in: $tokenIds, nftContract_in: $nftContracts}) {
    id
    orderId
    seller
    nftContract
    tokenId
    price
    blockNumber
    transactionHash
  }
}`

var (
	ErrTransport = errors.New("upstream transport failure")
	ErrDecode    = errors.New("upstream response could not be decoded")
)

// Outcome labels reported to an Observer.
const (
	OutcomeOK            = "ok"
	OutcomeTransport     = "transport_error"
	OutcomeDecode        = "decode_error"
	OutcomeProtocolError = "protocol_error"
)

// Observer is notified of the outcome of every Execute call.
type Observer interface {
	ObserveUpstream(outcome string)
}

// Params is the GraphQL-over-HTTP request body.
type Params struct {
	Query     string          `json:"query"`
	Variables model.Variables `json:"variables,omitempty"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of a GraphQL errors array.
type Error struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Result is a decoded GraphQL response. Data is kept as received.
type Result struct {
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     []Error         `json:"errors,omitempty"`
	Extensions map[string]any  `json:"extensions,omitempty"`
}

// HasData reports whether the response carried a non-null data member.
func (r Result) HasData() bool {
	trimmed := bytes.TrimSpace(r.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// DefaultMaxResponseBytes caps how much of an upstream response is read.
const DefaultMaxResponseBytes = 8 << 20

type Client struct {
	url      string
	query    string
	http     *http.Client
	observer Observer
	maxBytes int64
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithMaxResponseBytes sets the largest response body accepted. Larger
// bodies are reported as decode failures. Non-positive values are ignored.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithQuery replaces OrdersQuery. The document is validated the same way.
func WithQuery(q string) Option {
	return func(c *Client) { c.query = q }
}

// New returns a client posting to url. The query document must parse and
// contain exactly one query operation.
func New(url string, opts ...Option) (*Client, error) {
	c := &Client{url: url, query: OrdersQuery, http: http.DefaultClient, maxBytes: DefaultMaxResponseBytes}
	for _, opt := range opts {
		opt(c)
	}
	if err := checkQuery(c.query); err != nil {
		return nil, err
	}
	return c, nil
}

func checkQuery(q string) error {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: q})
	if gqlErr != nil {
		return errors.Errorf("unable to parse query document: %s", gqlErr.Message)
	}
	if n := len(doc.Operations); n != 1 {
		return errors.Errorf("query document must have exactly one operation, found %d", n)
	}
	if op := doc.Operations[0].Operation; op != ast.Query {
		return errors.Errorf("query document must be a query, found %s", op)
	}
	return nil
}

// Execute posts the query with vars. A non-nil error wraps ErrTransport or
// ErrDecode. Upstream-reported errors are returned in Result.Errors with a
// nil error, whatever the HTTP status: GraphQL servers report request errors
// with a 4xx and a regular errors array. A non-2xx response without errors is
// a transport failure. The body must be a JSON object.
func (c *Client) Execute(ctx context.Context, vars model.Variables) (Result, error) {
	body, err := json.Marshal(Params{Query: c.query, Variables: vars})
	if err != nil {
		c.observe(OutcomeTransport)
		return Result{}, errors.Wrapf(ErrTransport, "marshal params: %v", err)
	}

	status, respBody, err := c.doPost(ctx, body)
	if err != nil {
		if errors.Is(err, ErrDecode) {
			c.observe(OutcomeDecode)
		} else {
			c.observe(OutcomeTransport)
		}
		return Result{}, err
	}

	res, err := decodeResult(respBody)
	if err != nil {
		c.observe(OutcomeDecode)
		return Result{}, err
	}

	switch {
	case len(res.Errors) > 0:
		c.observe(OutcomeProtocolError)
	case status < 200 || status > 299:
		c.observe(OutcomeTransport)
		return Result{}, errors.Wrapf(ErrTransport, "%v responded %d without GraphQL errors", c.url, status)
	default:
		c.observe(OutcomeOK)
	}
	return res, nil
}

func decodeResult(b []byte) (Result, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{}, errors.Wrap(ErrDecode, "response body is not a JSON object")
	}
	var res Result
	if err := json.Unmarshal(trimmed, &res); err != nil {
		return Result{}, errors.Wrapf(ErrDecode, "unmarshal response: %v", err)
	}
	return res, nil
}

func (c *Client) doPost(ctx context.Context, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, errors.Wrapf(ErrTransport, "building request for endpoint [%v]: %v", c.url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(ErrTransport, "post %v: %v", c.url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return 0, nil, errors.Wrapf(ErrTransport, "reading response from %v: %v", c.url, err)
	}
	if int64(len(respBody)) > c.maxBytes {
		return 0, nil, errors.Wrapf(ErrDecode, "response from %v exceeds %d bytes", c.url, c.maxBytes)
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) observe(outcome string) {
	if c.observer != nil {
		c.observer.ObserveUpstream(outcome)
	}
}
