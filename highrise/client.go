package highrise

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"
)

// ErrStatusCode is in the error chain of every error caused by a response status code the client can't
// handle.
var ErrStatusCode = errors.New("unhandled status code")

// RemoteError is returned when a call reaches the service but fails there, either at the transport level
// (non-2xx status) or because the service reported an application error.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("highrise: %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return ErrStatusCode
}

type clientOption func(*Client) error

// WithEndpoint is a client option to set the base URL when building a client with NewClient, overriding
// the one derived from the account name. This is meant to be used in tests only.
func WithEndpoint(endpoint string) clientOption {
	return func(c *Client) error {
		c.endpoint = endpoint
		return nil
	}
}

// WithWireLog is a client option to be passed to NewClient in order to log all requests and response
// status lines to the specified log file. Useful for debugging the client itself, shouldn't be needed in
// normal operation.
func WithWireLog(pathname string) clientOption {
	return func(c *Client) error {
		f, err := os.OpenFile(pathname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err == nil {
			c.wlog = f
		}
		return err
	}
}

// WithHTTPClient is a client option to replace the HTTP client used for all calls, e.g., to set a
// timeout.
func WithHTTPClient(hc *http.Client) clientOption {
	return func(c *Client) error {
		c.httpc = hc
		return nil
	}
}

// WithDebug is a client option that additionally copies response bodies to the wire log. Without it,
// bodies are discarded as soon as they are parsed, which keeps the log bounded across many sequential
// calls.
func WithDebug() clientOption {
	return func(c *Client) error {
		c.debug = true
		return nil
	}
}

// Client is a Highrise API client for one account. The authentication token is carried as the basic auth
// user on every request, per the vendor's documentation.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	wlog     io.Writer
	debug    bool

	registry  *Registry
	resources map[string]resource
}

// NewClient creates a client for the account at http://{account}.highrisehq.com, authenticated by the
// given token.
func NewClient(account, token string, opts ...clientOption) (*Client, error) {
	c := &Client{
		endpoint:  fmt.Sprintf("http://%s.highrisehq.com", account),
		token:     token,
		httpc:     http.DefaultClient,
		wlog:      io.Discard,
		registry:  NewRegistry(),
		resources: resourcesByName(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Registry returns the client's type registry, e.g., to Define additional types before making calls.
func (c *Client) Registry() *Registry {
	return c.registry
}

// roundTrip performs one blocking request and hands a 2xx response body to the entity layer. A nil node
// is returned when the response body is empty (create/update/destroy calls).
func (c *Client) roundTrip(method, path string, q url.Values, body string) (any, error) {
	rid := requestID()
	u := c.endpoint + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.SetBasicAuth(c.token, "X")
	if body != "" {
		req.Header.Set("Content-Type", "application/xml")
	}
	_, _ = fmt.Fprintf(c.wlog, "%s > %s %s\n", rid, method, u)
	r, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithFields(log.Fields{
				"op":    method + " " + path,
				"cause": err,
			}).Warning("Could not close response body")
		}
	}()
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	_, _ = fmt.Fprintf(c.wlog, "%s < %d\n", rid, r.StatusCode)
	if c.debug {
		_, _ = c.wlog.Write(b)
		_, _ = io.WriteString(c.wlog, "\n")
	}
	switch {
	case r.StatusCode >= 200 && r.StatusCode < 300:
		if len(b) == 0 {
			return nil, nil
		}
		v, err := c.registry.ParseBytes(b)
		if err != nil {
			return nil, fmt.Errorf("%s %s: parse: %w", method, path, err)
		}
		return v, nil
	default:
		log.WithFields(log.Fields{
			"op":   method + " " + path,
			"code": r.StatusCode,
			"text": string(b),
		}).Error("Unhandled response status code")
		return nil, &RemoteError{Status: r.StatusCode, Message: strings.TrimSpace(string(b))}
	}
}

// requestID generates the correlation id pairing request and response lines in the wire log.
func requestID() string {
	u, _ := uuid.NewV4()
	if u == nil {
		return "-"
	}
	return u.String()
}

// records converts a parsed response into a list of typed records, skipping any array elements that are
// not records.
func records(v any) []Record {
	switch v := v.(type) {
	case Record:
		return []Record{v}
	case []any:
		var recs []Record
		for _, el := range v {
			if rec, ok := el.(Record); ok {
				recs = append(recs, rec)
			}
		}
		return recs
	default:
		return nil
	}
}

// List fetches a resource collection, e.g., List("people", nil). Options may be nil.
func (c *Client) List(name string, opts *ListOptions) ([]Record, error) {
	res, ok := c.resources[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource: %s", name)
	}
	q, err := opts.values()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", name, err)
	}
	v, err := c.roundTrip(http.MethodGet, "/"+res.plural+".xml", q, "")
	if err != nil {
		return nil, err
	}
	return records(v), nil
}

// Get fetches a single resource by id, e.g., Get("people", 42).
func (c *Client) Get(name string, id int64) (Record, error) {
	res, ok := c.resources[name]
	if !ok || res.singular == "" {
		return Record{}, fmt.Errorf("resource has no single-id fetch: %s", name)
	}
	v, err := c.roundTrip(http.MethodGet, fmt.Sprintf("/%s/%d.xml", res.plural, id), nil, "")
	if err != nil {
		return Record{}, err
	}
	rec, ok := v.(Record)
	if !ok {
		return Record{}, fmt.Errorf("get %s/%d: response is not a single record", name, id)
	}
	return rec, nil
}

// SubList fetches a nested collection of a resource, e.g., SubList("people", 42, "notes").
func (c *Client) SubList(name string, id int64, sub string) ([]Record, error) {
	res, ok := c.resources[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource: %s", name)
	}
	found := false
	for _, s := range res.subs {
		if s == sub {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("resource %s has no sub-resource %s", name, sub)
	}
	v, err := c.roundTrip(http.MethodGet, fmt.Sprintf("/%s/%d/%s.xml", res.plural, id, sub), nil, "")
	if err != nil {
		return nil, err
	}
	return records(v), nil
}

// Create posts an XML document to a resource collection and returns the created record if the service
// echoes one back.
func (c *Client) Create(name string, body string) (Record, error) {
	res, ok := c.resources[name]
	if !ok {
		return Record{}, fmt.Errorf("unknown resource: %s", name)
	}
	v, err := c.roundTrip(http.MethodPost, "/"+res.plural+".xml", nil, body)
	if err != nil {
		return Record{}, err
	}
	rec, _ := v.(Record)
	return rec, nil
}

// Update puts an XML document to a single resource.
func (c *Client) Update(name string, id int64, body string) error {
	res, ok := c.resources[name]
	if !ok || res.singular == "" {
		return fmt.Errorf("resource has no single-id update: %s", name)
	}
	_, err := c.roundTrip(http.MethodPut, fmt.Sprintf("/%s/%d.xml", res.plural, id), nil, body)
	return err
}

// Destroy deletes a single resource.
func (c *Client) Destroy(name string, id int64) error {
	res, ok := c.resources[name]
	if !ok || res.singular == "" {
		return fmt.Errorf("resource has no single-id destroy: %s", name)
	}
	_, err := c.roundTrip(http.MethodDelete, fmt.Sprintf("/%s/%d.xml", res.plural, id), nil, "")
	return err
}
