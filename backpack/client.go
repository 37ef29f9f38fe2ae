package backpack

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"
)

// ErrStatusCode is in the error chain of every error caused by a response status code the client can't
// handle.
var ErrStatusCode = errors.New("unhandled status code")

// ErrNoSuchPage is returned by PageID when no page carries the requested title.
var ErrNoSuchPage = errors.New("no such page")

// RemoteError is returned when a call reaches the service but fails there. For application-level
// failures Code and Message carry the vendor's error verbatim; for transport-level failures Code is
// empty and Status holds the response status code.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backpack: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backpack: %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Unwrap() error {
	if e.Status != 0 && (e.Status < 200 || e.Status > 299) {
		return ErrStatusCode
	}
	return nil
}

// node is a generic XML element. Response shapes vary per endpoint and are flattened into Attrs, so
// there is no point in per-endpoint response structs.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func (n node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n node) child(name string) (node, bool) {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c, true
		}
	}
	return node{}, false
}

// Text returns the element's text content with surrounding whitespace removed.
func (n node) Text() string {
	return strings.TrimSpace(n.Content)
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

// WithHTTPClient is a client option to replace the HTTP client used for all calls.
func WithHTTPClient(hc *http.Client) clientOption {
	return func(c *Client) error {
		c.httpc = hc
		return nil
	}
}

// WithDebug is a client option that additionally copies response bodies to the wire log. Without it,
// bodies are discarded as soon as they are parsed.
func WithDebug() clientOption {
	return func(c *Client) error {
		c.debug = true
		return nil
	}
}

// Client is a Backpack API client for one account. The API token travels in the request envelope, not
// in a header.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	wlog     io.Writer
	debug    bool

	// Lazily populated page title to id map, see PageID.
	pages map[string]int64
}

// NewClient creates a client for the account at http://{account}.backpackit.com, authenticated by the
// given token.
func NewClient(account, token string, opts ...clientOption) (*Client, error) {
	c := &Client{
		endpoint: fmt.Sprintf("http://%s.backpackit.com", account),
		token:    token,
		httpc:    http.DefaultClient,
		wlog:     io.Discard,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// call performs one blocking POST, wrapping the payload in the request envelope, and triages the
// response: non-2xx and success="false" both come back as a *RemoteError.
func (c *Client) call(path, payload string) (*node, error) {
	rid := requestID()
	body := fmt.Sprintf("<request><token>%s</token>%s</request>", c.token, payload)
	_, _ = fmt.Fprintf(c.wlog, "%s > POST %s\n", rid, path)
	if c.debug {
		_, _ = io.WriteString(c.wlog, body)
		_, _ = io.WriteString(c.wlog, "\n")
	}
	r, err := c.httpc.Post(c.endpoint+path, "application/xml", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithFields(log.Fields{
				"op":    path,
				"cause": err,
			}).Warning("Could not close response body")
		}
	}()
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("post %s: read body: %w", path, err)
	}
	_, _ = fmt.Fprintf(c.wlog, "%s < %d\n", rid, r.StatusCode)
	if c.debug {
		_, _ = c.wlog.Write(b)
		_, _ = io.WriteString(c.wlog, "\n")
	}
	if r.StatusCode < 200 || r.StatusCode > 299 {
		log.WithFields(log.Fields{
			"op":   path,
			"code": r.StatusCode,
			"text": string(b),
		}).Error("Unhandled response status code")
		return nil, &RemoteError{Status: r.StatusCode, Message: strings.TrimSpace(string(b))}
	}
	var resp node
	if err := xml.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("post %s: parse: %w", path, err)
	}
	if resp.attr("success") != "true" {
		if ec, ok := resp.child("error"); ok {
			return nil, &RemoteError{Status: r.StatusCode, Code: ec.attr("code"), Message: ec.Text()}
		}
		return nil, &RemoteError{Status: r.StatusCode, Message: "response not marked successful"}
	}
	return &resp, nil
}

// requestID generates the correlation id pairing request and response lines in the wire log.
func requestID() string {
	u, _ := uuid.NewV4()
	if u == nil {
		return "-"
	}
	return u.String()
}

// escape returns s with XML metacharacters escaped, for interpolation into payloads.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// collect flattens every element child of the named wrapper into an Attrs list. A missing wrapper is an
// empty collection, not an error.
func collect(resp *node, wrapper string) []Attrs {
	w, ok := resp.child(wrapper)
	if !ok {
		return nil
	}
	out := make([]Attrs, 0, len(w.Children))
	for _, c := range w.Children {
		out = append(out, attrsOf(c))
	}
	return out
}

// PageID resolves a page title to its id, fetching and caching the page list on first use. The cache is
// refreshed wholesale by InvalidatePages, never piecemeal.
func (c *Client) PageID(title string) (int64, error) {
	if c.pages == nil {
		pages, err := c.ListPages()
		if err != nil {
			return 0, err
		}
		c.pages = make(map[string]int64, len(pages))
		for _, p := range pages {
			if name, ok := p.Get("title"); ok {
				c.pages[name] = p.Int("id")
			}
		}
	}
	id, ok := c.pages[title]
	if !ok {
		return 0, fmt.Errorf("%q: %w", title, ErrNoSuchPage)
	}
	return id, nil
}

// InvalidatePages drops the page title cache so the next PageID call refetches it.
func (c *Client) InvalidatePages() {
	c.pages = nil
}
