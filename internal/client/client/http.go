package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/netx"
)

// now is a seam for session expiry checks in tests.
var now = time.Now

// HTTPClient talks to the Bookshelf API at baseURL.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx body.
func (c *HTTPClient) do(ctx context.Context, sess *Session, method, path string, body, out any, want ...int) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := netx.CheckStatus(resp, want...); err != nil {
		return toAPIError(err)
	}

	if out == nil {
		return nil
	}
	if err := netx.DecodeJSON(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// toAPIError turns a netx.StatusError into an *APIError, reading the
// server's {"error","code"} body when present.
func toAPIError(err error) error {
	var se *netx.StatusError
	if !errors.As(err, &se) {
		return err
	}
	apiErr := &APIError{Status: se.Code}
	var eb errorBody
	if json.Unmarshal([]byte(se.Body), &eb) == nil {
		apiErr.Code = eb.Code
		apiErr.Message = eb.Error
	}
	return apiErr
}

func requireSession(sess *Session) error {
	if !sess.Active(now()) {
		return ErrNotLoggedIn
	}
	return nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, nil, http.MethodGet, "/health", nil, nil, http.StatusOK)
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*User, error) {
	req := map[string]string{"username": username, "email": email, "password": password}

	var u User
	if err := c.do(ctx, nil, http.MethodPost, "/users", req, &u, http.StatusCreated); err != nil {
		return nil, err
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates with identifier (username or email, as the server is
// configured) and returns a Session.
func (c *HTTPClient) Login(ctx context.Context, identifier, password string) (*Session, error) {
	req := map[string]string{"identifier": identifier, "password": password}

	var res LoginResult
	if err := c.do(ctx, nil, http.MethodPost, "/auth", req, &res, http.StatusOK); err != nil {
		return nil, err
	}
	if err := res.validate(); err != nil {
		return nil, err
	}
	return NewSession(&res), nil
}

func (c *HTTPClient) Profile(ctx context.Context, sess *Session) (*User, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var u User
	if err := c.do(ctx, sess, http.MethodGet, "/users", nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, sess *Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.do(ctx, sess, http.MethodDelete, "/users", nil, nil, http.StatusOK)
}

func (c *HTTPClient) GetBook(ctx context.Context, id string) (*Book, error) {
	var b Book
	if err := c.do(ctx, nil, http.MethodGet, "/books/"+url.PathEscape(id), nil, &b, http.StatusOK); err != nil {
		return nil, err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) SearchBooks(ctx context.Context, query string, page int) (*SearchPage, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))

	var p SearchPage
	if err := c.do(ctx, nil, http.MethodGet, "/books?"+q.Encode(), nil, &p, http.StatusOK); err != nil {
		return nil, err
	}
	for _, b := range p.Items {
		if b == nil {
			return nil, fmt.Errorf("%w: null book", ErrUnexpectedResponse)
		}
		if err := b.validate(); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// ListReviews lists reviews for a book, a user, or, with both empty, the
// latest reviews.
func (c *HTTPClient) ListReviews(ctx context.Context, bookID, userID string, limit int) ([]*Review, error) {
	q := url.Values{}
	if bookID != "" {
		q.Set("bookId", bookID)
	}
	if userID != "" {
		q.Set("userId", userID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/reviews"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list []*Review
	if err := c.do(ctx, nil, http.MethodGet, path, nil, &list, http.StatusOK); err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("%w: review list is null", ErrUnexpectedResponse)
	}
	for _, r := range list {
		if r == nil {
			return nil, fmt.Errorf("%w: null review", ErrUnexpectedResponse)
		}
		if err := r.validate(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, sess *Session, bookID, comment string, rating int) (*Review, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	req := map[string]any{"bookId": bookID, "comment": comment, "rating": rating}

	var r Review
	if err := c.do(ctx, sess, http.MethodPost, "/reviews", req, &r, http.StatusCreated); err != nil {
		return nil, err
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) UpdateReview(ctx context.Context, sess *Session, id, comment string, rating int) (*Review, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	req := map[string]any{"comment": comment, "rating": rating}

	var r Review
	if err := c.do(ctx, sess, http.MethodPatch, "/reviews/"+url.PathEscape(id), req, &r, http.StatusOK); err != nil {
		return nil, err
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, sess *Session, id string) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.do(ctx, sess, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil, http.StatusOK)
}
