// Package catalog is a client for a Google-Books-compatible volumes API.
// Upstream documents are decoded into explicit structs and checked before
// use; anything unexpected is reported as common.ErrorDependency.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/netx"
)

// PageSize is the number of volumes requested per search page.
const PageSize = 10

// Book is the subset of a volume the service exposes.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description,omitempty"`
	CoverURL      string   `json:"coverUrl,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`
	Categories    []string `json:"categories"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Query      string  `json:"query"`
	Page       int     `json:"page"`
	TotalItems int     `json:"totalItems"`
	Items      []*Book `json:"items"`
}

type volume struct {
	ID         *string     `json:"id"`
	VolumeInfo *volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string   `json:"title"`
	Authors             []string `json:"authors"`
	Description         string   `json:"description"`
	PublishedDate       string   `json:"publishedDate"`
	PageCount           int      `json:"pageCount"`
	Categories          []string `json:"categories"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
	ImageLinks struct {
		Thumbnail      string `json:"thumbnail"`
		SmallThumbnail string `json:"smallThumbnail"`
	} `json:"imageLinks"`
}

type volumeList struct {
	TotalItems *int      `json:"totalItems"`
	Items      []*volume `json:"items"`
}

// toBook validates v and converts it.
func (v *volume) toBook() (*Book, error) {
	if v == nil || v.ID == nil || *v.ID == "" {
		return nil, errors.New("volume without id")
	}
	if v.VolumeInfo == nil || v.VolumeInfo.Title == "" {
		return nil, fmt.Errorf("volume %s without title", *v.ID)
	}
	info := v.VolumeInfo

	b := &Book{
		ID:            *v.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		Description:   info.Description,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		CoverURL:      info.ImageLinks.Thumbnail,
	}
	if b.CoverURL == "" {
		b.CoverURL = info.ImageLinks.SmallThumbnail
	}
	if b.Authors == nil {
		b.Authors = []string{}
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	for _, id := range info.IndustryIdentifiers {
		if id.Type == "ISBN_13" {
			b.ISBN = id.Identifier
			break
		}
		if id.Type == "ISBN_10" && b.ISBN == "" {
			b.ISBN = id.Identifier
		}
	}
	return b, nil
}

// Client talks to the volumes API at BaseURL.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New returns a Client. timeout bounds each upstream call in addition to
// the caller's context.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient is like New but uses hc for transport.
func NewWithHTTPClient(baseURL, apiKey string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, httpClient: hc}
}

func dependencyError(op string, err error) error {
	return fmt.Errorf("catalog %s: %w: %v", op, common.ErrorDependency, err)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	if c.apiKey != "" {
		if q == nil {
			q = url.Values{}
		}
		q.Set("key", c.apiKey)
	}
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// GetBook fetches one volume. An unknown id yields common.ErrorNotFound.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.NewValidationError("id", "required")
	}

	resp, err := c.get(ctx, "/volumes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, dependencyError("get", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrorNotFound
	}
	if err := netx.CheckStatus(resp, http.StatusOK); err != nil {
		return nil, dependencyError("get", err)
	}

	var v volume
	if err := netx.DecodeJSON(resp.Body, &v); err != nil {
		return nil, dependencyError("get", err)
	}
	book, err := v.toBook()
	if err != nil {
		return nil, dependencyError("get", err)
	}
	return book, nil
}

// Search runs a full-text query. page is 1-based.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.NewValidationError("q", "required")
	}
	if page < 1 {
		return nil, common.NewValidationError("page", "must be positive")
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("langRestrict", "en")
	q.Set("maxResults", strconv.Itoa(PageSize))
	q.Set("startIndex", strconv.Itoa((page-1)*PageSize))

	resp, err := c.get(ctx, "/volumes", q)
	if err != nil {
		return nil, dependencyError("search", err)
	}
	defer resp.Body.Close()

	if err := netx.CheckStatus(resp, http.StatusOK); err != nil {
		return nil, dependencyError("search", err)
	}

	var list volumeList
	if err := netx.DecodeJSON(resp.Body, &list); err != nil {
		return nil, dependencyError("search", err)
	}
	if list.TotalItems == nil {
		return nil, dependencyError("search", errors.New("missing totalItems"))
	}

	out := &SearchPage{Query: query, Page: page, TotalItems: *list.TotalItems, Items: []*Book{}}
	for _, v := range list.Items {
		b, err := v.toBook()
		if err != nil {
			return nil, dependencyError("search", err)
		}
		out.Items = append(out.Items, b)
	}
	return out, nil
}
