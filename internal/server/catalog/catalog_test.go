package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumeJSON = `{
  "id": "B1",
  "volumeInfo": {
    "title": "Dune",
    "authors": ["Frank Herbert"],
    "description": "Spice.",
    "publishedDate": "1965",
    "pageCount": 412,
    "categories": ["Fiction"],
    "industryIdentifiers": [
      {"type": "ISBN_10", "identifier": "0441013597"},
      {"type": "ISBN_13", "identifier": "9780441013593"}
    ],
    "imageLinks": {"thumbnail": "http://img/dune.jpg"}
  }
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", "k", 2*time.Second)
}

func TestGetBook_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes/B1", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		_, _ = io.WriteString(w, volumeJSON)
	})

	b, err := c.GetBook(context.Background(), "B1")
	require.NoError(t, err)

	assert.Equal(t, &Book{
		ID:            "B1",
		Title:         "Dune",
		Authors:       []string{"Frank Herbert"},
		Description:   "Spice.",
		CoverURL:      "http://img/dune.jpg",
		PublishedDate: "1965",
		PageCount:     412,
		ISBN:          "9780441013593",
		Categories:    []string{"Fiction"},
	}, b)
}

func TestGetBook_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"error":{}}`, common.ErrorNotFound},
		{"upstream failure", http.StatusServiceUnavailable, `down`, common.ErrorDependency},
		{"not json", http.StatusOK, `<html>`, common.ErrorDependency},
		{"missing id", http.StatusOK, `{"volumeInfo":{"title":"x"}}`, common.ErrorDependency},
		{"missing title", http.StatusOK, `{"id":"B1","volumeInfo":{}}`, common.ErrorDependency},
		{"missing volumeInfo", http.StatusOK, `{"id":"B1"}`, common.ErrorDependency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := c.GetBook(context.Background(), "B1")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGetBook_EmptyID(t *testing.T) {
	c := New("http://unused", "", time.Second)
	_, err := c.GetBook(context.Background(), " ")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestGetBook_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url, "", time.Second)
	_, err := c.GetBook(context.Background(), "B1")
	assert.ErrorIs(t, err, common.ErrorDependency)
}

func TestSearch_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "dune", q.Get("q"))
		assert.Equal(t, "en", q.Get("langRestrict"))
		assert.Equal(t, "10", q.Get("maxResults"))
		assert.Equal(t, "10", q.Get("startIndex"))
		_, _ = io.WriteString(w, `{"totalItems": 11, "items": [`+volumeJSON+`]}`)
	})

	p, err := c.Search(context.Background(), " dune ", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 11, p.TotalItems)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "Dune", p.Items[0].Title)
}

func TestSearch_NoItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"kind":"books#volumes","totalItems":0}`)
	})

	p, err := c.Search(context.Background(), "zzz", 1)
	require.NoError(t, err)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}

func TestSearch_Errors(t *testing.T) {
	c := New("http://unused", "", time.Second)
	_, err := c.Search(context.Background(), "", 1)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = c.Search(context.Background(), "x", 0)
	assert.ErrorIs(t, err, common.ErrorValidation)

	bad := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[{"id":"x"}]}`)
	})
	_, err = bad.Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, common.ErrorDependency)

	malformed := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"totalItems":1,"items":[{"id":"x"}]}`)
	})
	_, err = malformed.Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, common.ErrorDependency)
}
