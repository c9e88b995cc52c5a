// Package client contains client-side building blocks for Bookshelf.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, a typed client for the Bookshelf JSON API. Responses are
//     decoded into this package's own types and checked before they are
//     returned; a body of the wrong shape yields ErrUnexpectedResponse.
//  2. Session, the state of one logged-in user. A Session is created from a
//     successful Login and passed explicitly to every call that needs a
//     bearer token; logging out is dropping the value.
//
// # Error Handling
//
// Non-2xx answers are returned as *APIError, which unwraps to one of the
// sentinels ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrNotFound or
// ErrUnavailable. Transport failures also map to ErrUnavailable.
package client
