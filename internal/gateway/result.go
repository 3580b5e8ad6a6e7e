package gateway

import (
	"errors"
	"fmt"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// FetchStatus enumerates the outcomes of a feed request.
type FetchStatus int

const (
	// FetchSucceeded means HTTP 200 with a decodable JSON array.
	FetchSucceeded FetchStatus = iota
	// FetchNotFound means HTTP 404: the username does not exist.
	FetchNotFound
	// FetchRemoteError means any other HTTP status.
	FetchRemoteError
	// FetchTransportError means no usable response: network failure or an undecodable body.
	FetchTransportError
)

func (s FetchStatus) String() string {
	switch s {
	case FetchSucceeded:
		return "succeeded"
	case FetchNotFound:
		return "not found"
	case FetchRemoteError:
		return "remote error"
	case FetchTransportError:
		return "transport error"
	}
	return fmt.Sprintf("FetchStatus(%d)", int(s))
}

// FetchResult is the outcome of FetchEvents. Only the fields relevant to
// Status are set.
type FetchResult struct {
	Status     FetchStatus
	StatusCode int
	Events     []domain.Event
	Malformed  []domain.MalformedEvent
	Detail     error
}

func transportFailure(err error) FetchResult {
	return FetchResult{Status: FetchTransportError, Detail: err}
}

// ErrUserNotFound is returned by FetchResult.Err for FetchNotFound.
var ErrUserNotFound = errors.New("user not found")

// RemoteError reports a non-200, non-404 response.
type RemoteError struct {
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("GitHub API returned status %d", e.StatusCode)
}

// TransportError reports a request that produced no usable response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network connection error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Err converts a non-successful result into an error, or returns nil.
func (r FetchResult) Err() error {
	switch r.Status {
	case FetchSucceeded:
		return nil
	case FetchNotFound:
		return ErrUserNotFound
	case FetchRemoteError:
		return &RemoteError{StatusCode: r.StatusCode}
	default:
		return &TransportError{Err: r.Detail}
	}
}
