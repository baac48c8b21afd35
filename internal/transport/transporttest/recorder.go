// Package transporttest provides a recording transport.Doer for service tests.
package transporttest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
)

// Call is one recorded request
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// Responder produces the response body (or error) for a call
type Responder func(c Call) (string, error)

// Recorder records every call and answers from Respond. The zero value
// answers "{}".
type Recorder struct {
	Respond Responder

	mu    sync.Mutex
	calls []Call
}

// Reply returns a Recorder answering body to every call
func Reply(body string) *Recorder {
	return &Recorder{Respond: func(Call) (string, error) { return body, nil }}
}

// Fail returns a Recorder failing every call with err
func Fail(err error) *Recorder {
	return &Recorder{Respond: func(Call) (string, error) { return "", err }}
}

func (r *Recorder) Get(ctx context.Context, path string, query url.Values, out any) error {
	return r.handle(Call{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (r *Recorder) Post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return r.handle(Call{Method: http.MethodPost, Path: path, Body: b}, out)
}

func (r *Recorder) handle(c Call, out any) error {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	respond := r.Respond
	r.mu.Unlock()

	body := "{}"
	if respond != nil {
		var err error
		if body, err = respond(c); err != nil {
			return err
		}
	}
	if out == nil || body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

// Calls returns a copy of the recorded calls
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Last returns the most recent call, or the zero Call
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}
	}
	return r.calls[len(r.calls)-1]
}
