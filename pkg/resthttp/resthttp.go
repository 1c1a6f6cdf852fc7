package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"
)

var runOnce sync.Once
var restyClient *resty.Client

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// Error non 2xx response
type Error struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %d %s", e.Status, e.Code, e.Msg)
}

// ParseResponse decode the body into obj, or into an *Error for a failed response
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		e := &Error{Status: r.StatusCode()}
		if err := json.Unmarshal(r.Body(), e); err != nil || e.Msg == "" {
			e.Msg = string(r.Body())
		}
		return e
	}

	if obj == nil {
		return nil
	}

	return json.Unmarshal(r.Body(), obj)
}
