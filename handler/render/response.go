package render

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Response internal error msg as hint
var ResponseErrorMessageAsHint bool

func init() {
	v := os.Getenv("RESPONSE_ERROR_MESSAGE_AS_HINT")
	ResponseErrorMessageAsHint, _ = strconv.ParseBool(v)
}

type wrapResponse struct {
	status int
	header http.Header
	buf    *bytes.Buffer
}

func (w *wrapResponse) Header() http.Header {
	return w.header
}

func (w *wrapResponse) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *wrapResponse) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *wrapResponse) isJsonContent() bool {
	typ := w.header.Get("Content-Type")
	return strings.HasPrefix(typ, "application/json")
}

type dataResponse struct {
	Data json.RawMessage `json:"data,omitempty"`
}

type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Hint string `json:"hint,omitempty"`
}

// WrapResponse wrap successful json bodies as {"data": ...}
func WrapResponse(wrapData bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := &wrapResponse{
				status: http.StatusOK,
				header: w.Header(),
				buf:    &bytes.Buffer{},
			}

			next.ServeHTTP(ww, r)

			body := ww.buf.Bytes()
			if ww.isJsonContent() {
				if ww.status < http.StatusBadRequest {
					if wrapData {
						body, _ = json.Marshal(dataResponse{Data: bytes.TrimSpace(body)})
					}
				} else if ww.status >= http.StatusInternalServerError {
					var resp errorResponse
					if err := json.Unmarshal(body, &resp); err == nil {
						if ResponseErrorMessageAsHint {
							resp.Hint = resp.Msg
						}
						resp.Msg = http.StatusText(ww.status)
						body, _ = json.Marshal(resp)
					}
				}
			}

			w.WriteHeader(ww.status)
			_, _ = w.Write(body)
		}

		return http.HandlerFunc(fn)
	}
}
