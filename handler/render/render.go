package render

import (
	"encoding/json"
	"net/http"

	"chrono/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write error as {code, msg}, ledger rejections keep their error code
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	enc := json.NewEncoder(w)
	if err := enc.Encode(errorResponse{Code: codes.Get(twerr), Msg: twerr.Msg()}); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("params", err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
