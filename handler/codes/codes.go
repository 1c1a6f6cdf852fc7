package codes

import (
	"errors"
	"strconv"

	"chrono/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) twirp.Error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From twirp error of err, ledger error codes are kept as custom code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	var twerr twirp.Error
	switch code {
	case core.ErrNotFound:
		twerr = twirp.NotFoundError(code.Message())
	case core.ErrUnauthorized:
		twerr = twirp.NewError(twirp.PermissionDenied, code.Message())
	case core.ErrInvalidPrice, core.ErrInsufficientLiquidity:
		twerr = twirp.NewError(twirp.FailedPrecondition, code.Message())
	default:
		twerr = twirp.NewError(twirp.InvalidArgument, code.Message())
	}

	return With(twerr, int(code))
}

// Get get error code
func Get(err twirp.Error) int {
	if v := err.Meta(CustomCodeKey); v != "" {
		if code, e := strconv.Atoi(v); e == nil {
			return code
		}
	}

	switch err.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(err.Code())
	}
}
