package codes

import (
	"errors"
	"fmt"
	"testing"

	"chrono/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status twirp.ErrorCode
		code   int
	}{
		{core.ErrNotFound, twirp.NotFound, int(core.ErrNotFound)},
		{fmt.Errorf("lookup: %w", core.ErrUnauthorized), twirp.PermissionDenied, int(core.ErrUnauthorized)},
		{core.ErrLTVExceeded, twirp.InvalidArgument, int(core.ErrLTVExceeded)},
		{core.ErrInvalidPrice, twirp.FailedPrecondition, int(core.ErrInvalidPrice)},
		{twirp.InvalidArgumentError("id", "bad"), twirp.InvalidArgument, InvalidArguments},
		{errors.New("db down"), twirp.Internal, 500},
	} {
		twerr := From(tc.err)
		assert.Equal(t, tc.status, twerr.Code(), tc.err.Error())
		assert.Equal(t, tc.code, Get(twerr), tc.err.Error())
	}
}
