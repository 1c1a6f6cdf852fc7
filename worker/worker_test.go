package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w := TickWorker{Delay: 5 * time.Millisecond, ErrDelay: 5 * time.Millisecond}

	ticks := 0
	err := w.StartTick(ctx, func(ctx context.Context) error {
		ticks++
		if ticks == 3 {
			cancel()
		}

		if ticks%2 == 0 {
			return errors.New("EOF")
		}

		return nil
	})

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 3, ticks)
}
