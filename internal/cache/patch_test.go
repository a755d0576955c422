package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatch_RemoteSuccessKeepsLocalChange(t *testing.T) {
	value := "available"
	reverted := false

	err := Patch(context.Background(),
		func(ctx context.Context) error { value = "booked"; return nil },
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) { reverted = true },
	)

	assert.NoError(t, err)
	assert.Equal(t, "booked", value)
	assert.False(t, reverted)
}

func TestPatch_RemoteFailureReverts(t *testing.T) {
	value := "available"
	remoteErr := errors.New("backend rejected update")

	err := Patch(context.Background(),
		func(ctx context.Context) error { value = "booked"; return nil },
		func(ctx context.Context) error { return remoteErr },
		func(ctx context.Context) { value = "available" },
	)

	assert.ErrorIs(t, err, remoteErr)
	assert.Equal(t, "available", value)
}

func TestPatch_ApplyFailureSkipsRemote(t *testing.T) {
	applyErr := errors.New("stale local state")
	remoteCalled := false

	err := Patch(context.Background(),
		func(ctx context.Context) error { return applyErr },
		func(ctx context.Context) error { remoteCalled = true; return nil },
		func(ctx context.Context) {},
	)

	assert.ErrorIs(t, err, applyErr)
	assert.False(t, remoteCalled)
}
