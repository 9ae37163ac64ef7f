package operator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/storage"
)

type failingOpener struct {
	err error
}

func (f failingOpener) Write(context.Context) (*storage.Writer, error) {
	return nil, f.err
}

type recordingAction struct {
	performed bool
}

func (r *recordingAction) Perform(context.Context, *storage.Writer) error {
	r.performed = true
	return nil
}

func TestProcess_WriteOpenError(t *testing.T) {
	d := NewOperatorDelegator(failingOpener{err: errors.New("too many connections")}, 2)
	d.Start()
	defer d.Stop()

	action := &recordingAction{}
	err := d.Process(context.Background(), action)

	assert.EqualError(t, err, "too many connections")
	assert.False(t, action.performed)
}

func TestProcess_CancelledContext(t *testing.T) {
	d := NewOperatorDelegator(failingOpener{err: errors.New("unused")}, 1)
	d.Start()
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	action := &recordingAction{}
	err := d.Process(ctx, action)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, apperror.Is(err, apperror.KindCanceled))
	assert.False(t, action.performed)
}

func TestProcess_AfterStop(t *testing.T) {
	d := NewOperatorDelegator(failingOpener{err: errors.New("unused")}, 1)
	d.Start()
	d.Stop()
	d.Stop()

	err := d.Process(context.Background(), &recordingAction{})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestNewOperatorDelegator_MinimumOneWorker(t *testing.T) {
	d := NewOperatorDelegator(failingOpener{}, 0)
	assert.Equal(t, 1, d.numWorkers)
}
