package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lutefd/crypto-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

type mockLogRepository struct {
	repository.LogRepository
	closeCalled bool
	closeErr    error
}

func (m *mockLogRepository) Close() error {
	m.closeCalled = true
	return m.closeErr
}

type mockPartitionManager struct {
	startCalled bool
	startErr    error
}

func (m *mockPartitionManager) Start(ctx context.Context) error {
	m.startCalled = true
	return m.startErr
}

func TestRunWorker(t *testing.T) {
	tests := []struct {
		name           string
		partitionMgr   *mockPartitionManager
		closeErr       error
		expectedErrMsg string
		expectStart    bool
		setupContext   func() (context.Context, context.CancelFunc)
	}{
		{
			name:           "Runs until the context expires",
			partitionMgr:   &mockPartitionManager{},
			expectedErrMsg: "context deadline exceeded",
			expectStart:    true,
			setupContext: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 100*time.Millisecond)
			},
		},
		{
			name:           "Partition manager start error",
			partitionMgr:   &mockPartitionManager{startErr: errors.New("partition manager error")},
			expectedErrMsg: "failed to start partition manager: partition manager error",
			expectStart:    true,
			setupContext: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 100*time.Millisecond)
			},
		},
		{
			name:           "Context cancelled immediately",
			partitionMgr:   &mockPartitionManager{},
			expectedErrMsg: "context canceled",
			expectStart:    false,
			setupContext: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, func() {}
			},
		},
		{
			name:           "Close error does not mask the result",
			partitionMgr:   &mockPartitionManager{},
			closeErr:       errors.New("close failed"),
			expectedErrMsg: "context deadline exceeded",
			expectStart:    true,
			setupContext: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 50*time.Millisecond)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.setupContext()
			defer cancel()

			logRepo := &mockLogRepository{closeErr: tt.closeErr}
			deps := &dependencies{logRepo: logRepo, partitionMgr: tt.partitionMgr}

			err := runWorker(ctx, deps)

			assert.EqualError(t, err, tt.expectedErrMsg)
			assert.Equal(t, tt.expectStart, tt.partitionMgr.startCalled)
			assert.True(t, logRepo.closeCalled)
		})
	}
}
