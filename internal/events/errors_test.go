package events

import (
	"errors"
	"os"
	"syscall"
	"testing"
)

func TestClassifyDaemonError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "socket not found",
			err:      os.ErrNotExist,
			wantCode: ErrSocketNotFound,
		},
		{
			name:     "permission denied",
			err:      os.ErrPermission,
			wantCode: ErrSocketPermission,
		},
		{
			name:     "connection refused",
			err:      syscall.ECONNREFUSED,
			wantCode: ErrConnectionRefused,
		},
		{
			name:     "anything else",
			err:      errors.New("boom"),
			wantCode: ErrDaemonNotRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDaemonError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("Expected nil classification for nil error, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected a classification, got nil")
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", got.Code, tt.wantCode)
			}
			if got.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}
}
