package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balance-app/balance-sync/internal/service"
	"github.com/balance-app/balance-sync/internal/transport"
	"github.com/balance-app/balance-sync/models"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"gather timeout", transport.ErrGatherTimeout, MsgGatherTimeout},
		{"connect timeout", transport.ErrConnectTimeout, MsgConnectTimeout},
		{"bad descriptor", transport.ErrBadDescriptor, MsgBadDescriptor},
		{"channel failed", transport.ErrChannelFailed, MsgChannelFailed},
		{"closed", transport.ErrClosed, MsgConnectionClosed},
		{"pairing rejected", service.ErrPairingRejected, MsgPairingRejected},
		{"ack timeout", service.ErrAckTimeout, MsgAckTimeout},
		{"unexpected message", service.ErrUnexpectedMessage, MsgUnexpectedMessage},
		{"snapshot version", models.ErrSnapshotVersion, MsgSnapshotRejected},
		{"wrapped error still maps", fmt.Errorf("session: %w", service.ErrAckTimeout), MsgAckTimeout},
		{"unknown error falls back", fmt.Errorf("boom"), MsgGenericSessionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}
