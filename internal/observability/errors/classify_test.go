package errors

import (
	goerrors "errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/target/deptdash/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"app error", apperrors.Unauthorized(401, "token expired"), "unauthorized"},
		{"wrapped app error", fmt.Errorf("list: %w", apperrors.Server(500, "boom")), "server_error"},
		{"network wraps op error", apperrors.Network(&net.OpError{Op: "dial", Err: goerrors.New("refused")}), "network_error"},
		{"plain op error", fmt.Errorf("dial: %w", &net.OpError{Op: "dial", Err: goerrors.New("refused")}), "errors_errorstring"},
		{"plain string error", goerrors.New("x"), "errors_errorstring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
