// Package workflow starts executions on the external orchestration engine.
// The backend only fires the execution and reports its identifier; the
// multi-step business logic runs entirely inside the engine.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Starter launches one workflow execution for an intake submission and
// returns an opaque execution identifier. Implementations must not retry;
// a failed start propagates to the caller as-is.
type Starter interface {
	Start(ctx context.Context, argument []byte) (executionName string, err error)
}

// Config holds the connection settings for the Zeebe-backed starter.
type Config struct {
	GatewayAddress         string
	ProcessID              string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
}

// ZeebeStarter starts process instances on a Camunda/Zeebe gateway. The
// submission JSON becomes the instance variables.
type ZeebeStarter struct {
	client    zbc.Client
	processID string
}

// NewZeebeStarter connects to the gateway and verifies the topology once so
// misconfiguration is caught at boot rather than on the first request.
func NewZeebeStarter(ctx context.Context, cfg Config) (*ZeebeStarter, error) {
	client, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("creating zeebe client: %w", err)
	}

	timeout := cfg.ConnectionTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if _, err := client.NewTopologyCommand().Send(tctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to zeebe gateway at %s: %w", cfg.GatewayAddress, err)
	}

	return &ZeebeStarter{client: client, processID: cfg.ProcessID}, nil
}

// Start implements Starter. The returned execution name combines the BPMN
// process id with the broker-assigned instance key, mirroring the
// "workflow/execution" naming the status poller logs against.
func (s *ZeebeStarter) Start(ctx context.Context, argument []byte) (string, error) {
	cmd, err := s.client.NewCreateInstanceCommand().
		BPMNProcessId(s.processID).
		LatestVersion().
		VariablesFromString(string(argument))
	if err != nil {
		return "", fmt.Errorf("attaching workflow variables: %w", err)
	}

	resp, err := cmd.Send(ctx)
	if err != nil {
		return "", fmt.Errorf("starting workflow %s: %w", s.processID, err)
	}
	return fmt.Sprintf("%s/%d", resp.GetBpmnProcessId(), resp.GetProcessInstanceKey()), nil
}

// Close releases the underlying gRPC connection.
func (s *ZeebeStarter) Close() error {
	return s.client.Close()
}
