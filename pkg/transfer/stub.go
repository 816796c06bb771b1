package transfer

import (
	"context"
	"fmt"
	"time"
)

// StubGateway is a no-op gateway for development; every transfer succeeds.
type StubGateway struct{}

func (s *StubGateway) CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	ref := fmt.Sprintf("stub_tr_%d", time.Now().UnixNano())
	return &TransferResponse{Reference: ref, Status: "created"}, nil
}
