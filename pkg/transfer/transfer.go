package transfer

import (
	"context"
	"errors"
	"fmt"
)

// TransferRequest moves money to a connected destination account. Amount is in
// minor currency units (cents).
type TransferRequest struct {
	Destination string
	AmountMinor int64
	Currency    string
	Description string
}

type TransferResponse struct {
	Reference string
	Status    string
}

// Gateway is the external money-movement API. It is injected into the payout
// processor so tests can substitute a fake.
type Gateway interface {
	CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error)
}

// ErrTransfersDisabled means the gateway explicitly refuses transfers for this
// destination (e.g. onboarding incomplete). Callers fall back to a manual
// payout rather than failing.
var ErrTransfersDisabled = errors.New("transfers disabled for destination")

// RejectionError is a definitive refusal from the gateway. The message is the
// gateway's own, surfaced verbatim to the operator.
type RejectionError struct {
	Code    string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("gateway rejected transfer: %s (%s)", e.Message, e.Code)
}
