package service

import (
	"context"
	"testing"

	"tally/internal/domain"
	"tally/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustProducesNegativePaidCommission(t *testing.T) {
	env := newTestEnv(t)
	adj := NewAdjustmentService(env.ledger)
	p := env.makePayee(t, domain.PayeeTypeRepresentative, "10", "15", "")

	c, err := adj.Adjust(context.Background(), p.ID, mustDecimal(t, "20"), "policy violation")
	require.NoError(t, err)
	assert.True(t, c.Amount.Equal(mustDecimal(t, "-20")))
	assert.Equal(t, domain.CommissionStatusPaid, c.Status)
	// Adjustments have no floor: administrative debt may go negative.
	assert.True(t, env.balance(t, p.ID).Equal(mustDecimal(t, "-5")))
}

func TestAdjustRejectsNonPositiveMagnitude(t *testing.T) {
	env := newTestEnv(t)
	adj := NewAdjustmentService(env.ledger)
	p := env.makePayee(t, domain.PayeeTypeAffiliate, "0", "50", "")

	for _, m := range []string{"0", "-20"} {
		_, err := adj.Adjust(context.Background(), p.ID, mustDecimal(t, m), "reason")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "magnitude %s", m)
	}
	assert.True(t, env.balance(t, p.ID).Equal(mustDecimal(t, "50")))
}

func TestAdjustRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	adj := NewAdjustmentService(env.ledger)
	p := env.makePayee(t, domain.PayeeTypeAffiliate, "0", "50", "")

	_, err := adj.Adjust(context.Background(), p.ID, mustDecimal(t, "5"), "   ")
	assert.ErrorIs(t, err, domain.ErrReasonRequired)
}

func TestAdjustmentsAreDistinctFinancialActs(t *testing.T) {
	env := newTestEnv(t)
	adj := NewAdjustmentService(env.ledger)
	p := env.makePayee(t, domain.PayeeTypeAffiliate, "0", "100", "")
	ctx := context.Background()

	// The same magnitude and reason twice must produce two entries - there is
	// no upstream event to dedup against.
	_, err := adj.Adjust(ctx, p.ID, mustDecimal(t, "10"), "late report")
	require.NoError(t, err)
	_, err = adj.Adjust(ctx, p.ID, mustDecimal(t, "10"), "late report")
	require.NoError(t, err)

	var count int64
	env.db.Model(&models.Commission{}).Where("payee_id = ?", p.ID).Count(&count)
	assert.Equal(t, int64(2), count)
	assert.True(t, env.balance(t, p.ID).Equal(mustDecimal(t, "80")))
}
