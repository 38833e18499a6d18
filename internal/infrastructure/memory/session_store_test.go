package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

func seedSession(t *testing.T, companyID string) model.NegotiationSession {
	t.Helper()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	req, err := model.NewBookingRequest(
		companyID, "",
		decimal.NewFromInt(50_000), decimal.NewFromInt(45_000), decimal.NewFromInt(100_000),
		"", now, 30, now,
	)
	require.NoError(t, err)
	scores := model.ScorePacket{
		IntentScore: 0.32, CapacityScore: 0.55,
		PD7: 0.02, PD14: 0.08, PD30: 0.15,
		Category: valueobject.RiskCategoryYellow,
	}
	session, err := model.NewNegotiationSession(req, scores, nil, 3, now)
	require.NoError(t, err)
	return session
}

func TestSessionStore_UpdateCreatesAndFinds(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	created, err := store.Update(ctx, "c-1", func(current *model.NegotiationSession) (model.NegotiationSession, error) {
		require.Nil(t, current)
		return seedSession(t, "c-1"), nil
	})
	require.NoError(t, err)

	found, err := store.Find(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID(), found.ID())

	_, err = store.Find(ctx, "c-2")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestSessionStore_UpdateSerializesPerKey(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now().UTC()
	offer := model.Offer{
		UpfrontAmount:  decimal.Zero,
		SettlementDays: 10,
		ApprovedAmount: decimal.NewFromInt(50_000),
	}

	// Many concurrent turns for the same company: exactly maxRounds of them
	// must land, and every later one must see the terminal state.
	var wg sync.WaitGroup
	var mu sync.Mutex
	terminalErrs := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "c-1", func(current *model.NegotiationSession) (model.NegotiationSession, error) {
				cur := seedSession(t, "c-1")
				if current != nil {
					cur = *current
				}
				return cur.RecordCounterOffer("msg", offer, decimal.NewFromInt(3_040), now)
			})
			if err != nil {
				mu.Lock()
				terminalErrs++
				mu.Unlock()
				assert.ErrorIs(t, err, valueobject.ErrSessionTerminal)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 7, terminalErrs, "only three rounds fit before the session terminates")
	final, err := store.Find(ctx, "c-1")
	require.NoError(t, err)
	assert.True(t, final.State().Equal(valueobject.SessionStateEscalated))
	assert.Len(t, final.Transcript(), 3)
}

func TestSessionStore_FailedUpdateKeepsPrevious(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	created, err := store.Update(ctx, "c-1", func(*model.NegotiationSession) (model.NegotiationSession, error) {
		return seedSession(t, "c-1"), nil
	})
	require.NoError(t, err)

	_, err = store.Update(ctx, "c-1", func(*model.NegotiationSession) (model.NegotiationSession, error) {
		return model.NegotiationSession{}, assert.AnError
	})
	require.Error(t, err)

	found, err := store.Find(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID(), found.ID())
}

func TestSessionStore_ResetIdempotent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_, err := store.Update(ctx, "c-1", func(*model.NegotiationSession) (model.NegotiationSession, error) {
		return seedSession(t, "c-1"), nil
	})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx, "c-1"))
	_, err = store.Find(ctx, "c-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	require.NoError(t, store.Reset(ctx, "c-1"))
	require.NoError(t, store.Reset(ctx, "never-existed"))
}

func TestSessionStore_StoredCopyCarriesNoEvents(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Now().UTC()
	offer := model.Offer{SettlementDays: 10, ApprovedAmount: decimal.NewFromInt(50_000)}

	returned, err := store.Update(ctx, "c-1", func(*model.NegotiationSession) (model.NegotiationSession, error) {
		return seedSession(t, "c-1").RecordCounterOffer("msg", offer, decimal.NewFromInt(3_040), now)
	})
	require.NoError(t, err)
	assert.Len(t, returned.DomainEvents(), 1)

	found, err := store.Find(ctx, "c-1")
	require.NoError(t, err)
	assert.Empty(t, found.DomainEvents(), "persisted copy must not replay events")
}
