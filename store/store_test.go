package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rewardjar/rewardjar/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Record{}))
	return New(db)
}

func TestCreateTokenStartsAtZero(t *testing.T) {
	s := newTestStore(t)

	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	require.NotEmpty(t, token.ID)
	require.Equal(t, 0, token.Count)
	require.Equal(t, "Stars", token.Name)

	tokens, err := s.ListTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 1)
}

func TestEarnWritesPairedTransaction(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)

	updated, err := s.AdjustTokenCount(token.ID, 5, "Good day")
	require.NoError(t, err)
	require.Equal(t, 5, updated.Count)

	txs, err := s.TransactionsForToken(token.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, models.TxEarn, txs[0].TransactionKind)
	require.Equal(t, 5, txs[0].Amount)
	require.Equal(t, "Stars", txs[0].TokenName)
	require.Equal(t, "Good day", txs[0].Description)
}

func TestSpendLogsPositiveAmount(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	_, err = s.AdjustTokenCount(token.ID, 8, "")
	require.NoError(t, err)

	updated, err := s.AdjustTokenCount(token.ID, -3, "")
	require.NoError(t, err)
	require.Equal(t, 5, updated.Count)

	txs, err := s.TransactionsForToken(token.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	// Newest first.
	require.Equal(t, models.TxSpend, txs[0].TransactionKind)
	require.Equal(t, 3, txs[0].Amount)
	require.Equal(t, models.DefaultSpendDescription, txs[0].Description)
	require.Equal(t, models.DefaultEarnDescription, txs[1].Description)
}

func TestSpendInsufficientBalance(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	_, err = s.AdjustTokenCount(token.ID, 2, "")
	require.NoError(t, err)

	_, err = s.AdjustTokenCount(token.ID, -3, "")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// The failed spend left no trace: balance unchanged, no log entry.
	rec, err := s.GetToken(token.ID)
	require.NoError(t, err)
	require.Equal(t, 2, rec.Count)

	txs, err := s.TransactionsForToken(token.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestAdjustUnknownOrWrongKind(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AdjustTokenCount("missing", 1, "")
	require.ErrorIs(t, err, ErrNotFound)

	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	reward, err := s.CreateReward("Movie Night", "", 5, token.ID)
	require.NoError(t, err)

	// A reward id is not a token id even though both live in one table.
	_, err = s.AdjustTokenCount(reward.ID, 1, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRewardValidatesReference(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateReward("Movie Night", "", 5, "no-such-token")
	require.ErrorIs(t, err, ErrInvalidReference)

	rewards, err := s.ListRewards()
	require.NoError(t, err)
	require.Empty(t, rewards)

	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	reward, err := s.CreateReward("Movie Night", "Popcorn included", 5, token.ID)
	require.NoError(t, err)
	require.True(t, reward.IsActive)
	require.Equal(t, token.ID, reward.TokenType)
}

func TestUpdateRewardRevalidatesOnlyChangedReference(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	reward, err := s.CreateReward("Movie Night", "", 5, token.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteToken(token.ID))

	// Unchanged reference: no lookup, the dangling id is kept as-is.
	updated, err := s.UpdateReward(reward.ID, "Movie Night", "Front row", 6, token.ID)
	require.NoError(t, err)
	require.Equal(t, token.ID, updated.TokenType)
	require.Equal(t, 6, updated.TokenCost)

	// Changed reference must resolve.
	_, err = s.UpdateReward(reward.ID, "Movie Night", "", 6, "no-such-token")
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestToggleRewardTwice(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	reward, err := s.CreateReward("Movie Night", "", 5, token.ID)
	require.NoError(t, err)
	require.True(t, reward.IsActive)

	off, err := s.ToggleRewardActive(reward.ID)
	require.NoError(t, err)
	require.False(t, off.IsActive)
	require.Equal(t, reward.Name, off.Name)
	require.Equal(t, reward.TokenCost, off.TokenCost)
	require.False(t, off.UpdatedAt.Before(reward.UpdatedAt))

	on, err := s.ToggleRewardActive(reward.ID)
	require.NoError(t, err)
	require.True(t, on.IsActive)
	require.False(t, on.UpdatedAt.Before(off.UpdatedAt))
}

func TestUpdateStripsIDAndKind(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)

	rec, err := s.Update(token.ID, map[string]any{
		"id":   "hijacked",
		"kind": models.KindReward,
		"name": "Moons",
	})
	require.NoError(t, err)
	require.Equal(t, token.ID, rec.ID)
	require.Equal(t, models.KindToken, rec.Kind)
	require.Equal(t, "Moons", rec.Name)
}

func TestUpdateTokenMetaNeverTouchesCount(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	_, err = s.AdjustTokenCount(token.ID, 4, "")
	require.NoError(t, err)

	updated, err := s.UpdateTokenMeta(token.ID, map[string]any{"name": "Moons", "count": 99})
	require.NoError(t, err)
	require.Equal(t, "Moons", updated.Name)
	require.Equal(t, 4, updated.Count)
}

func TestDeleteTokenLeavesRewardDangling(t *testing.T) {
	s := newTestStore(t)
	token, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	reward, err := s.CreateReward("Movie Night", "", 5, token.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteToken(token.ID))

	tokens, err := s.ListTokens()
	require.NoError(t, err)
	require.Empty(t, tokens)

	rewards, err := s.ListRewards()
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	require.Equal(t, token.ID, rewards[0].TokenType)
	require.Equal(t, reward.ID, rewards[0].ID)
}

func TestTransactionsForMissingToken(t *testing.T) {
	s := newTestStore(t)
	_, err := s.TransactionsForToken("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListTransactionsAcrossTokens(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateToken("Stars", "#3B82F6", "⭐")
	require.NoError(t, err)
	b, err := s.CreateToken("Hearts", "#EF4444", "❤️")
	require.NoError(t, err)

	_, err = s.AdjustTokenCount(a.ID, 2, "")
	require.NoError(t, err)
	_, err = s.AdjustTokenCount(b.ID, 3, "")
	require.NoError(t, err)

	all, err := s.ListTransactions()
	require.NoError(t, err)
	require.Len(t, all, 2)

	onlyA, err := s.TransactionsForToken(a.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	require.Equal(t, a.ID, onlyA[0].TokenID)
}
