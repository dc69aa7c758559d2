package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyTokenDelta(t *testing.T) {
	cases := []struct {
		name   string
		count  int
		amount int
		want   int
	}{
		{"earn from zero", 0, 5, 5},
		{"earn on balance", 7, 3, 10},
		{"spend within balance", 10, -4, 6},
		{"spend to zero", 5, -5, 0},
		{"overspend clamps", 3, -10, 0},
		{"zero delta", 8, 0, 8},
		{"large negative clamps", 0, -1 << 30, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ApplyTokenDelta(tc.count, tc.amount))
		})
	}
}

func TestApplyTokenDeltaNeverNegative(t *testing.T) {
	for count := 0; count <= 20; count++ {
		for amount := -30; amount <= 30; amount++ {
			got := ApplyTokenDelta(count, amount)
			require.GreaterOrEqual(t, got, 0)
			if count+amount >= 0 {
				require.Equal(t, count+amount, got)
			}
		}
	}
}

func TestCanAfford(t *testing.T) {
	require.True(t, CanAfford(5, 5))
	require.True(t, CanAfford(6, 5))
	require.False(t, CanAfford(4, 5))
	require.False(t, CanAfford(0, 1))
}

func TestTxDescription(t *testing.T) {
	require.Equal(t, "Good day", TxDescription("Good day", TxEarn))
	require.Equal(t, DefaultEarnDescription, TxDescription("", TxEarn))
	require.Equal(t, DefaultSpendDescription, TxDescription("", TxSpend))
}

func TestRecordKindGuards(t *testing.T) {
	token := Record{Kind: KindToken, Name: "Stars"}
	reward := Record{Kind: KindReward, Name: "Movie Night"}
	tx := Record{Kind: KindTransaction, TransactionKind: TxEarn}

	require.True(t, token.IsToken())
	require.False(t, token.IsReward())
	require.True(t, reward.IsReward())
	require.True(t, tx.IsTransaction())

	mixed := []Record{token, reward, tx}
	require.Len(t, FilterTokens(mixed), 1)
	require.Len(t, FilterRewards(mixed), 1)
	require.Len(t, FilterTransactions(mixed), 1)
}
