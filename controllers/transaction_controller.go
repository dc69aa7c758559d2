package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardjar/rewardjar/store"
	"github.com/rewardjar/rewardjar/utils"
)

// TransactionController exposes the read-only earn/spend log. Transactions
// are append-only; no mutating endpoint exists for them.
type TransactionController struct {
	store *store.Store
}

// NewTransactionController creates a new controller instance.
func NewTransactionController(s *store.Store) *TransactionController {
	return &TransactionController{store: s}
}

// ListTransactions returns the full log, newest first.
func (t *TransactionController) ListTransactions(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyTransactions); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	transactions, err := t.store.ListTransactions()
	if err != nil {
		utils.Sugar.Errorf("list transactions failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to get transactions")
		return
	}

	utils.CacheSetJSON(utils.CacheKeyTransactions, utils.APIResponse{Success: true, Data: transactions}, 0)
	utils.Success(ctx, transactions)
}

// ListTransactionsByToken returns one jar's log entries.
func (t *TransactionController) ListTransactionsByToken(ctx *gin.Context) {
	transactions, err := t.store.TransactionsForToken(ctx.Param("tokenId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Token not found")
			return
		}
		utils.Sugar.Errorf("list token transactions failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to get transactions")
		return
	}

	utils.Success(ctx, transactions)
}
