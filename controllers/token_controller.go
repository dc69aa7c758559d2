package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rewardjar/rewardjar/store"
	"github.com/rewardjar/rewardjar/utils"
)

// TokenController manages token jar endpoints: CRUD plus the earn/spend
// balance mutations.
type TokenController struct {
	store *store.Store
}

// NewTokenController creates a new controller instance.
func NewTokenController(s *store.Store) *TokenController {
	return &TokenController{store: s}
}

// adjustRequest is the earn/spend payload. Description is optional and
// defaults to a fixed placeholder in the store.
type adjustRequest struct {
	Amount      int    `json:"amount" binding:"required,min=1"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// ListTokens returns all jars.
func (t *TokenController) ListTokens(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyTokens); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	tokens, err := t.store.ListTokens()
	if err != nil {
		utils.Sugar.Errorf("list tokens failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to get tokens")
		return
	}

	utils.CacheSetJSON(utils.CacheKeyTokens, utils.APIResponse{Success: true, Data: tokens}, 0)
	utils.Success(ctx, tokens)
}

// CreateToken creates a new jar with a zero count.
func (t *TokenController) CreateToken(ctx *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required,min=1,max=100"`
		Color string `json:"color" binding:"required,min=1,max=7"`
		Icon  string `json:"icon" binding:"required,min=1,max=50"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Validation error: name, color and icon are required")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, "Token name cannot be empty")
		return
	}

	token, err := t.store.CreateToken(name, req.Color, req.Icon)
	if err != nil {
		utils.Sugar.Errorf("create token failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create token")
		return
	}

	utils.InvalidateCache(utils.CacheKeyTokens)
	utils.SuccessMsg(ctx, http.StatusCreated, token, "Token created successfully")
}

// UpdateToken patches a jar's display fields. The count never moves through
// this endpoint; only earn/spend touch it.
func (t *TokenController) UpdateToken(ctx *gin.Context) {
	var req struct {
		Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
		Color *string `json:"color" binding:"omitempty,min=1,max=7"`
		Icon  *string `json:"icon" binding:"omitempty,min=1,max=50"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Validation error")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := utils.Sanitize(strings.TrimSpace(*req.Name))
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, "Token name cannot be empty")
			return
		}
		fields["name"] = name
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if len(fields) == 0 {
		utils.Error(ctx, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	token, err := t.store.UpdateTokenMeta(ctx.Param("id"), fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Token not found")
			return
		}
		utils.Sugar.Errorf("update token failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update token")
		return
	}

	utils.InvalidateCache(utils.CacheKeyTokens)
	utils.SuccessMsg(ctx, http.StatusOK, token, "Token updated successfully")
}

// DeleteToken removes a jar. Rewards referencing it are left with a
// dangling tokenType on purpose.
func (t *TokenController) DeleteToken(ctx *gin.Context) {
	if err := t.store.DeleteToken(ctx.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Token not found")
			return
		}
		utils.Sugar.Errorf("delete token failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to delete token")
		return
	}

	utils.InvalidateCache(utils.CacheKeyTokens)
	utils.Message(ctx, "Token deleted successfully")
}

// AddTokens earns tokens into a jar and appends the paired earn
// transaction.
func (t *TokenController) AddTokens(ctx *gin.Context) {
	var req adjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Validation error: amount must be a positive integer")
		return
	}

	token, err := t.store.AdjustTokenCount(ctx.Param("id"), req.Amount, utils.Sanitize(req.Description))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Token not found")
			return
		}
		utils.Sugar.Errorf("earn tokens failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to earn tokens")
		return
	}

	utils.InvalidateCache(utils.CacheKeyTokens, utils.CacheKeyTransactions)
	utils.SuccessMsg(ctx, http.StatusOK, token, fmt.Sprintf("Earned %d tokens", req.Amount))
}

// SpendTokens spends tokens from a jar. A spend exceeding the balance fails
// with 400 and mutates nothing.
func (t *TokenController) SpendTokens(ctx *gin.Context) {
	var req adjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Validation error: amount must be a positive integer")
		return
	}

	token, err := t.store.AdjustTokenCount(ctx.Param("id"), -req.Amount, utils.Sanitize(req.Description))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, "Token not found")
		case errors.Is(err, store.ErrInsufficientBalance):
			utils.Error(ctx, http.StatusBadRequest, "Insufficient tokens")
		default:
			utils.Sugar.Errorf("spend tokens failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, "Failed to spend tokens")
		}
		return
	}

	utils.InvalidateCache(utils.CacheKeyTokens, utils.CacheKeyTransactions)
	utils.SuccessMsg(ctx, http.StatusOK, token, fmt.Sprintf("Spent %d tokens", req.Amount))
}
