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

// RewardController manages reward endpoints. Redemption itself has no
// endpoint here: the UI redeems by calling spend on the reward's jar.
type RewardController struct {
	store *store.Store
}

// NewRewardController creates a new controller instance.
func NewRewardController(s *store.Store) *RewardController {
	return &RewardController{store: s}
}

type rewardRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	TokenCost   int    `json:"tokenCost" binding:"required,min=1"`
	TokenType   string `json:"tokenType" binding:"required"`
}

// ListRewards returns all rewards, active or not.
func (r *RewardController) ListRewards(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyRewards); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	rewards, err := r.store.ListRewards()
	if err != nil {
		utils.Sugar.Errorf("list rewards failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to get rewards")
		return
	}

	utils.CacheSetJSON(utils.CacheKeyRewards, utils.APIResponse{Success: true, Data: rewards}, 0)
	utils.Success(ctx, rewards)
}

// CreateReward creates a reward after resolving its token reference.
func (r *RewardController) CreateReward(ctx *gin.Context) {
	var req rewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Validation error: name, tokenCost and tokenType are required")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, "Reward name cannot be empty")
		return
	}

	reward, err := r.store.CreateReward(name, utils.Sanitize(req.Description), req.TokenCost, req.TokenType)
	if err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			utils.Error(ctx, http.StatusBadRequest, "Invalid token type")
			return
		}
		utils.Sugar.Errorf("create reward failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create reward")
		return
	}

	utils.InvalidateCache(utils.CacheKeyRewards)
	utils.SuccessMsg(ctx, http.StatusCreated, reward, "Reward created successfully")
}

// UpdateReward replaces a reward's editable fields. The token reference is
// re-validated only when it changed.
func (r *RewardController) UpdateReward(ctx *gin.Context) {
	var req rewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Validation error: name, tokenCost and tokenType are required")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, "Reward name cannot be empty")
		return
	}

	reward, err := r.store.UpdateReward(ctx.Param("id"), name, utils.Sanitize(req.Description), req.TokenCost, req.TokenType)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, "Reward not found")
		case errors.Is(err, store.ErrInvalidReference):
			utils.Error(ctx, http.StatusBadRequest, "Invalid token type")
		default:
			utils.Sugar.Errorf("update reward failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, "Failed to update reward")
		}
		return
	}

	utils.InvalidateCache(utils.CacheKeyRewards)
	utils.SuccessMsg(ctx, http.StatusOK, reward, "Reward updated successfully")
}

// DeleteReward removes a reward.
func (r *RewardController) DeleteReward(ctx *gin.Context) {
	if err := r.store.DeleteReward(ctx.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Reward not found")
			return
		}
		utils.Sugar.Errorf("delete reward failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to delete reward")
		return
	}

	utils.InvalidateCache(utils.CacheKeyRewards)
	utils.Message(ctx, "Reward deleted successfully")
}

// ToggleRewardActive flips a reward's active flag.
func (r *RewardController) ToggleRewardActive(ctx *gin.Context) {
	reward, err := r.store.ToggleRewardActive(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Reward not found")
			return
		}
		utils.Sugar.Errorf("toggle reward failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, "Failed to toggle reward status")
		return
	}

	state := "deactivated"
	if reward.IsActive {
		state = "activated"
	}
	utils.InvalidateCache(utils.CacheKeyRewards)
	utils.SuccessMsg(ctx, http.StatusOK, reward, fmt.Sprintf("Reward %s successfully", state))
}
