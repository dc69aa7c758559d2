package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rewardjar/rewardjar/config"
	"github.com/rewardjar/rewardjar/controllers"
	"github.com/rewardjar/rewardjar/middleware"
	"github.com/rewardjar/rewardjar/store"
	"github.com/rewardjar/rewardjar/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, s *store.Store) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")
	r.GET("/", func(ctx *gin.Context) {
		ctx.File("./static/index.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		utils.SuccessMsg(ctx, http.StatusOK, gin.H{"timestamp": time.Now()}, "Reward Jar API is running!")
	})

	tokenController := controllers.NewTokenController(s)
	rewardController := controllers.NewRewardController(s)
	transactionController := controllers.NewTransactionController(s)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	tokens := api.Group("/tokens")
	tokens.GET("", tokenController.ListTokens)
	tokens.POST("", tokenController.CreateToken)
	tokens.PUT("/:id", tokenController.UpdateToken)
	tokens.DELETE("/:id", tokenController.DeleteToken)
	tokens.POST("/:id/add", tokenController.AddTokens)
	tokens.POST("/:id/spend", tokenController.SpendTokens)

	rewards := api.Group("/rewards")
	rewards.GET("", rewardController.ListRewards)
	rewards.POST("", rewardController.CreateReward)
	rewards.PUT("/:id", rewardController.UpdateReward)
	rewards.DELETE("/:id", rewardController.DeleteReward)
	rewards.PATCH("/:id/toggle", rewardController.ToggleRewardActive)

	transactions := api.Group("/transactions")
	transactions.GET("", transactionController.ListTransactions)
	transactions.GET("/token/:tokenId", transactionController.ListTransactionsByToken)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, "Endpoint not found")
			return
		}
		ctx.File("./static/index.html")
	})

	return r
}
