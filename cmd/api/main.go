package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pausenhof-backend/internal/config"
	"pausenhof-backend/internal/engine"
	"pausenhof-backend/internal/handlers"
	"pausenhof-backend/internal/middleware"
	"pausenhof-backend/internal/rng"
	"pausenhof-backend/internal/services"
	"pausenhof-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var persister store.Persister
	var limiter middleware.RateLimiter = middleware.NewMemoryRateLimiter()
	switch cfg.Backend {
	case "redis":
		redisPersister, err := store.NewRedisPersister(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		persister = redisPersister
		limiter = redisPersister
	default:
		persister = store.NewFilePersister(cfg.DataFile)
	}
	defer persister.Close()

	ledger, err := store.Open(persister)
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}

	provider := rng.New()
	market := engine.NewMarket(provider, cfg.MarketTickEvery)
	if prices := ledger.LoadedMarket(); prices != nil {
		market.Restore(prices)
	}
	ledger.SetMarketSource(market.Prices)

	eng := engine.New(ledger, market, provider, cfg.DailyBonus)

	jwtService := services.NewJWTService(cfg)
	authHandler := handlers.NewAuthHandler(ledger, eng, jwtService, cfg.StartingBalance)
	userHandler := handlers.NewUserHandler(eng)
	economyHandler := handlers.NewEconomyHandler(eng)
	gameHandler := handlers.NewGameHandler(eng)
	wsHandler := handlers.NewWebSocketHandler(eng)
	eng.SetBroadcaster(wsHandler)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(limiter))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.GET("/leaderboard", userHandler.Leaderboard)
		protected.POST("/daily", userHandler.ClaimDailyBonus)
		protected.POST("/transfer", userHandler.Transfer)
		protected.POST("/admin/grant", userHandler.AdminGrant)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		economy := protected.Group("/economy")
		{
			economy.GET("/jobs", economyHandler.ListJobs)
			economy.POST("/work", economyHandler.Work)
			economy.GET("/crimes", economyHandler.ListCrimes)
			economy.POST("/crime", economyHandler.CommitCrime)
			economy.GET("/shop", economyHandler.ListItems)
			economy.POST("/shop/buy", economyHandler.BuyItem)
			economy.POST("/shop/use", economyHandler.UseItem)
			economy.GET("/businesses", economyHandler.ListBusinesses)
			economy.POST("/businesses/buy", economyHandler.BuyBusiness)
			economy.POST("/businesses/collect", economyHandler.CollectIncome)
			economy.GET("/stocks", economyHandler.ListStocks)
			economy.POST("/stocks/buy", economyHandler.BuyStock)
			economy.POST("/stocks/sell", economyHandler.SellStock)
		}

		games := protected.Group("/games")
		{
			blackjack := games.Group("/blackjack")
			{
				blackjack.POST("/start", gameHandler.StartBlackjack)
				blackjack.POST("/hit", gameHandler.HitBlackjack)
				blackjack.POST("/double", gameHandler.DoubleBlackjack)
				blackjack.POST("/stand", gameHandler.StandBlackjack)
			}

			games.POST("/roulette/spin", gameHandler.SpinRoulette)

			crash := games.Group("/crash")
			{
				crash.POST("/start", gameHandler.StartCrash)
				crash.POST("/cashout", gameHandler.CashoutCrash)
				crash.POST("/report", gameHandler.ReportCrash)
			}

			games.POST("/slots/spin", gameHandler.SpinSlots)
			games.POST("/coinflip", gameHandler.FlipCoin)
			games.POST("/guess", gameHandler.GuessNumber)
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
