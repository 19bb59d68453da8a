package api

import (
	"github.com/gin-gonic/gin"
	"github.com/supplysight/sync-agent/internal/approvals"
	"github.com/supplysight/sync-agent/internal/backend"
	"github.com/supplysight/sync-agent/internal/cache"
	"github.com/supplysight/sync-agent/internal/config"
	"github.com/supplysight/sync-agent/internal/handlers"
	"github.com/supplysight/sync-agent/internal/middleware"
	"github.com/supplysight/sync-agent/internal/store"
	"github.com/supplysight/sync-agent/internal/ws"
)

func NewRouter(cfg *config.Config, client *backend.Client, wsClient *ws.Client,
	manager *store.Manager, poller *approvals.Poller, snapCache *cache.Cache) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	if cfg.APIKey != "" {
		router.Use(middleware.APIKeyMiddleware(cfg.APIKey))
	}

	// Initialize handlers
	statusHandler := handlers.NewStatusHandler(cfg, wsClient, snapCache)
	dataHandler := handlers.NewDataHandler(manager)
	controlHandler := handlers.NewControlHandler(client, manager)
	approvalHandler := handlers.NewApprovalHandler(poller)
	blockchainHandler := handlers.NewBlockchainHandler(client)

	api := router.Group("/api")
	{
		setupStatusRoutes(api, statusHandler)
		setupDataRoutes(api, dataHandler)
		setupAgentRoutes(api, controlHandler)
		setupSimulationRoutes(api, dataHandler, controlHandler)
		setupSettingsRoutes(api, dataHandler, controlHandler)
		setupAnalyticsRoutes(api, dataHandler)
		setupKnowledgeGraphRoutes(api, dataHandler, controlHandler)
		setupApprovalRoutes(api, approvalHandler)
		setupBlockchainRoutes(api, blockchainHandler)
	}

	return router
}

func setupStatusRoutes(api *gin.RouterGroup, statusHandler *handlers.StatusHandler) {
	api.GET("/status", statusHandler.GetStatus)
	api.POST("/websocket/reconnect", statusHandler.Reconnect)
}

func setupDataRoutes(api *gin.RouterGroup, dataHandler *handlers.DataHandler) {
	api.GET("/agents", dataHandler.GetAgents)
	api.GET("/metrics", dataHandler.GetMetrics)
	api.GET("/inventory", dataHandler.GetInventory)
	api.GET("/demand", dataHandler.GetDemand)
	api.GET("/routes", dataHandler.GetRoutes)
	api.GET("/suppliers", dataHandler.GetSuppliers)
	api.GET("/blockchain", dataHandler.GetBlockchain)
	api.GET("/activities", dataHandler.GetActivities)
	api.GET("/alerts", dataHandler.GetAlerts)
}

func setupAgentRoutes(api *gin.RouterGroup, controlHandler *handlers.ControlHandler) {
	agents := api.Group("/agents")
	{
		agents.GET("/communication-log", controlHandler.GetCommunicationLog)
		agents.GET("/:id/status", controlHandler.GetAgentStatus)
		agents.POST("/:id/start", controlHandler.StartAgent)
		agents.POST("/:id/stop", controlHandler.StopAgent)
		agents.POST("/:id/restart", controlHandler.RestartAgent)
	}
}

func setupSimulationRoutes(api *gin.RouterGroup, dataHandler *handlers.DataHandler, controlHandler *handlers.ControlHandler) {
	simulation := api.Group("/simulation")
	{
		simulation.GET("/status", dataHandler.GetSimulationStatus)
		simulation.GET("/results", controlHandler.GetSimulationResults)
		simulation.POST("/start", controlHandler.StartSimulation)
		simulation.POST("/stop", controlHandler.StopSimulation)
	}
}

func setupSettingsRoutes(api *gin.RouterGroup, dataHandler *handlers.DataHandler, controlHandler *handlers.ControlHandler) {
	settings := api.Group("/settings")
	{
		settings.GET("", dataHandler.GetSettings)
		settings.PUT("", controlHandler.UpdateSettings)
		settings.GET("/backup", controlHandler.BackupSettings)
	}
}

func setupAnalyticsRoutes(api *gin.RouterGroup, dataHandler *handlers.DataHandler) {
	analytics := api.Group("/analytics")
	{
		analytics.GET("/performance", dataHandler.GetPerformanceAnalytics)
		analytics.GET("/trends", dataHandler.GetTrendAnalytics)
	}
}

func setupKnowledgeGraphRoutes(api *gin.RouterGroup, dataHandler *handlers.DataHandler, controlHandler *handlers.ControlHandler) {
	kg := api.Group("/knowledge-graph")
	{
		kg.GET("/nodes", dataHandler.GetKnowledgeGraphNodes)
		kg.GET("/relationships", dataHandler.GetKnowledgeGraphRelationships)
		kg.POST("/query", controlHandler.QueryKnowledgeGraph)
	}
}

func setupApprovalRoutes(api *gin.RouterGroup, approvalHandler *handlers.ApprovalHandler) {
	approvalsGroup := api.Group("/approvals")
	{
		approvalsGroup.GET("/pending", approvalHandler.ListPending)
		approvalsGroup.POST("/:id/action", approvalHandler.ProcessAction)
	}
}

func setupBlockchainRoutes(api *gin.RouterGroup, blockchainHandler *handlers.BlockchainHandler) {
	blockchain := api.Group("/blockchain")
	{
		blockchain.GET("/transactions", blockchainHandler.GetTransactions)
		blockchain.GET("/wallet/:name", blockchainHandler.GetWallet)
		blockchain.POST("/transfer", blockchainHandler.TransferSOL)
		blockchain.GET("/nft/:productId", blockchainHandler.GetNFT)
		blockchain.GET("/nfts/owner/:wallet", blockchainHandler.GetNFTsByOwner)
	}

	api.POST("/process-payment", blockchainHandler.ProcessPayment)
	api.POST("/create-wallet", blockchainHandler.CreateWallet)
	api.POST("/create-nft", blockchainHandler.CreateNFT)
	api.POST("/transfer-nft", blockchainHandler.TransferNFT)
	api.POST("/update-nft", blockchainHandler.UpdateNFT)
}
