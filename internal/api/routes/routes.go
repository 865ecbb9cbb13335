package routes

import (
	"calltime-backend/internal/api/handlers"
	"calltime-backend/internal/api/middleware"
	"calltime-backend/internal/auth"
	"calltime-backend/internal/config"
	"calltime-backend/internal/repository"
	"calltime-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validate := validator.New()

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	donorRepo := repository.NewDonorRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	callOutcomeRepo := repository.NewCallOutcomeRepository(db)
	researchRepo := repository.NewResearchRepository(db)
	donorNoteRepo := repository.NewDonorNoteRepository(db)

	// Initialize services
	clientService := service.NewClientService(clientRepo, validate)
	donorService := service.NewDonorService(donorRepo, assignmentRepo, validate)
	assignmentService := service.NewAssignmentService(assignmentRepo, donorRepo, clientRepo)
	contributionService := service.NewContributionService(contributionRepo, donorRepo)
	callOutcomeService := service.NewCallOutcomeService(callOutcomeRepo, assignmentRepo)
	researchService := service.NewResearchService(researchRepo, assignmentRepo)
	noteService := service.NewDonorNoteService(donorNoteRepo, assignmentRepo)
	importService := service.NewImportService(db)

	// Initialize the session gate
	sessionStore := auth.NewMemorySessionStore()
	authService := auth.NewAuthService(cfg, clientRepo, sessionStore)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, clientService)
	clientHandler := handlers.NewClientHandler(clientService)
	donorHandler := handlers.NewDonorHandler(donorService, contributionService, assignmentService)
	portalHandler := handlers.NewPortalHandler(donorService, assignmentService, callOutcomeService, researchService, noteService)
	importHandler := handlers.NewImportHandler(importService, cfg)

	// Health check (no auth)
	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")

	// Authentication
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/manager/login", authHandler.ManagerLogin)
		authGroup.POST("/client/login", authHandler.ClientLogin)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Manager back office
	manager := api.Group("")
	manager.Use(authMiddleware.RequireAuth(), authMiddleware.RequireManager())
	{
		manager.GET("/clients", clientHandler.ListClients)
		manager.POST("/clients", clientHandler.CreateClient)
		manager.GET("/clients/overview", clientHandler.Overview)
		manager.GET("/clients/:clientId", clientHandler.GetClient)
		manager.PUT("/clients/:clientId", clientHandler.UpdateClient)
		manager.DELETE("/clients/:clientId", clientHandler.DeleteClient)
		manager.POST("/clients/:clientId/password-reset", clientHandler.ResetPortalPassword)

		manager.GET("/donors", donorHandler.ListDonors)
		manager.POST("/donors", donorHandler.CreateDonor)
		manager.GET("/donors/:donorId", donorHandler.GetDonor)
		manager.PUT("/donors/:donorId", donorHandler.UpdateDonor)
		manager.DELETE("/donors/:donorId", donorHandler.DeleteDonor)
		manager.GET("/donors/:donorId/contributions", donorHandler.GetGivingHistory)
		manager.POST("/donors/:donorId/contributions", donorHandler.AddContribution)
		manager.DELETE("/donors/:donorId/contributions/:contributionId", donorHandler.RemoveContribution)
		manager.GET("/donors/:donorId/assignments", donorHandler.DonorAssignments)
		manager.POST("/donors/:donorId/assign", donorHandler.AssignDonor)
		manager.POST("/donors/:donorId/unassign/:clientId", donorHandler.UnassignDonor)

		manager.POST("/imports/donors", importHandler.ImportDonors)
	}

	// Client portal, scoped to the session's client
	portal := api.Group("/portal/:clientId")
	portal.Use(authMiddleware.RequireAuth(), authMiddleware.RequireClientScope())
	{
		portal.GET("/queue", portalHandler.CallQueue)
		portal.GET("/donors/:donorId", portalHandler.GetDonor)
		portal.GET("/donors/:donorId/outcomes", portalHandler.OutcomeHistory)
		portal.POST("/donors/:donorId/outcomes", portalHandler.RecordOutcome)
		portal.GET("/outcomes", portalHandler.RecentOutcomes)
		portal.DELETE("/outcomes/:outcomeId", portalHandler.DeleteOutcome)
		portal.GET("/donors/:donorId/research", portalHandler.GetResearch)
		portal.PUT("/donors/:donorId/research", portalHandler.SaveResearch)
		portal.DELETE("/donors/:donorId/research/:category", portalHandler.DeleteResearch)
		portal.GET("/donors/:donorId/notes", portalHandler.GetNotes)
		portal.POST("/donors/:donorId/notes", portalHandler.AddNote)
		portal.POST("/password", authHandler.ChangePassword)
	}

	return router
}
