package routes

import (
	"net/http"
	"time"

	"servify/handlers"
	"servify/middleware"
	"servify/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCORS applies the CORS policy.
func RegisterCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Guest-Session"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, h *handlers.UserHandler, auth gin.HandlerFunc) {
	api := r.Group("/api/users")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		// Protected routes (Require Authentication)
		api.Use(auth)
		api.GET("/me", h.Me)
		api.POST("/logout", h.Logout)
	}
}

// RegisterCatalogRoutes registers public browsing and admin catalog CRUD.
func RegisterCatalogRoutes(r *gin.Engine, h *handlers.CatalogHandler, auth gin.HandlerFunc) {
	api := r.Group("/api/catalog")
	{
		api.GET("/categories", h.ListCategories)
		api.GET("/categories/:categoryID/subcategories", h.ListSubcategories)
		api.GET("/subcategories/:subcategoryID/services", h.ListOfferings)
	}

	admin := r.Group("/api/admin/catalog")
	admin.Use(auth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.PATCH("/categories/:id/active", h.SetCategoryActive)
		admin.POST("/subcategories", h.CreateSubcategory)
		admin.PUT("/subcategories/:id", h.UpdateSubcategory)
		admin.PATCH("/subcategories/:id/active", h.SetSubcategoryActive)
	}
}

// RegisterOfferingRoutes registers provider service management and the
// admin moderation queue.
func RegisterOfferingRoutes(r *gin.Engine, h *handlers.OfferingHandler, sh *handlers.StorageHandler, auth gin.HandlerFunc) {
	api := r.Group("/api/provider/services")
	api.Use(auth, middleware.RequireRole(models.RoleProvider))
	{
		api.GET("", h.ListMyOfferings)
		api.POST("", h.CreateOffering)
		api.PATCH("/:id", h.UpdateOffering)
		api.DELETE("/:id", h.DeleteOffering)
		api.PATCH("/:id/active", h.SetOfferingActive)
		api.POST("/license", sh.UploadLicense)
	}

	admin := r.Group("/api/admin/services")
	admin.Use(auth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/pending", h.PendingOfferings)
		admin.POST("/:id/moderate", h.ModerateOffering)
	}
}

// RegisterBookingRoutes sets up the endpoints for the slot-hold workflow.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler, auth gin.HandlerFunc) {
	api := r.Group("/api/booking")
	api.Use(auth)
	{
		api.POST("/session", h.InitiateSession)
		api.POST("/session/:sessionID/slot", h.SelectSlot)
		api.GET("/session/:sessionID/hold", h.HoldStatus)
		api.POST("/session/:sessionID/confirm", h.Confirm)
		api.DELETE("/session/:sessionID", h.Cancel)
	}
}

// RegisterCartRoutes registers cart endpoints; guests pass X-Guest-Session.
func RegisterCartRoutes(r *gin.Engine, h *handlers.CartHandler) {
	api := r.Group("/api/cart")
	{
		api.GET("", h.GetCart)
		api.POST("/items", h.AddItem)
		api.PATCH("/items/:itemID", h.UpdateQuantity)
		api.DELETE("/items/:itemID", h.RemoveItem)
		api.DELETE("", h.ClearCart)
	}
}

// RegisterAdminUserRoutes registers account moderation endpoints.
func RegisterAdminUserRoutes(r *gin.Engine, h *handlers.UserHandler, auth gin.HandlerFunc) {
	admin := r.Group("/api/admin/users")
	admin.Use(auth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.PATCH("/:id/active", h.SetUserActive)
	}
}
