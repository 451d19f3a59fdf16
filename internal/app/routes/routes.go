package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/controllers"
	"github.com/yigit/placement/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	companyController *controllers.CompanyController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Mutations are not gated here: the authorization policy in the
		// services checks identifiers before capabilities.
		users := authenticated.Group("/users")
		{
			users.GET("", authMiddleware.RequirePermission(auth.PermUsersRead), userController.ListUsers)
			users.GET("/:id", authMiddleware.RequirePermission(auth.PermUsersRead), userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.PATCH("/:id/verify", userController.VerifyUser)
			users.PATCH("/:id/role", userController.UpdateRole)
			users.PATCH("/:id/company", userController.AssignCompany)
			users.DELETE("/:id", userController.DeleteUser)
		}

		companies := authenticated.Group("/companies")
		{
			companies.GET("", authMiddleware.RequirePermission(auth.PermCompaniesRead), companyController.ListCompanies)
			companies.GET("/:id", authMiddleware.RequirePermission(auth.PermCompaniesRead), companyController.GetCompany)
			companies.POST("", companyController.CreateCompany)
			companies.PUT("/:id", companyController.UpdateCompany)
			companies.DELETE("/:id", companyController.DeleteCompany)
		}
	}

	// Health check endpoint (public)
	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
