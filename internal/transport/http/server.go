package http

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "referral-system/docs"
	appsvc "referral-system/internal/app"
	"referral-system/internal/bootstrap"
	"referral-system/internal/repository"
	"referral-system/internal/transport/http/handler"
	"referral-system/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.DB)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Verifier,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.AccessTokenExpireHour)*time.Hour,
		time.Duration(app.Config.Referral.CodeValidDays)*24*time.Hour,
	)
	referralService := appsvc.NewReferralService(userRepo)
	authHandler := handler.NewAuthHandler(authService)
	referralHandler := handler.NewReferralHandler(referralService)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/referrals/:user_id", referralHandler.List)
	router.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	// gin-swagger only renders under /docs/index.html; send the documented
	// base path there.
	router.GET("/docs", func(c *gin.Context) {
		c.Redirect(nethttp.StatusMovedPermanently, "/docs/index.html")
	})
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
