package server

import (
	"context"
	"net/http"

	"hanhtrinhviet/internal/account"
	"hanhtrinhviet/internal/auth"
	"hanhtrinhviet/internal/booking"
	"hanhtrinhviet/internal/catalog"
	"hanhtrinhviet/internal/config"
	"hanhtrinhviet/internal/deposit"
	"hanhtrinhviet/internal/email"
	"hanhtrinhviet/internal/user"
	"hanhtrinhviet/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	catalogHandler := catalog.NewHandler(db)
	walletHandler := wallet.NewHandler(db)
	depositHandler := deposit.NewHandler(db, emailService, cfg.MinDepositAmount)
	bookingHandler := booking.NewHandler(db, emailService)
	accountHandler := account.NewHandler(db)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	// The storefront is browsable without a token; prices shown here are the
	// same ones the booking flow charges.
	router.GET("/tours", catalogHandler.ListTours)
	router.GET("/stays", catalogHandler.ListStays)
	router.GET("/catalog/:itemID", catalogHandler.GetItem)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/account", accountHandler.GetSnapshot)
		protected.GET("/wallet", walletHandler.GetBalance)
		protected.GET("/wallet/transactions", walletHandler.ListTransactions)
		protected.POST("/deposits", depositHandler.Submit)
		protected.GET("/deposits", depositHandler.ListMine)
		protected.POST("/bookings", bookingHandler.Book)
		protected.GET("/bookings/tours", bookingHandler.ListMyTourBookings)
		protected.GET("/bookings/stays", bookingHandler.ListMyStayBookings)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/deposits", depositHandler.AdminQueue)
		admin.POST("/deposits/:requestID/approve", depositHandler.Approve)
		admin.POST("/deposits/:requestID/reject", depositHandler.Reject)
		admin.POST("/catalog", catalogHandler.CreateItem)
		admin.GET("/catalog/:itemID/bookings", bookingHandler.ListByItem)
		admin.POST("/bookings/:bookingID/confirm", bookingHandler.Confirm)
		admin.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
