package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tyemirov/tauth/pkg/sessionvalidator"
	"go.uber.org/zap"
)

const (
	claimsContextKey = "auth_claims"
	actorContextKey  = "frontdesk_actor"
	shutdownTimeout  = 5 * time.Second
)

// Run boots the HTTP façade and blocks until ctx is cancelled or the listener fails.
func Run(ctx context.Context, cfg Config, service FrontDesk, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	router, err := NewRouter(cfg, service, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("frontdesk api listening", zap.String("addr", cfg.ListenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("server shutdown error", zap.Error(shutdownErr))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// NewRouter validates cfg and wires the session validator and every route.
func NewRouter(cfg Config, service FrontDesk, logger *zap.Logger) (*gin.Engine, error) {
	if service == nil {
		return nil, fmt.Errorf("frontdesk service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	sessionValidator, err := sessionvalidator.New(sessionvalidator.Config{
		SigningKey: []byte(cfg.SessionSigningKey),
		Issuer:     cfg.SessionIssuer,
		CookieName: cfg.SessionCookieName,
	})
	if err != nil {
		return nil, fmt.Errorf("session validator: %w", err)
	}
	handler := &httpHandler{
		logger:  logger,
		service: service,
		cfg:     cfg,
		actors:  newActorResolver(cfg.SuperAdminIDs),
	}
	return setupRouter(cfg, handler, sessionValidator), nil
}

func setupRouter(cfg Config, handler *httpHandler, validator *sessionvalidator.Validator) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(accessLog(handler.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Origin", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(validator.GinMiddleware(claimsContextKey))
	api.Use(handler.requireActor)

	api.GET("/session", handler.handleSession)

	api.GET("/rooms", handler.handleListRooms)
	api.POST("/rooms", handler.handleRegisterRoom)
	api.GET("/rooms/:id", handler.handleGetRoom)
	api.PUT("/rooms/:id/status", handler.handleChangeRoomStatus)

	api.GET("/bookings", handler.handleListBookings)
	api.POST("/bookings", handler.handleCreateBooking)
	api.GET("/bookings/:id", handler.handleGetBooking)
	api.PUT("/bookings/:id", handler.handleEditBooking)
	api.PUT("/bookings/:id/cancel", handler.handleCancelBooking)
	api.PUT("/bookings/:id/checkin", handler.handleCheckIn)

	api.GET("/transactions", handler.handleListTransactions)
	api.POST("/transactions", handler.handleRecordTransaction)
	api.GET("/transactions/:id", handler.handleGetTransaction)
	api.PUT("/transactions/:id", handler.handleEditTransaction)
	api.DELETE("/transactions/:id", handler.handleDeleteTransaction)

	api.GET("/shifts", handler.handleListShifts)
	api.POST("/shifts", handler.handleOpenShift)
	api.GET("/shifts/:id", handler.handleGetShift)
	api.PUT("/shifts/:id/close", handler.handleCloseShift)

	api.GET("/reports/daily/:date", handler.handleDailyReport)
	api.POST("/reports/daily/:date/close", handler.handleCloseDay)
	api.GET("/reports/closed-dates", handler.handleClosedDates)

	api.GET("/activity", handler.handleListActivity)

	return router
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		started := time.Now()
		ctx.Next()
		logger.Info("http request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(started)),
			zap.String("client_ip", ctx.ClientIP()),
		)
	}
}

func errorResponse(code string, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
