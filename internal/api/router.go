package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/mw"
)

// RouterConfig holds the rate limit applied to the whole API.
type RouterConfig struct {
	RatePerSecond float64
	Burst         int
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger())

	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst)

	adminOnly := mw.RequireRole(model.RoleAdmin)
	anyRole := mw.RequireRole(model.RoleAdmin, model.RoleUser)

	api := r.Group("/api")
	api.Use(rateLimiter)

	api.GET("/health", h.Health)
	api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	api.POST("/auth/login", h.Login)

	secured := api.Group("")
	secured.Use(mw.Authenticate(h.issuer))
	secured.POST("/auth/logout", h.Logout)

	rooms := secured.Group("/rooms")
	{
		rooms.GET("", anyRole, h.GetRooms)
		rooms.GET("/free", anyRole, h.GetFreeRoomsBetween)
		rooms.GET("/by-name", anyRole, h.GetRoomByName)
		rooms.GET("/top/:num", anyRole, h.GetTopRooms)
		rooms.GET("/capacity/:num", anyRole, h.GetRoomsByCapacity)
		rooms.GET("/:id", anyRole, h.GetRoom)
		rooms.POST("", adminOnly, h.CreateRoom)
		rooms.PUT("/:id", adminOnly, h.UpdateRoom)
		rooms.DELETE("/:id", adminOnly, h.DeleteRoom)
	}

	reservations := secured.Group("/reservations")
	{
		reservations.GET("", adminOnly, h.GetReservations)
		reservations.GET("/between", adminOnly, h.GetReservationsBetween)
		reservations.GET("/filter", anyRole, h.FilterReservations)
		reservations.GET("/top/:num", anyRole, h.GetTopReservations)
		reservations.GET("/:id", anyRole, h.GetReservation)
		reservations.POST("", adminOnly, h.CreateReservation)
		reservations.POST("/room", anyRole, h.AddReservationRoom)
		reservations.PUT("/:id", adminOnly, h.UpdateReservation)
		reservations.DELETE("/:id", adminOnly, h.DeleteReservation)
	}

	payments := secured.Group("/payments")
	{
		payments.GET("", adminOnly, h.GetPayments)
		payments.GET("/since", adminOnly, h.GetPaymentsSince)
		payments.GET("/:id", anyRole, h.GetPayment)
		payments.POST("", adminOnly, h.CreatePayment)
		payments.POST("/reservation", adminOnly, h.AddPaymentReservation)
		payments.DELETE("/:id", adminOnly, h.DeletePayment)
	}

	users := secured.Group("/users")
	{
		users.GET("", adminOnly, h.GetUsers)
		users.GET("/lookup", adminOnly, h.LookupUser)
		users.GET("/:id", adminOnly, h.GetUser)
		users.POST("", anyRole, h.CreateUser)
		users.POST("/payment", anyRole, h.AddUserPayment)
		users.POST("/reservation", anyRole, h.AddUserReservation)
		users.PUT("/:id", anyRole, h.UpdateUser)
		users.DELETE("/:id/reservations/:reservation_id", anyRole, h.DeleteReservationFromUser)
		users.DELETE("/:id", adminOnly, h.DeleteUser)
	}

	admins := secured.Group("/admins", adminOnly)
	{
		admins.GET("", h.GetAdmins)
		admins.GET("/:id", h.GetAdmin)
		admins.POST("", h.CreateAdmin)
		admins.PUT("/:id", h.UpdateAdmin)
		admins.DELETE("/:id", h.DeleteAdmin)
		admins.POST("/:id/rooms/:room_id", h.AdminControlRoom)
		admins.POST("/reservation", h.AddAdminReservation)
		admins.DELETE("/:id/reservations/:reservation_id", h.DeleteAdminReservation)
	}

	subscriptions := secured.Group("/subscriptions", anyRole)
	{
		subscriptions.GET("", h.GetSubscriptions)
		subscriptions.PUT("", h.PutSubscription)
		subscriptions.DELETE("", h.DeleteSubscription)
	}

	return r
}
