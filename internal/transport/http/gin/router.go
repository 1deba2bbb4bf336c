package httpgin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirinyoku/courtbook/internal/auth"
	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/repository"
	redisrepo "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/service"
	"github.com/kirinyoku/courtbook/internal/service/booking"
	"github.com/kirinyoku/courtbook/internal/service/facility"
	"github.com/kirinyoku/courtbook/internal/service/profile"
	"github.com/kirinyoku/courtbook/internal/service/query"
	"github.com/kirinyoku/courtbook/internal/slotgrid"
	"github.com/kirinyoku/courtbook/internal/upload"
)

// Deps are what the router serves. Idem, Uploader and PubSub may be nil,
// which disables idempotent replay, uploads and live court events.
type Deps struct {
	Services       *service.Services
	Auth           *auth.Authenticator
	Idem           *redisrepo.IdempotencyStore
	Uploader       upload.Uploader
	PubSub         *redisrepo.CourtsPubSub
	Logger         *slog.Logger
	CORSOrigins    []string
	MaxUploadBytes int64
}

func NewRouter(d Deps, middlewares ...gin.HandlerFunc) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 5 << 20
	}

	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(d.Logger), CORS(d.CORSOrigins))
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/grid", handleGrid())
	r.GET("/facilities", handleListFacilities(d.Services))
	r.GET("/facilities/:id", handleGetFacility(d.Services))
	r.GET("/courts/:id/schedule", handleCourtSchedule(d.Services))
	r.GET("/courts/:id/events", handleCourtEvents(d.PubSub))

	// Authenticated API
	authed := r.Group("/", RequireAuth(d.Auth))
	{
		authed.POST("/facilities", handleCreateFacility(d.Services))
		authed.PUT("/facilities/:id", handleUpdateFacility(d.Services))
		authed.DELETE("/facilities/:id", handleDeleteFacility(d.Services))
		authed.POST("/facilities/:id/claim", handleClaimFacility(d.Services))

		authed.DELETE("/courts/:id", handleDeleteCourt(d.Services))
		authed.GET("/courts/:id/slots/edit", handleEditModel(d.Services))
		authed.PUT("/courts/:id/slots", handleSaveSlots(d.Services))

		authed.POST("/bookings", handleCreateBooking(d.Services, d.Idem))
		authed.POST("/bookings/:id/cancel", handleCancelBooking(d.Services))

		authed.GET("/me/bookings", handleMyBookings(d.Services))
		authed.GET("/me/facilities", handleMyFacilities(d.Services))
		authed.GET("/me/facility-bookings", handleMyFacilityBookings(d.Services))
		authed.GET("/me/profile", handleGetProfile(d.Services))
		authed.PUT("/me/profile", handleUpdateProfile(d.Services))

		authed.POST("/uploads/images", handleUploadImage(d.Uploader, d.MaxUploadBytes))
	}

	// Admin API
	admin := r.Group("/admin", RequireAuth(d.Auth), RequireRole(domain.RoleAdmin))
	{
		admin.POST("/reconcile", handleReconcile(d.Services))
	}

	return r
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var (
		validation  *facility.ValidationError
		rateLimited *booking.RateLimitedError
		partial     *booking.PartialWriteError
		booked      *slotgrid.BookedSlotsDeselectedError
	)

	switch {
	// validation
	case errors.As(err, &validation):
		badRequest(c, validation.Error())
	case errors.Is(err, query.ErrInvalidDay):
		badRequest(c, "invalid day")
	case errors.Is(err, profile.ErrNameRequired):
		badRequest(c, "name is required")
	case errors.Is(err, repository.ErrReferenceMissing):
		badRequest(c, "request references a record that does not exist")

	// not found
	case errors.Is(err, facility.ErrFacilityNotFound),
		errors.Is(err, query.ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "facility not found"})
	case errors.Is(err, facility.ErrCourtNotFound),
		errors.Is(err, query.ErrCourtNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "court not found"})
	case errors.Is(err, booking.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "slot not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})

	// ownership
	case errors.Is(err, facility.ErrNotOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "facility is not yours"})
	case errors.Is(err, booking.ErrNotAllowed):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "booking is not yours"})

	// conflicts
	case errors.Is(err, booking.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "slot is already booked"})
	case errors.Is(err, booking.ErrBookingNotActive):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking is not active"})
	case errors.As(err, &booked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: booked.Error()})
	case errors.Is(err, facility.ErrBookedSlotsDeselected):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booked slots cannot be removed"})
	case errors.Is(err, facility.ErrActiveBookings):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "active bookings exist"})
	case errors.Is(err, facility.ErrReplaceWithBookings):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "slots cannot be replaced while booked"})
	case errors.Is(err, facility.ErrAlreadyOwned):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "facility already has an owner"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict"})

	case errors.As(err, &rateLimited):
		secs := int(rateLimited.RetryAfter.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
	case errors.Is(err, redisrepo.ErrIdempotencyKeyReused):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "idempotency key reused with a different request"})
	case errors.Is(err, upload.ErrUpstream):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "image storage unavailable"})
	case errors.As(err, &partial):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "booking could not be completed, try again"})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
