package httpgin

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	redisrepo "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/service"
)

const idemLockTTL = 60 * time.Second

// @Summary  Book a court slot (idempotent)
// @Tags     bookings
// @Security BearerAuth
// @Param    Idempotency-Key  header  string                false  "client key"
// @Param    req              body    CreateBookingRequest  true   "payload"
// @Success  201  {object}  domain.Booking
// @Failure  404  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "slot booked / idem in progress"
// @Failure  422  {object}  ErrorResponse  "idempotency key reused"
// @Failure  429  {object}  ErrorResponse  "rate limited"
// @Router   /bookings [post]
func handleCreateBooking(svcs *service.Services, idem *redisrepo.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		sess := mustSession(c)

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var (
			idemStorageKey string
			fingerprint    string
		)
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(sess.UserID.String(), idemKey)
			fingerprint = bookingFingerprint(req)

			rec, acquired, err := idem.Acquire(ctx, idemStorageKey, fingerprint, idemLockTTL)
			if err != nil {
				respondErr(c, err)
				return
			}
			if rec != nil {
				c.Header("Idempotency-Key", idemKey)
				c.Header("Idempotency-Replayed", "true")
				c.Data(rec.Status, "application/json; charset=utf-8", rec.Body)
				return
			}
			if !acquired {
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		b, err := svcs.Booking.Book(ctx, sess, req.SlotID)
		if err != nil {
			if idemStorageKey != "" {
				_ = idem.Release(ctx, idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" {
			body, _ := json.Marshal(b)
			_ = idem.Save(ctx, idemStorageKey, redisrepo.IdemRecord{
				Fingerprint: fingerprint,
				Status:      http.StatusCreated,
				Body:        body,
			})
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, b)
	}
}

func bookingFingerprint(req CreateBookingRequest) string {
	sum := sha256.Sum256([]byte("booking:" + strconv.FormatInt(req.SlotID, 10)))
	return hex.EncodeToString(sum[:])
}

// @Summary  Cancel a booking
// @Tags     bookings
// @Security BearerAuth
// @Param    id  path  int  true  "Booking ID"
// @Success  200  {object}  domain.Booking
// @Failure  403  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "not active"
// @Router   /bookings/{id}/cancel [post]
func handleCancelBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		b, err := svcs.Booking.Cancel(c.Request.Context(), mustSession(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  My bookings, newest first
// @Tags     me
// @Security BearerAuth
// @Success  200  {array}  domain.BookingDetails
// @Router   /me/bookings [get]
func handleMyBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Query.UserBookings(c.Request.Context(), mustSession(c), time.Now())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// @Summary  Bookings at my facilities
// @Tags     me
// @Security BearerAuth
// @Success  200  {array}  domain.BookingDetails
// @Router   /me/facility-bookings [get]
func handleMyFacilityBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Query.OwnerBookings(c.Request.Context(), mustSession(c), time.Now())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// @Summary  Repair slot flags that disagree with bookings
// @Tags     admin
// @Security BearerAuth
// @Success  200  {object}  booking.ReconcileReport
// @Failure  403  {object}  ErrorResponse
// @Router   /admin/reconcile [post]
func handleReconcile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svcs.Booking.Reconcile(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
