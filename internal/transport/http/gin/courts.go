package httpgin

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	redisrepo "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/service"
	"github.com/kirinyoku/courtbook/internal/service/query"
)

const sseHeartbeat = 25 * time.Second

// @Summary  Canonical slot grid
// @Tags     courts
// @Param    day  query  string  false  "Weekday name, whole week when empty"
// @Success  200  {array}  query.GridDay
// @Failure  400  {object}  ErrorResponse
// @Router   /grid [get]
func handleGrid() gin.HandlerFunc {
	return func(c *gin.Context) {
		grid, err := query.Grid(c.Query("day"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, grid, "public, max-age=86400")
	}
}

// @Summary  Court schedule grouped by weekday
// @Tags     courts
// @Param    id  path  int  true  "Court ID"
// @Success  200  {object}  domain.CourtSchedule
// @Failure  404  {object}  ErrorResponse
// @Router   /courts/{id}/schedule [get]
func handleCourtSchedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		s, err := svcs.Query.CourtSchedule(c.Request.Context(), id, time.Now())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, s, "no-cache")
	}
}

// @Summary  Live changes of a court (server-sent events)
// @Tags     courts
// @Param    id  path  int  true  "Court ID"
// @Produce  text/event-stream
// @Success  200
// @Router   /courts/{id}/events [get]
func handleCourtEvents(ps *redisrepo.CourtsPubSub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if ps == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "live events disabled"})
			return
		}

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		changes := make(chan redisrepo.CourtChange, 16)
		go func() {
			defer close(changes)
			_ = ps.Subscribe(ctx, func(_ context.Context, ev redisrepo.CourtChange) {
				if ev.CourtID != id {
					return
				}
				select {
				case changes <- ev:
				default:
				}
			})
		}()

		heartbeat := time.NewTicker(sseHeartbeat)
		defer heartbeat.Stop()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")

		c.Stream(func(io.Writer) bool {
			select {
			case ev, ok := <-changes:
				if !ok {
					return false
				}
				c.SSEvent("court_changed", ev)
				return true
			case <-heartbeat.C:
				c.SSEvent("ping", time.Now().Unix())
				return true
			case <-ctx.Done():
				return false
			}
		})
	}
}

// @Summary  Delete court of an owned facility
// @Tags     courts
// @Security BearerAuth
// @Param    id  path  int  true  "Court ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "active bookings"
// @Router   /courts/{id} [delete]
func handleDeleteCourt(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Facility.DeleteCourt(c.Request.Context(), mustSession(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Slot edit model of a court
// @Tags     courts
// @Security BearerAuth
// @Param    id  path  int  true  "Court ID"
// @Success  200  {object}  EditModelResponse
// @Router   /courts/{id}/slots/edit [get]
func handleEditModel(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		court, model, err := svcs.Facility.EditModel(c.Request.Context(), mustSession(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, newEditModelResponse(court, model))
	}
}

// @Summary  Save the enabled slots of a court
// @Tags     courts
// @Security BearerAuth
// @Param    id   path  int               true  "Court ID"
// @Param    req  body  SaveSlotsRequest  true  "payload"
// @Success  200  {object}  SaveSlotsResponse
// @Failure  409  {object}  ErrorResponse  "booked slot removed"
// @Router   /courts/{id}/slots [put]
func handleSaveSlots(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req SaveSlotsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		res, err := svcs.Facility.SaveCourtSlots(c.Request.Context(), mustSession(c), id, req.Slots)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, SaveSlotsResponse{Inserted: res.Inserted, Deleted: res.Deleted})
	}
}
