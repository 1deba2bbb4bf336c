package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/courtbook/internal/service"
)

// @Summary  List facilities with court and free slot counts
// @Tags     facilities
// @Success  200  {array}  domain.FacilitySummary
// @Router   /facilities [get]
func handleListFacilities(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Query.ListFacilities(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, list, "public, max-age=15")
	}
}

// @Summary  Get facility with its courts
// @Tags     facilities
// @Param    id  path  int  true  "Facility ID"
// @Success  200  {object}  domain.FacilityDetails
// @Failure  404  {object}  ErrorResponse
// @Router   /facilities/{id} [get]
func handleGetFacility(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		f, err := svcs.Query.GetFacility(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, f, "public, max-age=15")
	}
}

// @Summary  Create facility with courts and slots
// @Tags     facilities
// @Security BearerAuth
// @Param    req  body  FacilityRequest  true  "payload"
// @Success  201  {object}  CreateFacilityResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /facilities [post]
func handleCreateFacility(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FacilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Facility.Create(c.Request.Context(), mustSession(c), req.toInput())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateFacilityResponse{FacilityID: id})
	}
}

// @Summary  Update owned facility
// @Tags     facilities
// @Security BearerAuth
// @Param    id   path  int              true  "Facility ID"
// @Param    req  body  FacilityRequest  true  "payload"
// @Success  204
// @Failure  403  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "booked slot removed"
// @Router   /facilities/{id} [put]
func handleUpdateFacility(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req FacilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Facility.Update(c.Request.Context(), mustSession(c), id, req.toInput()); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete owned facility
// @Tags     facilities
// @Security BearerAuth
// @Param    id  path  int  true  "Facility ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "active bookings"
// @Router   /facilities/{id} [delete]
func handleDeleteFacility(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Facility.Delete(c.Request.Context(), mustSession(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Claim a facility stored without owner
// @Tags     facilities
// @Security BearerAuth
// @Param    id  path  int  true  "Facility ID"
// @Success  204
// @Failure  403  {object}  ErrorResponse  "claims disabled"
// @Failure  409  {object}  ErrorResponse  "already owned"
// @Router   /facilities/{id}/claim [post]
func handleClaimFacility(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Facility.Claim(c.Request.Context(), mustSession(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  List my facilities
// @Tags     me
// @Security BearerAuth
// @Success  200  {array}  domain.Facility
// @Router   /me/facilities [get]
func handleMyFacilities(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Facility.ListOwned(c.Request.Context(), mustSession(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
