package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/courtbook/internal/service"
)

// @Summary  My profile
// @Tags     me
// @Security BearerAuth
// @Success  200  {object}  domain.User
// @Router   /me/profile [get]
func handleGetProfile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svcs.Profile.Get(c.Request.Context(), mustSession(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// @Summary  Update my profile
// @Tags     me
// @Security BearerAuth
// @Accept   json
// @Param    body  body  ProfileRequest  true  "profile"
// @Success  200  {object}  domain.User
// @Failure  400  {object}  ErrorResponse
// @Router   /me/profile [put]
func handleUpdateProfile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}

		u, err := svcs.Profile.Update(c.Request.Context(), mustSession(c), req.toInput())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
