package httpgin

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/courtbook/internal/upload"
)

// @Summary  Upload a facility or court image
// @Tags     uploads
// @Security BearerAuth
// @Accept   multipart/form-data
// @Param    file  formData  file  true  "image"
// @Success  201  {object}  UploadResponse
// @Failure  400  {object}  ErrorResponse
// @Failure  413  {object}  ErrorResponse
// @Failure  502  {object}  ErrorResponse
// @Router   /uploads/images [post]
func handleUploadImage(up upload.Uploader, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if up == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "uploads disabled"})
			return
		}

		// Room for the multipart headers around the file.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<10)

		fh, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
				return
			}
			badRequest(c, "file is required")
			return
		}
		if fh.Size > maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			badRequest(c, "cannot read file")
			return
		}
		defer f.Close()

		body, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
		if err != nil {
			badRequest(c, "cannot read file")
			return
		}
		if int64(len(body)) > maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
			return
		}

		contentType := http.DetectContentType(body)
		if !strings.HasPrefix(contentType, "image/") {
			badRequest(c, "file must be an image")
			return
		}

		url, err := up.Upload(c.Request.Context(), fh.Filename, contentType, body)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, UploadResponse{URL: url})
	}
}
