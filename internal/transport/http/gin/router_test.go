package httpgin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUploader struct {
	upload func(ctx context.Context, filename, contentType string, body []byte) (string, error)
}

func (f fakeUploader) Upload(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	return f.upload(ctx, filename, contentType, body)
}

func newTestRouter(up upload.Uploader) *gin.Engine {
	return NewRouter(Deps{
		Services: &service.Services{Profile: profile.New(nil)},
		Auth:     auth.New(testSecret),
		Uploader: up,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.New(testSecret).NewToken(uuid.New(), role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRespondErr(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("service.x.Y:%w", err) }

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", wrap(&facility.ValidationError{Field: "name", Reason: "required"}), http.StatusBadRequest},
		{"invalid day", wrap(query.ErrInvalidDay), http.StatusBadRequest},
		{"blank profile name", wrap(profile.ErrNameRequired), http.StatusBadRequest},
		{"missing reference", wrap(fmt.Errorf("%w: bookings_user_id_fkey", repository.ErrReferenceMissing)), http.StatusBadRequest},
		{"facility not found", wrap(facility.ErrFacilityNotFound), http.StatusNotFound},
		{"court not found", wrap(query.ErrCourtNotFound), http.StatusNotFound},
		{"slot not found", wrap(booking.ErrSlotNotFound), http.StatusNotFound},
		{"booking not found", wrap(booking.ErrBookingNotFound), http.StatusNotFound},
		{"repository not found", wrap(repository.ErrNotFound), http.StatusNotFound},
		{"not owner", wrap(facility.ErrNotOwner), http.StatusForbidden},
		{"not allowed", wrap(booking.ErrNotAllowed), http.StatusForbidden},
		{"slot unavailable", wrap(booking.ErrSlotUnavailable), http.StatusConflict},
		{"booking not active", wrap(booking.ErrBookingNotActive), http.StatusConflict},
		{"booked slots deselected", wrap(fmt.Errorf("%w: %w", facility.ErrBookedSlotsDeselected,
			&slotgrid.BookedSlotsDeselectedError{Keys: []slotgrid.Key{{Day: domain.Monday, StartTime: "06:00", EndTime: "07:00"}}})),
			http.StatusConflict},
		{"active bookings", wrap(facility.ErrActiveBookings), http.StatusConflict},
		{"replace with bookings", wrap(facility.ErrReplaceWithBookings), http.StatusConflict},
		{"already owned", wrap(facility.ErrAlreadyOwned), http.StatusConflict},
		{"rate limited", wrap(&booking.RateLimitedError{RetryAfter: 3 * time.Second}), http.StatusTooManyRequests},
		{"idempotency reuse", wrap(redisrepo.ErrIdempotencyKeyReused), http.StatusUnprocessableEntity},
		{"upstream", wrap(upload.ErrUpstream), http.StatusBadGateway},
		{"partial write", wrap(&booking.PartialWriteError{Step: "mark slot booked", Err: errors.New("reset")}), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondErr(c, tt.err)

			assert.Equal(t, tt.status, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondErrRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondErr(c, &booking.RateLimitedError{RetryAfter: 2500 * time.Millisecond})

	assert.Equal(t, "3", w.Header().Get("Retry-After"))
}

func TestGridEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/grid", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var week []query.GridDay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &week))
	assert.Len(t, week, 7)

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/grid", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotModified, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/grid?day=sunday", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &week))
	require.Len(t, week, 1)
	assert.Equal(t, domain.Sunday, week[0].Day)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/grid?day=Funday", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(nil)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"book without token", http.MethodPost, "/bookings", "", http.StatusUnauthorized},
		{"book with bad token", http.MethodPost, "/bookings", "Bearer nope", http.StatusUnauthorized},
		{"basic scheme", http.MethodGet, "/me/bookings", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"create facility", http.MethodPost, "/facilities", "", http.StatusUnauthorized},
		{"save slots", http.MethodPut, "/courts/1/slots", "", http.StatusUnauthorized},
		{"profile", http.MethodGet, "/me/profile", "", http.StatusUnauthorized},
		{"update profile", http.MethodPut, "/me/profile", "", http.StatusUnauthorized},
		{"reconcile without token", http.MethodPost, "/admin/reconcile", "", http.StatusUnauthorized},
		{"reconcile as user", http.MethodPost, "/admin/reconcile", bearer(t, ""), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestBadPathParam(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/bookings/abc/cancel", nil)
	req.Header.Set("Authorization", bearer(t, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartFile(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	var got string
	r := newTestRouter(fakeUploader{upload: func(_ context.Context, filename, contentType string, _ []byte) (string, error) {
		got = contentType
		return "https://cdn.example/images/" + filename, nil
	}})

	body, ct := multipartFile(t, "court.png", png)
	req := httptest.NewRequest(http.MethodPost, "/uploads/images", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", bearer(t, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "image/png", got)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.example/images/court.png", resp.URL)

	body, ct = multipartFile(t, "notes.txt", []byte("hello there"))
	req = httptest.NewRequest(http.MethodPost, "/uploads/images", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", bearer(t, ""))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageRejectsOversizedBody(t *testing.T) {
	called := false
	r := NewRouter(Deps{
		Services: &service.Services{},
		Auth:     auth.New(testSecret),
		Uploader: fakeUploader{upload: func(context.Context, string, string, []byte) (string, error) {
			called = true
			return "", nil
		}},
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxUploadBytes: 64,
	})

	big := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 8<<10)...)
	body, ct := multipartFile(t, "court.png", big)
	req := httptest.NewRequest(http.MethodPost, "/uploads/images", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", bearer(t, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.False(t, called)
}

func TestUploadImageUpstreamFailure(t *testing.T) {
	r := newTestRouter(fakeUploader{upload: func(context.Context, string, string, []byte) (string, error) {
		return "", fmt.Errorf("upload.Retrying.Upload:%w", upload.ErrUpstream)
	}})

	body, ct := multipartFile(t, "court.png", append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 8)...))
	req := httptest.NewRequest(http.MethodPost, "/uploads/images", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", bearer(t, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestEtagMatches(t *testing.T) {
	tag := `W/"abc"`

	assert.True(t, etagMatches(`W/"abc"`, tag))
	assert.True(t, etagMatches(`"abc"`, tag))
	assert.True(t, etagMatches(`"x", W/"abc"`, tag))
	assert.True(t, etagMatches(`*`, tag))
	assert.False(t, etagMatches(``, tag))
	assert.False(t, etagMatches(`"abd"`, tag))
}

func TestRequireAuthSetsSession(t *testing.T) {
	a := auth.New(testSecret)
	userID := uuid.New()
	tok, err := a.NewToken(userID, domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/whoami", RequireAuth(a), RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		sess := mustSession(c)
		c.JSON(http.StatusOK, gin.H{"user": sess.UserID.String(), "role": sess.Role})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user"])
	assert.Equal(t, domain.RoleAdmin, body["role"])
}

func TestUpdateProfileRequiresName(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPut, "/me/profile", bytes.NewBufferString(`{"name":"   ","bio":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "name is required", body.Error)
}
