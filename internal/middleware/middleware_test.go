package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    dto.ErrorCode
		wantMessage string
		wantDetails interface{}
	}{
		{
			name:        "student missing",
			err:         apperrors.ErrStudentNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrorCodeResourceNotFound,
			wantMessage: "Student not found",
		},
		{
			name:        "faculty in use",
			err:         apperrors.ErrFacultyInUse.WithCause(errors.New("fk")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeResourceInUse,
			wantMessage: "Cannot delete faculty: they are assigned as an advisor or to a course.",
		},
		{
			name:        "invalid id",
			err:         apperrors.NewValidationError("invalid student ID"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeValidationFailed,
			wantMessage: "invalid student ID",
		},
		{
			name:        "store failure keeps raw cause",
			err:         apperrors.NewStoreError("failed to update student", errors.New("deadlock detected")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrorCodeDatabaseError,
			wantMessage: "failed to update student",
			wantDetails: "deadlock detected",
		},
		{
			name:        "unclassified error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrorCodeDatabaseError,
			wantMessage: "Internal server error",
			wantDetails: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { HandleAPIError(c, tt.err) })

			w := serve(r, http.MethodGet, "/x", "", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zerolog.Nop()))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := serve(r, http.MethodGet, "/x", "", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = serve(r, http.MethodGet, "/x", "", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		wantStatus int
		wantAllow  string
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "http://localhost:3000", method: http.MethodGet, wantStatus: http.StatusOK, wantAllow: "*"},
		{name: "listed origin", origins: []string{"http://localhost:3000"}, origin: "http://localhost:3000", method: http.MethodGet, wantStatus: http.StatusOK, wantAllow: "http://localhost:3000"},
		{name: "unlisted origin", origins: []string{"http://localhost:3000"}, origin: "http://evil.test", method: http.MethodGet, wantStatus: http.StatusOK, wantAllow: ""},
		{name: "preflight", origins: nil, origin: "http://localhost:3000", method: http.MethodOptions, wantStatus: http.StatusNoContent, wantAllow: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.origins))
			r.GET("/api/faculty", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := serve(r, tt.method, "/api/faculty", "", http.Header{"Origin": {tt.origin}})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestBindHelpers(t *testing.T) {
	r := gin.New()
	r.PUT("/students/:id", func(c *gin.Context) {
		id, ok := BindID(c, "student")
		if !ok {
			return
		}
		var req dto.StudentRequest
		if !BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "courses": len(req.CourseIDs)})
	})

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{name: "ok", path: "/students/1", body: `{"name":"Ann","courseIds":[1,2]}`, wantStatus: http.StatusOK},
		{name: "non numeric id", path: "/students/abc", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "zero id", path: "/students/0", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", path: "/students/1", body: `{"name":`, wantStatus: http.StatusBadRequest},
		{name: "non positive course", path: "/students/1", body: `{"courseIds":[-1]}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodPut, tt.path, tt.body, http.Header{"Content-Type": {"application/json"}})
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusBadRequest {
				var body dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
			}
		})
	}
}
