package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitValidator()
	utils.InitJWT()
	os.Exit(m.Run())
}

// Every goal-domain route sits behind AuthMiddleware; a request without a
// bearer token never reaches the handler.
func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	goalHandler := NewGoalHandler(&usecase.GoalsService{})
	dashboardHandler := NewDashboardHandler(&usecase.GoalsService{})

	router := gin.New()
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/goals/", goalHandler.GetUserGoals)
	protected.POST("/goals/", goalHandler.CreateGoal)
	protected.GET("/dashboard/top-goals", dashboardHandler.GetTopGoals)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/goals/"},
		{http.MethodPost, "/api/goals/"},
		{http.MethodGet, "/api/dashboard/top-goals"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestProtectedRoutesRejectMalformedToken(t *testing.T) {
	goalHandler := NewGoalHandler(&usecase.GoalsService{})

	router := gin.New()
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/goals/", goalHandler.GetUserGoals)

	req := httptest.NewRequest(http.MethodGet, "/api/goals/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestDashboardLimitValidation(t *testing.T) {
	dashboardHandler := NewDashboardHandler(&usecase.GoalsService{})

	router := gin.New()
	// user_id injected directly; this test only covers query validation
	router.GET("/dashboard/top-goals", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		dashboardHandler.GetTopGoals(c)
	})

	for _, limit := range []string{"0", "-3", "21", "abc"} {
		t.Run("limit "+limit, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/top-goals?limit="+limit, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), "limit") {
				t.Errorf("body %q should mention the limit", w.Body.String())
			}
		})
	}
}

func TestCreateGoalRejectsBadBody(t *testing.T) {
	goalHandler := NewGoalHandler(&usecase.GoalsService{})

	router := gin.New()
	router.POST("/goals/", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		goalHandler.CreateGoal(c)
	})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing title", `{"description":"no title here"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/goals/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
