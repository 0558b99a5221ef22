package recs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movierec/pkg/models"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := newTestEngine(t,
		[]models.Movie{
			{ID: 10, Title: "A"},
			{ID: 20, Title: "B"},
			{ID: 30, Title: "C"},
		},
		[][]float64{
			{1.0, 0.5, 0.5},
			{0.5, 1.0, 0.3},
			{0.5, 0.3, 1.0},
		},
	)

	router := gin.New()
	NewHandler(NewService(e, nil), nil, 0).RegisterRoutes(router.Group(""))
	return router
}

type recsResponse struct {
	Title string    `json:"title"`
	K     int       `json:"k"`
	Items []recItem `json:"items"`
}

func doRecs(t *testing.T, router *gin.Engine, path string) (int, recsResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body recsResponse
	if w.Code == http.StatusOK || w.Code == http.StatusNotFound {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestRecommendByTitleEndpoint(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRecs(t, router, "/recommendations?title=A&k=2")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "B", body.Items[0].Title)
	assert.Equal(t, "C", body.Items[1].Title)

	code, _ = doRecs(t, router, "/recommendations?title=Z")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRecommendByIDEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Lookup by catalog id resolves the title, then ranks the same way
	// the title endpoint does.
	code, body := doRecs(t, router, "/movies/10/recommendations?k=2")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A", body.Title)
	require.Len(t, body.Items, 2)
	assert.Equal(t, 20, body.Items[0].MovieID)
	assert.Equal(t, 30, body.Items[1].MovieID)
}

func TestRecommendByIDUnknownMovie(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRecs(t, router, "/movies/999/recommendations")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Empty(t, body.Items)

	code, _ = doRecs(t, router, "/movies/not-a-number/recommendations")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRecommendRejectsBadK(t *testing.T) {
	router := newTestRouter(t)

	for _, k := range []string{"0", "-1", "51", "abc"} {
		code, _ := doRecs(t, router, "/recommendations?title=A&k="+k)
		assert.Equal(t, http.StatusBadRequest, code, "k=%s", k)
	}
}
