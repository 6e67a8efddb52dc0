package stub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/predictor"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := NewServer(cfg)
	require.NoError(t, err)
	return s
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category model.Category
		score    float64
	}{
		{"no keyword", "Un livre", model.CategoryLitterature, 0.35},
		{"empty", "", model.CategoryLitterature, 0.35},
		{"one keyword", "Une histoire d'amour", model.CategoryRomance, 0.6},
		{"two keywords", "Un dragon et la magie", model.CategoryFantasy, 0.8},
		{"capped", "dragon dragon dragon dragon magie", model.CategoryFantasy, 0.95},
		{"tie goes to first", "espace et amour", model.CategoryScienceFiction, 0.6},
		{"folded case", "LA GUERRE", model.CategoryHistoire, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, score := Score(tt.text)
			assert.Equal(t, tt.category, category)
			assert.InDelta(t, tt.score, score, 1e-9)
		})
	}
}

func TestNewServer_InvalidField(t *testing.T) {
	_, err := NewServer(Config{ResponseField: "genre"})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{ResponseField: predictor.FieldCluster})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "cluster", body["field"])
}

func TestPredictHandler(t *testing.T) {
	tests := []struct {
		name  string
		field predictor.CategoryField
		want  string
	}{
		{"default field", "", "category"},
		{"category field", predictor.FieldCategory, "category"},
		{"cluster field", predictor.FieldCluster, "cluster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{ResponseField: tt.field})

			rec := post(t, s, "/predict", `{"text":"Un robot dans l'espace"}`)
			require.Equal(t, http.StatusOK, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Science-Fiction", body[tt.want])
			assert.InDelta(t, 0.8, body["confidenceScore"], 1e-9)
		})
	}
}

func TestPredictHandler_BadRequest(t *testing.T) {
	s := newTestServer(t, Config{})

	for _, body := range []string{`{}`, `{"text":"   "}`, `not json`} {
		rec := post(t, s, "/predict", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "bad_request")
	}
}

type failingCatalog struct{}

func (failingCatalog) BooksByCategory(context.Context, model.Category) ([]model.Book, error) {
	return nil, errors.New("disk on fire")
}

func TestSuggestHandler(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := post(t, s, "/suggest", `{"text":"Une enquête sur un meurtre"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body suggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Thriller", body.Category)
	assert.Equal(t, []string{"Le Silence des Agneaux", "Millénium", "Gone Girl"}, body.SuggestedBooks)

	broken := newTestServer(t, Config{Catalog: failingCatalog{}})
	rec = post(t, broken, "/suggest", `{"text":"Une enquête"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5500", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStubWithPredictorClient(t *testing.T) {
	for _, field := range []predictor.CategoryField{predictor.FieldCategory, predictor.FieldCluster} {
		t.Run(string(field), func(t *testing.T) {
			s := newTestServer(t, Config{ResponseField: field})
			ts := httptest.NewServer(s.Handler())
			defer ts.Close()

			cfg := predictor.DefaultConfig()
			cfg.BaseURL = ts.URL
			client, err := predictor.NewClient(cfg)
			require.NoError(t, err)

			result, err := client.Classify(context.Background(), "Le Hobbit", "Un dragon garde un trésor.")
			require.NoError(t, err)
			assert.Equal(t, model.CategoryFantasy, result.Category)
			assert.InDelta(t, 0.6, result.ConfidenceScore, 1e-9)

			suggestions, err := client.Suggest(context.Background(), "Un amour impossible.")
			require.NoError(t, err)
			assert.Equal(t, model.CategoryRomance, suggestions.Category)
			assert.Len(t, suggestions.SuggestedBooks, 3)
		})
	}
}
