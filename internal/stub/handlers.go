package stub

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/biblio/internal/model"
)

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

type suggestResponse struct {
	Category       string   `json:"category"`
	SuggestedBooks []string `json:"suggestedBooks"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "field": s.field})
}

func (s *Server) handlePredict(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		badRequest(c, "text is required")
		return
	}

	category, score := Score(req.Text)
	slog.Debug("Stub prediction", "category", category, "score", score)

	c.JSON(http.StatusOK, gin.H{
		s.field:           string(category),
		"confidenceScore": score,
	})
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		badRequest(c, "text is required")
		return
	}

	category, _ := Score(req.Text)
	books, err := s.catalog.BooksByCategory(c.Request.Context(), category)
	if err != nil {
		slog.Error("Catalog lookup failed", "category", category, "error", err)
		internal(c, "catalog unavailable")
		return
	}

	c.JSON(http.StatusOK, suggestResponse{
		Category:       string(category),
		SuggestedBooks: titles(books),
	})
}

func titles(books []model.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}
