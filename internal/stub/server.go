// Package stub implements a local stand-in for the genre classification
// service. It serves the same /predict and /health contract, scoring text
// against the genre catalog's keywords.
package stub

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/jwulff/cineai/internal/catalog"
	"github.com/jwulff/cineai/internal/classifier"
	"go.uber.org/zap"
)

const (
	minTextRunes  = 10
	shortTextMsg  = "Lütfen en az 10 karakterlik bir film açıklaması girin."
	badRequestMsg = "Geçersiz istek gövdesi."
	predictErrMsg = "Tahmin sırasında bir hata oluştu: "
)

// Server handles the classification API.
type Server struct {
	catalog *catalog.Store
	logger  *zap.Logger
}

// New creates a stub server backed by the given catalog. A nil catalog
// makes /health report the model as not loaded and /predict fail with 500.
func New(store *catalog.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{catalog: store, logger: logger}
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors())
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all API routes.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.Root)
	r.GET("/health", s.Health)
	r.POST("/predict", s.Predict)
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub classifier listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down stub classifier")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Root reports the service banner.
func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":           "🎬 CineAI Pro API (stub)",
		"status":            "active",
		"model_loaded":      s.catalog != nil,
		"vectorizer_loaded": s.catalog != nil,
		"endpoints": gin.H{
			"predict": "/predict (POST)",
			"health":  "/health (GET)",
		},
	})
}

// Health reports readiness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, classifier.HealthResponse{
		Status:           "healthy",
		ModelLoaded:      s.catalog != nil,
		VectorizerLoaded: s.catalog != nil,
	})
}

// Predict scores the synopsis and returns the top genres.
func (s *Server) Predict(c *gin.Context) {
	if s.catalog == nil {
		c.JSON(http.StatusInternalServerError, classifier.ErrorResponse{
			Detail: "Model veya Vectorizer yüklenemedi. Lütfen dosyaların varlığını kontrol edin.",
		})
		return
	}

	var req classifier.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, classifier.ErrorResponse{Detail: badRequestMsg})
		return
	}

	text := strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(text) < minTextRunes {
		c.JSON(http.StatusBadRequest, classifier.ErrorResponse{Detail: shortTextMsg})
		return
	}

	resp, err := s.predict(text)
	if err != nil {
		s.logger.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, classifier.ErrorResponse{Detail: predictErrMsg + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) predict(text string) (classifier.PredictResponse, error) {
	genres, err := s.catalog.Scorable()
	if err != nil {
		return classifier.PredictResponse{}, err
	}
	ranked := Score(genres, text)
	if len(ranked) == 0 {
		return classifier.PredictResponse{}, errors.New("catalog has no scorable genres")
	}

	top := make([]classifier.ProbabilityItem, 0, TopN)
	for _, sc := range ranked[:min(TopN, len(ranked))] {
		info, err := s.catalog.Lookup(sc.Genre.Key)
		if err != nil {
			return classifier.PredictResponse{}, err
		}
		top = append(top, classifier.ProbabilityItem{
			Genre:       sc.Genre.Key,
			GenreTR:     info.Name,
			Emoji:       info.Emoji,
			Probability: round2(sc.Probability * 100),
		})
	}

	best := ranked[0]
	info, err := s.catalog.Lookup(best.Genre.Key)
	if err != nil {
		return classifier.PredictResponse{}, err
	}

	return classifier.PredictResponse{
		Success:          true,
		PredictedGenre:   best.Genre.Key,
		PredictedGenreTR: info.Name,
		Emoji:            info.Emoji,
		Description:      info.Description,
		Confidence:       round2(best.Probability * 100),
		TopProbabilities: top,
		TranslatedText:   text,
		OriginalText:     text,
	}, nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetHeader(classifier.RequestIDHeader)),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+classifier.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
