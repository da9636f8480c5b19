package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"falcon9/internal/artifact"
	"falcon9/internal/prediction"
)

type ModelHandler struct {
	Service *prediction.Service
	Retrier *artifact.Retrier
}

func (h *ModelHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/model")
	group.GET("", h.info)
	group.POST("/reload", h.reload)
}

type modelResponse struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	PositiveClass float64   `json:"positive_class"`
	Classes       []float64 `json:"classes"`
	Features      []string  `json:"features"`
	Trees         int       `json:"trees"`
	Source        string    `json:"source,omitempty"`
	Path          string    `json:"path,omitempty"`
}

func (h *ModelHandler) describe() (modelResponse, error) {
	info, err := h.Service.ModelInfo()
	if err != nil {
		return modelResponse{}, err
	}
	out := modelResponse{
		Name:          info.Name,
		Version:       info.Version,
		PositiveClass: info.PositiveClass,
		Classes:       info.Classes,
		Features:      info.Features,
		Trees:         info.Trees,
	}
	if h.Retrier != nil && h.Retrier.Slot != nil {
		if l := h.Retrier.Slot.Get(); l != nil {
			out.Source = l.Source.Name
			out.Path = l.Source.Path
		}
	}
	return out, nil
}

// @Summary Loaded model metadata
// @Tags model
// @Produce json
// @Success 200 {object} apiResponse
// @Failure 503 {object} apiResponse
// @Router /api/v1/model [get]
func (h *ModelHandler) info(c *gin.Context) {
	out, err := h.describe()
	if err != nil {
		writePredictionError(c, err)
		return
	}
	Ok(c, out, nil)
}

// @Summary Load the model if none is held yet
// @Description An artifact that is already loaded is never replaced.
// @Tags model
// @Produce json
// @Success 200 {object} apiResponse
// @Failure 503 {object} apiResponse
// @Router /api/v1/model/reload [post]
func (h *ModelHandler) reload(c *gin.Context) {
	if h.Retrier == nil {
		Error(c, http.StatusServiceUnavailable, "reload disabled", nil)
		return
	}
	if _, err := h.Retrier.Ensure(c.Request.Context()); err != nil {
		meta := map[string]any{"error": "model_unavailable"}
		var le *artifact.LoadError
		if errors.As(err, &le) {
			attempts := make([]map[string]string, 0, len(le.Attempts))
			for _, a := range le.Attempts {
				attempts = append(attempts, map[string]string{
					"candidate": a.Candidate.Name,
					"path":      a.Candidate.Path,
					"error":     a.Err.Error(),
				})
			}
			meta["attempts"] = attempts
		}
		Error(c, http.StatusServiceUnavailable, "model unavailable", meta)
		return
	}
	out, err := h.describe()
	if err != nil {
		writePredictionError(c, err)
		return
	}
	Ok(c, out, nil)
}
