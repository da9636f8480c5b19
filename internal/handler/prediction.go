package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"falcon9/internal/launch"
	"falcon9/internal/prediction"
)

type PredictionHandler struct {
	Service *prediction.Service
	Logger  *zap.Logger
}

func (h *PredictionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.POST("/predictions", h.predict)
	group.GET("/options", h.options)
}

type predictionResponse struct {
	Success      bool    `json:"success"`
	Verdict      string  `json:"verdict"`
	Probability  float64 `json:"probability"`
	Percent      string  `json:"percent"`
	Band         string  `json:"band"`
	Label        float64 `json:"label"`
	ModelName    string  `json:"model_name"`
	ModelVersion string  `json:"model_version"`
}

func toPredictionResponse(res prediction.Result) predictionResponse {
	return predictionResponse{
		Success:      res.Success,
		Verdict:      res.Verdict(),
		Probability:  res.Probability,
		Percent:      res.Percent(),
		Band:         string(res.Band),
		Label:        res.Label,
		ModelName:    res.ModelName,
		ModelVersion: res.ModelVersion,
	}
}

// @Summary Predict landing success
// @Tags predictions
// @Accept json
// @Produce json
// @Param body body launch.Input true "Launch parameters"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 500 {object} apiResponse
// @Failure 503 {object} apiResponse
// @Router /api/v1/predictions [post]
func (h *PredictionHandler) predict(c *gin.Context) {
	if !h.Service.Ready() {
		writePredictionError(c, prediction.ErrModelUnavailable)
		return
	}
	var in launch.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		if fe, ok := launch.DecodeFieldError(err); ok {
			writePredictionError(c, fe)
			return
		}
		Error(c, http.StatusBadRequest, "invalid body", map[string]any{"error": "invalid_body"})
		return
	}
	params, err := in.Parameters()
	if err != nil {
		writePredictionError(c, err)
		return
	}
	res, err := h.Service.Predict(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil && errors.Is(err, prediction.ErrInferenceFailure) {
			h.Logger.Error("inference failed", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
		}
		writePredictionError(c, err)
		return
	}
	Ok(c, toPredictionResponse(res), nil)
}

// @Summary Accepted launch parameter values
// @Tags predictions
// @Produce json
// @Success 200 {object} apiResponse
// @Router /api/v1/options [get]
func (h *PredictionHandler) options(c *gin.Context) {
	Ok(c, h.Service.Options(), nil)
}

func writePredictionError(c *gin.Context, err error) {
	class := prediction.Classify(err)
	meta := map[string]any{"error": class}
	switch class {
	case "invalid_input":
		var fe *prediction.InvalidInputError
		if errors.As(err, &fe) {
			meta["field"] = fe.Field
		}
		Error(c, http.StatusBadRequest, err.Error(), meta)
	case "model_unavailable":
		Error(c, http.StatusServiceUnavailable, "model unavailable", meta)
	case "inference_failure":
		Error(c, http.StatusInternalServerError, err.Error(), meta)
	default:
		meta["error"] = "internal"
		Error(c, http.StatusInternalServerError, err.Error(), meta)
	}
}
