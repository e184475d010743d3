package http

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"housecli/internal/config"
	apierrors "housecli/internal/errors"
	"housecli/internal/pipeline"
	"housecli/pkg/contracts/api"
)

// EvaluateHandler serves POST /api/v1/evaluate.
type EvaluateHandler struct {
	cfg      *config.Config
	logger   *slog.Logger
	validate *validator.Validate
}

// NewEvaluateHandler creates the evaluation handler.
func NewEvaluateHandler(cfg *config.Config, logger *slog.Logger) *EvaluateHandler {
	return &EvaluateHandler{
		cfg:      cfg,
		logger:   logger.With(slog.String("handler", "evaluate")),
		validate: validator.New(),
	}
}

// Handle decodes and validates the request, runs the pipeline and renders
// the scored result.
func (h *EvaluateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req api.EvaluateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		apierrors.WriteError(w, apierrors.ValidationError(err.Error()))
		return
	}

	runReq := pipeline.RunRequest{
		DatasetPath:    req.DatasetPath,
		Approach:       pipeline.Approach(req.Approach),
		TargetColumn:   h.cfg.Pipeline.TargetColumn,
		TrainFraction:  h.cfg.Pipeline.TrainFraction,
		MaxCardinality: h.cfg.Pipeline.MaxCardinality,
		SplitSeed:      h.cfg.Pipeline.SplitSeed,
		Trees:          h.cfg.Pipeline.Trees,
		ForestSeed:     h.cfg.Pipeline.ForestSeed,
		FillValue:      h.cfg.Pipeline.FillValue,
	}
	if req.Trees > 0 {
		runReq.Trees = req.Trees
	}
	if req.SplitSeed != nil {
		runReq.SplitSeed = *req.SplitSeed
	}

	result, err := pipeline.Run(r.Context(), runReq, h.logger)
	if err != nil {
		evaluationsTotal.WithLabelValues(req.Approach, "error").Inc()
		h.logger.ErrorContext(r.Context(), "evaluation failed",
			slog.String("approach", req.Approach),
			slog.String("error", err.Error()))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			apierrors.WriteError(w, apierrors.DatasetNotFoundError(req.DatasetPath, err))
		default:
			apierrors.WriteError(w, apierrors.EvaluationFailedError(err))
		}
		return
	}

	evaluationsTotal.WithLabelValues(req.Approach, "ok").Inc()
	evaluationDuration.WithLabelValues(req.Approach).Observe(result.Duration.Seconds())

	render.JSON(w, r, api.EvaluateResponse{
		RunID:      result.RunID,
		Approach:   string(result.Approach),
		Label:      result.Label,
		MAE:        result.MAE,
		RMSE:       result.RMSE,
		R2:         result.R2,
		Rows:       result.Rows,
		Columns:    result.Columns,
		DurationMS: result.Duration.Milliseconds(),
	})
}
