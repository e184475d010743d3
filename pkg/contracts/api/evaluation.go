// Package api defines the request and response payloads of the evaluation
// HTTP API.
package api

// EvaluateRequest asks the server to score one preprocessing approach on a
// dataset reachable from the server's filesystem.
type EvaluateRequest struct {
	DatasetPath string `json:"dataset_path" validate:"required"`
	Approach    string `json:"approach" validate:"required,oneof=drop mean mean_indicator composite"`
	Trees       int    `json:"trees,omitempty" validate:"omitempty,gt=0"`
	SplitSeed   *int64 `json:"split_seed,omitempty"`
}

// EvaluateResponse reports one scored evaluation run.
type EvaluateResponse struct {
	RunID      string  `json:"run_id"`
	Approach   string  `json:"approach"`
	Label      string  `json:"label"`
	MAE        float64 `json:"mae"`
	RMSE       float64 `json:"rmse"`
	R2         float64 `json:"r2"`
	Rows       int     `json:"rows"`
	Columns    int     `json:"columns"`
	DurationMS int64   `json:"duration_ms"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
