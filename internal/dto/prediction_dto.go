package dto

// PredictionResponse is one forecaster output row.
type PredictionResponse struct {
	MedicineName    string  `json:"medicine_name"`
	PredictedDemand float64 `json:"predicted_demand"`
	Confidence      float64 `json:"confidence"`
	Recommendation  string  `json:"recommendation"` // reorder | sufficient
}

// PredictionsUnavailableResponse is returned when the dataset is too small.
type PredictionsUnavailableResponse struct {
	Message string `json:"message"`
}
