package dto

// ExportQuery selects which collection to export
type ExportQuery struct {
	Type string `form:"type" example:"alumni" enums:"alumni,students"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store" example:"file"`
}
