package dto

// GenerateRequest payload for text generation endpoints.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse carries a text generation result.
type GenerateResponse struct {
	RequestID string `json:"request_id"`
	Content   string `json:"content"`
	Cached    bool   `json:"cached"`
}

// GenerateImageResponse carries an image generation result.
type GenerateImageResponse struct {
	RequestID string `json:"request_id"`
	ImageURL  string `json:"image_url"`
}
