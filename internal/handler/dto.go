package handler

type ClassificationRequest struct {
	Classification string `json:"classification"`
}

type PromptResponse struct {
	Prompt         string `json:"prompt"`
	Classification string `json:"classification"`
	RequestID      string `json:"requestId"`
	CacheBuster    string `json:"cacheBuster"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
