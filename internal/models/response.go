package models

type ChatResponse struct {
	Content string `json:"content"`
}

type CreateProjectResponse struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

type ProjectResponse struct {
	Project
	// Source reports whether the durable backend or the in-process fallback served the request.
	Source string `json:"source"`
}

type StatusResponse struct {
	Status string `json:"status"`
	// OpenAI is true when a text-generation provider is configured.
	OpenAI bool `json:"openai"`
	// Database is true when the durable backend answers a ping.
	Database bool   `json:"database"`
	Provider string `json:"provider"`
	Backend  string `json:"backend"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
