package models

type ChatRequest struct {
	// Messages is the full transcript, including the latest user turn.
	Messages []Message `json:"messages" binding:"required"`
	// SchemaType selects the instruction flavour; defaults to the server's configured type.
	SchemaType string `json:"schemaType,omitempty" example:"NoSQL"`
}

type CreateProjectRequest struct {
	Name         string    `json:"name" example:"Bookstore"`
	Schema       string    `json:"schema"`
	SchemaType   string    `json:"schemaType,omitempty" example:"NoSQL"`
	Conversation []Message `json:"conversation"`
}

type UpdateProjectRequest struct {
	Name   *string `json:"name,omitempty"`
	Schema *string `json:"schema,omitempty"`
}

func (r UpdateProjectRequest) Patch() ProjectPatch {
	return ProjectPatch{Name: r.Name, Schema: r.Schema}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
