package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"schema-designer-backend/internal/policy"
)

// Placeholder answers without a model: canned questions while clarifying and a canned
// schema once a generation instruction arrives. It lets the whole flow run offline.
type Placeholder struct{}

var _ Generator = (*Placeholder)(nil)

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

var placeholderQuestions = []string{
	"What are the main entities you need to store, for example users, orders or products?",
	"How do those entities relate to each other? Which ones belong to or reference others?",
	"Which fields will you search or filter on most often?",
	"Are there any uniqueness rules or other constraints the data must follow?",
}

const placeholderNoSQLSchema = `{
  "collections": {
    "users": {
      "_id": "ObjectId",
      "email": "string",
      "name": "string",
      "createdAt": "Date"
    },
    "orders": {
      "_id": "ObjectId",
      "userId": "ObjectId (ref users)",
      "items": [{ "sku": "string", "quantity": "int", "price": "decimal" }],
      "status": "string",
      "createdAt": "Date"
    }
  },
  "indexes": {
    "users": [{ "email": 1, "unique": true }],
    "orders": [{ "userId": 1, "createdAt": -1 }]
  }
}`

const placeholderSQLSchema = `CREATE TABLE users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE orders (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users (id),
    status TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX idx_orders_user_created ON orders (user_id, created_at DESC);

INSERT INTO users (email, name) VALUES ('ada@example.com', 'Ada');`

func (p *Placeholder) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var system string
	userTurns := 0
	for _, m := range messages {
		switch m.Role {
		case schema.ChatMessageTypeSystem:
			if system == "" {
				system = textOf(m)
			}
		case schema.ChatMessageTypeHuman:
			userTurns++
		}
	}

	var content string
	switch {
	case strings.Contains(system, policy.GenerationMarker) && strings.Contains(system, "SQL DDL"):
		content = fmt.Sprintf("Here is the schema based on what you described:\n\n```sql\n%s\n```\n\nOrders reference users by foreign key.", placeholderSQLSchema)
	case strings.Contains(system, policy.GenerationMarker):
		content = fmt.Sprintf("Here is the schema based on what you described:\n\n```json\n%s\n```\n\nOrder items are embedded because they are always read with their order; users are referenced.", placeholderNoSQLSchema)
	default:
		idx := 0
		if userTurns > 0 {
			idx = (userTurns - 1) % len(placeholderQuestions)
		}
		content = placeholderQuestions[idx]
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content, StopReason: "stop"}},
	}, nil
}

func textOf(m llms.MessageContent) string {
	var b strings.Builder
	for _, part := range m.Parts {
		if text, ok := part.(llms.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}
