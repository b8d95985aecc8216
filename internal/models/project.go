package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidSchemaType = errors.New("invalid schema type")

type SchemaType string

const (
	SchemaTypeSQL   SchemaType = "SQL"
	SchemaTypeNoSQL SchemaType = "NoSQL"
)

func (t SchemaType) Valid() bool {
	return t == SchemaTypeSQL || t == SchemaTypeNoSQL
}

// Filename is the download name of a schema of this type.
func (t SchemaType) Filename() string {
	if t == SchemaTypeSQL {
		return "schema.sql"
	}
	return "schema.json"
}

func (t SchemaType) ContentType() string {
	if t == SchemaTypeSQL {
		return "application/sql"
	}
	return "application/json"
}

// ParseSchemaType accepts any casing of "SQL" or "NoSQL".
func ParseSchemaType(s string) (SchemaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sql":
		return SchemaTypeSQL, nil
	case "nosql":
		return SchemaTypeNoSQL, nil
	}
	return "", fmt.Errorf("%w: %q (expected SQL or NoSQL)", ErrInvalidSchemaType, s)
}

const DefaultProjectName = "Untitled Project"

// Project pairs a generated schema with the conversation that produced it.
type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Schema       string     `json:"schema"`
	SchemaType   SchemaType `json:"schemaType"`
	Conversation []Message  `json:"conversation"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Clone returns a copy that shares no slice storage with p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Conversation != nil {
		cp.Conversation = make([]Message, len(p.Conversation))
		copy(cp.Conversation, p.Conversation)
	}
	return &cp
}

// ProjectPatch carries the user-editable fields of a project. Nil fields are left unchanged.
type ProjectPatch struct {
	Name   *string
	Schema *string
}

func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Schema == nil
}

// Apply writes the patch onto project and stamps UpdatedAt.
func (p ProjectPatch) Apply(project *Project, at time.Time) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Schema != nil {
		project.Schema = *p.Schema
	}
	project.UpdatedAt = at
}
