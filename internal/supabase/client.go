package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
	"schema-designer-backend/internal/config"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(strings.TrimSuffix(cfg.SupabaseURL, "/"), cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// Projects returns the projects table as a durable store backend.
func (c *Client) Projects() *ProjectTable {
	return NewProjectTable(c.Supabase)
}

// Archive returns the schema archive for the configured storage bucket.
func (c *Client) Archive() *SchemaArchive {
	return NewSchemaArchive(c.Config.SupabaseURL, c.Config.SupabaseKey, c.Config.SupabaseStorageBucket)
}
