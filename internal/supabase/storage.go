package supabase

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
	"schema-designer-backend/internal/models"
)

// SchemaArchive mirrors project schemas into a storage bucket.
type SchemaArchive struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewSchemaArchive(supabaseURL, serviceRoleKey, bucket string) *SchemaArchive {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &SchemaArchive{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// SchemaPath returns projects/{id}/schema.{json|sql}.
func SchemaPath(p *models.Project) string {
	return fmt.Sprintf("projects/%s/%s", p.ID, p.SchemaType.Filename())
}

// Put uploads the project's schema, replacing any earlier version, and returns its path and public URL.
func (a *SchemaArchive) Put(p *models.Project) (string, string, error) {
	storagePath := SchemaPath(p)

	contentType := p.SchemaType.ContentType()
	upsert := true
	_, err := a.client.UploadFile(a.bucket, storagePath, bytes.NewReader([]byte(p.Schema)), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload schema: %w", err)
	}

	return storagePath, a.PublicURL(storagePath), nil
}

func (a *SchemaArchive) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", a.baseURL, a.bucket, storagePath)
}
