// Package client talks to a running schema designer server.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"schema-designer-backend/internal/models"
)

var ErrNotFound = errors.New("project not found")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	client *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

func responseError(res *resty.Response) error {
	if res.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	msg := res.String()
	if e, ok := res.Error().(*models.ErrorResponse); ok && e.Error != "" {
		msg = e.Error
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	return &APIError{StatusCode: res.StatusCode(), Message: msg}
}

// Reply asks the server for the assistant's next message.
func (c *Client) Reply(ctx context.Context, history []models.Message, schemaType models.SchemaType) (string, error) {
	var out models.ChatResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(models.ChatRequest{Messages: history, SchemaType: string(schemaType)}).
		SetResult(&out).
		SetError(&models.ErrorResponse{}).
		Post("/api/chat")
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	if res.IsError() {
		return "", responseError(res)
	}
	return out.Content, nil
}

func (c *Client) CreateProject(ctx context.Context, p *models.Project) (string, error) {
	var out models.CreateProjectResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(models.CreateProjectRequest{
			Name:         p.Name,
			Schema:       p.Schema,
			SchemaType:   string(p.SchemaType),
			Conversation: p.Conversation,
		}).
		SetResult(&out).
		SetError(&models.ErrorResponse{}).
		Post("/api/projects")
	if err != nil {
		return "", fmt.Errorf("create project request failed: %w", err)
	}
	if res.IsError() {
		return "", responseError(res)
	}
	return out.ID, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.ProjectResponse, error) {
	var out models.ProjectResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		SetError(&models.ErrorResponse{}).
		Get("/api/projects/{id}")
	if err != nil {
		return nil, fmt.Errorf("get project request failed: %w", err)
	}
	if res.IsError() {
		return nil, responseError(res)
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) error {
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(models.UpdateProjectRequest{Name: patch.Name, Schema: patch.Schema}).
		SetError(&models.ErrorResponse{}).
		Put("/api/projects/{id}")
	if err != nil {
		return fmt.Errorf("update project request failed: %w", err)
	}
	if res.IsError() {
		return responseError(res)
	}
	return nil
}

// DownloadSchema returns the raw schema file of a project.
func (c *Client) DownloadSchema(ctx context.Context, id string) ([]byte, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetHeader("Accept", "*/*").
		SetError(&models.ErrorResponse{}).
		Get("/api/projects/{id}/schema")
	if err != nil {
		return nil, fmt.Errorf("download schema request failed: %w", err)
	}
	if res.IsError() {
		return nil, responseError(res)
	}
	return res.Body(), nil
}

func (c *Client) Status(ctx context.Context) (*models.StatusResponse, error) {
	var out models.StatusResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&models.ErrorResponse{}).
		Get("/api/status")
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	if res.IsError() {
		return nil, responseError(res)
	}
	return &out, nil
}
