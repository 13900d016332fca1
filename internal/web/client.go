package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ifc-reuse-backend/internal/service"

	"github.com/google/uuid"
)

// APIError is a non-2xx answer from the JSON API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the API rejected the bearer token
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// APIClient calls the JSON API on behalf of a logged-in page user
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the API served at baseURL
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a token
func (c *APIClient) Login(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	var resp service.LoginResponse
	body := service.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account
func (c *APIClient) Register(ctx context.Context, name, email, password string) (*service.UserResponse, error) {
	var resp service.UserResponse
	body := service.RegisterRequest{Name: name, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload streams an IFC file to the API as multipart form data
func (c *APIClient) Upload(ctx context.Context, token, filename string, file io.Reader, projectName, location string) (*service.UploadResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			if err := mw.WriteField("projectName", projectName); err != nil {
				return err
			}
			if err := mw.WriteField("location", location); err != nil {
				return err
			}
			part, err := mw.CreateFormFile("file", filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, file); err != nil {
				return err
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/uploads", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var resp service.UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProjects returns all projects, or only the caller's when mine is set
func (c *APIClient) ListProjects(ctx context.Context, token string, mine bool) ([]service.ProjectResponse, error) {
	path := "/api/v1/projects"
	if mine {
		path += "?mine=true"
	}
	var resp []service.ProjectResponse
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SearchComponents queries the catalog with the given filters
func (c *APIClient) SearchComponents(ctx context.Context, token string, filters url.Values) (*service.ComponentListResponse, error) {
	path := "/api/v1/components"
	if encoded := filters.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp service.ComponentListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetReusable flips the reuse flag of one catalog component
func (c *APIClient) SetReusable(ctx context.Context, token string, id uuid.UUID, reusable bool) (*service.ComponentResponse, error) {
	var resp service.ComponentResponse
	body := service.SetReusableRequest{Reusable: &reusable}
	if err := c.doJSON(ctx, http.MethodPatch, "/api/v1/components/"+id.String()+"/reuse", token, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &apiErr) != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode api response: %w", err)
	}
	return nil
}
