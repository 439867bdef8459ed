package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "LUXE_HTTP_TIMEOUT"
	apiTokenEnvKey     = "LUXE_API_TOKEN"
	adminTokenEnvKey   = "LUXE_ADMIN_TOKEN"
)

// Client is a simple HTTP client for the luxe API.
type Client struct {
	baseURL    string
	http       *http.Client
	authToken  string
	adminToken string
}

// NewClient creates a new API client. Tokens are read from the
// LUXE_API_TOKEN and LUXE_ADMIN_TOKEN environment variables.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: httpTimeoutFromEnv()},
		authToken:  strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
		adminToken: strings.TrimSpace(os.Getenv(adminTokenEnvKey)),
	}
}

// SetAuthToken overrides the bearer token used for customer endpoints.
func (c *Client) SetAuthToken(token string) {
	c.authToken = strings.TrimSpace(token)
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]ProductResponse, error) {
	var resp []ProductResponse
	err := c.do(ctx, http.MethodGet, "/v1/products", query, nil, &resp)
	return resp, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) OrderLink(ctx context.Context, id string, query url.Values) (OrderLinkResponse, error) {
	var resp OrderLinkResponse
	err := c.do(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id)+"/order-link", query, nil, &resp)
	return resp, err
}

func (c *Client) CreateProduct(ctx context.Context, req ProductCreateRequest) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/products", nil, req, &resp)
	return resp, err
}

func (c *Client) UpdateProductImages(ctx context.Context, req ProductImagesRequest) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/products/images", nil, req, &resp)
	return resp, err
}

func (c *Client) ListProductSummaries(ctx context.Context) ([]ProductSummaryResponse, error) {
	var resp []ProductSummaryResponse
	err := c.do(ctx, http.MethodGet, "/v1/admin/products", nil, nil, &resp)
	return resp, err
}

func (c *Client) AddToCart(ctx context.Context, req CartAddRequest) (CartItemIDResponse, error) {
	var resp CartItemIDResponse
	err := c.do(ctx, http.MethodPost, "/v1/cart/items", nil, req, &resp)
	return resp, err
}

func (c *Client) ListCart(ctx context.Context) ([]CartItemResponse, error) {
	var resp []CartItemResponse
	err := c.do(ctx, http.MethodGet, "/v1/cart/items", nil, nil, &resp)
	return resp, err
}

func (c *Client) CartCount(ctx context.Context) (CartCountResponse, error) {
	var resp CartCountResponse
	err := c.do(ctx, http.MethodGet, "/v1/cart/count", nil, nil, &resp)
	return resp, err
}

func (c *Client) SetCartQuantity(ctx context.Context, id string, req CartQuantityRequest) (CartItemIDResponse, error) {
	var resp CartItemIDResponse
	err := c.do(ctx, http.MethodPut, "/v1/cart/items/"+url.PathEscape(id)+"/quantity", nil, req, &resp)
	return resp, err
}

func (c *Client) RequestOTP(ctx context.Context, req OTPRequestRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/otp/request", nil, req, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, req OTPVerifyRequest) (SessionResponse, error) {
	var resp SessionResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/otp/verify", nil, req, &resp)
	return resp, err
}

func (c *Client) AdminLogin(ctx context.Context, req AdminLoginRequest) (SessionResponse, error) {
	var resp SessionResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/admin/login", nil, req, &resp)
	return resp, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil, nil)
}

func (c *Client) Me(ctx context.Context) (UserResponse, error) {
	var resp UserResponse
	err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, nil, &resp)
	return resp, err
}

func (c *Client) GetProfile(ctx context.Context) (ProfileResponse, error) {
	var resp ProfileResponse
	err := c.do(ctx, http.MethodGet, "/v1/profile", nil, nil, &resp)
	return resp, err
}

func (c *Client) PutProfile(ctx context.Context, req ProfileRequest) (ProfileResponse, error) {
	var resp ProfileResponse
	err := c.do(ctx, http.MethodPut, "/v1/profile", nil, req, &resp)
	return resp, err
}

func (c *Client) Subscribe(ctx context.Context, req SubscribeRequest) (SubscribeResponse, error) {
	var resp SubscribeResponse
	err := c.do(ctx, http.MethodPost, "/v1/subscribers", nil, req, &resp)
	return resp, err
}

func (c *Client) SendNewsletter(ctx context.Context, req NewsletterRequest) (NewsletterResponse, error) {
	var resp NewsletterResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/newsletter", nil, req, &resp)
	return resp, err
}

func (c *Client) Seed(ctx context.Context) (SeedResponse, error) {
	var resp SeedResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/seed", nil, nil, &resp)
	return resp, err
}

func (c *Client) StorageAudit(ctx context.Context, query url.Values) (StorageAuditResponse, error) {
	var resp StorageAuditResponse
	err := c.do(ctx, http.MethodGet, "/v1/admin/storage/audit", query, nil, &resp)
	return resp, err
}

// UploadFile streams one file as multipart form data to the storage
// upload endpoint.
func (c *Client) UploadFile(ctx context.Context, name, contentType string, r io.Reader) (StorageUploadResponse, error) {
	var resp StorageUploadResponse

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return resp, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return resp, err
	}
	if contentType != "" {
		if err := mw.WriteField("content_type", contentType); err != nil {
			return resp, err
		}
	}
	if err := mw.Close(); err != nil {
		return resp, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/admin/storage/upload", &buf)
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeader(req)
	c.setAdminHeader(req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return resp, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode >= 400 {
		return resp, decodeError(httpResp)
	}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	return resp, err
}

// DownloadFile streams an uploaded blob to a writer.
func (c *Client) DownloadFile(ctx context.Context, id string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/files/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	c.setAuthHeader(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)
	if strings.HasPrefix(path, "/v1/admin/") {
		c.setAdminHeader(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{
			Status:    resp.StatusCode,
			Code:      errResp.Code,
			ErrorCode: errResp.ErrorCode,
			Message:   errResp.Error,
		}
	}
	return &APIError{Status: resp.StatusCode, Message: resp.Status}
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.authToken == "" || req == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

func (c *Client) setAdminHeader(req *http.Request) {
	if c.adminToken == "" || req == nil {
		return
	}
	req.Header.Set("X-Admin-Token", c.adminToken)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
