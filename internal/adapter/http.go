package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/utils"
	"github.com/Deadmanswitch/encryption/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string
	token   string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress, configures the underlying HTTP client with the
// resolved base URL and request timeout, and initialises the shared HMAC
// hasher pool used for transport integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.Adapter, hashKey string, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	utils.InitHasherPool(hashKey)

	return &httpServerAdapter{client: client, hashKey: hashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the adapter, or an empty
// string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the public account material
// to POST /api/auth/register. On success the bearer token is extracted from
// the Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return user, nil
}

// Login implements [ServerAdapter]. It POSTs the login and fingerprint to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header, stored via SetToken, and returned.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse user id from token: %w", err)
	}

	return models.Token{SignedString: token, UserID: userID}, nil
}

// AccountParams implements [ServerAdapter]. It POSTs the login to
// POST /api/auth/params and returns a partial [models.User] containing only
// Login and Salt. The salt is required before the login fingerprint can be
// derived.
func (h *httpServerAdapter) AccountParams(ctx context.Context, login string) (models.User, error) {
	var foundUser models.User // only login and account salt

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: login}).
		SetResult(&foundUser).
		Post("/api/auth/params")
	if err != nil {
		return models.User{}, fmt.Errorf("account params request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return models.User{Login: login, Salt: foundUser.Salt}, nil
}

// GenerateSalt implements [ServerAdapter]. It POSTs to POST /api/salt and
// decodes the salt from the response body. Requires a valid bearer token.
func (h *httpServerAdapter) GenerateSalt(ctx context.Context) (string, error) {
	resp, err := h.authedRequest(ctx).Post("/api/salt")
	if err != nil {
		return "", fmt.Errorf("generate salt request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var sr models.SaltResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return "", fmt.Errorf("decode salt response: %w", err)
	}

	return sr.Salt, nil
}

// CreateItem implements [ServerAdapter]. It POSTs the item descriptor to
// POST /api/items. Requires a valid bearer token. Returns [ErrConflict]
// (wrapped) on an item ID collision.
func (h *httpServerAdapter) CreateItem(ctx context.Context, item models.ProtectedItem) (models.ProtectedItem, error) {
	var created models.ProtectedItem

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		SetResult(&created).
		Post("/api/items")
	if err != nil {
		return models.ProtectedItem{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProtectedItem{}, err
	}

	return created, nil
}

// GetItem implements [ServerAdapter]. It GETs a single item descriptor from
// GET /api/items/{id}. Requires a valid bearer token.
func (h *httpServerAdapter) GetItem(ctx context.Context, itemID string) (models.ProtectedItem, error) {
	resp, err := h.authedRequest(ctx).Get("/api/items/" + url.PathEscape(itemID))
	if err != nil {
		return models.ProtectedItem{}, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProtectedItem{}, err
	}

	var item models.ProtectedItem
	if err = json.Unmarshal(resp.Body(), &item); err != nil {
		return models.ProtectedItem{}, fmt.Errorf("decode item response: %w", err)
	}

	return item, nil
}

// ListItems implements [ServerAdapter]. It GETs the item descriptors from
// GET /api/items, passing the filter as query parameters. Requires a valid
// bearer token.
func (h *httpServerAdapter) ListItems(ctx context.Context, filter models.ItemListFilter) ([]models.ProtectedItem, error) {
	req := h.authedRequest(ctx)
	if filter.ContentType != "" {
		req.SetQueryParam("content_type", filter.ContentType)
	}
	if filter.NamePrefix != "" {
		req.SetQueryParam("name_prefix", filter.NamePrefix)
	}

	resp, err := req.Get("/api/items")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.ProtectedItem
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode list items response: %w", err)
	}

	return items, nil
}

// UploadChunks implements [ServerAdapter]. It computes a transport integrity
// hash over request.Chunks, sets request.Length, and POSTs the request to
// POST /api/items/{id}/chunks. Requires a valid bearer token.
func (h *httpServerAdapter) UploadChunks(ctx context.Context, request models.UploadChunksRequest) error {
	request.Hash = computeTransportHash(request.Chunks)
	request.Length = len(request.Chunks)

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/api/items/" + url.PathEscape(request.ItemID) + "/chunks")
	if err != nil {
		return fmt.Errorf("upload chunks request: %w", err)
	}

	return mapHTTPError(resp)
}

// DownloadChunks implements [ServerAdapter]. It GETs every ciphertext frame
// of an item from GET /api/items/{id}/chunks. Requires a valid bearer token.
func (h *httpServerAdapter) DownloadChunks(ctx context.Context, itemID string) ([]models.CipherChunk, error) {
	resp, err := h.authedRequest(ctx).Get("/api/items/" + url.PathEscape(itemID) + "/chunks")
	if err != nil {
		return nil, fmt.Errorf("download chunks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var chunks []models.CipherChunk
	if err = json.Unmarshal(resp.Body(), &chunks); err != nil {
		return nil, fmt.Errorf("decode download chunks response: %w", err)
	}

	return chunks, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func computeTransportHash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(utils.Hash(payload))
}
