package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/partition"
	"retailsync/internal/domain/sync"
)

const (
	// HeaderMasterKey - заголовок с ключом доступа к документу
	HeaderMasterKey = "X-Master-Key"
	// HeaderBinMeta - false означает, что хостинг отдает документ без обертки с метаданными
	HeaderBinMeta = "X-Bin-Meta"

	defaultTimeout = 10 * time.Second
	userAgent      = "retailsync/1.0"
)

// Config настройки подключения к хостингу общего документа
type Config struct {
	BaseURL    string
	DocumentID string
	APIKey     string
	Timeout    time.Duration
}

// Configured проверяет, что заданы все параметры подключения
func (c Config) Configured() bool {
	return c.BaseURL != "" && c.DocumentID != "" && c.APIKey != ""
}

// Client - клиент хостинга JSON-документов: прочитать последнюю версию, записать документ целиком
type Client struct {
	client *http.Client
	config Config
	log    *slog.Logger
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = cfg.Timeout

	return &Client{
		client: client,
		config: cfg,
		log:    log.With(slog.String("component", "remote_client")),
	}
}

// FetchLatest читает последнюю версию документа. 404 - документа еще нет.
func (c *Client) FetchLatest(ctx context.Context) (*partition.Document, error) {
	if !c.config.Configured() {
		return nil, fmt.Errorf("%w: remote is not configured", sync.ErrRemoteUnavailable)
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.documentURL()+"/latest", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sync.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", sync.ErrRemoteUnavailable, err)
	}

	c.log.Debug("fetch latest", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		doc := partition.NewDocument()
		doc.Version = partition.VersionAbsent
		return doc, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", sync.ErrRemoteUnavailable, resp.StatusCode)
	}

	doc, err := partition.Decode(body)
	if err != nil {
		return nil, err
	}
	doc.Version = resp.Header.Get("ETag")

	return doc, nil
}

// Replace перезаписывает документ целиком. Версия документа уходит в If-Match,
// для еще не созданного документа отправляется If-None-Match: *.
func (c *Client) Replace(ctx context.Context, doc *partition.Document) error {
	if !c.config.Configured() {
		return fmt.Errorf("%w: remote is not configured", sync.ErrRemoteUnavailable)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, c.documentURL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	switch doc.Version {
	case "":
	case partition.VersionAbsent:
		req.Header.Set("If-None-Match", "*")
	default:
		req.Header.Set("If-Match", doc.Version)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", sync.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.log.Debug("replace", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))

	switch {
	case resp.StatusCode == http.StatusPreconditionFailed:
		return sync.ErrVersionConflict
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d", sync.ErrRemoteUnavailable, resp.StatusCode)
	}

	if etag := resp.Header.Get("ETag"); etag != "" {
		doc.Version = etag
	}

	return nil
}

func (c *Client) documentURL() string {
	return c.config.BaseURL + "/b/" + c.config.DocumentID
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", sync.ErrRemoteUnavailable, err)
	}

	req.Header.Set(HeaderMasterKey, c.config.APIKey)
	req.Header.Set(HeaderBinMeta, "false")
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}
