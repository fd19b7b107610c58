// Package imagehost реализует клиент внешнего хостинга изображений.
// Загрузка аватаров идёт через сервер, чтобы ключ API не попадал в браузер.
package imagehost

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client клиент API хостинга изображений.
type Client struct {
	http   *resty.Client
	apiKey string
}

// uploadResponse ответ хостинга на загрузку изображения.
type uploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// NewClient создаёт клиент с ключом API и базовым URL.
func NewClient(apiKey, apiURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(15 * time.Second)
	return &Client{http: httpClient, apiKey: apiKey}
}

// Upload загружает изображение и возвращает публичный URL.
func (c *Client) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	const op = "imagehost.Upload"

	var result uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetFileReader("image", fileName, bytes.NewReader(data)).
		SetResult(&result).
		Post("/upload")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() || !result.Success {
		return "", fmt.Errorf("%s: upload rejected with status %s", op, resp.Status())
	}
	return result.Data.URL, nil
}
