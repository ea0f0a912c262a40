// Package weatherapi реализует клиент погодного провайдера weatherstack.
//
// Клиент выполняет один исходящий GET-запрос за прогнозом и приводит любые
// сбои (сетевые ошибки, некорректный URL, неуспешный HTTP статус, ошибка,
// объявленная провайдером в теле ответа) к единой форме ошибки с
// человеко-читаемым сообщением. Повторные попытки не выполняются.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент погодного провайдера.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент weatherstack.
//
// httpClient создается один раз и переиспользуется всеми запросами,
// его пул соединений разделяется между конкурентными обработчиками.
func NewClient(apiKey, apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetForecast запрашивает прогноз погоды для города в заданных единицах
// измерения (m — метрические, f — фаренгейт) и возвращает тело ответа
// провайдера без изменений.
func (c *Client) GetForecast(ctx context.Context, city, units string) (json.RawMessage, error) {
	const op = "weatherapi.GetForecast"

	values := url.Values{}
	values.Set("access_key", c.apiKey)
	values.Set("query", city)
	values.Set("units", units)
	requestURL := fmt.Sprintf("%s?%s", c.apiURL, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Провайдер сообщает об ошибках (неизвестный город, плохой ключ)
	// статусом 200 и полем error в теле.
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("%s: %s", op, envelope.Error.Info)
	}

	return json.RawMessage(body), nil
}
