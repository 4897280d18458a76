package ticketservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с TicketService (тикеты ремонта)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TicketService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// openTicketResponse ответ на запрос открытого тикета автомобиля
type openTicketResponse struct {
	HasOpenTicket bool `json:"has_open_ticket"`
}

// ticketCountResponse ответ на запрос числа открытых тикетов филиала
type ticketCountResponse struct {
	Count int `json:"count"`
}

// HasOpenTicket проверяет, есть ли у автомобиля открытый (неархивированный) тикет
func (c *Client) HasOpenTicket(ctx context.Context, vehicleID int64) (bool, error) {
	url := fmt.Sprintf("%s/internal/vehicles/%d/open-ticket", c.baseURL, vehicleID)

	var out openTicketResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return false, err
	}
	return out.HasOpenTicket, nil
}

// OpenTicketCount возвращает число открытых тикетов филиала (занятость цеха)
func (c *Client) OpenTicketCount(ctx context.Context, branchID int64) (int, error) {
	url := fmt.Sprintf("%s/internal/branches/%d/open-tickets/count", c.baseURL, branchID)

	var out ticketCountResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
