package reorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"itinera/pkg/middleware"
	"itinera/pkg/utils"
)

// APIError is a non-2xx answer from the itinerary API.
type APIError struct {
	StatusCode int
	Message    string
	Field      string
	TraceID    string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api %d: %s: %s (trace %s)", e.StatusCode, e.Field, e.Message, e.TraceID)
	}
	return fmt.Sprintf("api %d: %s (trace %s)", e.StatusCode, e.Message, e.TraceID)
}

// Unwrap exposes the matching service sentinel so callers can branch with
// errors.Is, for instance reload on ErrNotFound.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return utils.ErrValidation
	case http.StatusNotFound:
		return utils.ErrNotFound
	case http.StatusConflict:
		return utils.ErrConflict
	}
	return nil
}

// APIClient talks to the itinerary REST API.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewAPIClient(baseURL, token string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *APIClient) ReorderDay(ctx context.Context, itineraryID, dayID uuid.UUID, orderedItemIDs []uuid.UUID) error {
	body := struct {
		OrderedItemIDs []uuid.UUID `json:"ordered_item_ids"`
	}{OrderedItemIDs: orderedItemIDs}

	path := fmt.Sprintf("/itineraries/%s/days/%s/order", itineraryID, dayID)
	return c.do(ctx, http.MethodPut, path, body, nil)
}

func (c *APIClient) MoveItem(ctx context.Context, itemID, targetDayID uuid.UUID) error {
	body := struct {
		TargetDayID uuid.UUID `json:"target_day_id"`
	}{TargetDayID: targetDayID}

	return c.do(ctx, http.MethodPost, "/items/"+itemID.String()+"/move", body, nil)
}

// DayItems loads a day in server order, suitable for NewBoard or Reset.
func (c *APIClient) DayItems(ctx context.Context, dayID uuid.UUID) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/days/"+dayID.String()+"/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var envelope struct {
		Message string          `json:"message"`
		Field   string          `json:"field"`
		TraceID string          `json:"trace_id"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil && err != io.EOF {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		traceID := envelope.TraceID
		if traceID == "" {
			traceID = res.Header.Get(middleware.TraceIDHeader)
		}
		return &APIError{
			StatusCode: res.StatusCode,
			Message:    envelope.Message,
			Field:      envelope.Field,
			TraceID:    traceID,
		}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding %s %s data: %w", method, path, err)
		}
	}
	return nil
}
