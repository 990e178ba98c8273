package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/InfraBits/trello-ics-shimmy/internal/models"
)

const trelloAPIBase = "https://api.trello.com"

type TrelloClient struct {
	Client   *http.Client
	BaseURL  string
	APIKey   string
	APIToken string
}

func NewTrelloClient(key, token string) *TrelloClient {
	return &TrelloClient{
		Client:   &http.Client{},
		BaseURL:  trelloAPIBase,
		APIKey:   key,
		APIToken: token,
	}
}

// Lists fetches all lists on the given board.
func (tc *TrelloClient) Lists(ctx context.Context, boardID string) ([]models.List, error) {
	var lists []models.List
	if err := tc.get(ctx, fmt.Sprintf("/1/boards/%s/lists", boardID), &lists); err != nil {
		return nil, err
	}

	return lists, nil
}

// VisibleCards fetches all visible (non-archived) cards on the given board.
func (tc *TrelloClient) VisibleCards(ctx context.Context, boardID string) ([]models.Card, error) {
	var cards []models.Card
	if err := tc.get(ctx, fmt.Sprintf("/1/boards/%s/cards/visible", boardID), &cards); err != nil {
		return nil, err
	}

	return cards, nil
}

// AuthorizeURL builds the Trello authorization URL. returnURL is where
// Trello redirects the browser afterwards, with the granted token in the
// URL fragment.
func (tc *TrelloClient) AuthorizeURL(returnURL, appName string) string {
	params := url.Values{}
	params.Set("key", tc.APIKey)
	params.Set("return_url", returnURL)
	params.Set("callback_method", "fragment")
	params.Set("response_type", "token")
	params.Set("scope", "read")
	params.Set("expiration", "never")
	params.Set("name", appName)

	return tc.BaseURL + "/1/authorize?" + params.Encode()
}

func (tc *TrelloClient) get(ctx context.Context, path string, out any) error {
	params := url.Values{}
	params.Set("key", tc.APIKey)
	params.Set("token", tc.APIToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create get request: %v", err)
	}

	resp, err := tc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send get request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("trello API returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Trello response: %v", err)
	}

	return nil
}
