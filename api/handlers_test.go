package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/InfraBits/trello-ics-shimmy/integrations"
	"github.com/InfraBits/trello-ics-shimmy/internal/config"
	"github.com/InfraBits/trello-ics-shimmy/internal/ics"
	"github.com/gin-gonic/gin"
)

const testSecret = "sekrit"

// newBoardServer fakes the two Trello board endpoints a feed build hits.
func newBoardServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1/boards/B1/lists":
			w.Write([]byte(`[{"id":"L1","name":"Work"}]`))
		case "/1/boards/B1/cards/visible":
			w.Write([]byte(`[
				{"id":"C1","name":"Ship","desc":"","url":"https://t.co/C1","due":"2024-03-10T09:00:00.000000+00:00","start":null,"idList":"L1"},
				{"id":"C2","name":"Someday","desc":"","url":"https://t.co/C2","due":null,"start":null,"idList":"L1"}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestRouter(cfg *config.Config, trelloBaseURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	trelloClient := integrations.NewTrelloClient(cfg.APIKey, cfg.APIToken)
	trelloClient.BaseURL = trelloBaseURL

	handler := &Handler{
		Cfg:     cfg,
		Trello:  trelloClient,
		Builder: ics.NewBuilder(trelloClient, cfg.BoardID),
	}

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:  "8080",
		BoardID:     "B1",
		APIKey:      "test-key",
		APIToken:    "test-token",
		FeedSecret:  testSecret,
		ProductName: "Trello -> ICS Shimmy",
	}
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestWrongKeyIs404Everywhere(t *testing.T) {
	server := newBoardServer()
	defer server.Close()
	router := newTestRouter(testConfig(), server.URL)

	paths := []string{
		"/c/wrong.ics",
		"/c/.ics",
		"/c/" + testSecret, // missing .ics suffix
		"/a/wrong",
		"/a/wrong/token",
	}
	for _, path := range paths {
		if rr := get(router, path); rr.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, rr.Code)
		}
	}
}

func TestFeedSuccess(t *testing.T) {
	server := newBoardServer()
	defer server.Close()
	router := newTestRouter(testConfig(), server.URL)

	rr := get(router, "/c/"+testSecret+".ics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/calendar" {
		t.Errorf("expected text/calendar, got %s", ct)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"SUMMARY:Ship [Work]",
		"UID:C1@trello.com",
		"DTSTART:20240310T090000Z",
		"DURATION:PT1H",
		"DESCRIPTION:Card URL: https://t.co/C1",
		"END:VCALENDAR",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("feed body missing %q", want)
		}
	}
	if strings.Contains(body, "C2@trello.com") {
		t.Error("card without a due date leaked into the feed")
	}
}

func TestFeedUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()
	router := newTestRouter(testConfig(), server.URL)

	rr := get(router, "/c/"+testSecret+".ics")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestAuthorizeRedirect(t *testing.T) {
	server := newBoardServer()
	defer server.Close()

	cfg := testConfig()
	cfg.APIToken = "" // not yet authorized
	router := newTestRouter(cfg, server.URL)

	rr := get(router, "/a/"+testSecret)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d (body: %s)", rr.Code, rr.Body.String())
	}

	location, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location.Path != "/1/authorize" {
		t.Errorf("unexpected redirect path: %s", location.Path)
	}

	q := location.Query()
	if q.Get("key") != "test-key" {
		t.Errorf("expected key param, got %q", q.Get("key"))
	}
	if q.Get("scope") != "read" || q.Get("expiration") != "never" {
		t.Errorf("unexpected scope/expiration: %q/%q", q.Get("scope"), q.Get("expiration"))
	}
	if q.Get("callback_method") != "fragment" || q.Get("response_type") != "token" {
		t.Errorf("unexpected callback params: %q/%q", q.Get("callback_method"), q.Get("response_type"))
	}
	wantReturn := "http://example.com/a/" + testSecret + "/token"
	if q.Get("return_url") != wantReturn {
		t.Errorf("return_url: got %q, want %q", q.Get("return_url"), wantReturn)
	}
}

// A configured token must win over a missing API key: already-authorized
// setups answer 400 even when the key is also absent.
func TestAuthorizeTokenAlreadySet(t *testing.T) {
	server := newBoardServer()
	defer server.Close()

	cfg := testConfig()
	router := newTestRouter(cfg, server.URL)
	if rr := get(router, "/a/"+testSecret); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}

	cfg = testConfig()
	cfg.APIKey = ""
	router = newTestRouter(cfg, server.URL)
	if rr := get(router, "/a/"+testSecret); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 with token set and key missing, got %d", rr.Code)
	}
}

func TestAuthorizeMissingKey(t *testing.T) {
	server := newBoardServer()
	defer server.Close()

	cfg := testConfig()
	cfg.APIKey = ""
	cfg.APIToken = ""
	router := newTestRouter(cfg, server.URL)

	if rr := get(router, "/a/"+testSecret); rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestTokenPage(t *testing.T) {
	server := newBoardServer()
	defer server.Close()
	router := newTestRouter(testConfig(), server.URL)

	rr := get(router, "/a/"+testSecret+"/token")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "window.location.hash") {
		t.Error("token page should read the URL fragment client-side")
	}
}

func TestHealthCheck(t *testing.T) {
	server := newBoardServer()
	defer server.Close()
	router := newTestRouter(testConfig(), server.URL)

	if rr := get(router, "/health"); rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
