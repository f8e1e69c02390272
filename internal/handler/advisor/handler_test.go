package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	modeladvisor "github.com/rahhal-app/rahhal/backend/internal/model/advisor"
	modelchat "github.com/rahhal-app/rahhal/backend/internal/model/chat"
	advisorservice "github.com/rahhal-app/rahhal/backend/internal/service/advisor"
	chatservice "github.com/rahhal-app/rahhal/backend/internal/service/chat"
)

type stubChatModel struct {
	reply    string
	err      error
	received [][]*schema.Message
}

func (s *stubChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	s.received = append(s.received, input)
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.reply, nil), nil
}

func (s *stubChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported by stub")
}

func setupRouter(stub *stubChatModel) (*chi.Mux, *chatservice.Service) {
	chatSvc := chatservice.NewService()
	advisorSvc := advisorservice.NewService(stub, modeladvisor.Default(), "gpt-4")
	handler := New(advisorSvc, chatSvc, modelchat.DefaultWindow)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func postJSON(t *testing.T, r *chi.Mux, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func validPreferences() map[string]any {
	return map[string]any{
		"destination":       "Riyadh",
		"budget":            3000,
		"currency":          "SAR",
		"tripType":          "Cultural",
		"familyComposition": "2 adults",
		"durationDays":      4,
	}
}

func TestGetAdvisorProfile(t *testing.T) {
	r, _ := setupRouter(&stubChatModel{reply: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/advisor", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var profile modeladvisor.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Name == "" {
		t.Fatal("expected profile name in response")
	}
}

func TestChatAppendsUserAndAssistant(t *testing.T) {
	stub := &stubChatModel{reply: "Try the Edge of the World hike."}
	r, chatSvc := setupRouter(stub)

	session, err := chatSvc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	resp := postJSON(t, r, "/chat", map[string]string{
		"sessionId": session.ID,
		"message":   "What can I do near Riyadh?",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var reply modelchat.Message
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("failed to decode reply: %v", err)
	}
	if reply.Role != modelchat.RoleAssistant {
		t.Errorf("expected assistant reply, got role %q", reply.Role)
	}
	if reply.Content != "Try the Edge of the World hike." {
		t.Errorf("unexpected reply content: %q", reply.Content)
	}

	transcript, err := chatSvc.LoadTranscript(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(transcript))
	}
	if transcript[0].Role != modelchat.RoleUser || transcript[1].Role != modelchat.RoleAssistant {
		t.Fatalf("unexpected transcript roles: %q, %q", transcript[0].Role, transcript[1].Role)
	}
}

func TestChatFailureRetainsUserMessage(t *testing.T) {
	stub := &stubChatModel{err: errors.New("upstream unavailable")}
	r, chatSvc := setupRouter(stub)

	session, err := chatSvc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	resp := postJSON(t, r, "/chat", map[string]string{
		"sessionId": session.ID,
		"message":   "hello?",
	})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected error text in response")
	}

	transcript, err := chatSvc.LoadTranscript(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 1 {
		t.Fatalf("expected the user message to be retained, got %d messages", len(transcript))
	}
	if transcript[0].Role != modelchat.RoleUser {
		t.Fatalf("expected user message, got role %q", transcript[0].Role)
	}
}

func TestChatSessionNotFound(t *testing.T) {
	r, _ := setupRouter(&stubChatModel{reply: "ok"})

	resp := postJSON(t, r, "/chat", map[string]string{
		"sessionId": "missing",
		"message":   "hello",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestChatBlankMessage(t *testing.T) {
	r, chatSvc := setupRouter(&stubChatModel{reply: "ok"})
	session, err := chatSvc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	resp := postJSON(t, r, "/chat", map[string]string{
		"sessionId": session.ID,
		"message":   "   ",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatContextEndsWithLatestUserMessage(t *testing.T) {
	stub := &stubChatModel{reply: "ok"}
	r, chatSvc := setupRouter(stub)
	ctx := context.Background()

	session, err := chatSvc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	for i := 0; i < 6; i++ {
		role := modelchat.RoleUser
		if i%2 == 1 {
			role = modelchat.RoleAssistant
		}
		if _, err := chatSvc.SaveMessage(ctx, modelchat.Message{
			SessionID: session.ID,
			Role:      role,
			Content:   "earlier turn",
		}); err != nil {
			t.Fatalf("SaveMessage err: %v", err)
		}
	}

	resp := postJSON(t, r, "/chat", map[string]string{
		"sessionId": session.ID,
		"message":   "newest question",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	sent := stub.received[0]
	if len(sent) != 3 {
		t.Fatalf("expected 3 messages with context, got %d", len(sent))
	}
	summary := strings.TrimPrefix(sent[1].Content, "Previous context: ")
	lines := strings.Split(summary, "\n")
	if len(lines) != modelchat.DefaultWindow {
		t.Fatalf("expected %d context lines, got %d", modelchat.DefaultWindow, len(lines))
	}
	if lines[len(lines)-1] != "user: newest question" {
		t.Fatalf("expected context to end with the new message, got %q", lines[len(lines)-1])
	}
}

func TestRecommendationsAppendsOnlyAssistant(t *testing.T) {
	stub := &stubChatModel{reply: "Spend two days in Diriyah."}
	r, chatSvc := setupRouter(stub)

	session, err := chatSvc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	resp := postJSON(t, r, "/recommendations", map[string]any{
		"sessionId":   session.ID,
		"preferences": validPreferences(),
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	transcript, err := chatSvc.LoadTranscript(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 1 {
		t.Fatalf("expected only the assistant reply, got %d messages", len(transcript))
	}
	if transcript[0].Role != modelchat.RoleAssistant {
		t.Fatalf("expected assistant message, got role %q", transcript[0].Role)
	}

	sent := stub.received[0]
	if len(sent) != 2 {
		t.Fatalf("expected 2 messages without context, got %d", len(sent))
	}
	if !strings.Contains(sent[1].Content, "Location: Riyadh") {
		t.Errorf("prompt is missing the destination: %q", sent[1].Content)
	}
}

func TestRecommendationsInvalidPreferences(t *testing.T) {
	r, chatSvc := setupRouter(&stubChatModel{reply: "ok"})
	session, err := chatSvc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	prefs := validPreferences()
	prefs["destination"] = ""
	resp := postJSON(t, r, "/recommendations", map[string]any{
		"sessionId":   session.ID,
		"preferences": prefs,
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRecommendationsSessionNotFound(t *testing.T) {
	r, _ := setupRouter(&stubChatModel{reply: "ok"})

	resp := postJSON(t, r, "/recommendations", map[string]any{
		"sessionId":   "missing",
		"preferences": validPreferences(),
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestRecommendationsFailureLeavesTranscriptEmpty(t *testing.T) {
	stub := &stubChatModel{err: errors.New("timeout")}
	r, chatSvc := setupRouter(stub)

	session, err := chatSvc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	resp := postJSON(t, r, "/recommendations", map[string]any{
		"sessionId":   session.ID,
		"preferences": validPreferences(),
	})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	transcript, err := chatSvc.LoadTranscript(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 0 {
		t.Fatalf("expected empty transcript after failure, got %d messages", len(transcript))
	}
}
