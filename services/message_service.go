package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

// MessageServiceError marks AI assistant failures. Nothing here is fatal:
// the panel shows the error text and stays interactive.
type MessageServiceError string

func (e MessageServiceError) Error() string { return string(e) }

const (
	ErrMessageAPIKeyMissing MessageServiceError = "chave da API de mensagens não configurada"
	ErrMessageGeneration    MessageServiceError = "não foi possível gerar a mensagem, tente mais tarde"
)

// MessageType selects the tone of the generated text.
type MessageType string

const (
	MessageTypeInvite   MessageType = "invite"
	MessageTypeThankYou MessageType = "thank_you"
	MessageTypeReminder MessageType = "reminder"
)

// IMessageService generates guest-facing prose. The result is an opaque
// display string; callers never parse it.
type IMessageService interface {
	GenerateGuestMessage(ctx context.Context, guest *models.Guest, rsvp *models.GuestRSVP, msgType MessageType) (string, error)
	AnalyzeGuestList(ctx context.Context, guests []models.Guest) (string, error)
}

type MessageService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewMessageService() IMessageService {
	cfg := configs.Get()
	return &MessageService{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
	}
}

func (s *MessageService) GenerateGuestMessage(ctx context.Context, guest *models.Guest, rsvp *models.GuestRSVP, msgType MessageType) (string, error) {
	status := models.RSVPStatusPending
	if rsvp != nil {
		status = rsvp.Status
	}
	prompt := fmt.Sprintf(`You are a professional wedding concierge. Write a personalized %s message, in Portuguese, for a guest named %s.

Context:
- Guest category: %s
- Companions allowed: %d
- Current RSVP status: %s

Tone: elegant, warm and sophisticated.
Length: short (under 50 words), suitable for WhatsApp or email.
Output: just the message text, no quotations.`,
		msgType, guest.Name, guest.Category, guest.MaxPax()-1, status)

	return s.generate(ctx, prompt)
}

func (s *MessageService) AnalyzeGuestList(ctx context.Context, guests []models.Guest) (string, error) {
	var summary strings.Builder
	for _, guest := range guests {
		status := models.RSVPStatusPending
		if guest.RSVP != nil {
			status = guest.RSVP.Status
		}
		fmt.Fprintf(&summary, "- %s (%s): %s\n", guest.Name, guest.Category, status)
	}

	prompt := fmt.Sprintf(`Analyze this wedding guest list and provide 3 brief, strategic insights, in Portuguese, for the wedding planner regarding seating arrangements or catering adjustments based on the mix of categories and confirmation status.

List:
%s`, summary.String())

	return s.generate(ctx, prompt)
}

// Request/response shapes of the generativelanguage REST API, reduced to
// the fields this service touches.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (s *MessageService) generate(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMessageAPIKeyMissing
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", ErrMessageGeneration
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", ErrMessageGeneration
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		configslog.Log.Warn("message generation request failed", zap.Error(err))
		return "", ErrMessageGeneration
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		configslog.Log.Warn("message generation rejected", zap.Int("status", resp.StatusCode))
		return "", ErrMessageGeneration
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", ErrMessageGeneration
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrMessageGeneration
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}
