package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"asir-guide-api/internal/config"
	"asir-guide-api/internal/i18n"
	apierrors "asir-guide-api/internal/pkg/errors"
)

// Per-language system roles for the completion endpoint. Arabic is the
// default when a language has no prompt of its own.
var systemPrompts = map[i18n.Language]string{
	i18n.Arabic: `أنت مساعد سياحي ذكي متخصص في منطقة عسير السعودية. قدم معلومات دقيقة وواضحة عن المعالم السياحية والتراثية في المنطقة. كن مهذباً ومفيداً، وأجب بلغة المستخدم. ركز على المعلومات السياحية والثقافية.

إذا لم تكن لديك معلومات كافية من السياق، استند إلى المعرفة العامة أو استعن بالمصادر التالية كمراجع:
- https://www.visitsaudi.com/ar/see-do/destinations/asir
- https://ar.wikipedia.org/wiki/عسير_(منطقة)
- https://welcomesaudi.com/ar/city/abha`,
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// AIService forwards free-form visitor questions to the hosted
// chat-completion endpoint.
type AIService interface {
	Ask(ctx context.Context, userText, contextText string, lang i18n.Language) (string, error)
}

type aiService struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewAIService builds the fallback client. The http.Client carries no
// timeout of its own; a hung request lasts until the transport or the
// request context gives up.
func NewAIService(cfg *config.AIConfig) AIService {
	return &aiService{
		cfg:    cfg,
		client: &http.Client{},
	}
}

func (s *aiService) Ask(ctx context.Context, userText, contextText string, lang i18n.Language) (string, error) {
	prompt, ok := systemPrompts[lang]
	if !ok {
		prompt = systemPrompts[i18n.Arabic]
	}

	body := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: prompt},
			{Role: "user", Content: contextText + "\n\nUser question: " + userText},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", apierrors.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apierrors.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apierrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", apierrors.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", apierrors.ErrUpstream, resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", apierrors.ErrUpstream, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", apierrors.ErrUpstream)
	}
	return completion.Choices[0].Message.Content, nil
}
