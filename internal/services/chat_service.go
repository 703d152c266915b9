package services

import (
	"context"
	"strings"

	"asir-guide-api/internal/i18n"
	"asir-guide-api/internal/logger"
	"asir-guide-api/internal/models"
	apierrors "asir-guide-api/internal/pkg/errors"

	"github.com/sirupsen/logrus"
)

// Context lines handed to the completion endpoint alongside the question.
const (
	aiContextLandmark = "المستخدم يسأل عن معلم في منطقة عسير. المعلم الحالي: "
	aiContextGeneral  = "المستخدم يسأل عن السياحة في منطقة عسير بالمملكة العربية السعودية."
)

// How many recommended landmarks a single reply lists.
const maxRecommendations = 3

// ChatService runs the conversation: it greets, switches languages and
// dispatches every visitor message to the landmark lookup, the
// recommendation flow or the AI fallback. All output goes through the
// session's renderer.
type ChatService interface {
	Greet(session *Session)
	SetLanguage(session *Session, lang i18n.Language)
	HandleMessage(ctx context.Context, session *Session, text string) error
}

type chatService struct {
	catalog CatalogService
	ai      AIService
}

func NewChatService(catalog CatalogService, ai AIService) ChatService {
	return &chatService{catalog: catalog, ai: ai}
}

// Greet opens the conversation. When the catalog failed to load the
// visitor is told right away; lookups will miss for the whole session.
func (c *chatService) Greet(session *Session) {
	session.Renderer.RenderBot(i18n.T(i18n.KeyWelcomeMessage, session.Language))
	if !c.catalog.Ready() {
		session.Renderer.RenderBot(i18n.T(i18n.KeyDataError, session.Language))
	}
}

func (c *chatService) SetLanguage(session *Session, lang i18n.Language) {
	session.mu.Lock()
	session.Language = lang
	session.LanguageSet = true
	session.mu.Unlock()

	session.Renderer.RenderBotNow(i18n.Translate(i18n.KeyLanguageSet, lang, map[string]string{
		"language": lang.Label(),
	}))
	session.Renderer.RenderBot(i18n.T(i18n.KeyLandmarkPrompt, lang))
}

// HandleMessage dispatches one visitor message. Precedence: a pending
// yes/no reply, then a landmark lookup, then the recommendation keyword,
// then the AI fallback. An unrecognized reply to the recommendation prompt
// is never retried as a landmark lookup; it goes straight to the fallback
// path.
func (c *chatService) HandleMessage(ctx context.Context, session *Session, text string) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.LanguageSet {
		return apierrors.ErrInvalidInput
	}

	// Blank input is dropped before it is echoed or dispatched.
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	session.Renderer.RenderUser(text)

	normalized := strings.ToLower(trimmed)

	if session.AwaitingRecommendation {
		session.AwaitingRecommendation = false

		switch {
		case i18n.IsYes(normalized):
			c.showRecommendations(session)
		case i18n.IsNo(normalized):
			session.Renderer.RenderBot(i18n.T(i18n.KeyNoRecommendations, session.Language))
		default:
			c.replyWithAI(ctx, session, text)
		}
		return nil
	}

	if landmark := c.catalog.FindByIDOrName(text); landmark != nil {
		session.CurrentLandmarkID = landmark.ID
		c.displayLandmark(session, landmark)
		return nil
	}

	c.replyWithAI(ctx, session, text)
	return nil
}

func (c *chatService) displayLandmark(session *Session, landmark *models.Landmark) {
	c.catalog.RecordVisit(landmark.ID, session.Language)

	lang := session.Language
	r := session.Renderer

	r.RenderBot(i18n.T(i18n.KeyLandmarkInfo, lang) + ": " + landmark.Name.In(lang.String()))
	r.RenderBot(landmark.Description.In(lang.String()))

	if landmark.AudioURL != "" {
		r.RenderBot(i18n.Translate(i18n.KeyAudioStory, lang, map[string]string{"url": landmark.AudioURL}))
	}
	r.RenderBot(i18n.T(i18n.KeyMemoryWall, lang))

	r.RenderBot(i18n.T(i18n.KeyRecommendationPrompt, lang))
	session.AwaitingRecommendation = true
}

// showRecommendations lists up to three nearby landmarks for the one in
// focus. With no landmark in focus it stays silent.
func (c *chatService) showRecommendations(session *Session) {
	if session.CurrentLandmarkID == "" {
		return
	}

	current := c.catalog.Get(session.CurrentLandmarkID)
	if current == nil || len(current.Recommendations) == 0 {
		return
	}

	ids := current.Recommendations
	if len(ids) > maxRecommendations {
		ids = ids[:maxRecommendations]
	}

	lang := session.Language
	var msg strings.Builder
	msg.WriteString(i18n.T(i18n.KeyRecommendations, lang) + "\n\n")

	for _, id := range ids {
		landmark := c.catalog.Get(id)
		if landmark == nil {
			continue
		}

		mapURL := i18n.T(i18n.KeyMapLinkMissing, lang)
		if landmark.Location != nil && landmark.Location.GoogleMapsURL != "" {
			mapURL = landmark.Location.GoogleMapsURL
		}
		msg.WriteString("• " + landmark.Name.In(lang.String()) + "\n🔗 " + mapURL + "\n\n")
	}

	session.Renderer.RenderBot(strings.TrimSpace(msg.String()))
}

// replyWithAI handles free text: the recommendation keyword short-circuits
// to the recommendation list, everything else goes to the completion
// endpoint. Failures degrade to the localized error message; the raw error
// stays in the diagnostic log.
func (c *chatService) replyWithAI(ctx context.Context, session *Session, text string) {
	lang := session.Language
	keyword := strings.ToLower(i18n.T(i18n.KeyRecommendationKeyword, lang))
	if strings.Contains(strings.ToLower(text), keyword) {
		c.showRecommendations(session)
		return
	}

	contextText := aiContextGeneral
	if session.CurrentLandmarkID != "" {
		if landmark := c.catalog.Get(session.CurrentLandmarkID); landmark != nil {
			contextText = aiContextLandmark + landmark.Name.In(lang.String())
		}
	}

	reply, err := c.ai.Ask(ctx, text, contextText, lang)
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "AI fallback failed", logrus.Fields{
			"session": session.ID,
			"error":   err.Error(),
		})
		session.Renderer.RenderBot(i18n.T(i18n.KeyAIError, lang))
		return
	}

	session.Renderer.RenderBot(reply)
}
