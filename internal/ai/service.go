package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"yatav-backend/internal/llm"
	"yatav-backend/internal/models"
)

// Generation parameters for the character roleplay path.
const (
	characterTemperature = 0.8
	characterMaxTokens   = 500

	analysisTemperature = 0.3
	emotionTemperature  = 0.2

	// Only the most recent turns are sent as context; older history is
	// truncated oldest-first.
	historyWindow = 10
)

// Service orchestrates character response generation: prompt construction,
// provider selection, invocation, and post-filtering. It owns no mutable
// state and is safe for concurrent use.
type Service struct {
	registry *llm.Registry
}

func New(registry *llm.Registry) *Service {
	return &Service{registry: registry}
}

// buildMessages assembles the provider-agnostic message sequence: system
// prompt, up to the last 10 history turns, then the current user message.
// History turns sent by the character map to the assistant role; every
// other sender maps to user.
func buildMessages(ch models.Character, history []models.ChatMessage, userMessage, programType string) []llm.Message {
	messages := []llm.Message{{
		Role:    llm.RoleSystem,
		Content: BuildCharacterSystemPrompt(ch, programType),
	}}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Sender == models.SenderCharacter {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})
}

// GenerateCharacterResponse produces one filtered client-voiced reply.
// providerName may be empty to use the registry default; an unknown name is
// an error before any provider call. The raw completion always passes
// through FilterQuestions, so the returned text contains no question.
func (s *Service) GenerateCharacterResponse(ctx context.Context, ch models.Character, history []models.ChatMessage, userMessage, providerName, programType string) (string, error) {
	provider, err := s.registry.Get(providerName)
	if err != nil {
		return "", err
	}
	if providerName == "" {
		providerName = s.registry.DefaultName()
	}

	messages := buildMessages(ch, history, userMessage, programType)

	start := time.Now()
	log.Printf("Generating response for character %q via %s (%d messages)", ch.Name, providerName, len(messages))

	resp, err := provider.Generate(ctx, messages, llm.Options{
		Temperature: characterTemperature,
		MaxTokens:   characterMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("character response generation failed: %w", err)
	}

	filtered := FilterQuestions(resp.Content)
	if filtered != resp.Content {
		log.Printf("Filtered response (questions removed): %.80s", filtered)
	}
	log.Printf("Generated character response in %dms using %s: %.80s", time.Since(start).Milliseconds(), providerName, filtered)
	return filtered, nil
}

// StreamCharacterResponse yields raw token fragments from the provider.
// The fragments are not filtered mid-stream: a streamed reply may briefly
// show a question before assembly completes. The non-streaming path is the
// one that guarantees the no-question contract.
func (s *Service) StreamCharacterResponse(ctx context.Context, ch models.Character, history []models.ChatMessage, userMessage, providerName, programType string) (<-chan llm.StreamChunk, error) {
	provider, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}
	if providerName == "" {
		providerName = s.registry.DefaultName()
	}

	messages := buildMessages(ch, history, userMessage, programType)
	log.Printf("Streaming response for character %q via %s", ch.Name, providerName)

	return provider.Stream(ctx, messages, llm.Options{
		Temperature: characterTemperature,
		MaxTokens:   characterMaxTokens,
	})
}

// SessionContext carries the session facts embedded into the supervisor
// analysis prompt.
type SessionContext struct {
	DurationMinutes int    `json:"duration_minutes"`
	ClientIssue     string `json:"client_issue"`
	Phase           string `json:"phase"`
}

// InteractionAnalysis is structured supervisor feedback on one exchange.
type InteractionAnalysis struct {
	OverallScore        float64  `json:"overall_score"`
	TechniquesUsed      []string `json:"techniques_used"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
	EffectivenessRating float64  `json:"effectiveness_rating"`
	EmpathyScore        float64  `json:"empathy_score"`
	ListeningScore      float64  `json:"listening_score"`
	ResponseQuality     float64  `json:"response_quality"`
	Suggestions         []string `json:"suggestions"`
	Analysis            string   `json:"analysis,omitempty"`
}

// AnalyzeCounselingInteraction asks a provider to grade one counselor/client
// exchange. A completion that is not valid JSON is not an error: the raw
// text is wrapped into a fixed-shape fallback with default scores.
func (s *Service) AnalyzeCounselingInteraction(ctx context.Context, userMessage, characterResponse string, sessCtx SessionContext, providerName string) (InteractionAnalysis, error) {
	provider, err := s.registry.Get(providerName)
	if err != nil {
		return InteractionAnalysis{}, err
	}
	if providerName == "" {
		providerName = s.registry.DefaultName()
	}

	messages := []llm.Message{
		{
			Role: llm.RoleSystem,
			Content: "You are an expert counseling supervisor analyzing a training interaction. " +
				"Provide detailed, constructive feedback on counseling techniques used.",
		},
		{Role: llm.RoleUser, Content: buildAnalysisPrompt(userMessage, characterResponse, sessCtx)},
	}

	start := time.Now()
	resp, err := provider.Generate(ctx, messages, llm.Options{Temperature: analysisTemperature})
	if err != nil {
		return InteractionAnalysis{}, fmt.Errorf("interaction analysis failed: %w", err)
	}
	log.Printf("Analyzed interaction in %dms using %s", time.Since(start).Milliseconds(), providerName)

	var analysis InteractionAnalysis
	if err := json.Unmarshal([]byte(resp.Content), &analysis); err != nil {
		log.Printf("analysis response is not JSON, falling back to text analysis: %v", err)
		return InteractionAnalysis{
			OverallScore:   75.0,
			Analysis:       resp.Content,
			Strengths:      []string{"Maintained appropriate response"},
			Improvements:   []string{"Consider more specific techniques"},
			TechniquesUsed: []string{"active_listening"},
		}, nil
	}
	return analysis, nil
}

// EmotionResult is the detected emotional content of a text.
type EmotionResult struct {
	Emotion        string   `json:"emotion"`
	Emotions       []string `json:"emotions"`
	Sentiment      string   `json:"sentiment"`
	SentimentScore float64  `json:"sentiment_score"`
	Intensity      float64  `json:"intensity"`
	Keywords       []string `json:"keywords"`
}

// DetectEmotionAndSentiment classifies the emotional content of a text.
// Non-JSON completions degrade to an all-neutral result.
func (s *Service) DetectEmotionAndSentiment(ctx context.Context, text, providerName string) (EmotionResult, error) {
	provider, err := s.registry.Get(providerName)
	if err != nil {
		return EmotionResult{}, err
	}
	if providerName == "" {
		providerName = s.registry.DefaultName()
	}

	messages := []llm.Message{
		{
			Role: llm.RoleSystem,
			Content: `Analyze the emotional content and sentiment of the given text.
Respond with JSON format: {
    "emotion": "primary_emotion",
    "emotions": ["list", "of", "detected", "emotions"],
    "sentiment": "positive/negative/neutral",
    "sentiment_score": 0.5,
    "intensity": 0.7,
    "keywords": ["relevant", "emotional", "keywords"]
}`,
		},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Analyze this text: %s", text)},
	}

	start := time.Now()
	resp, err := provider.Generate(ctx, messages, llm.Options{Temperature: emotionTemperature})
	if err != nil {
		return EmotionResult{}, fmt.Errorf("emotion detection failed: %w", err)
	}
	log.Printf("Detected emotion in %dms using %s for text: %.50s", time.Since(start).Milliseconds(), providerName, text)

	var result EmotionResult
	if err := json.Unmarshal([]byte(resp.Content), &result); err != nil {
		log.Printf("emotion response is not JSON, falling back to neutral: %v", err)
		return EmotionResult{
			Emotion:        "neutral",
			Emotions:       []string{"neutral"},
			Sentiment:      "neutral",
			SentimentScore: 0.5,
			Intensity:      0.5,
			Keywords:       []string{},
		}, nil
	}
	return result, nil
}

func buildAnalysisPrompt(userMessage, characterResponse string, sessCtx SessionContext) string {
	issue := sessCtx.ClientIssue
	if issue == "" {
		issue = "General"
	}
	phase := sessCtx.Phase
	if phase == "" {
		phase = "Middle"
	}

	return fmt.Sprintf(`Analyze this counseling interaction:

COUNSELOR MESSAGE:
%q

CLIENT RESPONSE:
%q

CONTEXT:
- Session duration: %d minutes
- Client issue: %s
- Session phase: %s

Provide structured analysis in JSON format:
{
    "overall_score": 0-100,
    "techniques_used": ["technique1", "technique2"],
    "strengths": ["strength1", "strength2"],
    "improvements": ["improvement1", "improvement2"],
    "effectiveness_rating": 0-10,
    "empathy_score": 0-10,
    "listening_score": 0-10,
    "response_quality": 0-10,
    "suggestions": ["suggestion1", "suggestion2"]
}

Focus on counseling skills like active listening, empathy, appropriate questioning, summarizing, and therapeutic techniques.`,
		userMessage, characterResponse, sessCtx.DurationMinutes, issue, phase)
}
