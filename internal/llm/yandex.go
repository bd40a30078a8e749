package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Morwran/yagpt"
)

// YandexProvider wraps YandexGPT. Unlike the OpenAI API, YandexGPT treats
// the system prompt as its own slot rather than an ordinary message in the
// sequence, so the role-tagged messages are split before the call.
type YandexProvider struct {
	ya       yagpt.YaGPTFace
	iamToken string
}

func NewYandex(oauthToken, folderID string) (*YandexProvider, error) {
	// Exchange the OAuth token for an IAM token
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init yandex iam: %w", err)
	}
	resp, err := iam.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create iam token: %w", err)
	}

	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to init yagpt: %w", err)
	}

	return &YandexProvider{
		ya:       ya,
		iamToken: resp.IamToken,
	}, nil
}

// splitSystem pulls system messages out of the role-tagged sequence into a
// dedicated prompt. Multiple system messages are concatenated in order; the
// remaining messages keep their relative order.
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}

func toYandexMessages(messages []Message) []yagpt.Message {
	system, rest := splitSystem(messages)
	var out []yagpt.Message
	if system != "" {
		out = append(out, yagpt.Message{Role: RoleSystem, Content: system})
	}
	for _, m := range rest {
		out = append(out, yagpt.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (p *YandexProvider) Generate(ctx context.Context, messages []Message, _ Options) (Response, error) {
	resp, err := p.ya.CompletionWithCtx(ctx, p.iamToken, toYandexMessages(messages))
	if err != nil {
		return Response{}, fmt.Errorf("yagpt completion failed: %w", err)
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return Response{}, fmt.Errorf("yagpt returned empty response")
	}
	out := Response{Content: resp.Alternatives[0].Message.Content, Model: yagpt.YaModelLite}
	out.PromptTokens = int(resp.Usage.InputTextTokens)
	out.CompletionTokens = int(resp.Usage.CompletionTokens)
	out.TotalTokens = int(resp.Usage.TotalTokens)
	return out, nil
}

// Stream emulates token streaming: yagpt exposes no streaming endpoint, so
// the full completion is generated and re-emitted word by word. Order and
// backpressure match a real streaming provider.
func (p *YandexProvider) Stream(ctx context.Context, messages []Message, opts Options) (<-chan StreamChunk, error) {
	resp, err := p.Generate(ctx, messages, opts)
	if err != nil {
		return nil, err
	}

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		for i, word := range strings.Fields(resp.Content) {
			chunk := word
			if i > 0 {
				chunk = " " + word
			}
			select {
			case out <- StreamChunk{Content: chunk}:
			case <-ctx.Done():
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()
	return out, nil
}
