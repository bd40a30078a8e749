package llm

import (
	"context"
	"math/rand"
	"strings"
	"testing"
)

func seededDemo(seed int64) *DemoProvider {
	return newDemo(rand.New(rand.NewSource(seed)), 0, 0)
}

func TestClassifyTopic(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"요즘 많이 불안하신가요", "anxiety"},
		{"우울한 기분이 드시나요", "depression"},
		{"친구 관계는 어떤가요", "relationship"},
		{"회사 일이 많이 부담되시나요", "stress"},
		{"오늘 기분이 괜찮으세요", "general"},
	}
	for _, c := range cases {
		if got := classifyTopic(c.message); got != c.want {
			t.Fatalf("classifyTopic(%q) = %q, want %q", c.message, got, c.want)
		}
	}
}

func TestDemoDrawsFromMatchingPool(t *testing.T) {
	p := seededDemo(42)
	ctx := context.Background()

	pool := map[string]bool{}
	for _, tmpl := range demoTemplates["anxiety"] {
		pool[tmpl] = true
	}

	for i := 0; i < 20; i++ {
		resp, err := p.Generate(ctx, []Message{
			{Role: RoleSystem, Content: "system"},
			{Role: RoleUser, Content: "요즘 계속 불안하다고 하셨죠"},
		}, Options{})
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		body := resp.Content
		// Strip an optional non-verbal cue prefix
		if strings.HasPrefix(body, "(") {
			if idx := strings.Index(body, ") "); idx >= 0 {
				body = body[idx+2:]
			}
		}
		matched := false
		for tmpl := range pool {
			if strings.HasPrefix(body, tmpl) {
				matched = true
				break
			}
		}
		if !matched {
			t.Fatalf("response %q not drawn from anxiety pool", resp.Content)
		}
	}
}

func TestDemoNeverEmitsQuestionMark(t *testing.T) {
	p := seededDemo(7)
	ctx := context.Background()
	prompts := []string{"어떻게 지내세요", "왜 그렇게 느끼세요", "언제부터 그랬나요", "안녕하세요"}
	for i := 0; i < 40; i++ {
		resp, err := p.Generate(ctx, []Message{{Role: RoleUser, Content: prompts[i%len(prompts)]}}, Options{})
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if strings.Contains(resp.Content, "?") {
			t.Fatalf("demo response contains question mark: %q", resp.Content)
		}
	}
}

func TestDemoStreamReassemblesToFullResponse(t *testing.T) {
	p := seededDemo(11)
	ctx := context.Background()

	ch, err := p.Stream(ctx, []Message{{Role: RoleUser, Content: "혼자 지내는 게 힘드시죠"}}, Options{})
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	var b strings.Builder
	chunks := 0
	for chunk := range ch {
		if chunk.Err != nil {
			t.Fatalf("unexpected stream error: %v", chunk.Err)
		}
		b.WriteString(chunk.Content)
		chunks++
	}
	if chunks < 2 {
		t.Fatalf("expected word-by-word chunks, got %d", chunks)
	}
	got := b.String()
	if got == "" || strings.Contains(got, "?") {
		t.Fatalf("unexpected reassembled stream: %q", got)
	}
	// Word-joined output differs from the template only in whitespace
	if strings.Join(strings.Fields(got), " ") != got {
		t.Fatalf("stream chunks did not preserve single-space joining: %q", got)
	}
}

func TestDemoStreamStopsOnCancel(t *testing.T) {
	p := seededDemo(3)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := p.Stream(ctx, []Message{{Role: RoleUser, Content: "요즘 어떠세요"}}, Options{})
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	cancel()
	// Channel must close rather than block forever
	for range ch {
	}
}
