package llm

import "testing"

func TestToOpenAIMessagesPreservesRolesAndOrder(t *testing.T) {
	in := []Message{
		{Role: RoleSystem, Content: "you are a client"},
		{Role: RoleUser, Content: "안녕하세요"},
		{Role: RoleAssistant, Content: "네... 안녕하세요."},
		{Role: RoleUser, Content: "요즘 어떠세요"},
	}

	out := toOpenAIMessages(in)
	if len(out) != len(in) {
		t.Fatalf("expected %d messages, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Role != in[i].Role || out[i].Content != in[i].Content {
			t.Fatalf("message %d mismatch: got %s/%q", i, out[i].Role, out[i].Content)
		}
	}
}
