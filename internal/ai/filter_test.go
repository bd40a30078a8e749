package ai

import (
	"strings"
	"testing"
)

func TestFilterDropsQuestionSentenceKeepsRest(t *testing.T) {
	got := FilterQuestions("어떻게 지내세요? 요즘 힘들어요.")
	if got != "요즘 힘들어요." {
		t.Fatalf("unexpected filtered text: %q", got)
	}
}

func TestFilterFullyDisqualifiedFallsBack(t *testing.T) {
	got := FilterQuestions("그런 것 같아요?")
	if got == "" {
		t.Fatalf("filter returned empty string")
	}
	found := false
	for _, fb := range fallbackResponses {
		if got == fb {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected a fallback response, got %q", got)
	}
}

func TestFilterNeverEmptyNeverQuestion(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"?",
		"왜 그렇게 힘드신가요?",
		"어떤 도움이 필요하신가요? 더 자세히 말씀해주시겠어요?",
		"요즘 잠을 못 자요. 어떻게 생각하시나요? 너무 불안해요!",
		"무엇이 문제인가요",
		"편하게 말씀해 보세요.",
		"밥은 드셨나요? 저는 못 먹었어요.",
		"혼자 있으면 눈물이 나요. 이유도 모르겠어요.",
	}

	for _, in := range inputs {
		got := FilterQuestions(in)
		if got == "" {
			t.Fatalf("filter(%q) returned empty string", in)
		}
		if strings.Contains(got, "?") {
			t.Fatalf("filter(%q) contains question mark: %q", in, got)
		}
		for _, p := range questionPatterns {
			if p.MatchString(got) {
				t.Fatalf("filter(%q) still matches pattern %q: %q", in, p.String(), got)
			}
		}
	}
}

func TestFilterDropsCounselorPhrases(t *testing.T) {
	got := FilterQuestions("도움이 필요하면 말씀하세요. 저는 요즘 너무 답답해요.")
	if got != "저는 요즘 너무 답답해요." {
		t.Fatalf("counselor phrase not dropped: %q", got)
	}
}

func TestFilterPreservesSentenceOrder(t *testing.T) {
	got := FilterQuestions("잠을 못 자요. 어떻게 하면 좋을까요? 매일 피곤해요. 마음이 무거워요!")
	if got != "잠을 못 자요. 매일 피곤해요. 마음이 무거워요!" {
		t.Fatalf("unexpected order or content: %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("첫 문장이에요. 둘째 문장이에요! 셋째 문장")
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %+v", len(sentences), sentences)
	}
	if sentences[0].text != "첫 문장이에요." || sentences[1].text != "둘째 문장이에요!" || sentences[2].text != "셋째 문장" {
		t.Fatalf("unexpected segmentation: %+v", sentences)
	}

	withQuestion := splitSentences("정말요? 네.")
	if !withQuestion[0].question {
		t.Fatalf("question terminator not marked: %+v", withQuestion)
	}
	if withQuestion[1].question {
		t.Fatalf("declarative sentence marked as question: %+v", withQuestion)
	}
}
