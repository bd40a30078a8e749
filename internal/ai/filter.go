package ai

import (
	"log"
	"math/rand"
	"regexp"
	"strings"
	"unicode"
)

// Interrogative morphology and function words a client must never produce.
var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`하시나요`),
	regexp.MustCompile(`하신가요`),
	regexp.MustCompile(`인가요`),
	regexp.MustCompile(`이신가요`),
	regexp.MustCompile(`있으신가요`),
	regexp.MustCompile(`있나요`),
	regexp.MustCompile(`신가요`),
	regexp.MustCompile(`나요\s*[.!]?\s*$`),
	regexp.MustCompile(`까요\s*[.!]?\s*$`),
	regexp.MustCompile(`어떻게`),
	regexp.MustCompile(`어떤.*필요`),
	regexp.MustCompile(`무엇이`),
	regexp.MustCompile(`무엇을`),
	regexp.MustCompile(`언제`),
	regexp.MustCompile(`어디`),
	regexp.MustCompile(`왜\s+그`),
	regexp.MustCompile(`주시겠어요`),
	regexp.MustCompile(`주실.*요`),
	regexp.MustCompile(`말씀해.*요`),
	regexp.MustCompile(`도움이\s*필요`),
	regexp.MustCompile(`필요하신가`),
	regexp.MustCompile(`생각하시`),
	regexp.MustCompile(`느끼시`),
	regexp.MustCompile(`되신가`),
	regexp.MustCompile(`드신가`),
}

// Counselor-register phrases that disqualify a sentence even without
// interrogative morphology.
var counselorPhrases = []string{
	"도움이 필요하",
	"어떤 도움",
	"그렇게 힘드",
	"자세히 말씀",
	"더 얘기해",
	"편하게 말씀",
}

// Generic first-person distress lines used when every sentence of a
// generation was disqualified.
var fallbackResponses = []string{
	"네... 정말 힘들어요.",
	"요즘 너무 불안해요.",
	"잠을 못 자고 있어요.",
	"아무것도 하기 싫어요.",
	"마음이 너무 답답해요.",
}

// FilterQuestions enforces the client-never-asks contract on generated text.
// Sentences are the unit of filtering: a sentence that ended in a question
// mark or matches any interrogative pattern or counselor phrase is dropped
// whole, which keeps the surviving text fluent instead of producing broken
// hybrids. The result is never empty and never contains a question mark.
func FilterQuestions(raw string) string {
	sentences := splitSentences(raw)

	var kept []string
	for _, s := range sentences {
		if s.text == "" {
			continue
		}
		if s.question {
			log.Printf("Filtered out question sentence: %q", s.text)
			continue
		}
		if disqualified(s.text) {
			continue
		}
		// Neutralize any question mark that survived segmentation
		kept = append(kept, strings.ReplaceAll(s.text, "?", "."))
	}

	if len(kept) == 0 {
		return fallbackResponses[rand.Intn(len(fallbackResponses))]
	}
	return strings.Join(kept, " ")
}

func disqualified(sentence string) bool {
	for _, p := range questionPatterns {
		if p.MatchString(sentence) {
			log.Printf("Filtered out question pattern %q: %q", p.String(), sentence)
			return true
		}
	}
	for _, phrase := range counselorPhrases {
		if strings.Contains(sentence, phrase) {
			log.Printf("Filtered out counselor phrase %q: %q", phrase, sentence)
			return true
		}
	}
	return false
}

type sentence struct {
	text     string
	question bool
}

// splitSentences segments text on sentence-final punctuation followed by
// whitespace or end of input. The terminator stays attached; a sentence
// terminated by '?' is marked so the filter can drop it before the mark is
// neutralized.
func splitSentences(text string) []sentence {
	var out []sentence
	var b strings.Builder

	flush := func(question bool) {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s == "" {
			return
		}
		if question {
			s = strings.TrimSuffix(s, "?") + "."
		}
		out = append(out, sentence{text: s, question: question})
	}

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			flush(r == '?')
		}
	}
	flush(false)
	return out
}
