package llm

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// DemoProvider simulates a counseling client without any network dependency.
// It classifies the latest counselor message into a topical bucket, answers
// from that bucket's template pool, and mimics real provider latency and
// token-by-token streaming so consumers cannot structurally tell it apart
// from a remote model.
type DemoProvider struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	minDelay time.Duration
	maxDelay time.Duration
}

func NewDemo() *DemoProvider {
	return newDemo(rand.New(rand.NewSource(time.Now().UnixNano())), 500*time.Millisecond, 1500*time.Millisecond)
}

func newDemo(rnd *rand.Rand, minDelay, maxDelay time.Duration) *DemoProvider {
	return &DemoProvider{rnd: rnd, minDelay: minDelay, maxDelay: maxDelay}
}

var demoTemplates = map[string][]string{
	"anxiety": {
		"요즘 정말 불안해서 잠을 제대로 못 자고 있어요.",
		"회사 갈 생각만 하면 가슴이 답답하고 숨이 막혀요.",
		"아침에 일어나는 게 너무 두려워요. 하루가 시작되는 게 무서워요.",
		"손이 떨리고 식은땀이 나요. 심장이 너무 빨리 뛰어요.",
		"집중이 안 돼서 일을 제대로 못하고 있어요.",
		"사람들이 저를 이상하게 볼까봐 걱정돼요.",
		"실수할까봐 너무 무서워서 아무것도 못하겠어요.",
	},
	"depression": {
		"아무것도 하고 싶지 않아요. 그냥 누워만 있고 싶어요.",
		"예전에 좋아하던 것들이 이제는 아무 의미가 없어요.",
		"혼자 있으면 눈물이 나요. 이유도 모르겠어요.",
		"아무도 저를 이해하지 못할 것 같아요.",
		"미래가 보이지 않아요. 희망이 없는 것 같아요.",
		"제가 쓸모없는 사람 같아요.",
		"매일이 똑같고 지루해요. 살아있는 게 힘들어요.",
	},
	"relationship": {
		"사람들과 대화하는 게 너무 어려워요.",
		"친구들이 저를 싫어하는 것 같아요.",
		"혼자 있는 게 편하면서도 외로워요.",
		"거절당하는 게 무서워서 먼저 다가가지 못해요.",
		"사람들 앞에서 말하면 얼굴이 빨개지고 더듬어요.",
		"관계를 유지하는 게 너무 피곤해요.",
		"상처받는 게 무서워서 마음을 열지 못하겠어요.",
	},
	"stress": {
		"일이 너무 많아서 압도당하는 느낌이에요.",
		"책임감이 너무 무거워요. 견딜 수가 없어요.",
		"실패하면 어떻게 하나 하는 생각만 들어요.",
		"주변 사람들의 기대가 부담스러워요.",
		"시간이 부족해요. 할 일은 많은데 시간은 없고...",
		"완벽하게 해야 한다는 압박감이 너무 커요.",
		"스트레스 때문에 머리가 아프고 소화도 안 돼요.",
	},
	"general": {
		"네... 그렇게 느껴져요.",
		"맞아요. 정말 힘들어요.",
		"그때는 정말 막막했어요.",
		"어떻게 해야 할지 모르겠어요.",
		"도움이 필요한 것 같아요.",
		"혼자서는 해결이 안 될 것 같아요.",
		"선생님 말씀 들으니 조금 위로가 되네요.",
	},
}

var demoCues = []string{
	"(한숨을 쉬며)",
	"(눈물을 글썽이며)",
	"(잠시 침묵)",
	"(고개를 숙이며)",
	"(손을 비비며)",
	"(목소리가 떨리며)",
}

var demoTopicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"anxiety", []string{"불안", "무서", "두려", "걱정", "초조"}},
	{"depression", []string{"우울", "슬프", "희망", "의미", "죽"}},
	{"relationship", []string{"관계", "친구", "사람", "대인", "혼자"}},
	{"stress", []string{"스트레스", "압박", "부담", "일", "회사"}},
}

// classifyTopic deterministically picks the first bucket whose keyword
// appears in the message, falling back to "general".
func classifyTopic(message string) string {
	for _, t := range demoTopicKeywords {
		for _, kw := range t.keywords {
			if strings.Contains(message, kw) {
				return t.topic
			}
		}
	}
	return "general"
}

func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func (p *DemoProvider) Generate(ctx context.Context, messages []Message, _ Options) (Response, error) {
	userMessage := lastUserMessage(messages)
	topic := classifyTopic(userMessage)
	content := p.composeResponse(topic, userMessage)

	// Simulate provider latency
	select {
	case <-time.After(p.delay()):
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}

	log.Printf("Demo provider generated %q response: %.50s...", topic, content)
	return Response{Content: content, Model: "demo"}, nil
}

// Stream emits the response word by word with small randomized inter-token
// delays.
func (p *DemoProvider) Stream(ctx context.Context, messages []Message, opts Options) (<-chan StreamChunk, error) {
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
			select {
			case <-time.After(p.tokenDelay()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (p *DemoProvider) composeResponse(topic, userMessage string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	pool := demoTemplates[topic]
	response := pool[p.rnd.Intn(len(pool))]

	// Occasional non-verbal cue
	if p.rnd.Float64() < 0.3 {
		response = demoCues[p.rnd.Intn(len(demoCues))] + " " + response
	}

	// When the counselor asked something, sometimes deflect in a
	// client-appropriate way instead of answering precisely.
	switch {
	case strings.Contains(userMessage, "어떻게") || strings.Contains(userMessage, "어떤"):
		if p.rnd.Float64() < 0.5 {
			response += " 구체적으로 설명하기는 어렵지만... 그냥 그런 느낌이에요."
		}
	case strings.Contains(userMessage, "왜"):
		if p.rnd.Float64() < 0.5 {
			response += " 저도 왜 그런지 잘 모르겠어요."
		}
	case strings.Contains(userMessage, "언제"):
		if p.rnd.Float64() < 0.5 {
			tails := []string{
				" 한 달 전부터 그랬던 것 같아요.",
				" 최근 들어 더 심해진 것 같아요.",
				" 정확히 언제부터인지는 기억이 안 나요.",
			}
			response += tails[p.rnd.Intn(len(tails))]
		}
	}

	return response
}

func (p *DemoProvider) delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxDelay <= p.minDelay {
		return p.minDelay
	}
	return p.minDelay + time.Duration(p.rnd.Int63n(int64(p.maxDelay-p.minDelay)))
}

func (p *DemoProvider) tokenDelay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxDelay == 0 {
		return 0
	}
	return time.Duration(10+p.rnd.Intn(40)) * time.Millisecond
}
