package server

import (
	"math/rand"

	"yatav-backend/internal/models"
)

// Difficulty-graded client lines used when response generation fails for
// any reason. Easier characters stay cooperative, harder ones withdraw.
var (
	fallbackEasy = []string{
		"네, 맞아요... 정말 그런 것 같아요.",
		"선생님 말씀을 들으니 제 마음이 좀 편해지는 것 같아요.",
		"그런데 여전히 불안한 마음이 들어요...",
		"네... 어떻게 해야 할지 잘 모르겠어요.",
	}
	fallbackMedium = []string{
		"글쎄요... 잘 모르겠어요.",
		"...(침묵)",
		"그게 그렇게 간단한 문제는 아닌 것 같은데요.",
		"음... 생각해본 적이 없어서...",
	}
	fallbackHard = []string{
		"잘 모르겠어요.",
		"...",
		"말하고 싶지 않아요.",
		"그런 얘기는 하고 싶지 않아요.",
	}
)

func fallbackClientResponse(ch *models.Character) string {
	if ch == nil {
		return "죄송합니다, 잠시 연결이 불안정합니다."
	}

	difficulty := ch.Difficulty
	if difficulty == 0 {
		difficulty = 3
	}

	var pool []string
	switch {
	case difficulty <= 3:
		pool = fallbackEasy
	case difficulty <= 6:
		pool = fallbackMedium
	default:
		pool = fallbackHard
	}
	return pool[rand.Intn(len(pool))]
}
