package store

import (
	"context"
	"errors"
	"log"
	"time"

	"yatav-backend/internal/models"
)

// DefaultCharacters is the stock persona catalog loaded on first start.
func DefaultCharacters() []models.Character {
	now := time.Now().UTC()
	return []models.Character{
		{
			ID:                 "1",
			Name:               "김미영",
			Age:                27,
			Gender:             "female",
			Issue:              "직장 스트레스로 인한 불안장애",
			Background:         "대기업 3년차 직장인, 최근 승진 압박과 업무 과중으로 불안 증상 호소",
			CurrentSituation:   "회사에서의 스트레스로 인한 불안증상이 일상생활에 영향을 미치기 시작함",
			Personality:        "성실하고 책임감이 강하지만 완벽주의 성향",
			CommunicationStyle: "논리적이고 체계적이지만 감정 표현에 서툴름",
			EmotionalState:     "불안, 초조, 피로감",
			PrimaryIssue:       "직장에서의 스트레스로 인한 불안증상",
			Difficulty:         3,
			CharacterType:      "female-adult",
			TrainingPrograms: map[string]models.ProgramConfig{
				"basic": {Available: true},
				"techniques": {
					Available:             true,
					RecommendedTechniques: []string{"인지행동치료", "이완훈련"},
					ComplexityLevel:       "중급",
					SessionType:           "개인치료",
				},
			},
			CreatedAt: now,
			IsActive:  true,
		},
		{
			ID:                 "2",
			Name:               "박준호",
			Age:                35,
			Gender:             "male",
			Issue:              "우울증",
			Background:         "최근 이혼 후 우울감 경험, IT 개발자",
			CurrentSituation:   "이혼 후 혼자 생활하며 의욕 저하와 우울감을 느끼고 있음",
			Personality:        "내향적, 분석적",
			CommunicationStyle: "조용하고 신중한 편",
			EmotionalState:     "우울, 무기력",
			PrimaryIssue:       "이혼 후 우울증",
			Difficulty:         5,
			CharacterType:      "male-adult",
			TrainingPrograms: map[string]models.ProgramConfig{
				"basic": {Available: true},
				"crisis": {
					Available:      true,
					UrgencyLevel:   "중간",
					SafetyConcerns: []string{"사회적 고립", "수면 문제"},
				},
			},
			CreatedAt: now,
			IsActive:  true,
		},
		{
			ID:                 "3",
			Name:               "이소영",
			Age:                19,
			Gender:             "female",
			Issue:              "대인관계 문제",
			Background:         "대학 새내기, 친구 관계에서의 어려움",
			CurrentSituation:   "대학 입학 후 새로운 환경에 적응하는데 어려움을 겪고 있음",
			Personality:        "수줍음, 민감함",
			CommunicationStyle: "조심스럽고 망설이는 편",
			EmotionalState:     "불안, 외로움",
			PrimaryIssue:       "대인관계 형성의 어려움",
			Difficulty:         2,
			CharacterType:      "female-teen",
			TrainingPrograms: map[string]models.ProgramConfig{
				"basic": {Available: true},
			},
			CreatedAt: now,
			IsActive:  true,
		},
		{
			ID:                 "4",
			Name:               "최영수",
			Age:                45,
			Gender:             "male",
			Issue:              "중년의 위기",
			Background:         "중견기업 임원, 가족 부양 압박",
			CurrentSituation:   "커리어 정체와 가족 책임감 사이에서 갈등",
			Personality:        "책임감 강함, 권위적",
			CommunicationStyle: "직설적, 때로는 방어적",
			EmotionalState:     "좌절감, 불안",
			PrimaryIssue:       "중년의 정체성 위기",
			Difficulty:         7,
			CharacterType:      "male-middle",
			TrainingPrograms: map[string]models.ProgramConfig{
				"techniques": {
					Available:             true,
					RecommendedTechniques: []string{"동기강화상담", "수용전념치료"},
					ComplexityLevel:       "고급",
					SessionType:           "개인치료",
				},
			},
			CreatedAt: now,
			IsActive:  true,
		},
		{
			ID:                 "5",
			Name:               "정하나",
			Age:                23,
			Gender:             "female",
			Issue:              "취업 스트레스",
			Background:         "대학 졸업 예정자, 취업 준비 중",
			CurrentSituation:   "졸업을 앞두고 취업 준비로 인한 극심한 스트레스",
			Personality:        "열정적이지만 불안정",
			CommunicationStyle: "감정적, 변화가 큼",
			EmotionalState:     "불안, 압박감",
			PrimaryIssue:       "미래에 대한 불확실성과 취업 스트레스",
			Difficulty:         4,
			CharacterType:      "female-adult",
			TrainingPrograms: map[string]models.ProgramConfig{
				"basic": {Available: true},
				"crisis": {
					Available:      true,
					UrgencyLevel:   "높음",
					SafetyConcerns: []string{"극심한 스트레스 반응", "식사 거부"},
				},
			},
			CreatedAt: now,
			IsActive:  true,
		},
		{
			ID:                 "6",
			Name:               "김철수",
			Age:                30,
			Gender:             "male",
			Issue:              "대인 공포증",
			Background:         "프리랜서 디자이너, 재택근무",
			CurrentSituation:   "사회적 상황을 피하고 고립된 생활",
			Personality:        "예민, 창의적",
			CommunicationStyle: "소극적, 회피적",
			EmotionalState:     "두려움, 고립감",
			PrimaryIssue:       "사회적 상황에 대한 극심한 불안",
			Difficulty:         6,
			CharacterType:      "male-stressed",
			TrainingPrograms: map[string]models.ProgramConfig{
				"techniques": {
					Available:             true,
					RecommendedTechniques: []string{"노출치료", "사회기술훈련"},
					ComplexityLevel:       "중급",
					SessionType:           "개인치료",
				},
			},
			CreatedAt: now,
			IsActive:  true,
		},
	}
}

// SeedCharacters inserts the default catalog, skipping ids that already
// exist.
func SeedCharacters(ctx context.Context, characters CharacterStore) error {
	for _, ch := range DefaultCharacters() {
		_, err := characters.Find(ctx, ch.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		ch := ch
		if err := characters.Insert(ctx, &ch); err != nil {
			return err
		}
	}
	log.Printf("Default characters initialized")
	return nil
}
