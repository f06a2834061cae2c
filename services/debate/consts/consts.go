package consts

import (
	"time"

	"github.com/eduvox/backend/services/debate/entity"
)

const (
	MinRounds = 3
	MaxRounds = 10

	MinRebuttalQuestions     = 1
	MaxRebuttalQuestions     = 5
	DefaultRebuttalQuestions = 2

	MinTopicLength = 10
)

// WordLimits caps every turn, user or AI, by stage.
var WordLimits = map[entity.Stage]int{
	entity.StageOpening:           150,
	entity.StageArgument:          100,
	entity.StageRebuttalQuestions: 75,
	entity.StageClosing:           100,
}

// TimeLimits caps the length of a spoken turn by stage.
var TimeLimits = map[entity.Stage]time.Duration{
	entity.StageOpening:           30 * time.Second,
	entity.StageArgument:          15 * time.Second,
	entity.StageRebuttalQuestions: 60 * time.Second,
	entity.StageClosing:           60 * time.Second,
}
