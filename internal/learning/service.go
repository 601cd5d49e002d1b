package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/farmfit/farmfit/internal/config"
	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/gamification"
	"github.com/farmfit/farmfit/internal/logger"
)

// Beginner filter and recommendation tuning
const (
	BeginnerMinSuccessRate  = 0.8
	BeginnerMaxMaintenance  = 5
	RecommendationThreshold = 0.6
)

// Light level scores for recommendation matching
var lightLevelScores = map[string]float64{
	"low":    0.3,
	"medium": 0.6,
	"high":   1.0,
}

// Log message constants
const (
	LogMsgGuidesLoaded    = "Plant guides loaded"
	LogMsgLessonCompleted = "Lesson completed"
)

type guidesFile struct {
	Version string              `json:"version" validate:"required"`
	Guides  []domain.PlantGuide `json:"guides" validate:"required,min=1,dive"`
}

// ActionRecorder is the slice of the gamification service lessons need
type ActionRecorder interface {
	RecordAction(ctx context.Context, userID, actionType, targetKey string, quantity int) error
}

type Service interface {
	Guide(plantKey string) (*domain.PlantGuide, error)
	ListGuides() []domain.PlantGuide

	// BeginnerPlants lists forgiving plants: beginner difficulty, high
	// success rate, low maintenance.
	BeginnerPlants() []domain.PlantGuide

	// Recommend scores every guide against the user's space (cm), light
	// level, available time (days) and experience, keeping good matches
	// sorted best first.
	Recommend(spaceCm int, lightLevel string, timeDays int, experience string) ([]domain.GuideRecommendation, error)

	// StageGuide returns care advice for the plant's current growth stage
	// plus a preview of the next one.
	StageGuide(plantKey, stage string) (*domain.StageAdvice, error)

	// CompleteLesson records a finished lesson so quests and experience
	// advance.
	CompleteLesson(ctx context.Context, userID, lessonKey string) error
}

type service struct {
	guides   map[string]*domain.PlantGuide
	ordered  []domain.PlantGuide
	recorder ActionRecorder
}

// NewService loads plant guides from config. The recorder may be nil to
// disable lesson progress tracking.
func NewService(recorder ActionRecorder) (Service, error) {
	raw, err := os.ReadFile(config.ConfigPathPlantGuides)
	if err != nil {
		return nil, fmt.Errorf("reading plant guides: %w", err)
	}

	var file guidesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing plant guides: %w", err)
	}
	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("validating plant guides: %w", err)
	}

	svc, err := newServiceFromGuides(file.Guides, recorder)
	if err != nil {
		return nil, err
	}
	slog.Info(LogMsgGuidesLoaded, "count", len(file.Guides), "version", file.Version)
	return svc, nil
}

func newServiceFromGuides(guides []domain.PlantGuide, recorder ActionRecorder) (*service, error) {
	byKey := make(map[string]*domain.PlantGuide, len(guides))
	for i := range guides {
		g := &guides[i]
		key := strings.ToLower(g.Key)
		if _, dup := byKey[key]; dup {
			return nil, fmt.Errorf("%w: duplicate plant guide key %q", domain.ErrInvalidInput, g.Key)
		}
		byKey[key] = g
	}
	return &service{
		guides:   byKey,
		ordered:  guides,
		recorder: recorder,
	}, nil
}

func (s *service) Guide(plantKey string) (*domain.PlantGuide, error) {
	g, ok := s.guides[strings.ToLower(strings.TrimSpace(plantKey))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGuideNotFound, plantKey)
	}
	return g, nil
}

func (s *service) ListGuides() []domain.PlantGuide {
	out := make([]domain.PlantGuide, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s *service) BeginnerPlants() []domain.PlantGuide {
	var out []domain.PlantGuide
	for _, g := range s.ordered {
		if g.Difficulty == domain.DifficultyBeginner &&
			g.SuccessRate >= BeginnerMinSuccessRate &&
			g.MaintenanceLevel <= BeginnerMaxMaintenance {
			out = append(out, g)
		}
	}
	return out
}

func (s *service) Recommend(spaceCm int, lightLevel string, timeDays int, experience string) ([]domain.GuideRecommendation, error) {
	switch experience {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
	default:
		return nil, fmt.Errorf("%w: unknown experience level %q", domain.ErrInvalidInput, experience)
	}

	var out []domain.GuideRecommendation
	for _, g := range s.ordered {
		score := recommendationScore(g, spaceCm, lightLevel, timeDays, experience)
		if score > RecommendationThreshold {
			out = append(out, domain.GuideRecommendation{Guide: g, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// recommendationScore is the mean of five match components: space, light,
// time, experience fit and the plant's own success rate.
func recommendationScore(g domain.PlantGuide, spaceCm int, lightLevel string, timeDays int, experience string) float64 {
	var spaceScore float64
	if spaceCm >= g.SpaceNeededMinCm {
		spaceScore = 1.0
	}

	lightScore := lightLevelScores[strings.ToLower(lightLevel)]

	var timeScore float64
	if timeDays >= g.GrowthTimeMinDays {
		timeScore = 1.0
	}

	var experienceScore float64
	switch experience {
	case domain.DifficultyBeginner:
		experienceScore = 0.3
		if g.Difficulty == domain.DifficultyBeginner {
			experienceScore = 1.0
		}
	case domain.DifficultyIntermediate:
		experienceScore = 0.7
		if g.Difficulty == domain.DifficultyAdvanced {
			experienceScore = 0.4
		}
	case domain.DifficultyAdvanced:
		experienceScore = 1.0
	}

	return (spaceScore + lightScore + timeScore + experienceScore + g.SuccessRate) / 5
}

func (s *service) StageGuide(plantKey, stage string) (*domain.StageAdvice, error) {
	g, err := s.Guide(plantKey)
	if err != nil {
		return nil, err
	}

	stage = strings.ToLower(strings.TrimSpace(stage))
	for i, sg := range g.GrowthStages {
		if sg.Stage != stage {
			continue
		}
		advice := &domain.StageAdvice{
			PlantKey: g.Key,
			Current:  sg,
		}
		if i+1 < len(g.GrowthStages) {
			next := g.GrowthStages[i+1]
			tips := next.Tips
			if len(tips) > 3 {
				tips = tips[:3]
			}
			advice.NextStage = &domain.NextStagePreview{
				Stage:           next.Stage,
				Description:     next.Description,
				PreparationTips: tips,
			}
		}
		return advice, nil
	}
	return nil, fmt.Errorf("%w: stage %q for plant %s", domain.ErrInvalidInput, stage, plantKey)
}

func (s *service) CompleteLesson(ctx context.Context, userID, lessonKey string) error {
	lessonKey = strings.TrimSpace(lessonKey)
	if lessonKey == "" {
		return fmt.Errorf("%w: lesson key is required", domain.ErrInvalidInput)
	}

	if s.recorder != nil {
		if err := s.recorder.RecordAction(ctx, userID, gamification.ActionCompleteLesson, lessonKey, 1); err != nil {
			return err
		}
	}

	logger.FromContext(ctx).Info(LogMsgLessonCompleted, "user_id", userID, "lesson", lessonKey)
	return nil
}
