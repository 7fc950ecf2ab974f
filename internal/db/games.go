package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrDuplicateIndex   = errors.New("question index must be unique within a game")
)

// NewQuestion is the input shape for one question of a game being created.
type NewQuestion struct {
	Content string
	Options []json.RawMessage
	Index   int
}

// GameStore persists games together with their questions.
type GameStore struct {
	conn *gorm.DB
}

func NewGameStore(conn *gorm.DB) *GameStore {
	return &GameStore{conn: conn}
}

// CreateGame inserts the game and all of its questions in one transaction.
func (s *GameStore) CreateGame(ctx context.Context, title string, questions []NewQuestion) (*Game, error) {
	seen := make(map[int]struct{}, len(questions))
	for _, question := range questions {
		if _, dup := seen[question.Index]; dup {
			return nil, ErrDuplicateIndex
		}
		seen[question.Index] = struct{}{}
	}

	game := Game{Title: title}
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewRepository[Game](tx).Create(ctx, &game); err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
		records := make([]Question, 0, len(questions))
		for _, question := range questions {
			options, err := EncodeOptions(question.Options)
			if err != nil {
				return err
			}
			records = append(records, Question{
				GameID:  game.ID,
				Content: question.Content,
				Options: options,
				Index:   question.Index,
				Count:   0,
			})
		}
		if err := NewRepository[Question](tx).CreateBatch(ctx, records); err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicateIndex
			}
			return fmt.Errorf("insert questions: %w", err)
		}
		game.Questions = records
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindGame loads a game with its questions ordered by index.
func (s *GameStore) FindGame(ctx context.Context, id uint) (*Game, error) {
	var game Game
	err := s.conn.WithContext(ctx).
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc, id asc")
		}).
		First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// IncrementQuestionCount adds one to the count of the question at index in the
// game and returns the question as stored after the increment. The addition is
// done by the database, and the row is read back inside the same transaction so
// every caller observes its own increment.
func (s *GameStore) IncrementQuestionCount(ctx context.Context, gameID uint, index int) (*Question, error) {
	var question Question
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := NewRepository[Question](tx).Update(ctx,
			map[string]any{"count": gorm.Expr("count + 1")},
			"game_id = ? AND position = ?", gameID, index,
		)
		if err != nil {
			return fmt.Errorf("increment count: %w", err)
		}
		if affected == 0 {
			if _, err := NewRepository[Game](tx).FindByID(ctx, gameID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return ErrGameNotFound
				}
				return err
			}
			return ErrQuestionNotFound
		}
		return tx.Where("game_id = ? AND position = ?", gameID, index).First(&question).Error
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// EncodeOptions serializes an options array for the text column.
func EncodeOptions(options []json.RawMessage) (datatypes.JSON, error) {
	if options == nil {
		options = []json.RawMessage{}
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	return datatypes.JSON(data), nil
}

// DecodeOptions parses the stored options text back into its array elements.
func DecodeOptions(raw datatypes.JSON) ([]json.RawMessage, error) {
	options := make([]json.RawMessage, 0)
	if len(raw) == 0 {
		return options, nil
	}
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return options, nil
}
