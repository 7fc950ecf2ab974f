package db

import (
	"time"

	"gorm.io/datatypes"
)

// Question.Options holds a JSON-encoded array kept in a text column.
// Index maps to the position column; it is unique within a game.
type Question struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    uint           `gorm:"index;not null;uniqueIndex:idx_questions_game_position"`
	Content   string         `gorm:"type:text;not null"`
	Options   datatypes.JSON `gorm:"type:text;not null"`
	Index     int            `gorm:"column:position;not null;uniqueIndex:idx_questions_game_position"`
	Count     int            `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"not null"`
}
