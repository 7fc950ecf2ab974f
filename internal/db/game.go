package db

import "time"

type Game struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	Questions []Question `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}
