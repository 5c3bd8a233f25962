package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:user"` // user, admin
}

type Teacher struct {
	gorm.Model
	Name   string `gorm:"not null"`
	Email  string
	Active bool `gorm:"default:true"`
}

type Group struct {
	gorm.Model
	Name         string `gorm:"not null"`
	ScheduleType string `gorm:"default:regular"` // intensive, regular, weekend
	Days         string // comma-separated Spanish weekday names
	StartDate    string // YYYY-MM-DD
	StartTime    string // HH:MM, optional
	Book         int    `gorm:"default:1"` // 1..5
	TeacherID    uint
	Status       string `gorm:"default:active"` // active, inactive
}

type ProgressRecord struct {
	gorm.Model
	GroupID           uint   `gorm:"uniqueIndex:idx_group_date;not null"`
	Date              string `gorm:"uniqueIndex:idx_group_date;not null"` // YYYY-MM-DD
	UnitsCovered      string // JSON-encoded [{"unit":n}, ...]
	CompletedExpected bool
	Notes             string
}

type AuditLog struct {
	ID          string `gorm:"primaryKey"`
	Action      string
	EntityType  string
	EntityID    string
	Description string
	Before      string // JSON snapshot
	After       string // JSON snapshot
	CreatedAt   int64  `gorm:"autoCreateTime"`
}
