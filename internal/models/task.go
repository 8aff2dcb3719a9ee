package models

import (
	"fmt"
	"strings"
	"time"
)

// Priority task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities in display order, highest first
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort position of p. Values outside the enum rank after low.
func (p Priority) Rank() int {
	for i, known := range Priorities {
		if p == known {
			return i
		}
	}
	return len(Priorities)
}

// Valid reports whether p is one of the known levels
func (p Priority) Valid() bool {
	return p.Rank() < len(Priorities)
}

// PriorityOrder builds an ORDER BY expression ranking column by priority,
// ties broken by id so equal priorities keep insertion order.
func PriorityOrder(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CASE %s.priority", table)
	for _, p := range Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END, %s.id", len(Priorities), table)
	return b.String()
}

// Task task model
type Task struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Priority    Priority  `gorm:"size:10;not null;index" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName table name
func (Task) TableName() string {
	return "tasks"
}

// Category task category
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName table name
func (Category) TableName() string {
	return "categories"
}

// TaskCategory task <-> category pivot
type TaskCategory struct {
	TaskID     uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time
}

// TableName table name
func (TaskCategory) TableName() string {
	return "task_categories"
}

// TaskFavorite user <-> favorite task pivot
type TaskFavorite struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	TaskID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// TableName table name
func (TaskFavorite) TableName() string {
	return "task_favorites"
}
