package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when arguments fail validation
	ErrInvalidInput = errors.New("invalid input")
)

// Inspiration is an image with a caption saved for later
type Inspiration struct {
	ID          string
	TelegramID  int64
	ImageFileID string
	Content     string
	Label       string
	Tags        []string
	Favorite    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Idea is a short text a user wants to keep
type Idea struct {
	ID         string
	TelegramID int64
	Content    string
	Label      string
	Tags       []string
	Favorite   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Note is a free-form text note
type Note struct {
	ID         string
	TelegramID int64
	Content    string
	CreatedAt  time.Time
}

// EditField selects which inspiration attribute the next text message replaces
type EditField int

const (
	EditContent EditField = iota
	EditTags
	EditLabel
)

func (f EditField) String() string {
	switch f {
	case EditContent:
		return "content"
	case EditTags:
		return "tags"
	case EditLabel:
		return "label"
	default:
		return "unknown"
	}
}

// EditContext records which entity and field a user is editing
type EditContext struct {
	TargetID string
	Field    EditField
}

// ParseTags splits comma-separated input, trims entries and drops empty ones
func ParseTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
