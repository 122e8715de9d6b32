package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidCategory = errors.New("model: invalid habit category")
	ErrInvalidProgress = errors.New("model: invalid habit progress")
	ErrInvalidReminder = errors.New("model: invalid reminder time")
)

type Category string

const (
	CategoryHealth   Category = "Health"
	CategoryFitness  Category = "Fitness"
	CategoryStudy    Category = "Study"
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryFitness, CategoryStudy, CategoryWork, CategoryPersonal:
		return true
	default:
		return false
	}
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{CategoryHealth, CategoryFitness, CategoryStudy, CategoryWork, CategoryPersonal}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(raw), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

const DateLayout = "2006-01-02"

var reminderPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidReminderTime reports whether raw is a 24h "HH:MM" string or empty
// (empty clears the reminder).
func ValidReminderTime(raw string) bool {
	return raw == "" || reminderPattern.MatchString(raw)
}

// DateKey formats t as the calendar-date key used in CompletedDates.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

type Habit struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	RemindTime     string   `json:"remindTime,omitempty"`
	Progress       int      `json:"progress"`
	Completed      bool     `json:"completed"`
	CompletedDates []string `json:"completedDates"`
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("model: habit name is required")
	}
	if !h.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, h.Category)
	}
	if h.Progress < 0 || h.Progress > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, h.Progress)
	}
	if h.Completed != (h.Progress == 100) {
		return errors.New("model: completed must hold exactly when progress is 100")
	}
	if !ValidReminderTime(h.RemindTime) {
		return fmt.Errorf("%w: %q", ErrInvalidReminder, h.RemindTime)
	}
	seen := make(map[string]bool, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("model: malformed completion date %q", d)
		}
		if seen[d] {
			return fmt.Errorf("model: duplicate completion date %q", d)
		}
		seen[d] = true
	}
	return nil
}

// CompletedOn reports whether the habit was completed on the given date key.
func (h Habit) CompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}
