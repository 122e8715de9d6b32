package model

import (
	"errors"
	"strings"
	"time"
)

type Note struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

func (n Note) Validate() error {
	if n.Date.IsZero() {
		return errors.New("model: note date is required")
	}
	if strings.TrimSpace(n.Text) == "" {
		return errors.New("model: note text is required")
	}
	return nil
}
