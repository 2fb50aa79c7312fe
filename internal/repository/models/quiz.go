package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Options stores a checkbox option list as a JSON array string.
// A nil slice is written as NULL and NULL reads back as nil.
type Options []string

// Value implements the driver.Valuer interface
func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal([]string(o))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (o *Options) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("Options Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	// Oracle stores empty strings as NULL, treat both the same way
	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*o = nil
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(bytesToParse, &parsed); err != nil {
		return fmt.Errorf("Options Scan: %w", err)
	}
	*o = parsed
	return nil
}

type Quiz struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

type Question struct {
	ID      int64   `db:"id"`
	QuizID  int64   `db:"quiz_id"`
	Text    string  `db:"question_text"`
	Type    string  `db:"question_type"`
	Options Options `db:"options"`
}

// QuizSummary is a quiz row joined with its question count.
type QuizSummary struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	CreatedAt     time.Time `db:"created_at"`
	QuestionCount int64     `db:"question_count"`
}
