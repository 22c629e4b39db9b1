package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type WeightEntry struct {
	ID        int64     `json:"id"`
	AthleteID int64     `json:"athlete_id"`
	Weight    float64   `json:"weight"`
	Date      Date      `json:"date"`
	Timing    *string   `json:"timing"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type WeeklyAssessment struct {
	ID          int64          `json:"id"`
	AthleteID   int64          `json:"athlete_id"`
	WeekStart   Date           `json:"week_date"`
	Answers     map[string]any `json:"answers"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

type Task struct {
	ID          int64      `json:"id"`
	AthleteID   int64      `json:"athlete_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	TaskType    *string    `json:"task_type"`
	Target      *string    `json:"target"`
	Completed   bool       `json:"completed"`
	Progress    int        `json:"progress"`
	DueDate     *Date      `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type Competition struct {
	ID              int64     `json:"id"`
	AthleteID       int64     `json:"athlete_id"`
	Name            string    `json:"name"`
	CompetitionDate Date      `json:"competition_date"`
	WeightCategory  *string   `json:"weight_category"`
	TargetWeight    *float64  `json:"target_weight"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}
