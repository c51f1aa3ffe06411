package domain

import "time"

type WaterLog struct {
	ID        string
	UserID    string
	Amount    int // ml
	CreatedAt time.Time
}

type WaterGoal struct {
	UserID    string
	Goal      int // ml per day
	UpdatedAt time.Time
}
