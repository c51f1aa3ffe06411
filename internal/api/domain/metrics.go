package domain

import "time"

type BMILog struct {
	ID        string
	UserID    string
	Height    float64
	Weight    float64
	BMI       float64
	Age       int
	Gender    string
	CreatedAt time.Time
}

type BMRLog struct {
	ID        string
	UserID    string
	Height    float64
	Weight    float64
	Age       int
	Gender    string
	Activity  float64
	BMR       int
	TDEE      int
	CreatedAt time.Time
}

type HeartRateLog struct {
	ID         string
	UserID     string
	Age        int
	RestingBPM int
	MaxBPM     int
	CreatedAt  time.Time
}
