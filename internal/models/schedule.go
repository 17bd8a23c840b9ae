package models

import "time"

// ScheduleItem — занятие в расписании с данными дисциплины и группы.
type ScheduleItem struct {
	ID              int       `json:"id"`
	Day             time.Time `json:"-"`
	StartTime       time.Time `json:"-"`
	EndTime         time.Time `json:"-"`
	Room            string    `json:"room"`
	DisciplineTitle string    `json:"discipline_title"`
	GroupName       string    `json:"group_name"`
}

// ScheduleItemView — занятие с датой и временем, отформатированными для ответа.
type ScheduleItemView struct {
	ID              int    `json:"id"`
	Day             string `json:"day"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Room            string `json:"room"`
	DisciplineTitle string `json:"discipline_title"`
	GroupName       string `json:"group_name"`
}

// WeekSchedule — расписание на интервал дат.
type WeekSchedule struct {
	Start string             `json:"start"`
	End   string             `json:"end"`
	Items []ScheduleItemView `json:"items"`
}
