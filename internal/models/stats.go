package models

import "time"

// ProfileStats are placeholder usage figures shown on the student dashboard.
type ProfileStats struct {
	TotalSessions  int `json:"totalSessions"`
	HoursLearned   int `json:"hoursLearned"`
	QuestionsAsked int `json:"questionsAsked"`
	ExamsGenerated int `json:"examsGenerated"`
	CurrentStreak  int `json:"currentStreak"`
	WeeklyProgress int `json:"weeklyProgress"`
}

// AdminStats pairs the real user count with derived placeholder figures.
type AdminStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveUsers    int64 `json:"activeUsers"`
	TotalSessions  int64 `json:"totalSessions"`
	TotalQuestions int64 `json:"totalQuestions"`
	TotalExams     int64 `json:"totalExams"`
	AvgSessionTime int   `json:"avgSessionTime"`
}

// AdminUserView is a user row on the admin dashboard.
type AdminUserView struct {
	ID                  string    `json:"_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	CreatedAt           time.Time `json:"createdAt"`
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	LastActive          string    `json:"lastActive"`
	TotalSessions       int       `json:"totalSessions"`
	HoursLearned        int       `json:"hoursLearned"`
	Status              string    `json:"status"`
}
