package model

// Milestones records which streak bonuses were already paid in the current run.
type Milestones struct {
	Streak7  bool `json:"streak7"`
	Streak14 bool `json:"streak14"`
	Streak21 bool `json:"streak21"`
	Streak30 bool `json:"streak30"`
}

// AchievementState is the persisted streak and points score.
type AchievementState struct {
	LastRecordDate *string    `json:"lastRecordDate"`
	Milestones     Milestones `json:"milestones"`
	TotalPoints    int        `json:"totalPoints"`
	CurrentStreak  int        `json:"currentStreak"`
	LongestStreak  int        `json:"longestStreak"`
	TotalRecords   int        `json:"totalRecords"`
}

// Clone returns a copy that shares no pointers with s.
func (s AchievementState) Clone() AchievementState {
	if s.LastRecordDate != nil {
		d := *s.LastRecordDate
		s.LastRecordDate = &d
	}
	return s
}
