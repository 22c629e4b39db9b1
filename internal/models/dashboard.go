package models

type AthleteDashboard struct {
	Athlete              *AthleteProfile   `json:"athlete"`
	RecentWeights        []WeightEntry     `json:"recent_weights"`
	LatestAssessment     *WeeklyAssessment `json:"latest_assessment"`
	ActiveTasks          []Task            `json:"active_tasks"`
	RecentCompletedTasks []Task            `json:"recent_completed_tasks"`
	UpcomingCompetitions []Competition     `json:"upcoming_competitions"`
}

type AthleteDetail struct {
	Athlete       *AthleteProfile    `json:"athlete"`
	WeightEntries []WeightEntry      `json:"weight_entries"`
	Assessments   []WeeklyAssessment `json:"assessments"`
	Tasks         []Task             `json:"tasks"`
}
