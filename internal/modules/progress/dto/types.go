package dto

type MilestoneView struct {
	Name        string
	Day         int
	Description string
	Badge       string
	XP          int
	Earned      bool
}

type Dashboard struct {
	CurrentDay      int
	Topic           string
	PhaseNumber     int
	PhaseName       string
	PhaseDayPercent float64
	CompletedCount  int
	TotalDays       int
	OverallPercent  float64
	TotalXP         int
	Level           int
	XPIntoLevel     int
	XPPerLevel      int
	Streak          int
	TotalHours      float64
	TodayMinutes    int
	DailyGoal       int
	GoalPercent     float64
	StartDate       string
	Theme           string
	NextMilestone   *MilestoneView
	Achievements    []MilestoneView
}

type TaskView struct {
	Index int
	Label string
	Done  bool
}

type DayView struct {
	Day            int
	Topic          string
	Subtopics      []string
	Project        string
	Difficulty     string
	EstimatedHours float64
	PhaseName      string
	IsCurrent      bool
	Completed      bool
	CompletedAt    string
	Tasks          []TaskView
	Notes          string
	Challenges     string
	Understanding  int
	Minutes        int
}

type ToggleTaskInput struct {
	Day   int // 0 means the current day
	Index int
	Done  bool
}

type ReflectionInput struct {
	Day           int
	Notes         *string
	Challenges    *string
	Understanding *int
}

type CompleteDayInput struct {
	Day        int
	Reflection ReflectionInput
}

type CompleteDayOutput struct {
	Day        int
	Completed  bool
	XPGained   int
	Milestones []MilestoneView
	Dashboard  Dashboard
}

type CalendarCell struct {
	Day    int
	Status string
}

type PhaseView struct {
	Number      int
	Name        string
	Description string
	Start       int
	End         int
	Completed   int
	Percent     float64
}

type SkillView struct {
	Name  string
	Level float64
}

type ProgressView struct {
	CurrentDay int
	Calendar   []CalendarCell
	Phases     []PhaseView
	Skills     []SkillView
	Milestones []MilestoneView
}

type ProjectView struct {
	Day          int
	Name         string
	Description  string
	Technologies []string
	Difficulty   string
	Status       string
}

type ResourcesView struct {
	PhaseNumber   int
	PhaseName     string
	Documentation []string
	Tutorials     []string
	Practice      []string
	Tools         []string
}

type Settings struct {
	Theme     string
	StartDate string
	DailyGoal int
}

type AwardSessionInput struct {
	XP    int
	Hours float64
}

type LogMinutesInput struct {
	Day     int
	Minutes int
}

type ExportInput struct {
	Format string
	Dir    string
}

type ExportOutput struct {
	Format string
	Paths  []string
}
