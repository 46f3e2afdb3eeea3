package model

// Learning module status values.
const (
	ModuleNotStarted = "not_started"
	ModuleInProgress = "in_progress"
	ModuleCompleted  = "completed"
)

// MaxMoodEntries bounds the persisted mood history.
const MaxMoodEntries = 7

// ModuleTask is a checklist step within a learning module.
type ModuleTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Module is a learning module with its task checklist.
type Module struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Duration    string       `json:"duration"`
	Level       string       `json:"level"`
	Status      string       `json:"status"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Tasks       []ModuleTask `json:"tasks"`
}

// Progress returns the completed task percentage of m.
func (m Module) Progress() int {
	if len(m.Tasks) == 0 {
		if m.Status == ModuleCompleted {
			return 100
		}
		return 0
	}
	done := 0
	for _, t := range m.Tasks {
		if t.Completed {
			done++
		}
	}
	return done * 100 / len(m.Tasks)
}

// MoodEntry is one daily mood check-in.
type MoodEntry struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Score int    `json:"score"`
}

// Mood check-in values.
const (
	MoodHappy    = "happy"
	MoodNeutral  = "neutral"
	MoodTired    = "tired"
	MoodStressed = "stressed"
)

var moodScores = map[string]int{
	MoodHappy:    9,
	MoodNeutral:  6,
	MoodTired:    4,
	MoodStressed: 3,
}

// DefaultMoodScore returns the score recorded for mood when the caller
// gives none, and whether mood is a known value.
func DefaultMoodScore(mood string) (int, bool) {
	s, ok := moodScores[mood]
	return s, ok
}

// NeedsCare reports whether mood should trigger a wellness suggestion.
func NeedsCare(mood string) bool {
	return mood == MoodTired || mood == MoodStressed
}
