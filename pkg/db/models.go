package db

// Session represents one allocation run
type Session struct {
	ID               string
	CreatedAt        string // RFC3339
	PlanningDate     string // YYYY-MM-DD
	ScorerKind       string
	TaskCount        int
	AllocatedCount   int
	UnallocatedCount int
}

// TaskAllocation represents a committed allocation of a session
type TaskAllocation struct {
	ID           string
	SessionID    string
	TaskID       string
	TaskName     string
	EmployeeID   string
	EmployeeName string
	StartHour    int
	EndHour      int
	MatchScore   int
}

// ModelArtifact represents a stored learned scorer
type ModelArtifact struct {
	ID        string
	CreatedAt string // RFC3339
	Samples   int
	Loss      float64
	Content   []byte // YAML encoded network
}
