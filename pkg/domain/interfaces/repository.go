package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Criteria() CriteriaRepository
	ScoringConfig() ScoringConfigRepository
	Object() ObjectRepository

	Close() error
}
