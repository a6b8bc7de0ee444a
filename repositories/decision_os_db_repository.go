package repositories

// DecisionOsDbRepository groups the queries against the application
// database. Methods are spread over the *_repository.go files by table.
type DecisionOsDbRepository struct{}

func NewDecisionOsDbRepository() *DecisionOsDbRepository {
	return &DecisionOsDbRepository{}
}
