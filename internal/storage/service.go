package storage

// Service provides the repository methods over a shared DB handle.
type Service struct {
	db *DB
}

// NewService creates a Service backed by the given database.
func NewService(db *DB) *Service {
	return &Service{db: db}
}

// DB returns the underlying database handle.
func (s *Service) DB() *DB {
	return s.db
}
