package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This lets the usecase layer run multi-step writes atomically without
// depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// All repositories obtained from the factory share the transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to the current
// transaction, so every operation inside Execute uses the same connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// SessionRepo returns a SessionRepository bound to the current transaction.
	SessionRepo() SessionRepository

	// FormationRepo returns a FormationRepository bound to the current transaction.
	FormationRepo() FormationRepository
}
