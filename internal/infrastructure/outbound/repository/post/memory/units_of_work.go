package memory

import (
	"context"
	"sync"

	ports "kaizen-board/internal/domain/ports/output"
	post_repository "kaizen-board/internal/domain/ports/output/post"
)

// UnitOfWork runs one transaction at a time. Writes made inside a transaction are
// applied immediately, so Rollback releases the lock but does not undo them.
type UnitOfWork struct {
	repo *PostRepository
	mu   sync.Mutex
}

func NewUnitOfWork(repo *PostRepository) ports.UnitOfWork {
	return &UnitOfWork{repo: repo}
}

func (u *UnitOfWork) Begin(ctx context.Context) (ports.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.Lock()
	return &Transaction{uow: u}, nil
}

type Transaction struct {
	uow  *UnitOfWork
	once sync.Once
}

func (t *Transaction) release() {
	t.once.Do(t.uow.mu.Unlock)
}

func (t *Transaction) PostRepository() post_repository.Repository {
	return t.uow.repo
}

func (t *Transaction) Commit(ctx context.Context) error {
	t.release()
	return nil
}

func (t *Transaction) Rollback(ctx context.Context) error {
	t.release()
	return nil
}
