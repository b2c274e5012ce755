package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Invites() Invites
	RecoveryRequests() RecoveryRequests
	ChangeEmailRequests() ChangeEmailRequests
}

type mngr struct {
	db                  *bun.DB
	users               Users
	invites             Invites
	recoveryRequests    RecoveryRequests
	changeEmailRequests ChangeEmailRequests
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:                  db,
		users:               NewUsersRepository(db),
		invites:             NewInvitesRepository(db),
		recoveryRequests:    NewRecoveryRequestsRepository(db),
		changeEmailRequests: NewChangeEmailRequestsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.invites == nil {
		return errors.New("repository invites should be initialized")
	}

	if m.recoveryRequests == nil {
		return errors.New("repository recoveryRequests should be initialized")
	}

	if m.changeEmailRequests == nil {
		return errors.New("repository changeEmailRequests should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Invites() Invites {
	return m.invites
}

func (m mngr) RecoveryRequests() RecoveryRequests {
	return m.recoveryRequests
}

func (m mngr) ChangeEmailRequests() ChangeEmailRequests {
	return m.changeEmailRequests
}
