package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RequestRepository is the shared surface of the three token-bearing
// request stores. CountPendingTx counts rows that are neither expired nor
// activated for the given scope (email for invites, user id otherwise);
// ActivateTx flips a request to activated exactly once.
type RequestRepository[T any] interface {
	repository.Repository[T]

	GetByToken(ctx context.Context, token string) (T, error)
	GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (T, error)
	TokenExistsTx(ctx context.Context, tx bun.IDB, token string) (bool, error)
	CountPendingTx(ctx context.Context, tx bun.IDB, scope any, now time.Time) (int, error)
	ActivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID, at time.Time) error
}

// Invites stores invites; scoped by invited email.
type Invites interface {
	RequestRepository[*Invite]

	ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]*Invite, error)
	ListByInviterTx(ctx context.Context, tx bun.IDB, inviterID uuid.UUID) ([]*Invite, error)
}

// RecoveryRequests stores password recovery requests; scoped by user id.
type RecoveryRequests interface {
	RequestRepository[*RecoveryRequest]
}

// ChangeEmailRequests stores change-email requests; scoped by user id.
type ChangeEmailRequests interface {
	RequestRepository[*ChangeEmailRequest]
}

type requestsRepo[T any] struct {
	repository.Repository[T]
	db          *bun.DB
	handlers    repository.ModelHandlers[T]
	scopeColumn string
	relation    string
}

func newRequestsRepo[T any](db *bun.DB, handlers repository.ModelHandlers[T], scopeColumn, relation string) *requestsRepo[T] {
	return &requestsRepo[T]{
		Repository:  repository.NewRepository[T](db, handlers),
		db:          db,
		handlers:    handlers,
		scopeColumn: scopeColumn,
		relation:    relation,
	}
}

func (r *requestsRepo[T]) GetByToken(ctx context.Context, token string) (T, error) {
	return r.GetByTokenTx(ctx, r.db, token)
}

func (r *requestsRepo[T]) GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (T, error) {
	record := r.handlers.NewRecord()

	q := tx.NewSelect().Model(record)
	if r.relation != "" {
		q = q.Relation(r.relation)
	}

	err := q.
		Where("?TableAlias.token = ?", token).
		Limit(1).
		Scan(ctx)

	if err != nil {
		var zero T
		if repository.IsRecordNotFound(err) {
			return zero, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"token": token,
				})
		}
		return zero, err
	}

	return record, nil
}

func (r *requestsRepo[T]) TokenExistsTx(ctx context.Context, tx bun.IDB, token string) (bool, error) {
	return tx.NewSelect().
		Model(r.handlers.NewRecord()).
		Where("?TableAlias.token = ?", token).
		Exists(ctx)
}

func (r *requestsRepo[T]) CountPendingTx(ctx context.Context, tx bun.IDB, scope any, now time.Time) (int, error) {
	return tx.NewSelect().
		Model(r.handlers.NewRecord()).
		Where(fmt.Sprintf("?TableAlias.%s = ?", r.scopeColumn), scope).
		Where("?TableAlias.expires_at > ?", now).
		Where("?TableAlias.activated_at IS NULL").
		Count(ctx)
}

// ActivateTx marks a pending request as activated. The activated_at guard
// runs in the same statement as the write, so of two concurrent
// activations exactly one sees an affected row; the other gets
// ErrRequestActivated.
func (r *requestsRepo[T]) ActivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID, at time.Time) error {
	res, err := tx.NewUpdate().
		Model(r.handlers.NewRecord()).
		Set("activated_at = ?", at).
		Where("id = ?", id).
		Where("activated_at IS NULL").
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequestActivated
	}

	return nil
}

type invites struct {
	*requestsRepo[*Invite]
}

var _ Invites = (*invites)(nil)

func NewInvitesRepository(db *bun.DB) Invites {
	handlers := repository.ModelHandlers[*Invite]{
		NewRecord: func() *Invite { return &Invite{} },
		GetID: func(record *Invite) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Invite, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "token"
		},
	}
	return &invites{newRequestsRepo(db, handlers, "email", "Inviter")}
}

func (r *invites) ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]*Invite, error) {
	return r.ListByInviterTx(ctx, r.db, inviterID)
}

func (r *invites) ListByInviterTx(ctx context.Context, tx bun.IDB, inviterID uuid.UUID) ([]*Invite, error) {
	records := []*Invite{}
	err := tx.NewSelect().
		Model(&records).
		Relation("Inviter").
		Where("?TableAlias.inviter_id = ?", inviterID).
		Order("inv.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

var _ RecoveryRequests = (*requestsRepo[*RecoveryRequest])(nil)

func NewRecoveryRequestsRepository(db *bun.DB) RecoveryRequests {
	handlers := repository.ModelHandlers[*RecoveryRequest]{
		NewRecord: func() *RecoveryRequest { return &RecoveryRequest{} },
		GetID: func(record *RecoveryRequest) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *RecoveryRequest, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "token"
		},
	}
	return newRequestsRepo(db, handlers, "user_id", "User")
}

var _ ChangeEmailRequests = (*requestsRepo[*ChangeEmailRequest])(nil)

func NewChangeEmailRequestsRepository(db *bun.DB) ChangeEmailRequests {
	handlers := repository.ModelHandlers[*ChangeEmailRequest]{
		NewRecord: func() *ChangeEmailRequest { return &ChangeEmailRequest{} },
		GetID: func(record *ChangeEmailRequest) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *ChangeEmailRequest, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "token"
		},
	}
	return newRequestsRepo(db, handlers, "user_id", "User")
}

func requireAffected(res sql.Result, metadata map[string]any) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.NewRecordNotFound().WithMetadata(metadata)
	}
	return nil
}
