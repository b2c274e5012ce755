package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the account repository.
type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	EmailExistsTx(ctx context.Context, tx bun.IDB, email string) (bool, error)

	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)

	UpdatePasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error
	UpdateProfileTx(ctx context.Context, tx bun.IDB, id uuid.UUID, profile map[string]any) error
	UpdateEmailTx(ctx context.Context, tx bun.IDB, id uuid.UUID, email string) error

	ListInvited(ctx context.Context, inviterID uuid.UUID) ([]*User, error)
	ListInvitedTx(ctx context.Context, tx bun.IDB, inviterID uuid.UUID) ([]*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": NormalizeEmail(email),
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) EmailExistsTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	return tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Exists(ctx)
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *users) UpdatePasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	return requireAffected(res, map[string]any{"id": id.String()})
}

func (a *users) UpdateProfileTx(ctx context.Context, tx bun.IDB, id uuid.UUID, profile map[string]any) error {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("profile = ?", string(encoded)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	return requireAffected(res, map[string]any{"id": id.String()})
}

func (a *users) UpdateEmailTx(ctx context.Context, tx bun.IDB, id uuid.UUID, email string) error {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("email = ?", NormalizeEmail(email)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	return requireAffected(res, map[string]any{"id": id.String()})
}

func (a *users) ListInvited(ctx context.Context, inviterID uuid.UUID) ([]*User, error) {
	return a.ListInvitedTx(ctx, a.db, inviterID)
}

func (a *users) ListInvitedTx(ctx context.Context, tx bun.IDB, inviterID uuid.UUID) ([]*User, error) {
	records := []*User{}
	err := tx.NewSelect().
		Model(&records).
		Join("JOIN invites AS inv ON inv.id = usr.invite_id").
		Where("inv.inviter_id = ?", inviterID).
		Order("usr.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	record.Email = NormalizeEmail(record.Email)

	if record.Profile == nil {
		record.Profile = map[string]any{}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
