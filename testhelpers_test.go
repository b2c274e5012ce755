package auth_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/goliatone/go-email-auth"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct horse battery staple"

type fixture struct {
	db     *bun.DB
	repo   auth.RepositoryManager
	engine *auth.EmailAuth
	config auth.Config
	now    time.Time
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	ctx := context.Background()
	models := []any{
		(*auth.User)(nil),
		(*auth.Invite)(nil),
		(*auth.RecoveryRequest)(nil),
		(*auth.ChangeEmailRequest)(nil),
	}
	for _, model := range models {
		_, err = bunDB.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}

	t.Cleanup(func() {
		_ = bunDB.Close()
		_ = db.Close()
	})

	config := auth.DefaultConfig()
	config.BcryptCost = bcrypt.MinCost

	repo := auth.NewRepositoryManager(bunDB)

	f := &fixture{
		db:     bunDB,
		repo:   repo,
		config: config,
		now:    time.Now().UTC().Truncate(time.Second),
	}

	engine, err := auth.New(repo, config)
	require.NoError(t, err)

	f.engine = engine.WithClock(func() time.Time { return f.now })

	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// register walks the invite flow end to end and returns the new account.
func (f *fixture) register(t *testing.T, email string, inviter *auth.User) *auth.User {
	t.Helper()

	ctx := context.Background()
	invite, err := f.engine.GetInvite(ctx, email, inviter)
	require.NoError(t, err)

	user, err := f.engine.RegisterUser(ctx, invite, map[string]any{"email": email}, testPassword)
	require.NoError(t, err)

	return user
}

func (f *fixture) lock(t *testing.T, user *auth.User) {
	t.Helper()

	_, err := f.db.NewUpdate().
		Model((*auth.User)(nil)).
		Set("locked = ?", true).
		Where("id = ?", user.ID).
		Exec(context.Background())
	require.NoError(t, err)
}

type capturingSink struct {
	events []auth.ActivityEvent
}

func (c *capturingSink) Record(ctx context.Context, evt auth.ActivityEvent) error {
	c.events = append(c.events, evt)
	return nil
}

func (c *capturingSink) types() []auth.ActivityEventType {
	out := make([]auth.ActivityEventType, 0, len(c.events))
	for _, evt := range c.events {
		out = append(out, evt.EventType)
	}
	return out
}
