package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-email-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitesActivateIsOneShot(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	invites := f.repo.Invites()

	now := f.now
	created, err := invites.Create(ctx, &auth.Invite{
		Email:     "invitee@example.com",
		Token:     "00112233445566778899aabbccddeeff",
		CreatedAt: &now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	err = invites.ActivateTx(ctx, f.db, created.ID, now)
	require.NoError(t, err)

	err = invites.ActivateTx(ctx, f.db, created.ID, now.Add(time.Minute))
	require.ErrorIs(t, err, auth.ErrRequestActivated)

	// first activation timestamp survives the failed second attempt
	reloaded, err := invites.GetByToken(ctx, created.Token)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ActivatedAt)
	assert.True(t, reloaded.ActivatedAt.Equal(now))
}

func TestInvitesCountPending(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	invites := f.repo.Invites()
	now := f.now
	email := "pending@example.com"

	activated := now.Add(-time.Minute)
	rows := []*auth.Invite{
		{Email: email, Token: "aa112233445566778899aabbccddeeff", ExpiresAt: now.Add(time.Hour)},
		{Email: email, Token: "bb112233445566778899aabbccddeeff", ExpiresAt: now.Add(time.Hour), ActivatedAt: &activated},
		{Email: email, Token: "cc112233445566778899aabbccddeeff", ExpiresAt: now.Add(-time.Hour)},
		{Email: "other@example.com", Token: "dd112233445566778899aabbccddeeff", ExpiresAt: now.Add(time.Hour)},
	}
	for _, row := range rows {
		createdAt := now
		row.CreatedAt = &createdAt
		_, err := invites.Create(ctx, row)
		require.NoError(t, err)
	}

	count, err := invites.CountPendingTx(ctx, f.db, email, now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTokenExists(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	invites := f.repo.Invites()
	now := f.now

	_, err := invites.Create(ctx, &auth.Invite{
		Email:     "someone@example.com",
		Token:     "ee112233445566778899aabbccddeeff",
		CreatedAt: &now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	exists, err := invites.TokenExistsTx(ctx, f.db, "ee112233445566778899aabbccddeeff")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = invites.TokenExistsTx(ctx, f.db, "ff112233445566778899aabbccddeeff")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUsersEmailUniqueConstraint(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	users := f.repo.Users()

	_, err := users.Create(ctx, &auth.User{
		Email:        "Unique@Example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	// stored normalized
	found, err := users.GetByEmail(ctx, "unique@example.com")
	require.NoError(t, err)
	assert.Equal(t, "unique@example.com", found.Email)

	_, err = users.Create(ctx, &auth.User{
		Email:        " unique@example.com ",
		PasswordHash: "y",
	})
	require.Error(t, err)
}
