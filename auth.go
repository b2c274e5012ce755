package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// maxTokenAttempts bounds the token-uniqueness retry loop. Collisions are
// astronomically unlikely, the cap just keeps the loop finite.
const maxTokenAttempts = 64

// Auth holds the account and request lifecycle operations.
type Auth interface {
	GetInvite(ctx context.Context, email string, inviter *User) (*Invite, error)
	RegisterUser(ctx context.Context, invite *Invite, profile map[string]any, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	ChangePassword(ctx context.Context, user *User, currentPassword, newPassword string) (*User, error)
	ChangeProfile(ctx context.Context, user *User, newProfile map[string]any) (*User, error)
	GetRecoveryRequest(ctx context.Context, email string) (*RecoveryRequest, error)
	Recover(ctx context.Context, request *RecoveryRequest, newPassword string) (*User, error)
	GetChangeEmailRequest(ctx context.Context, user *User, newEmail string) (*ChangeEmailRequest, error)
	ChangeEmail(ctx context.Context, request *ChangeEmailRequest) (*User, error)

	GetInvites(ctx context.Context, inviter *User) ([]*Invite, error)
	GetInvitedUsers(ctx context.Context, inviter *User) ([]*User, error)
	GetInviter(ctx context.Context, user *User) (*User, error)

	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetInviteByToken(ctx context.Context, token string) (*Invite, error)
	GetRecoveryRequestByToken(ctx context.Context, token string) (*RecoveryRequest, error)
	GetChangeEmailRequestByToken(ctx context.Context, token string) (*ChangeEmailRequest, error)
}

// EmailAuth implements Auth on top of a RepositoryManager. It is
// stateless and safe for concurrent use; every multi-step write runs in a
// single transaction.
type EmailAuth struct {
	repo     RepositoryManager
	config   Config
	tokens   TokenGenerator
	password PasswordAuthenticator
	activity ActivitySink
	logger   Logger
	now      func() time.Time
}

var _ Auth = (*EmailAuth)(nil)

// New creates an EmailAuth with the given configuration. Zero-value
// config fields are not defaulted here; start from DefaultConfig.
func New(repo RepositoryManager, config Config) (*EmailAuth, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tokens, err := NewTokenGenerator(config.TokenLength)
	if err != nil {
		return nil, err
	}

	return &EmailAuth{
		repo:     repo,
		config:   config,
		tokens:   tokens,
		password: NewBcryptAuthenticator(config.BcryptCost),
		activity: noopActivitySink{},
		logger:   defLogger{},
		now:      time.Now,
	}, nil
}

// WithLogger overrides the logger.
func (a *EmailAuth) WithLogger(logger Logger) *EmailAuth {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithTokenGenerator overrides the token generator.
func (a *EmailAuth) WithTokenGenerator(gen TokenGenerator) *EmailAuth {
	if gen != nil {
		a.tokens = gen
	}
	return a
}

// WithPasswordAuthenticator overrides the password hasher.
func (a *EmailAuth) WithPasswordAuthenticator(p PasswordAuthenticator) *EmailAuth {
	if p != nil {
		a.password = p
	}
	return a
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (a *EmailAuth) WithActivitySink(sink ActivitySink) *EmailAuth {
	a.activity = normalizeActivitySink(sink)
	return a
}

// WithClock injects a custom clock (useful for tests).
func (a *EmailAuth) WithClock(clock func() time.Time) *EmailAuth {
	if clock != nil {
		a.now = clock
	}
	return a
}

// GetInvite issues a new pending invite for an unregistered email.
func (a *EmailAuth) GetInvite(ctx context.Context, email string, inviter *User) (*Invite, error) {
	email = NormalizeEmail(email)

	if _, err := a.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// gate on the inviter's stored state, not the caller's snapshot
	if inviter != nil {
		fresh, err := a.GetUserByID(ctx, inviter.ID)
		if err != nil {
			return nil, err
		}
		inviter = fresh
	}

	if inviter.IsLocked() {
		return nil, ErrUserLocked
	}

	var token string
	err := a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := a.now()

		pending, err := a.repo.Invites().CountPendingTx(ctx, tx, email, now)
		if err != nil {
			return err
		}
		if pending >= a.config.NumInvitesPerDay {
			return ErrTooManyRequests
		}

		if token, err = a.uniqueToken(ctx, tx, a.repo.Invites()); err != nil {
			return err
		}

		invite := &Invite{
			Email:     email,
			Token:     token,
			CreatedAt: &now,
			ExpiresAt: now.Add(a.config.RequestTTL),
		}
		if inviter != nil {
			inviterID := inviter.ID
			invite.InviterID = &inviterID
		}

		_, err = a.repo.Invites().CreateTx(ctx, tx, invite)
		return err
	})
	if err != nil {
		return nil, WrapIOError(err, "could not create invite")
	}

	invite, err := a.GetInviteByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventInviteCreated,
		Actor:     actorFor(inviter),
		Email:     invite.Email,
		Metadata:  map[string]any{"invite_id": invite.ID.String()},
	})

	return invite, nil
}

// RegisterUser redeems an invite, creating the account it authorizes.
func (a *EmailAuth) RegisterUser(ctx context.Context, invite *Invite, profile map[string]any, password string) (*User, error) {
	if invite == nil {
		return nil, ErrTokenNotFound
	}

	// the caller's snapshot may be stale; redeem against the current row
	invite, err := a.GetInviteByToken(ctx, invite.Token)
	if err != nil {
		return nil, err
	}

	if invite.IsActivated() {
		return nil, ErrRequestActivated
	}

	if invite.IsExpiredAt(a.now()) {
		return nil, ErrRequestExpired
	}

	if invite.Inviter.IsLocked() {
		return nil, ErrUserLocked
	}

	email := NormalizeEmail(invite.Email)

	if _, err := a.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := a.password.HashPassword(password)
	if err != nil {
		return nil, WrapIOError(err, "could not hash password")
	}

	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// one-shot guard: the loser of a concurrent redemption stops here
		if err := a.repo.Invites().ActivateTx(ctx, tx, invite.ID, a.now()); err != nil {
			return err
		}

		inviteID := invite.ID
		record := &User{
			Email:        email,
			PasswordHash: passwordHash,
			Profile:      profile,
			InviteID:     &inviteID,
		}

		if _, err := a.repo.Users().CreateTx(ctx, tx, record); err != nil {
			// users.email is unique; the constraint is the authoritative
			// guard against a registration that raced the pre-check
			if isUniqueViolation(err) {
				return ErrUserAlreadyExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, WrapIOError(err, "could not register user")
	}

	user, err := a.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventUserRegistered,
		Actor:     ActorRef{ID: user.ID.String(), Type: "user"},
		UserID:    user.ID.String(),
		Email:     user.Email,
		Metadata:  map[string]any{"invite_id": invite.ID.String()},
	})

	return user, nil
}

// Login verifies credentials and returns the account. Read-only.
func (a *EmailAuth) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := a.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.IsLocked() {
		a.emitLoginFailure(ctx, user, "locked")
		return nil, ErrUserLocked
	}

	if err := a.password.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.emitLoginFailure(ctx, user, "password")
		return nil, ErrPasswordNotMatch
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		Actor:     ActorRef{ID: user.ID.String(), Type: "user"},
		UserID:    user.ID.String(),
		Email:     user.Email,
	})

	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (a *EmailAuth) ChangePassword(ctx context.Context, user *User, currentPassword, newPassword string) (*User, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}

	// gate on the account's stored state, not the caller's snapshot
	user, err := a.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if user.IsLocked() {
		return nil, ErrUserLocked
	}

	if err := a.password.ComparePasswordAndHash(currentPassword, user.PasswordHash); err != nil {
		return nil, ErrPasswordNotMatch
	}

	passwordHash, err := a.password.HashPassword(newPassword)
	if err != nil {
		return nil, WrapIOError(err, "could not hash password")
	}

	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return a.repo.Users().UpdatePasswordTx(ctx, tx, user.ID, passwordHash)
	})
	if err != nil {
		return nil, a.mapUserError(err, "could not update password")
	}

	updated, err := a.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventPasswordChanged,
		Actor:     ActorRef{ID: updated.ID.String(), Type: "user"},
		UserID:    updated.ID.String(),
		Email:     updated.Email,
	})

	return updated, nil
}

// ChangeProfile overwrites the profile map wholesale.
func (a *EmailAuth) ChangeProfile(ctx context.Context, user *User, newProfile map[string]any) (*User, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}

	// gate on the account's stored state, not the caller's snapshot
	user, err := a.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if user.IsLocked() {
		return nil, ErrUserLocked
	}

	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return a.repo.Users().UpdateProfileTx(ctx, tx, user.ID, newProfile)
	})
	if err != nil {
		return nil, a.mapUserError(err, "could not update profile")
	}

	updated, err := a.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventProfileChanged,
		Actor:     ActorRef{ID: updated.ID.String(), Type: "user"},
		UserID:    updated.ID.String(),
		Email:     updated.Email,
	})

	return updated, nil
}

// GetRecoveryRequest issues a pending password-recovery request.
func (a *EmailAuth) GetRecoveryRequest(ctx context.Context, email string) (*RecoveryRequest, error) {
	user, err := a.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.IsLocked() {
		return nil, ErrUserLocked
	}

	var token string
	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := a.now()

		pending, err := a.repo.RecoveryRequests().CountPendingTx(ctx, tx, user.ID, now)
		if err != nil {
			return err
		}
		if pending >= a.config.NumRecoveryRequestsPerDay {
			return ErrTooManyRequests
		}

		if token, err = a.uniqueToken(ctx, tx, a.repo.RecoveryRequests()); err != nil {
			return err
		}

		request := &RecoveryRequest{
			Email:     user.Email,
			Token:     token,
			UserID:    user.ID,
			CreatedAt: &now,
			ExpiresAt: now.Add(a.config.RequestTTL),
		}

		_, err = a.repo.RecoveryRequests().CreateTx(ctx, tx, request)
		return err
	})
	if err != nil {
		return nil, WrapIOError(err, "could not create recovery request")
	}

	request, err := a.GetRecoveryRequestByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventRecoveryRequested,
		Actor:     ActorRef{ID: user.ID.String(), Type: "user"},
		UserID:    user.ID.String(),
		Email:     user.Email,
		Metadata:  map[string]any{"request_id": request.ID.String()},
	})

	return request, nil
}

// Recover redeems a recovery request and sets the new password.
func (a *EmailAuth) Recover(ctx context.Context, request *RecoveryRequest, newPassword string) (*User, error) {
	if request == nil {
		return nil, ErrTokenNotFound
	}

	// the caller's snapshot may be stale; redeem against the current row
	request, err := a.GetRecoveryRequestByToken(ctx, request.Token)
	if err != nil {
		return nil, err
	}

	if request.IsActivated() {
		return nil, ErrRequestActivated
	}

	if request.IsExpiredAt(a.now()) {
		return nil, ErrRequestExpired
	}

	subject, err := a.requestSubject(ctx, request.User, request.UserID)
	if err != nil {
		return nil, err
	}

	if subject.IsLocked() {
		return nil, ErrUserLocked
	}

	passwordHash, err := a.password.HashPassword(newPassword)
	if err != nil {
		return nil, WrapIOError(err, "could not hash password")
	}

	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := a.repo.RecoveryRequests().ActivateTx(ctx, tx, request.ID, a.now()); err != nil {
			return err
		}
		return a.repo.Users().UpdatePasswordTx(ctx, tx, subject.ID, passwordHash)
	})
	if err != nil {
		return nil, a.mapUserError(err, "could not recover access")
	}

	updated, err := a.GetUserByID(ctx, subject.ID)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventPasswordRecovered,
		Actor:     ActorRef{ID: updated.ID.String(), Type: "user"},
		UserID:    updated.ID.String(),
		Email:     updated.Email,
		Metadata:  map[string]any{"request_id": request.ID.String()},
	})

	return updated, nil
}

// GetChangeEmailRequest issues a pending request to move user to newEmail.
func (a *EmailAuth) GetChangeEmailRequest(ctx context.Context, user *User, newEmail string) (*ChangeEmailRequest, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}

	// gate on the account's stored state, not the caller's snapshot
	user, err := a.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if user.IsLocked() {
		return nil, ErrUserLocked
	}

	newEmail = NormalizeEmail(newEmail)

	if _, err := a.GetUserByEmail(ctx, newEmail); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	var token string
	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := a.now()

		pending, err := a.repo.ChangeEmailRequests().CountPendingTx(ctx, tx, user.ID, now)
		if err != nil {
			return err
		}
		if pending >= a.config.NumChangeEmailRequestsPerDay {
			return ErrTooManyRequests
		}

		if token, err = a.uniqueToken(ctx, tx, a.repo.ChangeEmailRequests()); err != nil {
			return err
		}

		request := &ChangeEmailRequest{
			Email:     newEmail,
			Token:     token,
			UserID:    user.ID,
			CreatedAt: &now,
			ExpiresAt: now.Add(a.config.RequestTTL),
		}

		_, err = a.repo.ChangeEmailRequests().CreateTx(ctx, tx, request)
		return err
	})
	if err != nil {
		return nil, WrapIOError(err, "could not create change email request")
	}

	request, err := a.GetChangeEmailRequestByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventEmailChangeRequest,
		Actor:     ActorRef{ID: user.ID.String(), Type: "user"},
		UserID:    user.ID.String(),
		Email:     newEmail,
		Metadata:  map[string]any{"request_id": request.ID.String()},
	})

	return request, nil
}

// ChangeEmail redeems a change-email request. The target email is
// re-checked at activation time; a registration that raced in between
// makes this fail with ErrUserAlreadyExists.
func (a *EmailAuth) ChangeEmail(ctx context.Context, request *ChangeEmailRequest) (*User, error) {
	if request == nil {
		return nil, ErrTokenNotFound
	}

	// the caller's snapshot may be stale; redeem against the current row
	request, err := a.GetChangeEmailRequestByToken(ctx, request.Token)
	if err != nil {
		return nil, err
	}

	if request.IsActivated() {
		return nil, ErrRequestActivated
	}

	if request.IsExpiredAt(a.now()) {
		return nil, ErrRequestExpired
	}

	subject, err := a.requestSubject(ctx, request.User, request.UserID)
	if err != nil {
		return nil, err
	}

	if subject.IsLocked() {
		return nil, ErrUserLocked
	}

	newEmail := NormalizeEmail(request.Email)

	if _, err := a.GetUserByEmail(ctx, newEmail); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := a.repo.ChangeEmailRequests().ActivateTx(ctx, tx, request.ID, a.now()); err != nil {
			return err
		}

		if err := a.repo.Users().UpdateEmailTx(ctx, tx, subject.ID, newEmail); err != nil {
			if isUniqueViolation(err) {
				return ErrUserAlreadyExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, a.mapUserError(err, "could not change email")
	}

	updated, err := a.GetUserByID(ctx, subject.ID)
	if err != nil {
		return nil, err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventEmailChanged,
		Actor:     ActorRef{ID: updated.ID.String(), Type: "user"},
		UserID:    updated.ID.String(),
		Email:     updated.Email,
		Metadata:  map[string]any{"request_id": request.ID.String()},
	})

	return updated, nil
}

// GetInvites lists all invites created by inviter; empty when none.
func (a *EmailAuth) GetInvites(ctx context.Context, inviter *User) ([]*Invite, error) {
	if inviter == nil {
		return nil, ErrUserNotFound
	}

	records, err := a.repo.Invites().ListByInviter(ctx, inviter.ID)
	if err != nil {
		return nil, WrapIOError(err, "could not list invites")
	}

	return records, nil
}

// GetInvitedUsers lists accounts created through inviter's invites.
func (a *EmailAuth) GetInvitedUsers(ctx context.Context, inviter *User) ([]*User, error) {
	if inviter == nil {
		return nil, ErrUserNotFound
	}

	records, err := a.repo.Users().ListInvited(ctx, inviter.ID)
	if err != nil {
		return nil, WrapIOError(err, "could not list invited users")
	}

	return records, nil
}

// GetInviter resolves the account that invited user, or nil when the
// account was not invite-created or the invite carried no inviter.
func (a *EmailAuth) GetInviter(ctx context.Context, user *User) (*User, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.InviteID == nil {
		return nil, nil
	}

	invite, err := a.repo.Invites().GetByID(ctx, user.InviteID.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, WrapIOError(err, "could not load invite")
	}

	if invite.InviterID == nil {
		return nil, nil
	}

	return a.GetUserByID(ctx, *invite.InviterID)
}

// GetUserByEmail looks up an account by normalized email.
func (a *EmailAuth) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := a.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, WrapIOError(err, "could not load user")
	}
	return user, nil
}

// GetUserByID looks up an account by id.
func (a *EmailAuth) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := a.repo.Users().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, WrapIOError(err, "could not load user")
	}
	return user, nil
}

// GetInviteByToken fetches an invite, inviter snapshot included.
func (a *EmailAuth) GetInviteByToken(ctx context.Context, token string) (*Invite, error) {
	invite, err := a.repo.Invites().GetByToken(ctx, token)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrTokenNotFound
		}
		return nil, WrapIOError(err, "could not load invite")
	}
	return invite, nil
}

// GetRecoveryRequestByToken fetches a recovery request, user snapshot included.
func (a *EmailAuth) GetRecoveryRequestByToken(ctx context.Context, token string) (*RecoveryRequest, error) {
	request, err := a.repo.RecoveryRequests().GetByToken(ctx, token)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrTokenNotFound
		}
		return nil, WrapIOError(err, "could not load recovery request")
	}
	return request, nil
}

// GetChangeEmailRequestByToken fetches a change-email request, user
// snapshot included.
func (a *EmailAuth) GetChangeEmailRequestByToken(ctx context.Context, token string) (*ChangeEmailRequest, error) {
	request, err := a.repo.ChangeEmailRequests().GetByToken(ctx, token)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrTokenNotFound
		}
		return nil, WrapIOError(err, "could not load change email request")
	}
	return request, nil
}

type tokenIndex interface {
	TokenExistsTx(ctx context.Context, tx bun.IDB, token string) (bool, error)
}

func (a *EmailAuth) uniqueToken(ctx context.Context, tx bun.IDB, idx tokenIndex) (string, error) {
	for i := 0; i < maxTokenAttempts; i++ {
		token, err := a.tokens.Generate()
		if err != nil {
			return "", err
		}

		exists, err := idx.TokenExistsTx(ctx, tx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}

	return "", goerrors.New("exhausted token generation attempts", goerrors.CategoryInternal).
		WithTextCode(TextCodeIOError)
}

// requestSubject prefers the loaded snapshot and falls back to a fetch.
func (a *EmailAuth) requestSubject(ctx context.Context, snapshot *User, id uuid.UUID) (*User, error) {
	if snapshot != nil {
		return snapshot, nil
	}
	return a.GetUserByID(ctx, id)
}

// mapUserError translates a missing-row update into ErrUserNotFound and
// everything else into an IO fault.
func (a *EmailAuth) mapUserError(err error, message string) error {
	if err == nil {
		return nil
	}
	if repository.IsRecordNotFound(err) {
		return ErrUserNotFound
	}
	return WrapIOError(err, message)
}

func (a *EmailAuth) emit(ctx context.Context, event ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = a.now()
	}

	if err := normalizeActivitySink(a.activity).Record(ctx, event); err != nil {
		a.logger.Warn("activity sink error: %v", err)
	}
}

func (a *EmailAuth) emitLoginFailure(ctx context.Context, user *User, reason string) {
	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventLoginFailure,
		Actor:     ActorRef{Type: "unknown"},
		UserID:    user.ID.String(),
		Email:     user.Email,
		Metadata:  map[string]any{"reason": reason},
	})
}

func actorFor(user *User) ActorRef {
	if user == nil {
		return ActorRef{Type: "anonymous"}
	}
	return ActorRef{ID: user.ID.String(), Type: "user"}
}

// isUniqueViolation sniffs driver-specific unique constraint failures.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
