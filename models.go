package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NormalizeEmail trims whitespace and lowercases an email address. Every
// lookup and every stored email goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User is the account model. Email is unique across all users.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email        string         `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash string         `bun:"password_hash,notnull" json:"-"`
	Profile      map[string]any `bun:"profile" json:"profile,omitempty"`
	Locked       bool           `bun:"locked" json:"locked,omitempty"`
	InviteID     *uuid.UUID     `bun:"invite_id,nullzero,type:uuid" json:"invite_id,omitempty"`
	CreatedAt    *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// IsLocked reports whether the account is administratively locked.
func (u *User) IsLocked() bool {
	return u != nil && u.Locked
}

// Invite authorizes one new registration for a specific email. The
// inviter reference is optional and, when loaded, is a snapshot of the
// inviter's account at fetch time.
type Invite struct {
	bun.BaseModel `bun:"table:invites,alias:inv"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email       string     `bun:"email,notnull" json:"email,omitempty"`
	Token       string     `bun:"token,notnull,unique" json:"token,omitempty"`
	InviterID   *uuid.UUID `bun:"inviter_id,nullzero,type:uuid" json:"inviter_id,omitempty"`
	Inviter     *User      `bun:"rel:has-one,join:inviter_id=id" json:"inviter,omitempty"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	ExpiresAt   time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	ActivatedAt *time.Time `bun:"activated_at,nullzero" json:"activated_at,omitempty"`
}

// IsActivated reports whether the invite was already redeemed.
func (i *Invite) IsActivated() bool {
	return i.ActivatedAt != nil
}

// IsExpiredAt reports whether the invite is past its expiry at the given time.
func (i *Invite) IsExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsPendingAt reports whether the invite can still be redeemed.
func (i *Invite) IsPendingAt(now time.Time) bool {
	return !i.IsActivated() && !i.IsExpiredAt(now)
}

// RecoveryRequest authorizes a password reset for an existing user. The
// user field is a snapshot resolved at fetch time.
type RecoveryRequest struct {
	bun.BaseModel `bun:"table:recovery_requests,alias:rcv"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email       string     `bun:"email,notnull" json:"email,omitempty"`
	Token       string     `bun:"token,notnull,unique" json:"token,omitempty"`
	UserID      uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User        *User      `bun:"rel:has-one,join:user_id=id" json:"user,omitempty"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	ExpiresAt   time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	ActivatedAt *time.Time `bun:"activated_at,nullzero" json:"activated_at,omitempty"`
}

// IsActivated reports whether the request was already redeemed.
func (r *RecoveryRequest) IsActivated() bool {
	return r.ActivatedAt != nil
}

// IsExpiredAt reports whether the request is past its expiry at the given time.
func (r *RecoveryRequest) IsExpiredAt(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// IsPendingAt reports whether the request can still be redeemed.
func (r *RecoveryRequest) IsPendingAt(now time.Time) bool {
	return !r.IsActivated() && !r.IsExpiredAt(now)
}

// ChangeEmailRequest authorizes changing an existing user's email. Email
// holds the new address; the user field is a snapshot resolved at fetch
// time.
type ChangeEmailRequest struct {
	bun.BaseModel `bun:"table:change_email_requests,alias:cer"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email       string     `bun:"email,notnull" json:"email,omitempty"`
	Token       string     `bun:"token,notnull,unique" json:"token,omitempty"`
	UserID      uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User        *User      `bun:"rel:has-one,join:user_id=id" json:"user,omitempty"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	ExpiresAt   time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	ActivatedAt *time.Time `bun:"activated_at,nullzero" json:"activated_at,omitempty"`
}

// IsActivated reports whether the request was already redeemed.
func (r *ChangeEmailRequest) IsActivated() bool {
	return r.ActivatedAt != nil
}

// IsExpiredAt reports whether the request is past its expiry at the given time.
func (r *ChangeEmailRequest) IsExpiredAt(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// IsPendingAt reports whether the request can still be redeemed.
func (r *ChangeEmailRequest) IsPendingAt(now time.Time) bool {
	return !r.IsActivated() && !r.IsExpiredAt(now)
}
