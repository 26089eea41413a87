package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/cyberguard/internal/clock"
	"github.com/abhisek/cyberguard/internal/logger"
	"github.com/abhisek/cyberguard/internal/store"
)

// SessionKey is the kv key holding the uid of the signed-in identity.
const SessionKey = "session_current"

// Failed logins per email before further attempts are refused.
const (
	maxFailures   = 5
	lockoutWindow = time.Minute
)

// LocalOptions configures a LocalProvider.
type LocalOptions struct {
	Clock      clock.Clock
	Logger     *logger.Logger
	BcryptCost int
}

// LocalProvider keeps accounts in the local database with bcrypt password
// hashes. Federated sign-in is not available.
type LocalProvider struct {
	users store.UserRepo
	kv    store.KVRepo
	clock clock.Clock
	log   *logger.Logger
	cost  int
}

// failure is the stored lockout counter for one email. It lives in the kv
// table so separate CLI invocations share it.
type failure struct {
	Count int       `json:"count"`
	Last  time.Time `json:"last"`
}

func failureKey(email string) string {
	return "login_failures_" + email
}

// NewLocalProvider creates a provider over the given repositories.
func NewLocalProvider(users store.UserRepo, kv store.KVRepo, opts LocalOptions) *LocalProvider {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &LocalProvider{
		users: users,
		kv:    kv,
		clock: opts.Clock,
		log:   opts.Logger,
		cost:  opts.BcryptCost,
	}
}

var _ Provider = (*LocalProvider)(nil)

func (p *LocalProvider) Login(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, authErr(CodeInvalidEmail, "")
	}
	locked, err := p.lockedOut(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if locked {
		return nil, authErr(CodeTooManyRequests, "")
	}

	row, err := p.users.ByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, authErr(CodeUserNotFound, "")
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if row.Provider != ProviderPassword {
		return nil, authErr(CodeAccountExistsDiffCred, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		if err := p.recordFailure(ctx, email); err != nil {
			p.log.Error("record login failure", "uid", row.UID, "error", err)
		}
		p.log.Warn("login rejected", "uid", row.UID)
		return nil, authErr(CodeWrongPassword, "")
	}
	if err := p.kv.Delete(ctx, failureKey(email)); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := p.kv.Set(ctx, SessionKey, row.UID); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	p.log.Info("signed in", "uid", row.UID)
	return toUser(row), nil
}

func (p *LocalProvider) Signup(ctx context.Context, email, password, displayName string) (*User, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, authErr(CodeInvalidEmail, "")
	}
	if missing := CheckPassword(password).Missing(); len(missing) > 0 {
		return nil, authErr(CodeWeakPassword, strings.Join(missing, ", "))
	}
	displayName = strings.TrimSpace(displayName)
	if !ValidDisplayName(displayName) {
		return nil, authErr(CodeInvalidDisplayName, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := store.User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Provider:     ProviderPassword,
		CreatedAt:    p.clock.Now(),
	}
	if err := p.users.Create(ctx, row); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, authErr(CodeEmailAlreadyInUse, "")
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	if err := p.kv.Set(ctx, SessionKey, row.UID); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	p.log.Info("account created", "uid", row.UID)
	return toUser(&row), nil
}

// LoginWithGoogle always fails: there is no federated provider offline.
func (p *LocalProvider) LoginWithGoogle(ctx context.Context) (*User, error) {
	return nil, authErr(CodeOperationNotAllowed, "google sign-in")
}

func (p *LocalProvider) Logout(ctx context.Context) error {
	if err := p.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	p.log.Info("signed out")
	return nil
}

func (p *LocalProvider) CurrentUser(ctx context.Context) (*User, error) {
	uid, err := p.kv.Get(ctx, SessionKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	row, err := p.users.ByUID(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		p.log.Warn("session references missing account", "uid", uid)
		if err := p.kv.Delete(ctx, SessionKey); err != nil {
			return nil, fmt.Errorf("current user: %w", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return toUser(row), nil
}

func (p *LocalProvider) loadFailure(ctx context.Context, email string) (failure, error) {
	var f failure
	raw, err := p.kv.Get(ctx, failureKey(email))
	if errors.Is(err, store.ErrNotFound) {
		return f, nil
	}
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		p.log.Warn("discarding corrupt login failure counter", "error", err)
		return failure{}, nil
	}
	return f, nil
}

func (p *LocalProvider) lockedOut(ctx context.Context, email string) (bool, error) {
	f, err := p.loadFailure(ctx, email)
	if err != nil {
		return false, err
	}
	if f.Count == 0 {
		return false, nil
	}
	if p.clock.Now().Sub(f.Last) > lockoutWindow {
		return false, p.kv.Delete(ctx, failureKey(email))
	}
	return f.Count >= maxFailures, nil
}

func (p *LocalProvider) recordFailure(ctx context.Context, email string) error {
	f, err := p.loadFailure(ctx, email)
	if err != nil {
		return err
	}
	f.Count++
	f.Last = p.clock.Now()
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return p.kv.Set(ctx, failureKey(email), string(raw))
}

func toUser(row *store.User) *User {
	return &User{
		UID:         row.UID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Provider:    row.Provider,
		CreatedAt:   row.CreatedAt,
	}
}
