package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophshelf/internal/cryptox"
	"github.com/dmitrijs2005/gophshelf/internal/dbx"
	"github.com/google/uuid"
)

// PostgresProvider keeps accounts in the accounts table.
type PostgresProvider struct {
	db       dbx.DBTX
	tokens   TokenStore
	secret   []byte
	validity time.Duration

	mu      sync.RWMutex
	current *User
}

func NewPostgresProvider(db dbx.DBTX, tokens TokenStore, secretKey string, validity time.Duration) *PostgresProvider {
	return &PostgresProvider{
		db:       db,
		tokens:   tokens,
		secret:   []byte(secretKey),
		validity: validity,
	}
}

// Restore loads the persisted session. A missing, expired or forged token
// leaves the provider signed out and clears the stored token.
func (p *PostgresProvider) Restore(ctx context.Context) error {
	tok, err := p.tokens.LoadToken(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if tok == "" {
		return nil
	}

	u, err := ParseToken(tok, p.secret)
	if err != nil {
		return p.tokens.ClearToken(ctx)
	}

	p.setCurrent(u)
	return nil
}

func (p *PostgresProvider) CreateAccount(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	pw := []byte(password)
	defer cryptox.Wipe(pw)

	salt, verifier, err := cryptox.NewVerifier(pw)
	if err != nil {
		return nil, fmt.Errorf("derive verifier: %w", err)
	}

	u := &User{ID: uuid.NewString(), Email: email}

	query :=
		`INSERT INTO accounts (id, email, salt, verifier)
		 VALUES ($1, $2, $3, $4)
		 `

	if _, err := p.db.ExecContext(ctx, query, u.ID, u.Email, salt, verifier); err != nil {
		return nil, classify(err)
	}

	if err := p.startSession(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (p *PostgresProvider) SignIn(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)

	query :=
		`SELECT id, email, phone, salt, verifier FROM accounts
		 WHERE email = $1
		 `

	var (
		u              User
		salt, verifier []byte
	)
	err := p.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Phone, &salt, &verifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, classify(err)
	}

	pw := []byte(password)
	defer cryptox.Wipe(pw)

	if !cryptox.CheckPassword(pw, salt, verifier) {
		return nil, ErrInvalidCredentials
	}

	if err := p.startSession(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *PostgresProvider) CurrentUser() *User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

func (p *PostgresProvider) SignOut(ctx context.Context) error {
	p.setCurrent(nil)
	if err := p.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (p *PostgresProvider) startSession(ctx context.Context, u *User) error {
	tok, err := GenerateToken(*u, p.secret, p.validity)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	if err := p.tokens.SaveToken(ctx, tok); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	p.setCurrent(u)
	return nil
}

func (p *PostgresProvider) setCurrent(u *User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u == nil {
		p.current = nil
		return
	}
	c := *u
	p.current = &c
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func classify(err error) error {
	switch {
	case dbx.IsUniqueViolation(err):
		return ErrUserCollision
	case dbx.IsUnavailable(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
