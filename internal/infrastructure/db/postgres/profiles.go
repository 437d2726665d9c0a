package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/copebusiness/portal/internal/core/domain"
)

const profileColumns = `id, name, email, role, company, phone, avatar_url, wallet_balance, created_at`

type ProfileRepository struct {
	s *Store
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	const query = `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.s.q(ctx).Exec(ctx, query,
		p.ID, p.Name, p.Email, string(p.Role), p.Company, p.Phone, p.AvatarURL,
		int64(p.WalletBalance), p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.s.q(ctx).QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1;`, id)
	return scanProfile(row)
}

func (r *ProfileRepository) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error) {
	const query = `
		UPDATE profiles SET
			name = COALESCE($2, name),
			company = COALESCE($3, company),
			phone = COALESCE($4, phone),
			avatar_url = COALESCE($5, avatar_url)
		WHERE id = $1
		RETURNING ` + profileColumns + `;`
	row := r.s.q(ctx).QueryRow(ctx, query, id, patch.Name, patch.Company, patch.Phone, patch.AvatarURL)
	return scanProfile(row)
}

func (r *ProfileRepository) List(ctx context.Context, role domain.Role) ([]*domain.Profile, error) {
	var w where
	if role != "" {
		w.add("role = $%d", string(role))
	}
	rows, err := r.s.q(ctx).Query(ctx, `SELECT `+profileColumns+` FROM profiles`+w.String()+` ORDER BY created_at DESC;`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Count(ctx context.Context, role domain.Role) (int64, error) {
	var w where
	if role != "" {
		w.add("role = $%d", string(role))
	}
	var n int64
	err := r.s.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM profiles`+w.String()+`;`, w.args...).Scan(&n)
	return n, err
}

// Debit only touches the row when the balance covers amount. On a miss the
// row is checked to tell a missing profile from a short balance.
func (r *ProfileRepository) Debit(ctx context.Context, id string, amount domain.Money) (domain.Money, error) {
	const query = `
		UPDATE profiles SET wallet_balance = wallet_balance - $2
		WHERE id = $1 AND wallet_balance >= $2
		RETURNING wallet_balance;`
	var balance int64
	err := r.s.q(ctx).QueryRow(ctx, query, id, int64(amount)).Scan(&balance)
	if err == nil {
		return domain.Money(balance), nil
	}
	if !isNoRows(err) {
		return 0, fmt.Errorf("debit wallet: %w", err)
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return 0, err
	}
	return 0, domain.ErrInsufficientFunds
}

func (r *ProfileRepository) Credit(ctx context.Context, id string, amount domain.Money) (domain.Money, error) {
	const query = `
		UPDATE profiles SET wallet_balance = wallet_balance + $2
		WHERE id = $1
		RETURNING wallet_balance;`
	var balance int64
	if err := r.s.q(ctx).QueryRow(ctx, query, id, int64(amount)).Scan(&balance); err != nil {
		if isNoRows(err) {
			return 0, domain.ErrProfileNotFound
		}
		if isOutOfRange(err) {
			return 0, domain.ErrAmountTooLarge
		}
		return 0, fmt.Errorf("credit wallet: %w", err)
	}
	return domain.Money(balance), nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p       domain.Profile
		role    string
		balance int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &role, &p.Company, &p.Phone, &p.AvatarURL, &balance, &p.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.Role = domain.Role(role)
	p.WalletBalance = domain.Money(balance)
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

type CredentialRepository struct {
	s *Store
}

const credentialColumns = `id, email, password_hash, name, confirmed, created_at, updated_at`

func (r *CredentialRepository) Create(ctx context.Context, c *domain.Credential) error {
	const query = `
		INSERT INTO auth_users (` + credentialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.s.q(ctx).Exec(ctx, query, c.ID, c.Email, c.PasswordHash, c.Name, c.Confirmed, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	row := r.s.q(ctx).QueryRow(ctx, `SELECT `+credentialColumns+` FROM auth_users WHERE lower(email) = lower($1);`, email)
	return scanCredential(row)
}

func (r *CredentialRepository) FindByID(ctx context.Context, id string) (*domain.Credential, error) {
	row := r.s.q(ctx).QueryRow(ctx, `SELECT `+credentialColumns+` FROM auth_users WHERE id = $1;`, id)
	return scanCredential(row)
}

func (r *CredentialRepository) SetPassword(ctx context.Context, id, hash string, at time.Time) error {
	tag, err := r.s.q(ctx).Exec(ctx, `UPDATE auth_users SET password_hash = $2, updated_at = $3 WHERE id = $1;`, id, hash, at)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

func (r *CredentialRepository) Confirm(ctx context.Context, id string, at time.Time) error {
	tag, err := r.s.q(ctx).Exec(ctx, `UPDATE auth_users SET confirmed = TRUE, updated_at = $2 WHERE id = $1;`, id, at)
	if err != nil {
		return fmt.Errorf("confirm credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

func scanCredential(row pgx.Row) (*domain.Credential, error) {
	var c domain.Credential
	if err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.Name, &c.Confirmed, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}
	return &c, nil
}
