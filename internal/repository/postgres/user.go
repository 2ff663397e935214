package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

const userColumns = `id, username, password, role, full_name, email, phone, address, bank_name,
	bank_account_no, bank_ifsc, aadhaar_number, designation, is_verified, created_at`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB, m *metrics.Metrics) repository.UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db, m)}
}

// Create relies on uq_users_username; there is no existence pre-check.
func (r *userRepository) Create(ctx context.Context, user *model.User) (err error) {
	defer r.observe("users.create", time.Now(), &err)

	query := `
		INSERT INTO users (
			username, password, role, full_name, email, phone, address, bank_name,
			bank_account_no, bank_ifsc, aadhaar_number, designation, is_verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Email,
		user.Phone,
		user.Address,
		user.BankName,
		user.BankAccountNo,
		user.BankIFSC,
		user.AadhaarNumber,
		user.Designation,
		user.IsVerified,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (_ *model.User, err error) {
	defer r.observe("users.get", time.Now(), &err)

	var user model.User
	if err = r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err, "user")
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (_ *model.User, err error) {
	defer r.observe("users.get_by_username", time.Now(), &err)

	var user model.User
	if err = r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username); err != nil {
		return nil, mapGetError(err, "user")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) (_ []*model.UserSummary, err error) {
	defer r.observe("users.list", time.Now(), &err)

	users := []*model.UserSummary{}
	query := `
		SELECT id, username, role, full_name, email, phone, created_at
		FROM users ORDER BY created_at DESC, id DESC
	`
	if err = r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update touches only the profile subset; the password changes only when a new hash is given.
func (r *userRepository) Update(ctx context.Context, update *model.UserUpdate) (err error) {
	defer r.observe("users.update", time.Now(), &err)

	query := `
		UPDATE users
		SET full_name = $1, email = $2, phone = $3, password = COALESCE($4, password)
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		update.FullName,
		update.Email,
		update.Phone,
		update.PasswordHash,
		update.ID,
	)
	if err != nil {
		return mapWriteError(err, "update user")
	}
	return requireAffected(res, "user")
}

func (r *userRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("users.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "user")
	}
	return requireAffected(res, "user")
}

func (r *userRepository) ListPasswordHashes(ctx context.Context) (_ map[int64]string, err error) {
	defer r.observe("users.list_passwords", time.Now(), &err)

	rows, err := r.db.QueryxContext(ctx, `SELECT id, password FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to list passwords: %w", err)
	}
	defer rows.Close()

	hashes := make(map[int64]string)
	for rows.Next() {
		var (
			id   int64
			hash string
		)
		if err = rows.Scan(&id, &hash); err != nil {
			return nil, fmt.Errorf("failed to scan password: %w", err)
		}
		hashes[id] = hash
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate passwords: %w", err)
	}
	return hashes, nil
}

func (r *userRepository) SetPasswordHash(ctx context.Context, id int64, hash string) (err error) {
	defer r.observe("users.set_password", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	return requireAffected(res, "user")
}
