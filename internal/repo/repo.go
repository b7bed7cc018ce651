package repo

import (
	"context"
	"database/sql"
	"time"
)

type Profile struct {
	ID           int        `json:"id"`
	Login        string     `json:"login"`
	Email        string     `json:"email"`
	Description  string     `json:"description"`
	AvatarURL    string     `json:"avatar_url"`
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
}

type PremiumTicket struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Status string `json:"status"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, login, description string) (Profile, error)
	UpdateAvatar(ctx context.Context, id int, avatarURL string) error
	SetPremiumUntil(ctx context.Context, id int, until time.Time) error
	ClearPremium(ctx context.Context, id int) error
	CreatePremiumTicket(ctx context.Context, userID int) (int, error)
	GetPremiumTicket(ctx context.Context, id int) (PremiumTicket, error)
	UpdatePremiumTicketStatus(ctx context.Context, id int, status string) error
	SaveSpecification(ctx context.Context, requestID string, userID int, payload []byte) error
	GetSpecification(ctx context.Context, requestID string) ([]byte, error)
	CountSubmissionsSince(ctx context.Context, since time.Time) (int, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	query := `SELECT id, login, email, COALESCE(description, ''), COALESCE(avatar_url, ''), premium_until
	          FROM users WHERE id=$1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Login, &p.Email, &p.Description, &p.AvatarURL, &p.PremiumUntil)
	if err != nil {
		return Profile{}, err
	}
	p.IsPremium = p.PremiumUntil != nil && p.PremiumUntil.After(time.Now())
	return p, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id int, login, description string) (Profile, error) {
	query := "UPDATE users SET login=$2, description=$3 WHERE id=$1"
	if _, err := r.db.ExecContext(ctx, query, id, login, description); err != nil {
		return Profile{}, err
	}
	return r.GetProfileByID(ctx, id)
}

func (r *PostgresRepository) UpdateAvatar(ctx context.Context, id int, avatarURL string) error {
	query := "UPDATE users SET avatar_url=$2 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id, avatarURL)
	return err
}

func (r *PostgresRepository) SetPremiumUntil(ctx context.Context, id int, until time.Time) error {
	query := "UPDATE users SET premium_until=$2 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id, until)
	return err
}

func (r *PostgresRepository) ClearPremium(ctx context.Context, id int) error {
	query := "UPDATE users SET premium_until=NULL WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepository) CreatePremiumTicket(ctx context.Context, userID int) (int, error) {
	var id int
	query := "INSERT INTO premium_tickets (user_id, status) VALUES ($1, 'pending') RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetPremiumTicket(ctx context.Context, id int) (PremiumTicket, error) {
	var t PremiumTicket
	query := "SELECT id, user_id, status FROM premium_tickets WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.UserID, &t.Status)
	return t, err
}

func (r *PostgresRepository) UpdatePremiumTicketStatus(ctx context.Context, id int, status string) error {
	query := "UPDATE premium_tickets SET status=$2 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

// SaveSpecification stores one converged design under its request id. The
// request_id column carries a unique constraint, so concurrent runs can
// never silently overwrite each other.
func (r *PostgresRepository) SaveSpecification(ctx context.Context, requestID string, userID int, payload []byte) error {
	query := `INSERT INTO wall_specifications (request_id, user_id, payload, created_at)
	          VALUES ($1, $2, $3, NOW())`
	_, err := r.db.ExecContext(ctx, query, requestID, userID, payload)
	return err
}

func (r *PostgresRepository) GetSpecification(ctx context.Context, requestID string) ([]byte, error) {
	var payload []byte
	query := "SELECT payload FROM wall_specifications WHERE request_id=$1"
	err := r.db.QueryRowContext(ctx, query, requestID).Scan(&payload)
	return payload, err
}

func (r *PostgresRepository) CountSubmissionsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM wall_specifications WHERE created_at >= $1"
	err := r.db.QueryRowContext(ctx, query, since).Scan(&n)
	return n, err
}
