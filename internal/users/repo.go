package users

import (
	"context"
	"errors"

	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.
		QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash)
			VALUES ($1, $2, $3)
			RETURNING user_id;`,
			user.Username, user.Email, user.PasswordHash,
		).
		Scan(&user.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return &user, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getUser(ctx, `WHERE email = $1`, email)
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.getUser(ctx, `WHERE user_id = $1`, id)
}

func (r *Repo) UpdateProfile(ctx context.Context, userID int, profile Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", userID))

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE users SET phone = $1, country = $2, city = $3, address = $4, postal_code = $5,
							 height_cm = $6, weight_kg = $7, age = $8, goals = $9, occupation = $10
			WHERE user_id = $11;`,
		profile.Phone, profile.Country, profile.City, profile.Address, profile.PostalCode,
		profile.HeightCm, profile.WeightKg, profile.Age, profile.Goals, profile.Occupation,
		userID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repo) getUser(ctx context.Context, where string, arg interface{}) (*User, error) {
	var u User
	err := r.db.
		QueryRow(ctx, `
			SELECT user_id, username, email, password_hash,
				   COALESCE(phone, ''), COALESCE(country, ''), COALESCE(city, ''),
				   COALESCE(address, ''), COALESCE(postal_code, ''),
				   COALESCE(height_cm, 0), COALESCE(weight_kg, 0), COALESCE(age, 0),
				   COALESCE(goals, ''), COALESCE(occupation, '')
			FROM users `+where+`;`, arg).
		Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.Phone, &u.Country, &u.City,
			&u.Address, &u.PostalCode,
			&u.HeightCm, &u.WeightKg, &u.Age,
			&u.Goals, &u.Occupation,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
