package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"

	"applica-cv/internal/domain"
	"applica-cv/internal/model"
)

// ProfilesRepo stores one row per user in the profiles table. Education and
// experience live in jsonb columns, skills and hobbies in text[].
type ProfilesRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewProfilesRepo(pool *pgxpool.Pool) *ProfilesRepo {
	return &ProfilesRepo{pool: pool, now: time.Now}
}

// queryProfile runs a SQL that returns a single to_jsonb(profile) value and unmarshals it.
func queryProfile(ctx context.Context, pool *pgxpool.Pool, sql string, args ...interface{}) (*model.Profile, error) {
	var raw []byte
	err := pool.QueryRow(ctx, sql, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(err, "decode profile row")
	}
	if p.Education == nil {
		p.Education = []model.Education{}
	}
	if p.Experience == nil {
		p.Experience = []model.Experience{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Hobbies == nil {
		p.Hobbies = []string{}
	}
	return &p, nil
}

func (r *ProfilesRepo) Get(ctx context.Context, id string) (*model.Profile, error) {
	p, err := queryProfile(ctx, r.pool, `SELECT to_jsonb(p) FROM profiles p WHERE p.id::text=$1 LIMIT 1`, id)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, errors.Wrapf(err, "get profile %s", id)
	}
	return p, err
}

func (r *ProfilesRepo) Create(ctx context.Context, p *model.Profile) error {
	eduB, err := json.Marshal(p.Education)
	if err != nil {
		return err
	}
	expB, err := json.Marshal(p.Experience)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO profiles (id, name, email, phone, address, bio, education, experience, skills, hobbies, preferences, cv_link, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8::jsonb,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.Name, p.Email, p.Phone, p.Address, p.Bio, string(eduB), string(expB), nonNil(p.Skills), nonNil(p.Hobbies),
		p.Preferences, p.CVLink, p.CreatedAt, p.UpdatedAt)
	return errors.Wrapf(err, "insert profile %s", p.ID)
}

// Update overwrites the patched columns and bumps updated_at.
func (r *ProfilesRepo) Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error) {
	var (
		sets []string
		args []interface{}
	)
	add := func(col string, v interface{}, cast string) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d%s", col, len(args), cast))
	}
	nullable := func(col string, v *string) {
		if v != nil {
			add(col, model.Nullable(v), "")
		}
	}

	nullable("name", patch.Name)
	nullable("email", patch.Email)
	nullable("phone", patch.Phone)
	nullable("address", patch.Address)
	nullable("bio", patch.Bio)
	nullable("preferences", patch.Preferences)
	nullable("cv_link", patch.CVLink)
	if patch.Education != nil {
		b, err := json.Marshal(*patch.Education)
		if err != nil {
			return nil, err
		}
		add("education", string(b), "::jsonb")
	}
	if patch.Experience != nil {
		b, err := json.Marshal(*patch.Experience)
		if err != nil {
			return nil, err
		}
		add("experience", string(b), "::jsonb")
	}
	if patch.Skills != nil {
		add("skills", nonNil(*patch.Skills), "")
	}
	if patch.Hobbies != nil {
		add("hobbies", nonNil(*patch.Hobbies), "")
	}
	add("updated_at", r.now().UTC(), "")

	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE profiles SET %s WHERE id::text = $%d RETURNING to_jsonb(profiles)`, strings.Join(sets, ", "), len(args))

	p, err := queryProfile(ctx, r.pool, sql, args...)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, errors.Wrapf(err, "update profile %s", id)
	}
	return p, err
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
