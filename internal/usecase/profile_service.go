package usecase

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"applica-cv/internal/domain"
	"applica-cv/internal/model"
)

// BasicInfo is the scalar part of a profile edited on the profile page.
type BasicInfo struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Bio         *string `json:"bio"`
	Preferences *string `json:"preferences"`
}

// ProfileService owns profile reads and whole-collection writes. There is
// no concurrency control: the last write wins.
type ProfileService struct {
	store  ProfileStore
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store, policy: bluemonday.StrictPolicy(), now: time.Now}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			log.Error().Err(err).Str("user", userID).Msg("get profile error")
		}
		return nil, err
	}
	return p, nil
}

// Create stores the empty profile for a new account.
func (s *ProfileService) Create(ctx context.Context, userID, email string) (*model.Profile, error) {
	p := model.NewProfile(userID, s.clean(email), s.now().UTC())
	if err := s.store.Create(ctx, p); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("create profile error")
		return nil, &domain.PersistenceError{Op: "create profile", Err: err}
	}
	return p, nil
}

func (s *ProfileService) UpdateBasic(ctx context.Context, userID string, info BasicInfo) (*model.Profile, error) {
	return s.update(ctx, userID, "update profile", model.ProfilePatch{
		Name:        s.cleanPtr(info.Name),
		Email:       s.cleanPtr(info.Email),
		Phone:       s.cleanPtr(info.Phone),
		Address:     s.cleanPtr(info.Address),
		Bio:         s.cleanPtr(info.Bio),
		Preferences: s.cleanPtr(info.Preferences),
	})
}

// ReplaceEducation overwrites the whole education array.
func (s *ProfileService) ReplaceEducation(ctx context.Context, userID string, entries []model.Education) (*model.Profile, error) {
	if err := model.ValidateEducation(entries); err != nil {
		return nil, err
	}
	cleaned := make([]model.Education, len(entries))
	for i, e := range entries {
		e.InstitutionName = s.clean(e.InstitutionName)
		e.StartYear = s.clean(e.StartYear)
		e.EndYear = s.clean(e.EndYear)
		e.SchoolMarks = s.clean(e.SchoolMarks)
		e.CollegeMarks = s.clean(e.CollegeMarks)
		e.Degree = s.clean(e.Degree)
		e.CGPA = s.clean(e.CGPA)
		if e.Level == model.LevelUniversity && e.CurrentlyStudying {
			e.EndYear = model.Present
		}
		cleaned[i] = e
	}
	return s.update(ctx, userID, "update education", model.ProfilePatch{Education: &cleaned})
}

// ReplaceExperience overwrites the whole experience array.
func (s *ProfileService) ReplaceExperience(ctx context.Context, userID string, entries []model.Experience) (*model.Profile, error) {
	if err := model.ValidateExperience(entries); err != nil {
		return nil, err
	}
	cleaned := make([]model.Experience, len(entries))
	for i, e := range entries {
		e.Company = s.clean(e.Company)
		e.Position = s.clean(e.Position)
		e.StartDate = s.clean(e.StartDate)
		e.EndDate = s.cleanPtr(e.EndDate)
		e.Description = s.clean(e.Description)
		e.Responsibilities = s.cleanAll(e.Responsibilities)
		cleaned[i] = e
	}
	return s.update(ctx, userID, "update experience", model.ProfilePatch{Experience: &cleaned})
}

func (s *ProfileService) ReplaceSkills(ctx context.Context, userID string, skills []string) (*model.Profile, error) {
	cleaned := s.cleanAll(skills)
	return s.update(ctx, userID, "update skills", model.ProfilePatch{Skills: &cleaned})
}

func (s *ProfileService) ReplaceHobbies(ctx context.Context, userID string, hobbies []string) (*model.Profile, error) {
	cleaned := s.cleanAll(hobbies)
	return s.update(ctx, userID, "update hobbies", model.ProfilePatch{Hobbies: &cleaned})
}

func (s *ProfileService) UpdateCVLink(ctx context.Context, userID, link string) (*model.Profile, error) {
	return s.update(ctx, userID, "update CV link", model.ProfilePatch{CVLink: &link})
}

func (s *ProfileService) update(ctx context.Context, userID, op string, patch model.ProfilePatch) (*model.Profile, error) {
	p, err := s.store.Update(ctx, userID, patch)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg(op + " error")
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: op, Err: err}
	}
	return p, nil
}

// clean strips markup from user text; the entity escaping bluemonday adds is
// undone because the HTML encoder escapes on output.
func (s *ProfileService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *ProfileService) cleanPtr(v *string) *string {
	if v == nil {
		return nil
	}
	c := s.clean(*v)
	return &c
}

func (s *ProfileService) cleanAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, s.clean(v))
	}
	return out
}
