package usecase

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applica-cv/internal/adapter/memstore"
	"applica-cv/internal/domain"
	"applica-cv/internal/model"
)

func newProfiles(t *testing.T) *ProfileService {
	t.Helper()
	svc := NewProfileService(memstore.NewProfiles())
	_, err := svc.Create(context.Background(), "u1", "jane@example.com")
	require.NoError(t, err)
	return svc
}

func TestProfileCreateAndGet(t *testing.T) {
	svc := newProfiles(t)
	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", model.Str(p.Email))
	assert.NotNil(t, p.Education)
	assert.NotNil(t, p.Skills)
	assert.False(t, p.CreatedAt.IsZero())

	_, err = svc.Create(context.Background(), "u1", "again@example.com")
	var pe *domain.PersistenceError
	assert.True(t, errors.As(err, &pe))
}

func TestProfileGetMissing(t *testing.T) {
	svc := newProfiles(t)
	_, err := svc.Get(context.Background(), "ghost")
	assert.True(t, errors.Is(err, domain.ErrProfileNotFound))

	_, err = svc.ReplaceSkills(context.Background(), "ghost", []string{"Go"})
	assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
}

func TestUpdateBasicSanitizes(t *testing.T) {
	svc := newProfiles(t)
	ctx := context.Background()

	p, err := svc.UpdateBasic(ctx, "u1", BasicInfo{
		Name:  model.StrPtr("  <b>Jane</b> Doe "),
		Bio:   model.StrPtr("Tom & Jerry <i>fan</i>"),
		Phone: model.StrPtr("0300"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", model.Str(p.Name))
	assert.Equal(t, "Tom & Jerry fan", model.Str(p.Bio))
	assert.Equal(t, "0300", model.Str(p.Phone))
	assert.Equal(t, "jane@example.com", model.Str(p.Email))

	p, err = svc.UpdateBasic(ctx, "u1", BasicInfo{Phone: model.StrPtr("")})
	require.NoError(t, err)
	assert.Nil(t, p.Phone)
	assert.Equal(t, "Jane Doe", model.Str(p.Name))
}

func TestReplaceEducation(t *testing.T) {
	svc := newProfiles(t)
	ctx := context.Background()

	p, err := svc.ReplaceEducation(ctx, "u1", []model.Education{
		{Level: model.LevelUniversity, InstitutionName: " LUMS ", StartYear: "2022", DegreeType: "bachelors", CurrentlyStudying: true},
		{Level: model.LevelSchool, InstitutionName: "Beaconhouse", SchoolType: "olevels", SchoolMarks: "90%"},
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 2)
	assert.Equal(t, "LUMS", p.Education[0].InstitutionName)
	assert.Equal(t, model.Present, p.Education[0].EndYear)

	p, err = svc.ReplaceEducation(ctx, "u1", []model.Education{})
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestReplaceEducationRejectsInvalid(t *testing.T) {
	svc := newProfiles(t)
	tests := map[string]model.Education{
		"unknown level":      {Level: "bootcamp", InstitutionName: "X"},
		"bad degree type":    {Level: model.LevelUniversity, DegreeType: "associate"},
		"bad school type":    {Level: model.LevelSchool, SchoolType: "igcse"},
		"studying with year": {Level: model.LevelUniversity, CurrentlyStudying: true, EndYear: "2020"},
	}
	for name, e := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ReplaceEducation(context.Background(), "u1", []model.Education{e})
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.NotEmpty(t, ve.Problems)
		})
	}

	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestReplaceExperience(t *testing.T) {
	svc := newProfiles(t)
	ctx := context.Background()

	_, err := svc.ReplaceExperience(ctx, "u1", []model.Experience{{Company: "Acme", StartDate: "2020-01"}})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))

	p, err := svc.ReplaceExperience(ctx, "u1", []model.Experience{{
		Company: "Acme", Position: "Engineer", StartDate: "2020-01", Current: true,
		Description:      "<p>Shipped things</p>",
		Responsibilities: []string{"on-call"},
	}})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Shipped things", p.Experience[0].Description)
	assert.Equal(t, []string{"on-call"}, p.Experience[0].Responsibilities)
}

func TestReplaceCollections(t *testing.T) {
	svc := newProfiles(t)
	ctx := context.Background()

	p, err := svc.ReplaceSkills(ctx, "u1", []string{"Go", " SQL "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills)

	p, err = svc.ReplaceSkills(ctx, "u1", []string{"Rust"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, p.Skills)

	p, err = svc.ReplaceHobbies(ctx, "u1", []string{"Chess"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess"}, p.Hobbies)
	assert.Equal(t, []string{"Rust"}, p.Skills)

	p, err = svc.UpdateCVLink(ctx, "u1", "https://cdn.example.com/u1/1_CV.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/u1/1_CV.pdf", model.Str(p.CVLink))
}
