package model

import "time"

// ProfilePatch lists the columns a write replaces. Nil fields are left
// untouched; a pointer to "" clears a nullable column. Collections are
// always replaced wholesale.
type ProfilePatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	Bio         *string
	Preferences *string
	CVLink      *string

	Education  *[]Education
	Experience *[]Experience
	Skills     *[]string
	Hobbies    *[]string
}

// Empty reports whether the patch changes nothing.
func (pp ProfilePatch) Empty() bool {
	return pp.Name == nil && pp.Email == nil && pp.Phone == nil && pp.Address == nil &&
		pp.Bio == nil && pp.Preferences == nil && pp.CVLink == nil &&
		pp.Education == nil && pp.Experience == nil && pp.Skills == nil && pp.Hobbies == nil
}

// Apply writes the patch onto p and bumps UpdatedAt.
func (p *Profile) Apply(pp ProfilePatch, now time.Time) {
	setNullable(&p.Name, pp.Name)
	setNullable(&p.Email, pp.Email)
	setNullable(&p.Phone, pp.Phone)
	setNullable(&p.Address, pp.Address)
	setNullable(&p.Bio, pp.Bio)
	setNullable(&p.Preferences, pp.Preferences)
	setNullable(&p.CVLink, pp.CVLink)
	if pp.Education != nil {
		p.Education = append([]Education{}, (*pp.Education)...)
	}
	if pp.Experience != nil {
		p.Experience = append([]Experience{}, (*pp.Experience)...)
	}
	if pp.Skills != nil {
		p.Skills = append([]string{}, (*pp.Skills)...)
	}
	if pp.Hobbies != nil {
		p.Hobbies = append([]string{}, (*pp.Hobbies)...)
	}
	p.UpdatedAt = now
}

// Nullable converts a patch value into the column value: "" becomes NULL.
func Nullable(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return clonePtr(v)
}

func setNullable(dst **string, v *string) {
	if v == nil {
		return
	}
	*dst = Nullable(v)
}
