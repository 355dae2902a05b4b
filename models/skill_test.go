package models

import (
	"testing"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/stretchr/testify/assert"
)

func TestSkillValidate(t *testing.T) {
	tests := []struct {
		name    string
		skill   Skill
		wantErr error
	}{
		{"valid", Skill{Name: "Go", IconName: StringPtr("Terminal"), Percentage: StringPtr("90")}, nil},
		{"no percentage", Skill{Name: "Go", IconName: StringPtr("react:SiGo")}, nil},
		{"missing name", Skill{IconName: StringPtr("Terminal")}, errs.ErrMissingRequiredField},
		{"missing icon", Skill{Name: "Go"}, errs.ErrMissingRequiredField},
		{"percentage above range", Skill{Name: "Go", IconName: StringPtr("Terminal"), Percentage: StringPtr("101")}, errs.ErrInvalidField},
		{"percentage negative", Skill{Name: "Go", IconName: StringPtr("Terminal"), Percentage: StringPtr("-1")}, errs.ErrInvalidField},
		{"percentage not numeric", Skill{Name: "Go", IconName: StringPtr("Terminal"), Percentage: StringPtr("lots")}, errs.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.skill.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSkillCategoryOrDefault(t *testing.T) {
	assert.Equal(t, "General", (&Skill{}).CategoryOrDefault())
	assert.Equal(t, "General", (&Skill{Category: StringPtr("  ")}).CategoryOrDefault())
	assert.Equal(t, "Backend", (&Skill{Category: StringPtr("Backend")}).CategoryOrDefault())
}

func TestSkillPercentageValue(t *testing.T) {
	assert.Equal(t, 85, (&Skill{Percentage: StringPtr(" 85 ")}).PercentageValue())
	assert.Equal(t, 0, (&Skill{Percentage: StringPtr("n/a")}).PercentageValue())
	assert.Equal(t, 0, (&Skill{}).PercentageValue())
}
