package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaithConfirmationNormalization(t *testing.T) {
	accepted := []string{
		"I am a Muslim. Alhamdulillah!",
		"i am a muslim alhamdulillah",
		"  I AM A MUSLIM,   ALHAMDULILLAH!!  ",
		"I\tam a\nMuslim. Alhamdulillah",
		"i am a muslim... alhamdulillah?!",
	}
	for _, phrase := range accepted {
		assert.True(t, IsFaithConfirmation(phrase), "should accept %q", phrase)
	}

	rejected := []string{
		"",
		"I am Muslim. Alhamdulillah!",
		"I am a Muslim",
		"Alhamdulillah",
		"I am a Muslim. Alhamdulilah!", // misspelled
		"We are Muslims. Alhamdulillah!",
	}
	for _, phrase := range rejected {
		assert.False(t, IsFaithConfirmation(phrase), "should reject %q", phrase)
	}
}

func TestValidatePersonalInfoStep(t *testing.T) {
	valid := SaveStepInput{
		Step:             StepPersonalInfo,
		Email:            "amina@example.com",
		FullName:         "Amina Bello",
		Phone:            "+2348012345678",
		IsMuslim:         true,
		FaithConfirmText: "I am a Muslim. Alhamdulillah!",
	}
	assert.Empty(t, ValidateStep(valid))

	t.Run("missing email", func(t *testing.T) {
		input := valid
		input.Email = ""
		errs := ValidateStep(input)
		assert.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
	})

	t.Run("bad email", func(t *testing.T) {
		input := valid
		input.Email = "not-an-email"
		errs := ValidateStep(input)
		assert.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
	})

	t.Run("unchecked faith box", func(t *testing.T) {
		input := valid
		input.IsMuslim = false
		errs := ValidateStep(input)
		assert.Len(t, errs, 1)
		assert.Equal(t, "is_muslim", errs[0].Field)
	})

	t.Run("wrong confirmation text", func(t *testing.T) {
		input := valid
		input.FaithConfirmText = "yes"
		errs := ValidateStep(input)
		assert.Len(t, errs, 1)
		assert.Equal(t, "faith_confirm_text", errs[0].Field)
	})

	t.Run("missing name and phone", func(t *testing.T) {
		input := valid
		input.FullName = " "
		input.Phone = ""
		errs := ValidateStep(input)
		assert.Len(t, errs, 2)
	})
}

func TestValidateProgramSelectionStep(t *testing.T) {
	t.Run("tech track without skill is blocked", func(t *testing.T) {
		errs := ValidateStep(SaveStepInput{Step: StepProgram, Email: "a@b.com", TechTrack: true})
		assert.Len(t, errs, 1)
		assert.Equal(t, "tech_skill", errs[0].Field)
		assert.Contains(t, errs[0].Message, "select a tech skill")
	})

	t.Run("tech track with catalog skill passes", func(t *testing.T) {
		errs := ValidateStep(SaveStepInput{
			Step: StepProgram, Email: "a@b.com",
			TechTrack: true, TechSkill: "Frontend Development",
		})
		assert.Empty(t, errs)
	})

	t.Run("unknown skill is rejected", func(t *testing.T) {
		errs := ValidateStep(SaveStepInput{
			Step: StepProgram, Email: "a@b.com",
			TechTrack: true, TechSkill: "Blockchain Wizardry",
		})
		assert.Len(t, errs, 1)
	})

	t.Run("no tech track means no skill constraint", func(t *testing.T) {
		errs := ValidateStep(SaveStepInput{Step: StepProgram, Email: "a@b.com"})
		assert.Empty(t, errs)
	})
}

func TestValidateInterestsStepAlwaysPasses(t *testing.T) {
	assert.Empty(t, ValidateStep(SaveStepInput{Step: StepInterests, Email: "a@b.com"}))
	assert.Empty(t, ValidateStep(SaveStepInput{
		Step: StepInterests, Email: "a@b.com",
		Interests: []string{"Tajweed", "definitely not a subject"},
	}))
}

func TestFilterInterestsDropsUnknownSubjects(t *testing.T) {
	got := FilterInterests([]string{"Tajweed", "Basket Weaving", "Fiqh"})
	assert.Equal(t, []string{"Tajweed", "Fiqh"}, got)

	assert.Nil(t, FilterInterests(nil))
	assert.Nil(t, FilterInterests([]string{"nope"}))
}

func TestValidateStepRejectsOutOfRangeStep(t *testing.T) {
	assert.NotEmpty(t, ValidateStep(SaveStepInput{Step: 0}))
	assert.NotEmpty(t, ValidateStep(SaveStepInput{Step: 5}))
}
