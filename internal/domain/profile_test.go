package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullProfile() *User {
	return &User{
		FirstName:   "Ana",
		LastName:    "Silva",
		Birthday:    "1990-04-02",
		Gender:      "female",
		HeightCm:    "168",
		WeightKg:    "61",
		BloodType:   "O+",
		Allergies:   []string{"penicillin"},
		Medications: []string{"levothyroxine"},
		Conditions:  []string{"hypothyroidism"},
		Emergency:   &Emergency{Name: "Jo Silva", Phone: "+15550100"},
		PhotoURL:    "https://cdn.example.com/p/ana.jpg",
	}
}

func TestProfileCompletion_FullProfile_Is100(t *testing.T) {
	assert.Equal(t, 100, ProfileCompletion(fullProfile()))
}

func TestProfileCompletion_EmptyProfile_Is0(t *testing.T) {
	assert.Equal(t, 0, ProfileCompletion(&User{}))
	assert.Equal(t, 0, ProfileCompletion(nil))
}

func TestProfileCompletion_HalfFilled_Is50(t *testing.T) {
	u := &User{
		FirstName: "Ana",
		LastName:  "Silva",
		Birthday:  "1990-04-02",
		Gender:    "female",
		HeightCm:  "168",
		WeightKg:  "61",
	}
	assert.Equal(t, 50, ProfileCompletion(u))
}

func TestProfileCompletion_WhitespaceOnly_NotCounted(t *testing.T) {
	u := &User{FirstName: "   ", BloodType: "\t"}
	assert.Equal(t, 0, ProfileCompletion(u))
}

func TestProfileCompletion_PartialEmergencyContact_NotCounted(t *testing.T) {
	u := &User{Emergency: &Emergency{Name: "Jo Silva"}}
	assert.Equal(t, 0, ProfileCompletion(u))

	u.Emergency.Phone = "+15550100"
	assert.Equal(t, 100/12, ProfileCompletion(u))
}

func TestProfileCompletion_EmptyLists_NotCounted(t *testing.T) {
	u := fullProfile()
	u.Allergies = nil
	u.Medications = []string{}
	assert.Equal(t, 10*100/12, ProfileCompletion(u))
}
