package domain

import "strings"

// profileChecklist is the number of equally-weighted fields counted by
// ProfileCompletion. Keep in sync with the checks below.
const profileChecklist = 12

// ProfileCompletion returns how much of the health profile is filled in,
// as an integer percentage 0-100. A string field counts when non-empty
// after trimming, a list when it has at least one entry, and the
// emergency contact only when both name and phone are set.
func ProfileCompletion(u *User) int {
	if u == nil {
		return 0
	}
	filled := 0
	for _, s := range []string{
		u.FirstName, u.LastName, u.Birthday, u.Gender,
		u.HeightCm, u.WeightKg, u.BloodType, u.PhotoURL,
	} {
		if strings.TrimSpace(s) != "" {
			filled++
		}
	}
	for _, list := range [][]string{u.Allergies, u.Medications, u.Conditions} {
		if len(list) > 0 {
			filled++
		}
	}
	if u.Emergency != nil &&
		strings.TrimSpace(u.Emergency.Name) != "" &&
		strings.TrimSpace(u.Emergency.Phone) != "" {
		filled++
	}
	return filled * 100 / profileChecklist
}
