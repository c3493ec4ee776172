package domain

import "time"

// User is a health-app account plus its personal health profile.
// The profile fields feed the completion score shown in the app.
type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	Phone        *string    `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	FirstName    string     `json:"first_name" dynamodbav:"first_name"`
	LastName     string     `json:"last_name" dynamodbav:"last_name"`
	Birthday     string     `json:"birthday" dynamodbav:"birthday"` // YYYY-MM-DD
	Gender       string     `json:"gender" dynamodbav:"gender"`
	HeightCm     string     `json:"height_cm" dynamodbav:"height_cm"`
	WeightKg     string     `json:"weight_kg" dynamodbav:"weight_kg"`
	BloodType    string     `json:"blood_type" dynamodbav:"blood_type"`
	Allergies    []string   `json:"allergies" dynamodbav:"allergies"`
	Medications  []string   `json:"medications" dynamodbav:"medications"`
	Conditions   []string   `json:"conditions" dynamodbav:"conditions"`
	Emergency    *Emergency `json:"emergency_contact,omitempty" dynamodbav:"emergency_contact"`
	PhotoURL     string     `json:"photo_url" dynamodbav:"photo_url"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// Emergency is the profile's emergency contact.
type Emergency struct {
	Name  string `json:"name" dynamodbav:"name"`
	Phone string `json:"phone" dynamodbav:"phone"`
}

type CreateUserRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8,max=72"`
	Phone       *string  `json:"phone"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Birthday    string   `json:"birthday"` // expected format: YYYY-MM-DD
	Gender      string   `json:"gender"`
	HeightCm    string   `json:"height_cm"`
	WeightKg    string   `json:"weight_kg"`
	BloodType   string   `json:"blood_type"`
	Allergies   []string `json:"allergies"`
	Medications []string `json:"medications"`
	Conditions  []string `json:"conditions"`
}
