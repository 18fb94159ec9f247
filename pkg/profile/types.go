package profile

import "time"

// Education is one education entry in a career profile.
type Education struct {
	ID          string    `json:"id"`
	Owner       string    `json:"-"`
	Institution string    `json:"institution"`
	Degree      string    `json:"degree"`
	Field       string    `json:"field,omitempty"`
	StartYear   int       `json:"start_year,omitempty"`
	EndYear     int       `json:"end_year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Experience is one work experience entry.
type Experience struct {
	ID          string    `json:"id"`
	Owner       string    `json:"-"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Skill is one skill entry. Level is free-form ("beginner",
// "intermediate", "expert") and optional.
type Skill struct {
	ID        string    `json:"id"`
	Owner     string    `json:"-"`
	Name      string    `json:"name"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is one project entry, optionally linked to a repository.
type Project struct {
	ID          string    `json:"id"`
	Owner       string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is the profile owner record.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Headline  string    `json:"headline,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
