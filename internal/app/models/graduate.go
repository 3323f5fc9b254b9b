package models

import (
	"strconv"
	"strings"
	"time"
)

// GraduateRecord is one registrant's stored submission.
// Destination, Description, SecurityQuestion and SecurityAnswer hold ciphertext.
type GraduateRecord struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Highschool       string    `json:"highschool"`
	GraduationYear   string    `json:"graduation_year"`
	ClassName        *string   `json:"class_name,omitempty"`
	DestinationType  string    `json:"destination_type"`
	Destination      string    `json:"destination"`
	Description      *string   `json:"description,omitempty"`
	SecurityQuestion string    `json:"security_question"`
	SecurityAnswer   string    `json:"security_answer"`
	CreatedAt        time.Time `json:"created_at"`
}

// GraduateSubmission is the plaintext registration input.
// Fields are validated in declaration order, so the year is reported first.
type GraduateSubmission struct {
	GraduationYear   string `json:"graduation_year" validate:"notblank,year4"`
	Name             string `json:"name" validate:"notblank"`
	Highschool       string `json:"highschool" validate:"notblank"`
	ClassName        string `json:"class_name"`
	DestinationType  string `json:"destination_type" validate:"notblank"`
	Destination      string `json:"destination" validate:"notblank"`
	Description      string `json:"description"`
	SecurityQuestion string `json:"security_question" validate:"notblank"`
	SecurityAnswer   string `json:"security_answer" validate:"notblank"`
}

// GraduateSummary is a search hit. SecurityQuestion stays encrypted.
type GraduateSummary struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Highschool       string  `json:"highschool"`
	GraduationYear   string  `json:"graduation_year"`
	ClassName        *string `json:"class_name"`
	SecurityQuestion string  `json:"security_question"`
}

// GraduateDetails is revealed after a correct security answer, with
// destination and description decrypted.
type GraduateDetails struct {
	Name            string  `json:"name"`
	Highschool      string  `json:"highschool"`
	GraduationYear  string  `json:"graduation_year"`
	ClassName       *string `json:"class_name"`
	DestinationType string  `json:"destination_type"`
	Destination     string  `json:"destination"`
	Description     *string `json:"description"`
}

// GraduateFilter holds the optional substring filters of a search
type GraduateFilter struct {
	Name       string
	Highschool string
}

// Normalize trims both filters
func (f GraduateFilter) Normalize() GraduateFilter {
	return GraduateFilter{
		Name:       strings.TrimSpace(f.Name),
		Highschool: strings.TrimSpace(f.Highschool),
	}
}

// IsEmpty reports whether no filter is present after trimming
func (f GraduateFilter) IsEmpty() bool {
	n := f.Normalize()
	return n.Name == "" && n.Highschool == ""
}

// CacheKey identifies equivalent searches: matching is case-insensitive,
// so the key is the trimmed, lowercased pair. Each part is quoted so that
// no input can reproduce another pair's key.
func (f GraduateFilter) CacheKey() string {
	n := f.Normalize()
	return "search:" + strconv.Quote(strings.ToLower(n.Name)) + ":" + strconv.Quote(strings.ToLower(n.Highschool))
}

// OptionalString trims s and returns nil when nothing remains
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
