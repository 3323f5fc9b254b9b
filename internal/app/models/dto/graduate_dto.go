package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/gradtracker/internal/app/models"
)

// FlexibleString accepts a JSON string or number; forms differ in how they
// send years and ids.
type FlexibleString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexibleString(n.String())
	return nil
}

// String returns the raw value
func (f FlexibleString) String() string {
	return string(f)
}

// Int64 parses the trimmed value as a base-10 integer
func (f FlexibleString) Int64() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(f)), 10, 64)
}

// RegisterGraduateRequest represents a registration submission.
// The short names (school, year, question, answer) are accepted as aliases.
type RegisterGraduateRequest struct {
	Name             string         `json:"name" example:"Li Hua"`
	Highschool       string         `json:"highschool" example:"No.1 High School"`
	School           string         `json:"school,omitempty" swaggerignore:"true"`
	GraduationYear   FlexibleString `json:"graduation_year" swaggertype:"string" example:"2023"`
	Year             FlexibleString `json:"year,omitempty" swaggerignore:"true"`
	ClassName        string         `json:"class_name" example:"Class 3"`
	DestinationType  string         `json:"destination_type" example:"university"`
	Destination      string         `json:"destination" example:"Peking University"`
	Description      string         `json:"description" example:"Computer Science"`
	SecurityQuestion string         `json:"security_question" example:"What is my pet's name?"`
	Question         string         `json:"question,omitempty" swaggerignore:"true"`
	SecurityAnswer   string         `json:"security_answer" example:"Fluffy"`
	Answer           string         `json:"answer,omitempty" swaggerignore:"true"`
}

// Submission resolves aliases into the canonical registration input
func (r *RegisterGraduateRequest) Submission() models.GraduateSubmission {
	return models.GraduateSubmission{
		GraduationYear:   firstNonBlank(r.GraduationYear.String(), r.Year.String()),
		Name:             r.Name,
		Highschool:       firstNonBlank(r.Highschool, r.School),
		ClassName:        r.ClassName,
		DestinationType:  r.DestinationType,
		Destination:      r.Destination,
		Description:      r.Description,
		SecurityQuestion: firstNonBlank(r.SecurityQuestion, r.Question),
		SecurityAnswer:   firstNonBlank(r.SecurityAnswer, r.Answer),
	}
}

// RegisterGraduateResponse is returned on a successful registration
type RegisterGraduateResponse struct {
	Success bool   `json:"success" example:"true"`
	ID      int64  `json:"id" example:"42"`
	Message string `json:"message" example:"Graduate registered successfully"`
}

// SearchGraduatesRequest carries the optional substring filters.
// Bound from a JSON body (POST) or the query string (GET).
type SearchGraduatesRequest struct {
	Name       string `json:"name" form:"name" example:"li"`
	Highschool string `json:"highschool" form:"highschool" example:"no.1"`
	School     string `json:"school,omitempty" form:"school" swaggerignore:"true"`
}

// Filter converts the request into a repository filter
func (r *SearchGraduatesRequest) Filter() models.GraduateFilter {
	return models.GraduateFilter{
		Name:       r.Name,
		Highschool: firstNonBlank(r.Highschool, r.School),
	}.Normalize()
}

// SearchGraduatesResponse lists matching records, newest class first
type SearchGraduatesResponse struct {
	Success bool                     `json:"success" example:"true"`
	Count   int                      `json:"count" example:"1"`
	Data    []models.GraduateSummary `json:"data"`
}

// VerifyAnswerRequest asks whether answer matches the stored security answer
type VerifyAnswerRequest struct {
	ID     FlexibleString `json:"id" swaggertype:"integer" example:"42"`
	Answer string         `json:"answer" example:"fluffy"`
}

// VerifyAnswerResponse reports the outcome; Data is set only on a match
type VerifyAnswerResponse struct {
	Success   bool                    `json:"success" example:"true"`
	IsCorrect bool                    `json:"isCorrect" example:"true"`
	Data      *models.GraduateDetails `json:"data,omitempty"`
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
