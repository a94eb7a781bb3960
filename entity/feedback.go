package entity

import (
	"net/http"
	"strings"
	"time"
	"zylumine/lib/validate"
)

var QualityOptions = []string{"Poor", "Fair", "Good", "Great", "Excellent"}

// Feedback is submitted by a verified guest and forwarded to the operator inbox.
// Rating, Quality and Recommend use plain `required`, so 0, "" and false all
// count as missing.
type Feedback struct {
	Name        string    `json:"name" validate:"omitempty"`
	Rating      int       `json:"rating" validate:"required,min=1,max=5"`
	Quality     string    `json:"quality" validate:"required,oneof=Poor Fair Good Great Excellent"`
	Recommend   bool      `json:"recommend" validate:"required"`
	Comments    string    `json:"comments,omitempty" validate:"omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (f *Feedback) Bind(_ *http.Request) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Comments = strings.TrimSpace(f.Comments)
	return validate.Struct(f)
}

func (f *Feedback) Stars() string {
	n := f.Rating
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
