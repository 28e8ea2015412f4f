package result

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
)

type Result struct {
	ID        int       `db:"id"`
	StudentID int       `db:"student_id"`
	Subject   string    `db:"subject"`
	Marks     int       `db:"marks"`
	CreatedAt time.Time `db:"created_at"` // UTC
}

func (r Result) Band() Band {
	return Grade(r.Marks)
}

// NewResult holds the result entry form as submitted.
type NewResult struct {
	StudentID string `form:"student_id" validate:"required,integer"`
	Subject   string `form:"subject" validate:"required,notblank,max=128"`
	Marks     string `form:"marks" validate:"required,integer"`
}

func (nr *NewResult) Validate(_ context.Context, validate *validator.Validate) error {
	nr.StudentID = strings.TrimSpace(nr.StudentID)
	nr.Subject = core.CleanString(nr.Subject)
	nr.Marks = strings.TrimSpace(nr.Marks)

	if err := validate.Struct(nr); err != nil {
		return err
	}

	_, _, err := nr.parse()
	return err
}

// parse converts the numeric fields of the form.
func (nr NewResult) parse() (studentID, marks int, err error) {
	if studentID, err = strconv.Atoi(strings.TrimSpace(nr.StudentID)); err != nil {
		return 0, 0, core.NewValidationError(errors.Wrap(err, "parsing student_id"),
			core.FieldError{Field: "student_id", Error: "a whole number is required"})
	}
	if marks, err = strconv.Atoi(strings.TrimSpace(nr.Marks)); err != nil {
		return 0, 0, core.NewValidationError(errors.Wrap(err, "parsing marks"),
			core.FieldError{Field: "marks", Error: "a whole number is required"})
	}
	return studentID, marks, nil
}
