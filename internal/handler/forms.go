package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sakif/study-organizer/internal/apperror"
)

// TYPED PARSING AT THE BOUNDARY:
// Raw form values are first copied into small string structs and checked
// with validator tags (presence, format). Only then are they converted to
// typed values. Any failure is an apperror.ValidationFailed naming the form
// field, which the handlers render as 400.

const (
	dateLayout            = "2006-01-02"
	dateTimeLayout        = "2006-01-02T15:04"
	dateTimeSecondsLayout = "2006-01-02T15:04:05"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the form field name, not the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// isodatetime accepts the datetime-local input format, with or without
	// seconds.
	v.RegisterValidation("isodatetime", func(fl validator.FieldLevel) bool {
		_, err := parseDateTime(fl.Field().String())
		return err == nil
	})
	return v
}

// checkForm validates form and converts the first failure into a
// ValidationFailed error.
func checkForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.ValidationFailed("", "invalid form")
	}
	fe := verrs[0]
	return apperror.ValidationFailed(fe.Field(), fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", fe.Field())
	case "isodatetime":
		return fmt.Sprintf("%s must be a date and time (YYYY-MM-DDTHH:MM)", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "numeric", "number":
		return fmt.Sprintf("%s must be a number", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// parseForm reads the body; a malformed body is a validation failure.
func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return apperror.ValidationFailed("", "malformed form body")
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateTimeSecondsLayout, s)
}

// idParam reads a numeric chi URL parameter. The route pattern already
// restricts it to digits, so only overflow can fail here.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// monthQuery is the optional ?y=&m= pair of the month views.
type monthQuery struct {
	Year  string `form:"y" validate:"omitempty,number"`
	Month string `form:"m" validate:"omitempty,number"`
}

// parseMonthQuery returns zeros for absent values; the services fill in the
// current month and check the ranges.
func parseMonthQuery(r *http.Request) (year, month int, err error) {
	q := monthQuery{
		Year:  strings.TrimSpace(r.URL.Query().Get("y")),
		Month: strings.TrimSpace(r.URL.Query().Get("m")),
	}
	if err := checkForm(q); err != nil {
		return 0, 0, err
	}
	if q.Year != "" {
		if year, err = strconv.Atoi(q.Year); err != nil {
			return 0, 0, apperror.ValidationFailed("y", "y must be a number")
		}
	}
	if q.Month != "" {
		if month, err = strconv.Atoi(q.Month); err != nil {
			return 0, 0, apperror.ValidationFailed("m", "m must be a number")
		}
	}
	return year, month, nil
}

type eventForm struct {
	Title     string `form:"title" validate:"required,max=120"`
	Start     string `form:"start_dt" validate:"required,isodatetime"`
	End       string `form:"end_dt" validate:"required,isodatetime"`
	Reminder1 string `form:"reminder1" validate:"omitempty,oneof=2h 1d"`
	Reminder2 string `form:"reminder2" validate:"omitempty,oneof=2h 1d"`
}

type checkinForm struct {
	Day     string `form:"day" validate:"required,datetime=2006-01-02"`
	Checked string `form:"checked"`
}

type notebookForm struct {
	Date string `form:"the_date" validate:"required,datetime=2006-01-02"`
}

type gradeForm struct {
	SubjectID string `form:"subject_id" validate:"required,number"`
	Date      string `form:"the_date" validate:"required,datetime=2006-01-02"`
	Score     string `form:"score" validate:"required,numeric"`
	Rank      string `form:"rank" validate:"omitempty,number"`
}
