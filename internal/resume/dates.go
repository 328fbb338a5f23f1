// Package resume normalizes parsed resume records and renders them into prompts.
package resume

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fadilmartias/ai-resume/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	daysInYear = 365.25

	// unresolvedDate is written to startDateStr/endDateStr when an entry cannot be dated.
	unresolvedDate = "0"
)

// DateError reports a date field that could not be resolved.
type DateError struct {
	Field string
	Index int
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Field, e.Index, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

type Normalizer struct {
	Logger logrus.FieldLogger
	Now    func() time.Time
}

func NewNormalizer(logger logrus.FieldLogger) *Normalizer {
	return &Normalizer{Logger: logger, Now: time.Now}
}

// Normalize fills the derived date fields of a record. Work durations never fail;
// the returned error only carries graduation dates that could not be formatted.
func (n *Normalizer) Normalize(cv *model.ResumeRecord) error {
	n.ComputeWorkDurations(cv.WorkHistory)
	return n.FormatGraduationDates(cv.EducationHistory)
}

// ComputeWorkDurations sets durationInYears, startDateStr and endDateStr on every
// entry. Each entry is handled on its own: one that cannot be dated gets 0, "0", "0".
func (n *Normalizer) ComputeWorkDurations(history []model.WorkEntry) {
	now := calendarDate(n.Now())
	for i := range history {
		job := &history[i]

		start, end, err := n.workPeriod(job, now)
		if err != nil {
			n.Logger.WithError(&DateError{Field: "workHistory", Index: i, Err: err}).
				Warn("could not compute work duration")
			zero := 0.0
			job.DurationInYears = &zero
			job.StartDateStr = unresolvedDate
			job.EndDateStr = unresolvedDate
			continue
		}

		days := math.Floor(end.Sub(start).Hours() / 24)
		years := math.Round(days/daysInYear*100) / 100
		job.DurationInYears = &years
		job.StartDateStr = start.Format(model.DateLayout)
		job.EndDateStr = end.Format(model.DateLayout)
	}
}

func (n *Normalizer) workPeriod(job *model.WorkEntry, now time.Time) (time.Time, time.Time, error) {
	start, err := job.StartAt.Resolve()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startAt: %w", err)
	}

	if job.EndAt.Ongoing() {
		return start, now, nil
	}
	if job.EndAt.Kind == model.DateUnsupported {
		n.Logger.WithField("endAt", job.EndAt.String()).
			Warn("endAt field must be a string or a date, using current date")
		return start, now, nil
	}
	end, err := job.EndAt.Resolve()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endAt: %w", err)
	}
	return start, end, nil
}

// calendarDate keeps the wall-clock date of t as a UTC midnight, matching how
// YYYY-MM-DD fields resolve.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatGraduationDates sets graduatedAtDate for every entry with a graduatedAt value.
// Entries whose value is not a YYYY-MM-DD string or a date are reported in the
// returned error; the rest are still formatted.
func (n *Normalizer) FormatGraduationDates(history []model.EducationEntry) error {
	var errs []error
	for i := range history {
		education := &history[i]
		if education.GraduatedAt.IsEmpty() {
			continue
		}

		graduated, err := education.GraduatedAt.Resolve()
		if err != nil {
			n.Logger.WithField("graduatedAt", education.GraduatedAt.String()).
				Warn("issue in data type of graduated at date in education history")
			errs = append(errs, &DateError{Field: "educationHistory", Index: i, Err: err})
			continue
		}

		formatted := graduated.Format(model.DateLayout)
		education.GraduatedAtDate = &formatted
	}
	return errors.Join(errs...)
}
