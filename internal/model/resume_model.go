package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD layout used by the parser and the prompt.
const DateLayout = "2006-01-02"

// PresentSentinel is the end date the parser emits for a current position.
const PresentSentinel = "Present"

// ParseResponse is the envelope returned by the CV parsing service.
type ParseResponse struct {
	CV ResumeRecord `json:"cv"`
}

type ResumeRecord struct {
	City             *string            `json:"city,omitempty"`
	Country          *string            `json:"country,omitempty"`
	Email            *string            `json:"email,omitempty"`
	Phone            *string            `json:"phone,omitempty"`
	LinkedIn         *string            `json:"linkedIn,omitempty"`
	Website          *string            `json:"website,omitempty"`
	Bio              *string            `json:"bio,omitempty"`
	Nationality      *string            `json:"nationality,omitempty"`
	WorkHistory      []WorkEntry        `json:"workHistory,omitempty"`
	EducationHistory []EducationEntry   `json:"educationHistory,omitempty"`
	Projects         []ProjectEntry     `json:"projects,omitempty"`
	Certificates     []CertificateEntry `json:"certificates,omitempty"`
	Skills           []string           `json:"skills,omitempty"`
	Languages        []*LanguageEntry   `json:"languages,omitempty"` // nil element = null in the source list
}

type WorkEntry struct {
	Title          *string  `json:"title,omitempty"`
	CompanyName    *string  `json:"companyName,omitempty"`
	Location       *string  `json:"location,omitempty"`
	StartAt        FlexDate `json:"startAt,omitzero"`
	EndAt          FlexDate `json:"endAt,omitzero"`
	JobDescription *string  `json:"jobDescription,omitempty"`

	// Derived by the date normalizer.
	DurationInYears *float64 `json:"durationInYears,omitempty"`
	StartDateStr    string   `json:"startDateStr,omitempty"`
	EndDateStr      string   `json:"endDateStr,omitempty"`
}

type EducationEntry struct {
	DegreeAndField  *string  `json:"degreeAndField,omitempty"`
	SchoolName      *string  `json:"schoolName,omitempty"`
	StartedAt       FlexDate `json:"startedAt,omitzero"`
	GraduatedAt     FlexDate `json:"graduatedAt,omitzero"`
	GraduatedAtDate *string  `json:"graduatedAtDate,omitempty"`
}

type ProjectEntry struct {
	Title   *string  `json:"title,omitempty"`
	StartAt FlexDate `json:"startAt,omitzero"`
	EndAt   FlexDate `json:"endAt,omitzero"`
}

type CertificateEntry struct {
	Title     *string  `json:"title,omitempty"`
	Company   *string  `json:"company,omitempty"`
	IssueDate FlexDate `json:"issueDate,omitzero"`
}

// LanguageEntry is either an object with name/proficiency or a bare language name.
type LanguageEntry struct {
	Name        *string `json:"name,omitempty"`
	Proficiency *string `json:"proficiency,omitempty"`
	Bare        bool    `json:"-"`
}

func (l *LanguageEntry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*l = LanguageEntry{Name: &name, Bare: true}
		return nil
	}

	type plain LanguageEntry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("language entry: %w", err)
	}
	*l = LanguageEntry(p)
	return nil
}

func (l LanguageEntry) MarshalJSON() ([]byte, error) {
	if l.Bare && l.Name != nil {
		return json.Marshal(*l.Name)
	}
	type plain LanguageEntry
	return json.Marshal(plain(l))
}

type DateKind int

const (
	DateAbsent DateKind = iota
	DateText
	DateTime
	DateUnsupported
)

// FlexDate holds a date field whose JSON type is not guaranteed by the parser.
type FlexDate struct {
	Kind DateKind
	Text string
	Time time.Time
	Raw  json.RawMessage
}

func TextDate(s string) FlexDate {
	return FlexDate{Kind: DateText, Text: s}
}

func TimeDate(t time.Time) FlexDate {
	return FlexDate{Kind: DateTime, Time: t}
}

func (d FlexDate) IsZero() bool {
	return d.Kind == DateAbsent
}

// IsEmpty reports whether the field is missing, null or an empty string.
func (d FlexDate) IsEmpty() bool {
	return d.Kind == DateAbsent || (d.Kind == DateText && d.Text == "")
}

// Ongoing reports whether an end date marks a position that has not ended: the
// field is empty or holds the parser's "Present" sentinel.
func (d FlexDate) Ongoing() bool {
	return d.IsEmpty() || (d.Kind == DateText && d.Text == PresentSentinel)
}

// Resolve turns the field into a calendar date. Text must be YYYY-MM-DD.
func (d FlexDate) Resolve() (time.Time, error) {
	switch d.Kind {
	case DateText:
		t, err := time.Parse(DateLayout, d.Text)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", d.Text, err)
		}
		return t, nil
	case DateTime:
		return d.Time, nil
	case DateAbsent:
		return time.Time{}, fmt.Errorf("date is missing")
	default:
		return time.Time{}, fmt.Errorf("date must be a string, got %s", string(d.Raw))
	}
}

// String renders the source value the way it should appear in a prompt.
func (d FlexDate) String() string {
	switch d.Kind {
	case DateText:
		return d.Text
	case DateTime:
		return d.Time.Format(DateLayout)
	case DateUnsupported:
		return string(d.Raw)
	}
	return ""
}

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*d = FlexDate{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = TextDate(s)
	default:
		*d = FlexDate{Kind: DateUnsupported, Raw: append(json.RawMessage(nil), b...)}
	}
	return nil
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DateText:
		return json.Marshal(d.Text)
	case DateTime:
		return json.Marshal(d.Time.Format(DateLayout))
	case DateUnsupported:
		return d.Raw, nil
	}
	return []byte("null"), nil
}
