package resume

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/ai-resume/internal/model"
)

// SystemPrompt instructs the model how to tailor the experience section.
const SystemPrompt = "Your job is to adjust the job description in experience section of the resume of the candidate according to the job description that the candidate is applying to. " +
	"Try to rewrite the job description in the experience section of resume and replace only those sentences which are not relevant to the job. " +
	"The new sentences that you add should maintain the tone of writing like rest of the resume. " +
	"Reorder the sentences or bullet points that are more relevant to the job description to the top and less relevant points to the bottom. " +
	"Write the job description in first-person perspective and use action verbs like 'managed', 'led', 'achieved', 'developed', 'implemented', etc. " +
	"Use quantitative metircs in terms of numbers, percentages to make the job description more specific and realistic. " +
	"Return the response in the JSON format. " +
	"Resume and job description that the candidate is applying to will be provided in the prompt."

// JSONOnlyInstruction is appended before the job description.
const JSONOnlyInstruction = "[No prose, output only JSON]"

// ComposePrompt renders a normalized record and the target job description into the
// user prompt. Section order and placeholder wording are stable; the model was tuned
// against them.
func ComposePrompt(cv model.ResumeRecord, jobDesc string) string {
	var sb strings.Builder

	sb.WriteString("The following are the details of person's whole resume:\n")

	location := valueOr(cv.City, "unknown city") + ", " + valueOr(cv.Country, "unknown country")
	fmt.Fprintf(&sb, "\nThe person is currently located in %s%s%s%s\n",
		location,
		optional(". Email: ", cv.Email),
		optional(". Phone: ", cv.Phone),
		optional(". linkedin: ", cv.LinkedIn),
	)

	if present(cv.Bio) {
		fmt.Fprintf(&sb, "About me: \n%s\n", *cv.Bio)
	}

	if len(cv.WorkHistory) > 0 {
		sb.WriteString("\nExperiences:\n")
		for i, job := range cv.WorkHistory {
			fmt.Fprintf(&sb, "%d: %s at %s in %s, with %s years of experience starting from %s and %s. Job description was: %s\n",
				i+1,
				valueOr(job.Title, "Unknown Position"),
				valueOr(job.CompanyName, "Unknown Company"),
				valueOr(job.Location, "Unknown Location"),
				formatDuration(job.DurationInYears),
				stringOr(job.StartDateStr, "Unknown start date"),
				endPhrase(job.EndAt),
				valueOr(job.JobDescription, "unknown job description"),
			)
		}
	}

	if len(cv.Skills) > 0 {
		fmt.Fprintf(&sb, "\nPerson is skilled in the following: %s\n", strings.Join(cv.Skills, ", "))
	}

	if len(cv.EducationHistory) > 0 {
		sb.WriteString("\nEducation: \n")
		for i, education := range cv.EducationHistory {
			fmt.Fprintf(&sb, "%d. Studied %s from %s and graduated at %s.\n",
				i+1,
				valueOr(education.DegreeAndField, "Unknown Field"),
				valueOr(education.SchoolName, "Unknown School"),
				valueOr(education.GraduatedAtDate, "Unknown graduation date"),
			)
		}
	}

	if len(cv.Certificates) > 0 {
		sb.WriteString("Certification:\n")
		for i, certificate := range cv.Certificates {
			fmt.Fprintf(&sb, "%d. Certification in %s from %s%s.\n",
				i+1,
				valueOr(certificate.Title, "unknown certification name"),
				valueOr(certificate.Company, "unknown certification institution"),
				optionalDate(" at ", certificate.IssueDate),
			)
		}
	}

	if present(cv.Nationality) {
		fmt.Fprintf(&sb, "\nThis person is %s national.\n", *cv.Nationality)
	}

	if len(cv.Projects) > 0 {
		sb.WriteString("\nPerson has done following projects in his career:\n")
		for i, project := range cv.Projects {
			fmt.Fprintf(&sb, "\n%d. %s%s%s",
				i+1,
				valueOr(project.Title, "unknown project title"),
				optionalDate(". Started at ", project.StartAt),
				optionalDate(" and ended at ", project.EndAt),
			)
		}
	}

	if len(cv.Languages) > 0 {
		sb.WriteString("\nLanguages:\n")
		for i, language := range cv.Languages {
			if language == nil {
				continue
			}
			if language.Bare {
				fmt.Fprintf(&sb, "%d. Candidate speaks %s.\n", i+1, valueOr(language.Name, ""))
				continue
			}
			fmt.Fprintf(&sb, "\n%d. Candidate speaks %s with %s proficiency.\n",
				i+1,
				valueOr(language.Name, "Unknown language name"),
				valueOr(language.Proficiency, "Unknown"),
			)
		}
	}

	sb.WriteString("\n\n" + JSONOnlyInstruction + "\n")

	sb.WriteString("\nFollowing is the job description of the job this candidate is applying to:\n\n")
	sb.WriteString(jobDesc)
	return sb.String()
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func optional(prefix string, s *string) string {
	if !present(s) {
		return ""
	}
	return prefix + *s
}

func optionalDate(prefix string, d model.FlexDate) string {
	if d.IsEmpty() {
		return ""
	}
	return prefix + d.String()
}

func endPhrase(endAt model.FlexDate) string {
	if endAt.Ongoing() {
		return "presently working"
	}
	return "ending at " + endAt.String()
}

func formatDuration(years *float64) string {
	if years == nil {
		return "Unknown Duration"
	}
	return strconv.FormatFloat(*years, 'f', -1, 64)
}
