package dto

type TailorRequest struct {
	ResumeURL      string `json:"resume_url" validate:"omitempty,url"`
	AppliedJobDesc string `json:"applied_job_desc"`
}
