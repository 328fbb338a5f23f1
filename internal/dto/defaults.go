package dto

// DefaultResumeURL is used when a request carries no resume_url.
const DefaultResumeURL = "https://storage.googleapis.com/qureos-prod/apprentice-profile/7559/data-analyst-abrar-hasan.pdf"

// DefaultAppliedJobDesc is used when a request carries no applied_job_desc.
const DefaultAppliedJobDesc = `# The job description of the job that the candidate is applying to:
About the opportunity

Assist the Head of MD Office in strategic planning process; identifying key metrics, aligning targets and evaluating performance.

Oversee coordination of regional and local programmes and projects; undertake research and prepare pre-meeting briefings.

Work cross functionally to understand business needs; analyse data to identify trends, drive insights and present actionable recommendations.

Plan and align goals across teams, ensuring alignment with central & regional objectives.

Develop and manage business’s OKRs to forecast and analyse company performance through budgeting, resource planning and goal setting.


What you need to be successful

3-4 years experience as a BI/Data analyst.

A Bachelor’s degree (minimum) or Master’s degree (preferred) in a quantitative discipline such as Computer Science or relevant discipline.

Proven expertise in SQL and experience designing scalable, efficient queries to support data-driven decision-making.

Demonstrated ability to craft compelling and creative data visualizations using Tableau or similar modern visualization tools.

Strong command over the entire data analysis lifecycle including; problem formulation, data auditing and rigoro.

Experience in data visualization, data storytelling, tableau, SQL, python (preferred), presentation of the query.



Who we are

foodpanda is part of the Delivery Hero Group, the world’s pioneering local delivery platform, our mission is to deliver an amazing experience—fast, easy, and to your door. We operate in over 70+ countries worldwide. Headquartered in Berlin, Germany. Delivery Hero has been listed on the Frankfurt Stock Exchange since 2017 and is part of the MDAX stock market index.


What's in it for you

What does your playfield look like?  

We work in a flexible but fast paced environment.

We start and end with customers to deliver exceptional service.

We love to innovate, prioritize, decide, and deliver. 

We love what we do, and we don’t rest until our targets are achieved. So if you’re also someone who is driven until the dream is achieved, come join us.`

// WithDefaults fills empty fields with the sample resume and job posting.
func (r TailorRequest) WithDefaults() TailorRequest {
	if r.ResumeURL == "" {
		r.ResumeURL = DefaultResumeURL
	}
	if r.AppliedJobDesc == "" {
		r.AppliedJobDesc = DefaultAppliedJobDesc
	}
	return r
}
