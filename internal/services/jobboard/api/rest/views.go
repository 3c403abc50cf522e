package rest

import (
	"time"

	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/application"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/company"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

type companyView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Place     string    `json:"place"`
	Info      string    `json:"info"`
	Website   string    `json:"website"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCompanyView(c company.Company) companyView {
	return companyView{
		ID:        c.ID,
		Name:      c.Name,
		Place:     c.Place,
		Info:      c.Info,
		Website:   c.Website,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type companySummaryView struct {
	companyView
	JobCount  int `json:"jobCount"`
	UserCount int `json:"userCount"`
}

func newCompanySummaryViews(items []company.Summary) []companySummaryView {
	out := make([]companySummaryView, 0, len(items))
	for _, item := range items {
		out = append(out, companySummaryView{
			companyView: newCompanyView(item.Company),
			JobCount:    item.JobCount,
			UserCount:   item.UserCount,
		})
	}
	return out
}

type companyJobView struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	Salary           float64   `json:"salary"`
	Location         string    `json:"location"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	ApplicationCount int       `json:"applicationCount"`
}

type recruiterView struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type companyDetailView struct {
	companyView
	Jobs       []companyJobView `json:"jobs"`
	Recruiters []recruiterView  `json:"recruiters"`
	JobCount   int              `json:"jobCount"`
	UserCount  int              `json:"userCount"`
}

func newCompanyDetailView(d company.Detail) companyDetailView {
	view := companyDetailView{
		companyView: newCompanyView(d.Company),
		Jobs:        make([]companyJobView, 0, len(d.Jobs)),
		Recruiters:  make([]recruiterView, 0, len(d.Recruiters)),
		JobCount:    d.JobCount,
		UserCount:   d.UserCount,
	}
	for _, j := range d.Jobs {
		view.Jobs = append(view.Jobs, companyJobView{
			ID:               j.ID,
			Title:            j.Title,
			Type:             string(j.Type),
			Salary:           j.Salary,
			Location:         j.Location,
			Status:           string(j.Status),
			CreatedAt:        j.CreatedAt,
			ApplicationCount: j.ApplicationCount,
		})
	}
	for _, r := range d.Recruiters {
		view.Recruiters = append(view.Recruiters, recruiterView(r))
	}
	return view
}

type companyRefView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// userView never carries the password hash.
type userView struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Role      string          `json:"role"`
	CompanyID string          `json:"companyId,omitempty"`
	Company   *companyRefView `json:"company,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newUserView(u user.User) userView {
	return userView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role.String(),
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newUserWithCompanyView(u user.WithCompany) userView {
	view := newUserView(u.User)
	if u.Company != nil {
		view.Company = &companyRefView{ID: u.Company.ID, Name: u.Company.Name}
	}
	return view
}

type userListingView struct {
	userView
	ApplicationCount int `json:"applicationCount"`
	JobCount         int `json:"jobCount"`
}

func newUserListingViews(items []user.Listing) []userListingView {
	out := make([]userListingView, 0, len(items))
	for _, item := range items {
		out = append(out, userListingView{
			userView:         newUserWithCompanyView(item.WithCompany),
			ApplicationCount: item.ApplicationCount,
			JobCount:         item.JobCount,
		})
	}
	return out
}

type userSummaryView struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type jobView struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	ShortDescription string    `json:"shortDescription"`
	Description      string    `json:"description"`
	Responsibilities string    `json:"responsibilities"`
	Qualifications   string    `json:"qualifications"`
	Salary           float64   `json:"salary"`
	Location         string    `json:"location"`
	Status           string    `json:"status"`
	CompanyID        string    `json:"companyId"`
	CreatedBy        string    `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func newJobView(j job.Job) jobView {
	return jobView{
		ID:               j.ID,
		Title:            j.Title,
		Type:             string(j.Type),
		ShortDescription: j.ShortDescription,
		Description:      j.Description,
		Responsibilities: j.Responsibilities,
		Qualifications:   j.Qualifications,
		Salary:           j.Salary,
		Location:         j.Location,
		Status:           string(j.Status),
		CompanyID:        j.CompanyID,
		CreatedBy:        j.CreatedBy,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

type jobSummaryView struct {
	jobView
	CompanyName      string `json:"companyName"`
	ApplicationCount int    `json:"applicationCount"`
}

func newJobSummaryViews(items []job.Summary) []jobSummaryView {
	out := make([]jobSummaryView, 0, len(items))
	for _, item := range items {
		out = append(out, jobSummaryView{
			jobView:          newJobView(item.Job),
			CompanyName:      item.CompanyName,
			ApplicationCount: item.ApplicationCount,
		})
	}
	return out
}

type jobCompanyView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Place   string `json:"place"`
	Website string `json:"website"`
}

type jobDetailView struct {
	jobView
	Company          jobCompanyView `json:"company"`
	Creator          recruiterView  `json:"creator"`
	ApplicationCount int            `json:"applicationCount"`
}

func newJobDetailView(d job.Detail) jobDetailView {
	return jobDetailView{
		jobView:          newJobView(d.Job),
		Company:          jobCompanyView(d.Company),
		Creator:          recruiterView(d.Creator),
		ApplicationCount: d.ApplicationCount,
	}
}

type applicationView struct {
	ID             string    `json:"id"`
	Message        string    `json:"message"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	ApplicantPhone string    `json:"applicantPhone"`
	Status         string    `json:"status"`
	JobID          string    `json:"jobId"`
	UserID         string    `json:"userId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newApplicationView(a application.Application) applicationView {
	return applicationView{
		ID:             a.ID,
		Message:        a.Message,
		ApplicantName:  a.ApplicantName,
		ApplicantEmail: a.ApplicantEmail,
		ApplicantPhone: a.ApplicantPhone,
		Status:         string(a.Status),
		JobID:          a.JobID,
		UserID:         a.UserID,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

type applicationDetailView struct {
	applicationView
	JobTitle    string           `json:"jobTitle"`
	CompanyID   string           `json:"companyId"`
	CompanyName string           `json:"companyName"`
	User        *userSummaryView `json:"user,omitempty"`
}

func newApplicationDetailView(d application.Detail) applicationDetailView {
	view := applicationDetailView{
		applicationView: newApplicationView(d.Application),
		JobTitle:        d.JobTitle,
		CompanyID:       d.CompanyID,
		CompanyName:     d.CompanyName,
	}
	if d.User != nil {
		view.User = &userSummaryView{
			ID:        d.User.ID,
			FirstName: d.User.FirstName,
			LastName:  d.User.LastName,
			Email:     d.User.Email,
			Role:      d.User.Role.String(),
		}
	}
	return view
}

func newApplicationDetailViews(items []application.Detail) []applicationDetailView {
	out := make([]applicationDetailView, 0, len(items))
	for _, item := range items {
		out = append(out, newApplicationDetailView(item))
	}
	return out
}

type statisticsView struct {
	Companies            int            `json:"companies"`
	Users                int            `json:"users"`
	UsersByRole          map[string]int `json:"usersByRole"`
	Jobs                 int            `json:"jobs"`
	JobsByStatus         map[string]int `json:"jobsByStatus"`
	Applications         int            `json:"applications"`
	ApplicationsByStatus map[string]int `json:"applicationsByStatus"`
}

func newStatisticsView(s storage.Statistics) statisticsView {
	view := statisticsView{
		Companies:            s.Companies,
		Users:                s.Users,
		UsersByRole:          make(map[string]int, len(s.UsersByRole)),
		Jobs:                 s.Jobs,
		JobsByStatus:         make(map[string]int, len(s.JobsByStatus)),
		Applications:         s.Applications,
		ApplicationsByStatus: make(map[string]int, len(s.ApplicationsByStatus)),
	}
	for role, n := range s.UsersByRole {
		view.UsersByRole[role.String()] = n
	}
	for status, n := range s.JobsByStatus {
		view.JobsByStatus[string(status)] = n
	}
	for status, n := range s.ApplicationsByStatus {
		view.ApplicationsByStatus[string(status)] = n
	}
	return view
}
