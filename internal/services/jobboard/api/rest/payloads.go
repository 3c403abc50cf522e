package rest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/application"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/company"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/service"
)

// salary accepts a JSON number or string. The text is coerced by the job
// domain, so unparseable strings become zero.
type salary string

func (s *salary) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = salary(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("salary must be a number or string")
	}
	*s = salary(number.String())
	return nil
}

func (s *salary) text() *string {
	if s == nil {
		return nil
	}
	value := string(*s)
	return &value
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

func (r registerRequest) input() service.RegisterInput {
	return service.RegisterInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type companyRequest struct {
	Name    string `json:"name"`
	Place   string `json:"place"`
	Info    string `json:"info"`
	Website string `json:"website"`
}

func (r companyRequest) input() company.CreateCompanyInput {
	return company.CreateCompanyInput{Name: r.Name, Place: r.Place, Info: r.Info, Website: r.Website}
}

type companyPatch struct {
	Name    *string `json:"name"`
	Place   *string `json:"place"`
	Info    *string `json:"info"`
	Website *string `json:"website"`
}

func (p companyPatch) input() company.UpdateCompanyInput {
	return company.UpdateCompanyInput{Name: p.Name, Place: p.Place, Info: p.Info, Website: p.Website}
}

type userRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId"`
}

func (r userRequest) input() user.CreateUserInput {
	return user.CreateUserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
		Role:      r.Role,
		CompanyID: r.CompanyID,
	}
}

type profilePatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (p profilePatch) input() user.ProfileUpdate {
	return user.ProfileUpdate{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email, Phone: p.Phone}
}

type userPatch struct {
	profilePatch
	Role      *string `json:"role"`
	CompanyID *string `json:"companyId"`
}

func (p userPatch) input() user.AdminUpdate {
	return user.AdminUpdate{ProfileUpdate: p.profilePatch.input(), Role: p.Role, CompanyID: p.CompanyID}
}

type roleRequest struct {
	Role string `json:"role"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type jobRequest struct {
	Title            string  `json:"title"`
	Type             string  `json:"type"`
	ShortDescription string  `json:"shortDescription"`
	Description      string  `json:"description"`
	Responsibilities string  `json:"responsibilities"`
	Qualifications   string  `json:"qualifications"`
	Salary           *salary `json:"salary"`
	Location         string  `json:"location"`
	CompanyID        string  `json:"companyId"`
}

func (r jobRequest) input() job.CreateJobInput {
	return job.CreateJobInput{
		Title:            r.Title,
		Type:             r.Type,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Responsibilities: r.Responsibilities,
		Qualifications:   r.Qualifications,
		Salary:           r.Salary.text(),
		Location:         r.Location,
		CompanyID:        r.CompanyID,
	}
}

type jobPatch struct {
	Title            *string `json:"title"`
	Type             *string `json:"type"`
	ShortDescription *string `json:"shortDescription"`
	Description      *string `json:"description"`
	Responsibilities *string `json:"responsibilities"`
	Qualifications   *string `json:"qualifications"`
	Salary           *salary `json:"salary"`
	Location         *string `json:"location"`
	CompanyID        *string `json:"companyId"`
}

func (p jobPatch) input() job.UpdateJobInput {
	return job.UpdateJobInput{
		Title:            p.Title,
		Type:             p.Type,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Responsibilities: p.Responsibilities,
		Qualifications:   p.Qualifications,
		Salary:           p.Salary.text(),
		Location:         p.Location,
		CompanyID:        p.CompanyID,
	}
}

type applicationRequest struct {
	JobID          string `json:"jobId"`
	Message        string `json:"message"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	ApplicantPhone string `json:"applicantPhone"`
}

func (r applicationRequest) input() application.SubmitInput {
	return application.SubmitInput{
		JobID:          r.JobID,
		Message:        r.Message,
		ApplicantName:  r.ApplicantName,
		ApplicantEmail: r.ApplicantEmail,
		ApplicantPhone: r.ApplicantPhone,
	}
}
