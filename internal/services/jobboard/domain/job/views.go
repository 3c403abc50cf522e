package job

// Summary is a job with its company name and application count.
type Summary struct {
	Job
	CompanyName      string
	ApplicationCount int
}

// CompanyRef names the company that owns a job.
type CompanyRef struct {
	ID      string
	Name    string
	Place   string
	Website string
}

// CreatorRef names the user that created a job.
type CreatorRef struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Detail is a job with its company, creator, and application count.
type Detail struct {
	Job
	Company          CompanyRef
	Creator          CreatorRef
	ApplicationCount int
}
