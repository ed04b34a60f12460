package domain

// Profile is the validated view of a professional-network profile.
//
// It is built once per request from a provider payload (see internal/linkedin)
// and is never mutated afterwards.
type Profile struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the provider's numeric member id.
	ID int64

	// URN is the provider's unique resource name.
	// Example: ACoAAA8BYqEBCGLg_vT_ca6mMEqkpp9nVffJ3hc
	URN string

	// Username is the public handle (the /in/<username> segment).
	Username string

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	FirstName      string
	LastName       string
	Headline       string
	Summary        string
	ProfilePicture string
	Geo            Geo

	// ─────────────────────────────
	// Flags
	// ─────────────────────────────

	IsTopVoice bool
	IsCreator  bool
	IsPremium  bool

	// ─────────────────────────────
	// History (provider order preserved)
	// ─────────────────────────────

	Educations []Education
	Positions  []Position
	Skills     []Skill
}

// Geo holds the location fields exposed by the provider.
type Geo struct {
	Country     string
	City        string
	Full        string
	CountryCode string
}

// Date is a partial calendar date; any part may be zero.
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether no part of the date is set.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

type Education struct {
	Start        *Date
	End          *Date
	FieldOfStudy string
	Degree       string
	Grade        string
	SchoolName   string
	Description  string
	Activities   string
	URL          string
	SchoolID     string
}

type Position struct {
	CompanyID      int64
	CompanyName    string
	Title          string
	Location       string
	Description    string
	EmploymentType string
	Start          *Date
	End            *Date
}

// Open reports whether the position has no end date.
// The provider sends either no "end" object or an all-zero one for current roles.
func (p Position) Open() bool {
	return p.End == nil || p.End.IsZero()
}

type Skill struct {
	Name                  string
	PassedSkillAssessment bool
	EndorsementsCount     int
}

// FullName joins first and last name with a single space.
func (p Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// CurrentPosition returns the first open-ended position, if any.
func (p Profile) CurrentPosition() (Position, bool) {
	for _, pos := range p.Positions {
		if pos.Open() {
			return pos, true
		}
	}
	return Position{}, false
}
