package model

import "time"

// Record is a preprocessed survey row. RecordID is assigned once at load time
// and is the only key used to identify the record's visual elements.
type Record interface {
	RecordID() int
}

// WageRecord is one full-time wage earner from the ASEC wage dataset.
type WageRecord struct {
	ID int `json:"-"`

	// EDUC2 is the coarse education code (0 = none .. 9 = doctorate).
	EDUC2 int `json:"EDUC2"`
	// INCWAGE is the annual wage, top-coded at load.
	INCWAGE float64 `json:"INCWAGE"`
	// OCCLY is the occupation code, CATLY the occupation category code.
	OCCLY string `json:"OCCLY"`
	CATLY string `json:"CATLY"`

	// EduJitter is drawn once at load and offsets the point along the education axis.
	EduJitter float64 `json:"-"`
}

func (r *WageRecord) RecordID() int { return r.ID }

// SetRecordID assigns the load-order identifier.
func (r *WageRecord) SetRecordID(id int) { r.ID = id }

// Activity is one interval of a respondent's day.
type Activity struct {
	Num      int    `json:"-"`
	Start    string `json:"START"`
	Name     string `json:"ACTIVITY3"`
	Category string `json:"CATEGORY"`

	// Begin and End are offsets from midnight of the diary's first day, so
	// intervals after midnight fall in [24h, 48h).
	Begin time.Duration `json:"-"`
	End   time.Duration `json:"-"`
}

// LivingWith summarizes the other members of the respondent's household.
type LivingWith struct {
	Partner        string   `json:"partner,omitempty"`
	Children       []int    `json:"children,omitempty"`
	Grandchildren  []int    `json:"grandchildren,omitempty"`
	Parents        []string `json:"parents,omitempty"`
	Siblings       int      `json:"siblings,omitempty"`
	OtherRelatives int      `json:"other_relatives,omitempty"`
	Housemates     int      `json:"housemates,omitempty"`
}

// TimeUseRecord is one ATUS respondent with their diary day.
type TimeUseRecord struct {
	ID int `json:"-"`

	Day              string     `json:"DAY"`
	Age              int        `json:"AGE"`
	Sex              string     `json:"SEX"`
	Race             string     `json:"RACE"`
	MaritalStatus    string     `json:"MARST"`
	NumOwnKids       int        `json:"HH_NUMOWNKIDS"`
	LivingWith       LivingWith `json:"LIVING_WITH"`
	Education        string     `json:"EDUC"`
	EmploymentStatus string     `json:"EMPSTAT"`
	FullPart         string     `json:"FULLPART"`
	Occupation       string     `json:"OCC"`
	HouseholdSize    int        `json:"HH_SIZE"`
	FamilyIncome     string     `json:"FAMINCOME"`

	Activities []Activity `json:"activities"`
}

func (r *TimeUseRecord) RecordID() int { return r.ID }

// SetRecordID assigns the load-order identifier.
func (r *TimeUseRecord) SetRecordID(id int) { r.ID = id }

// HasActivity reports whether any interval satisfies match.
func (r *TimeUseRecord) HasActivity(match func(a *Activity) bool) bool {
	for i := range r.Activities {
		if match(&r.Activities[i]) {
			return true
		}
	}
	return false
}
