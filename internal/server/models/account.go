package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a []string stored as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Account is a registered credential identity plus its editable profile.
// PasswordHash and the login-security counters never serialize to API
// responses.
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`

	// Login-security state. FailedLoginAttempts resets to 0 on a
	// successful login; LockoutUntil is nil while the account is unlocked.
	FailedLoginAttempts int        `json:"-"`
	LockoutUntil        *time.Time `json:"-"`

	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Portfolio    string `json:"portfolio"`
	Objective    string `json:"objective"`
	Address      string `json:"address"`

	Education    StringList `json:"education"`
	Skills       StringList `json:"skills"`
	Experience   StringList `json:"experience"`
	Projects     StringList `json:"projects"`
	Certificates StringList `json:"certificates"`
	Courses      StringList `json:"courses"`
	Cocurricular StringList `json:"cocurricular"`
	Interests    StringList `json:"interests"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Locked reports whether the account lockout is active at the given instant.
// Locked while LockoutUntil > now; sub-second races are acceptable.
func (a *Account) Locked(now time.Time) bool {
	return a.LockoutUntil != nil && a.LockoutUntil.After(now)
}

// ProfileUpdate carries a partial profile edit. Nil pointers leave the
// corresponding field untouched.
type ProfileUpdate struct {
	FirstName    *string     `json:"firstname"`
	LastName     *string     `json:"lastname"`
	Email        *string     `json:"email"`
	MobileNumber *string     `json:"mobileNumber"`
	Portfolio    *string     `json:"portfolio"`
	Objective    *string     `json:"objective"`
	Address      *string     `json:"address"`
	Education    *StringList `json:"education"`
	Skills       *StringList `json:"skills"`
	Experience   *StringList `json:"experience"`
	Projects     *StringList `json:"projects"`
	Certificates *StringList `json:"certificates"`
	Courses      *StringList `json:"courses"`
	Cocurricular *StringList `json:"cocurricular"`
	Interests    *StringList `json:"interests"`
}

// Apply copies the non-nil fields of the update onto the account.
func (u *ProfileUpdate) Apply(a *Account) {
	if u.FirstName != nil {
		a.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		a.LastName = *u.LastName
	}
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.MobileNumber != nil {
		a.MobileNumber = *u.MobileNumber
	}
	if u.Portfolio != nil {
		a.Portfolio = *u.Portfolio
	}
	if u.Objective != nil {
		a.Objective = *u.Objective
	}
	if u.Address != nil {
		a.Address = *u.Address
	}
	if u.Education != nil {
		a.Education = *u.Education
	}
	if u.Skills != nil {
		a.Skills = *u.Skills
	}
	if u.Experience != nil {
		a.Experience = *u.Experience
	}
	if u.Projects != nil {
		a.Projects = *u.Projects
	}
	if u.Certificates != nil {
		a.Certificates = *u.Certificates
	}
	if u.Courses != nil {
		a.Courses = *u.Courses
	}
	if u.Cocurricular != nil {
		a.Cocurricular = *u.Cocurricular
	}
	if u.Interests != nil {
		a.Interests = *u.Interests
	}
}
