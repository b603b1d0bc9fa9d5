package account

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/enlightiq/enlightiq/core"
)

// Principal kinds
const (
	KindUser        = "user"
	KindAdmin       = "admin"
	KindSalesMan    = "salesman"
	KindSchool      = "school"
	KindCoordinator = "coordinator"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Principal is the unified identity index entry: one row per registered email,
// regardless of which account variant owns it. It is the single source of
// truth for the cross-variant email-uniqueness invariant.
type Principal struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
	RefID int64  `json:"refId"`
}

type User struct {
	ID           int64  `json:"id"`
	UserID       string `json:"userId"` // display id, e.g. "user42"
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	School       string `json:"school"`
	Class        string `json:"class"`
	PasswordHash []byte `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

type Admin struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
}

func (a *Admin) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Admin) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

type SalesMan struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	PasswordHash []byte `json:"-"`
}

func (sm *SalesMan) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	sm.PasswordHash = hash
	return nil
}

func (sm *SalesMan) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(sm.PasswordHash, []byte(pwd))
}

func (sm *SalesMan) IsActive() bool {
	return core.CleanString(sm.Status, true /* lower */) == StatusActive
}

type School struct {
	RegistrationID   int64  `json:"schoolRegistrationId"`
	AreYou           string `json:"areYou"`
	YourName         string `json:"yourName"`
	YourEmail        string `json:"yourEmail"`
	YourMobile       string `json:"yourMobile"`
	SchoolName       string `json:"schoolName"`
	SchoolAddress    string `json:"schoolAddress"`
	SchoolCity       string `json:"schoolCity"`
	SchoolState      string `json:"schoolState"`
	SchoolCountry    string `json:"schoolCountry"`
	SchoolPincode    string `json:"schoolPincode"`
	SchoolEmail      string `json:"schoolEmail"`
	SchoolPhone      string `json:"schoolPhone"`
	PrincipalName    string `json:"principalName"`
	PrincipalContact string `json:"principalContact"`
	Status           string `json:"status"`
	PasswordHash     []byte `json:"-"`
}

func (s *School) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *School) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

type Coordinator struct {
	ID                        int64  `json:"id"`
	FullName                  string `json:"fullName"`
	Email                     string `json:"email"`
	Mobile                    string `json:"mobile"`
	Address                   string `json:"address"`
	City                      string `json:"city"`
	District                  string `json:"district"`
	State                     string `json:"state"`
	PinCode                   string `json:"pinCode"`
	Age                       string `json:"age"`
	EducationalQualifications string `json:"educationalQualifications"`
	Profession                string `json:"profession"`
	ExperienceWithSchools     string `json:"experienceWithSchools"`
	YearsOfExperience         string `json:"yearsOfExperience"`
	ReasonToWork              string `json:"reasonToWork"`
	HowHeardAbout             string `json:"howHeardAbout"`
}

// NewUser contains information needed to sign a new User up.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	School   string `json:"school"`
	Class    string `json:"class" validate:"required,numeric"`
	Password string `json:"password" validate:"required,min=6"`
}

func (nu *NewUser) Validate() error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Class = core.CleanString(nu.Class)
	return core.Validate.Struct(nu)
}

type NewAdmin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (na *NewAdmin) Validate() error {
	na.Email = core.CleanString(na.Email, true /* lower */)
	return core.Validate.Struct(na)
}

type NewSalesMan struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (ns *NewSalesMan) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}

type NewSchool struct {
	AreYou           string `json:"areYou"`
	YourName         string `json:"yourName" validate:"required"`
	YourEmail        string `json:"yourEmail" validate:"omitempty,email"`
	YourMobile       string `json:"yourMobile"`
	SchoolName       string `json:"schoolName" validate:"required"`
	SchoolAddress    string `json:"schoolAddress"`
	SchoolCity       string `json:"schoolCity"`
	SchoolState      string `json:"schoolState"`
	SchoolCountry    string `json:"schoolCountry"`
	SchoolPincode    string `json:"schoolPincode"`
	SchoolEmail      string `json:"schoolEmail" validate:"required,email"`
	SchoolPhone      string `json:"schoolPhone"`
	PrincipalName    string `json:"principalName"`
	PrincipalContact string `json:"principalContact"`
	Password         string `json:"password" validate:"required,min=6"`
}

func (ns *NewSchool) Validate() error {
	ns.YourName = core.CleanString(ns.YourName)
	ns.SchoolName = core.CleanString(ns.SchoolName)
	ns.YourEmail = core.CleanString(ns.YourEmail, true /* lower */)
	ns.SchoolEmail = core.CleanString(ns.SchoolEmail, true /* lower */)
	return core.Validate.Struct(ns)
}

type NewCoordinator struct {
	FullName                  string `json:"fullName" validate:"required"`
	Email                     string `json:"email" validate:"required,email"`
	Mobile                    string `json:"mobile"`
	Address                   string `json:"address"`
	City                      string `json:"city"`
	District                  string `json:"district"`
	State                     string `json:"state"`
	PinCode                   string `json:"pinCode"`
	Age                       string `json:"age"`
	EducationalQualifications string `json:"educationalQualifications"`
	Profession                string `json:"profession"`
	ExperienceWithSchools     string `json:"experienceWithSchools"`
	YearsOfExperience         string `json:"yearsOfExperience"`
	ReasonToWork              string `json:"reasonToWork"`
	HowHeardAbout             string `json:"howHeardAbout"`
}

func (nc *NewCoordinator) Validate() error {
	nc.FullName = core.CleanString(nc.FullName)
	nc.Email = core.CleanString(nc.Email, true /* lower */)
	return core.Validate.Struct(nc)
}

// SalesManStatusUpdate only accepts the two status literals, case-insensitively.
type SalesManStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

func (su *SalesManStatusUpdate) Validate() error {
	su.Status = core.CleanString(su.Status, true /* lower */)
	return core.Validate.Struct(su)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}

// Authenticated is the outcome of a successful login: the matched variant's
// role tag plus the record itself (password hash excluded by marshalling).
type Authenticated struct {
	Role string      `json:"role"`
	Data interface{} `json:"data"`
}
