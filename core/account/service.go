package account

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("account not found")
	ErrEmailExists        = core.NewConflictError("email already registered in the system")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

type (
	Repository interface {
		// GetPrincipalByEmail looks the email up in the unified identity index.
		GetPrincipalByEmail(ctx context.Context, email string) (Principal, error)

		// NextUserID pre-allocates the numeric id a new User will be stored
		// under, so the display id can be derived before the insert.
		NextUserID(ctx context.Context) (int64, error)

		// Create* insert the variant record and its Principal index entry in
		// one atomic unit; they return ErrEmailExists on a duplicate email.
		CreateUser(ctx context.Context, usr User) (User, error)
		CreateAdmin(ctx context.Context, adm Admin) (Admin, error)
		CreateSalesMan(ctx context.Context, sm SalesMan) (SalesMan, error)
		CreateSchool(ctx context.Context, sch School) (School, error)
		CreateCoordinator(ctx context.Context, crd Coordinator) (Coordinator, error)

		GetUserByID(ctx context.Context, id int64) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)

		GetAdminByEmail(ctx context.Context, email string) (Admin, error)

		GetSalesManByID(ctx context.Context, id int64) (SalesMan, error)
		GetSalesManByEmail(ctx context.Context, email string) (SalesMan, error)
		QueryAllSalesMen(ctx context.Context) ([]SalesMan, error)
		UpdateSalesManStatus(ctx context.Context, id int64, status string) (SalesMan, error)

		GetSchoolByID(ctx context.Context, id int64) (School, error)
		GetSchoolByEmail(ctx context.Context, email string) (School, error)
		QueryAllSchools(ctx context.Context) ([]School, error)
		QuerySchoolsByStatus(ctx context.Context, status string) ([]School, error)
		UpdateSchoolStatus(ctx context.Context, id int64, status string) (School, error)
		DeleteSchool(ctx context.Context, id int64) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// checkEmailUnused consults the principal index; first match wins regardless
// of which variant owns the email.
func (svc *Service) checkEmailUnused(ctx context.Context, email string) error {
	if _, err := svc.repo.GetPrincipalByEmail(ctx, email); err == nil {
		return ErrEmailExists
	} else if errors.Cause(err) != ErrNotFound {
		return errors.Wrap(err, "looking up principal")
	}
	return nil
}

func (svc *Service) RegisterUser(ctx context.Context, nu NewUser) (User, error) {
	if err := svc.checkEmailUnused(ctx, nu.Email); err != nil {
		return User{}, err
	}

	// derive the display id from a pre-allocated sequence value so creation
	// stays a single insert
	id, err := svc.repo.NextUserID(ctx)
	if err != nil {
		return User{}, errors.Wrap(err, "allocating user id")
	}
	usr := User{
		ID:     id,
		UserID: fmt.Sprintf("user%d", id),
		Name:   nu.Name,
		Email:  nu.Email,
		Phone:  nu.Phone,
		School: nu.School,
		Class:  nu.Class,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	usr, err = svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) sendWelcomeEmail(usr User) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Welcome to " + core.Conf.AppName,
		TemplateName: "welcome",
		TemplateData: struct{ Name string }{usr.Name},
	})
}

func (svc *Service) RegisterAdmin(ctx context.Context, na NewAdmin) (Admin, error) {
	if err := svc.checkEmailUnused(ctx, na.Email); err != nil {
		return Admin{}, err
	}
	adm := Admin{Email: na.Email}
	if err := adm.SetPassword(na.Password); err != nil {
		return Admin{}, err
	}
	return svc.repo.CreateAdmin(ctx, adm)
}

func (svc *Service) RegisterSalesMan(ctx context.Context, ns NewSalesMan) (SalesMan, error) {
	if err := svc.checkEmailUnused(ctx, ns.Email); err != nil {
		return SalesMan{}, err
	}
	sm := SalesMan{
		Name:   ns.Name,
		Email:  ns.Email,
		Status: StatusActive,
	}
	if err := sm.SetPassword(ns.Password); err != nil {
		return SalesMan{}, err
	}
	return svc.repo.CreateSalesMan(ctx, sm)
}

func (svc *Service) RegisterSchool(ctx context.Context, ns NewSchool) (School, error) {
	if err := svc.checkEmailUnused(ctx, ns.SchoolEmail); err != nil {
		return School{}, err
	}
	sch := School{
		AreYou:           ns.AreYou,
		YourName:         ns.YourName,
		YourEmail:        ns.YourEmail,
		YourMobile:       ns.YourMobile,
		SchoolName:       ns.SchoolName,
		SchoolAddress:    ns.SchoolAddress,
		SchoolCity:       ns.SchoolCity,
		SchoolState:      ns.SchoolState,
		SchoolCountry:    ns.SchoolCountry,
		SchoolPincode:    ns.SchoolPincode,
		SchoolEmail:      ns.SchoolEmail,
		SchoolPhone:      ns.SchoolPhone,
		PrincipalName:    ns.PrincipalName,
		PrincipalContact: ns.PrincipalContact,
		Status:           StatusInactive, // schools start inactive until approved
	}
	if err := sch.SetPassword(ns.Password); err != nil {
		return School{}, err
	}
	return svc.repo.CreateSchool(ctx, sch)
}

func (svc *Service) RegisterCoordinator(ctx context.Context, nc NewCoordinator) (Coordinator, error) {
	if err := svc.checkEmailUnused(ctx, nc.Email); err != nil {
		return Coordinator{}, err
	}
	crd := Coordinator{
		FullName:                  nc.FullName,
		Email:                     nc.Email,
		Mobile:                    nc.Mobile,
		Address:                   nc.Address,
		City:                      nc.City,
		District:                  nc.District,
		State:                     nc.State,
		PinCode:                   nc.PinCode,
		Age:                       nc.Age,
		EducationalQualifications: nc.EducationalQualifications,
		Profession:                nc.Profession,
		ExperienceWithSchools:     nc.ExperienceWithSchools,
		YearsOfExperience:         nc.YearsOfExperience,
		ReasonToWork:              nc.ReasonToWork,
		HowHeardAbout:             nc.HowHeardAbout,
	}
	return svc.repo.CreateCoordinator(ctx, crd)
}

// Authenticate resolves the email through the principal index in one lookup
// and checks the password against the owning variant's record.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (Authenticated, error) {
	prc, err := svc.repo.GetPrincipalByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Authenticated{}, ErrInvalidCredentials
		}
		return Authenticated{}, errors.Wrap(err, "looking up principal")
	}

	switch prc.Kind {
	case KindSalesMan:
		sm, err := svc.repo.GetSalesManByEmail(ctx, email)
		if err != nil {
			return Authenticated{}, errors.Wrap(err, "finding salesman by email")
		}
		if err := sm.CheckPassword(pwd); err != nil {
			return Authenticated{}, ErrInvalidCredentials
		}
		if !sm.IsActive() {
			return Authenticated{}, ErrAccountInactive
		}
		return Authenticated{Role: KindSalesMan, Data: sm}, nil
	case KindAdmin:
		adm, err := svc.repo.GetAdminByEmail(ctx, email)
		if err != nil {
			return Authenticated{}, errors.Wrap(err, "finding admin by email")
		}
		if err := adm.CheckPassword(pwd); err != nil {
			return Authenticated{}, ErrInvalidCredentials
		}
		return Authenticated{Role: KindAdmin, Data: adm}, nil
	case KindSchool:
		sch, err := svc.repo.GetSchoolByEmail(ctx, email)
		if err != nil {
			return Authenticated{}, errors.Wrap(err, "finding school by email")
		}
		if err := sch.CheckPassword(pwd); err != nil {
			return Authenticated{}, ErrInvalidCredentials
		}
		return Authenticated{Role: KindSchool, Data: sch}, nil
	case KindUser:
		usr, err := svc.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return Authenticated{}, errors.Wrap(err, "finding user by email")
		}
		if err := usr.CheckPassword(pwd); err != nil {
			return Authenticated{}, ErrInvalidCredentials
		}
		return Authenticated{Role: KindUser, Data: usr}, nil
	}
	return Authenticated{}, ErrInvalidCredentials
}

func (svc *Service) GetUserByID(ctx context.Context, id int64) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) QueryAllUsers(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) QueryAllSalesMen(ctx context.Context) ([]SalesMan, error) {
	return svc.repo.QueryAllSalesMen(ctx)
}

func (svc *Service) GetSalesManByID(ctx context.Context, id int64) (SalesMan, error) {
	return svc.repo.GetSalesManByID(ctx, id)
}

// SetSalesManStatus flips a salesman to one of the two status literals.
func (svc *Service) SetSalesManStatus(ctx context.Context, id int64, su SalesManStatusUpdate) (SalesMan, error) {
	return svc.repo.UpdateSalesManStatus(ctx, id, su.Status)
}

func (svc *Service) QueryAllSchools(ctx context.Context) ([]School, error) {
	return svc.repo.QueryAllSchools(ctx)
}

func (svc *Service) QueryActiveSchools(ctx context.Context) ([]School, error) {
	return svc.repo.QuerySchoolsByStatus(ctx, StatusActive)
}

// ToggleSchoolStatus flips a school between active and inactive, unconditionally.
func (svc *Service) ToggleSchoolStatus(ctx context.Context, id int64) (School, error) {
	sch, err := svc.repo.GetSchoolByID(ctx, id)
	if err != nil {
		return School{}, err
	}
	status := StatusActive
	if core.CleanString(sch.Status, true /* lower */) == StatusActive {
		status = StatusInactive
	}
	return svc.repo.UpdateSchoolStatus(ctx, id, status)
}

func (svc *Service) DeleteSchool(ctx context.Context, id int64) error {
	return svc.repo.DeleteSchool(ctx, id)
}
