// Package sqlxrepos implements the domain repositories on Postgres via sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/account"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) GetPrincipalByEmail(ctx context.Context, email string) (account.Principal, error) {
	var prc account.Principal
	err := repo.db.QueryRowxContext(ctx,
		`SELECT email, kind, ref_id FROM principals WHERE email = $1`, email,
	).Scan(&prc.Email, &prc.Kind, &prc.RefID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.Principal{}, account.ErrNotFound
		}
		return account.Principal{}, errors.Wrap(err, "getting principal")
	}
	return prc, nil
}

func (repo *accountRepository) NextUserID(ctx context.Context) (int64, error) {
	var id int64
	if err := repo.db.QueryRowxContext(ctx, `SELECT nextval('users_id_seq')`).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "allocating user id")
	}
	return id, nil
}

// inTx runs fn in a transaction, translating a unique violation on the
// principals insert into ErrEmailExists.
func (repo *accountRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return account.ErrEmailExists
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

func insertPrincipal(ctx context.Context, tx *sqlx.Tx, email, kind string, refID int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO principals (email, kind, ref_id) VALUES ($1, $2, $3)`, email, kind, refID)
	return err
}

func (repo *accountRepository) CreateUser(ctx context.Context, usr account.User) (account.User, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertPrincipal(ctx, tx, usr.Email, account.KindUser, usr.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, user_id, name, email, phone, school, class, password_hash)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			usr.ID, usr.UserID, usr.Name, usr.Email, usr.Phone, usr.School, usr.Class, usr.PasswordHash)
		return err
	})
	if err != nil {
		return account.User{}, err
	}
	return usr, nil
}

func (repo *accountRepository) CreateAdmin(ctx context.Context, adm account.Admin) (account.Admin, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx,
			`INSERT INTO admins (email, password_hash) VALUES ($1, $2) RETURNING id`,
			adm.Email, adm.PasswordHash,
		).Scan(&adm.ID); err != nil {
			return err
		}
		return insertPrincipal(ctx, tx, adm.Email, account.KindAdmin, adm.ID)
	})
	if err != nil {
		return account.Admin{}, err
	}
	return adm, nil
}

func (repo *accountRepository) CreateSalesMan(ctx context.Context, sm account.SalesMan) (account.SalesMan, error) {
	if sm.Status == "" {
		sm.Status = account.StatusActive
	}
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx,
			`INSERT INTO salesmen (name, email, status, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`,
			sm.Name, sm.Email, sm.Status, sm.PasswordHash,
		).Scan(&sm.ID); err != nil {
			return err
		}
		return insertPrincipal(ctx, tx, sm.Email, account.KindSalesMan, sm.ID)
	})
	if err != nil {
		return account.SalesMan{}, err
	}
	return sm, nil
}

func (repo *accountRepository) CreateSchool(ctx context.Context, sch account.School) (account.School, error) {
	if sch.Status == "" {
		sch.Status = account.StatusActive
	}
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx,
			`INSERT INTO schools (are_you, your_name, your_email, your_mobile, school_name, school_address,
			                      school_city, school_state, school_country, school_pincode, school_email,
			                      school_phone, principal_name, principal_contact, status, password_hash)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			 RETURNING registration_id`,
			sch.AreYou, sch.YourName, sch.YourEmail, sch.YourMobile, sch.SchoolName, sch.SchoolAddress,
			sch.SchoolCity, sch.SchoolState, sch.SchoolCountry, sch.SchoolPincode, sch.SchoolEmail,
			sch.SchoolPhone, sch.PrincipalName, sch.PrincipalContact, sch.Status, sch.PasswordHash,
		).Scan(&sch.RegistrationID); err != nil {
			return err
		}
		return insertPrincipal(ctx, tx, sch.SchoolEmail, account.KindSchool, sch.RegistrationID)
	})
	if err != nil {
		return account.School{}, err
	}
	return sch, nil
}

func (repo *accountRepository) CreateCoordinator(ctx context.Context, crd account.Coordinator) (account.Coordinator, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx,
			`INSERT INTO coordinators (full_name, email, mobile, address, city, district, state, pin_code,
			                           age, educational_qualifications, profession, experience_with_schools,
			                           years_of_experience, reason_to_work, how_heard_about)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			 RETURNING id`,
			crd.FullName, crd.Email, crd.Mobile, crd.Address, crd.City, crd.District, crd.State, crd.PinCode,
			crd.Age, crd.EducationalQualifications, crd.Profession, crd.ExperienceWithSchools,
			crd.YearsOfExperience, crd.ReasonToWork, crd.HowHeardAbout,
		).Scan(&crd.ID); err != nil {
			return err
		}
		return insertPrincipal(ctx, tx, crd.Email, account.KindCoordinator, crd.ID)
	})
	if err != nil {
		return account.Coordinator{}, err
	}
	return crd, nil
}

type userRow struct {
	ID           int64  `db:"id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	School       string `db:"school"`
	Class        string `db:"class"`
	PasswordHash []byte `db:"password_hash"`
}

func (r userRow) toDomain() account.User {
	return account.User(r)
}

const selectUser = `SELECT id, user_id, name, email, phone, school, class, password_hash FROM users`

func (repo *accountRepository) GetUserByID(ctx context.Context, id int64) (account.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, selectUser+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.User{}, account.ErrNotFound
		}
		return account.User{}, errors.Wrap(err, "getting user")
	}
	return row.toDomain(), nil
}

func (repo *accountRepository) GetUserByEmail(ctx context.Context, email string) (account.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, selectUser+` WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.User{}, account.ErrNotFound
		}
		return account.User{}, errors.Wrap(err, "getting user")
	}
	return row.toDomain(), nil
}

func (repo *accountRepository) QueryAllUsers(ctx context.Context) ([]account.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, selectUser+` ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]account.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

func (repo *accountRepository) GetAdminByEmail(ctx context.Context, email string) (account.Admin, error) {
	var adm account.Admin
	err := repo.db.QueryRowxContext(ctx,
		`SELECT id, email, password_hash FROM admins WHERE email = $1`, email,
	).Scan(&adm.ID, &adm.Email, &adm.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.Admin{}, account.ErrNotFound
		}
		return account.Admin{}, errors.Wrap(err, "getting admin")
	}
	return adm, nil
}

type salesManRow struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Status       string `db:"status"`
	PasswordHash []byte `db:"password_hash"`
}

func (r salesManRow) toDomain() account.SalesMan {
	return account.SalesMan(r)
}

const selectSalesMan = `SELECT id, name, email, status, password_hash FROM salesmen`

func (repo *accountRepository) GetSalesManByID(ctx context.Context, id int64) (account.SalesMan, error) {
	var row salesManRow
	if err := repo.db.GetContext(ctx, &row, selectSalesMan+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.SalesMan{}, account.ErrNotFound
		}
		return account.SalesMan{}, errors.Wrap(err, "getting salesman")
	}
	return row.toDomain(), nil
}

func (repo *accountRepository) GetSalesManByEmail(ctx context.Context, email string) (account.SalesMan, error) {
	var row salesManRow
	if err := repo.db.GetContext(ctx, &row, selectSalesMan+` WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.SalesMan{}, account.ErrNotFound
		}
		return account.SalesMan{}, errors.Wrap(err, "getting salesman")
	}
	return row.toDomain(), nil
}

func (repo *accountRepository) QueryAllSalesMen(ctx context.Context) ([]account.SalesMan, error) {
	var rows []salesManRow
	if err := repo.db.SelectContext(ctx, &rows, selectSalesMan+` ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying salesmen")
	}
	salesmen := make([]account.SalesMan, 0, len(rows))
	for _, row := range rows {
		salesmen = append(salesmen, row.toDomain())
	}
	return salesmen, nil
}

func (repo *accountRepository) UpdateSalesManStatus(ctx context.Context, id int64, status string) (account.SalesMan, error) {
	var row salesManRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE salesmen SET status = $2 WHERE id = $1
		 RETURNING id, name, email, status, password_hash`, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.SalesMan{}, account.ErrNotFound
		}
		return account.SalesMan{}, errors.Wrap(err, "updating salesman status")
	}
	return row.toDomain(), nil
}

type schoolRow struct {
	RegistrationID   int64  `db:"registration_id"`
	AreYou           string `db:"are_you"`
	YourName         string `db:"your_name"`
	YourEmail        string `db:"your_email"`
	YourMobile       string `db:"your_mobile"`
	SchoolName       string `db:"school_name"`
	SchoolAddress    string `db:"school_address"`
	SchoolCity       string `db:"school_city"`
	SchoolState      string `db:"school_state"`
	SchoolCountry    string `db:"school_country"`
	SchoolPincode    string `db:"school_pincode"`
	SchoolEmail      string `db:"school_email"`
	SchoolPhone      string `db:"school_phone"`
	PrincipalName    string `db:"principal_name"`
	PrincipalContact string `db:"principal_contact"`
	Status           string `db:"status"`
	PasswordHash     []byte `db:"password_hash"`
}

func (r schoolRow) toDomain() account.School {
	return account.School(r)
}

const selectSchool = `
	SELECT registration_id, are_you, your_name, your_email, your_mobile, school_name, school_address,
	       school_city, school_state, school_country, school_pincode, school_email, school_phone,
	       principal_name, principal_contact, status, password_hash
	FROM schools`

func (repo *accountRepository) GetSchoolByID(ctx context.Context, id int64) (account.School, error) {
	var row schoolRow
	if err := repo.db.GetContext(ctx, &row, selectSchool+` WHERE registration_id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.School{}, account.ErrNotFound
		}
		return account.School{}, errors.Wrap(err, "getting school")
	}
	return row.toDomain(), nil
}

func (repo *accountRepository) GetSchoolByEmail(ctx context.Context, email string) (account.School, error) {
	var row schoolRow
	if err := repo.db.GetContext(ctx, &row, selectSchool+` WHERE school_email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.School{}, account.ErrNotFound
		}
		return account.School{}, errors.Wrap(err, "getting school")
	}
	return row.toDomain(), nil
}

func (repo *accountRepository) QueryAllSchools(ctx context.Context) ([]account.School, error) {
	var rows []schoolRow
	if err := repo.db.SelectContext(ctx, &rows, selectSchool+` ORDER BY registration_id`); err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	schools := make([]account.School, 0, len(rows))
	for _, row := range rows {
		schools = append(schools, row.toDomain())
	}
	return schools, nil
}

func (repo *accountRepository) QuerySchoolsByStatus(ctx context.Context, status string) ([]account.School, error) {
	var rows []schoolRow
	if err := repo.db.SelectContext(ctx, &rows, selectSchool+` WHERE status = $1 ORDER BY registration_id`, status); err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	schools := make([]account.School, 0, len(rows))
	for _, row := range rows {
		schools = append(schools, row.toDomain())
	}
	return schools, nil
}

func (repo *accountRepository) UpdateSchoolStatus(ctx context.Context, id int64, status string) (account.School, error) {
	var row schoolRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE schools SET status = $2 WHERE registration_id = $1
		 RETURNING registration_id, are_you, your_name, your_email, your_mobile, school_name, school_address,
		           school_city, school_state, school_country, school_pincode, school_email, school_phone,
		           principal_name, principal_contact, status, password_hash`, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.School{}, account.ErrNotFound
		}
		return account.School{}, errors.Wrap(err, "updating school status")
	}
	return row.toDomain(), nil
}

func (repo *accountRepository) DeleteSchool(ctx context.Context, id int64) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		var email string
		if err := tx.QueryRowxContext(ctx,
			`DELETE FROM schools WHERE registration_id = $1 RETURNING school_email`, id,
		).Scan(&email); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return account.ErrNotFound
			}
			return errors.Wrap(err, "deleting school")
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM principals WHERE email = $1`, email)
		return errors.Wrap(err, "deleting principal")
	})
}
