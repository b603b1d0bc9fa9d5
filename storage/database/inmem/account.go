package inmemdb

import (
	"context"

	"github.com/enlightiq/enlightiq/core/account"
)

type accountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) GetPrincipalByEmail(_ context.Context, email string) (account.Principal, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if prc, ok := repo.db.principals[email]; ok {
		return prc, nil
	}
	return account.Principal{}, account.ErrNotFound
}

func (repo *accountRepository) NextUserID(_ context.Context) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.userPK++
	return repo.db.userPK, nil
}

// addPrincipal registers the email in the index; caller must hold the write lock.
func (repo *accountRepository) addPrincipal(email, kind string, refID int64) error {
	if _, ok := repo.db.principals[email]; ok {
		return account.ErrEmailExists
	}
	repo.db.principals[email] = account.Principal{Email: email, Kind: kind, RefID: refID}
	return nil
}

func (repo *accountRepository) CreateUser(_ context.Context, usr account.User) (account.User, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := repo.addPrincipal(usr.Email, account.KindUser, usr.ID); err != nil {
		return account.User{}, err
	}
	repo.db.users[usr.ID] = &usr
	return usr, nil
}

func (repo *accountRepository) CreateAdmin(_ context.Context, adm account.Admin) (account.Admin, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.adminPK++
	adm.ID = repo.db.adminPK
	if err := repo.addPrincipal(adm.Email, account.KindAdmin, adm.ID); err != nil {
		return account.Admin{}, err
	}
	repo.db.admins[adm.ID] = &adm
	return adm, nil
}

func (repo *accountRepository) CreateSalesMan(_ context.Context, sm account.SalesMan) (account.SalesMan, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.salesManPK++
	sm.ID = repo.db.salesManPK
	if err := repo.addPrincipal(sm.Email, account.KindSalesMan, sm.ID); err != nil {
		return account.SalesMan{}, err
	}
	repo.db.salesmen[sm.ID] = &sm
	return sm, nil
}

func (repo *accountRepository) CreateSchool(_ context.Context, sch account.School) (account.School, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.schoolPK++
	sch.RegistrationID = repo.db.schoolPK
	if err := repo.addPrincipal(sch.SchoolEmail, account.KindSchool, sch.RegistrationID); err != nil {
		return account.School{}, err
	}
	repo.db.schools[sch.RegistrationID] = &sch
	return sch, nil
}

func (repo *accountRepository) CreateCoordinator(_ context.Context, crd account.Coordinator) (account.Coordinator, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.coordPK++
	crd.ID = repo.db.coordPK
	if err := repo.addPrincipal(crd.Email, account.KindCoordinator, crd.ID); err != nil {
		return account.Coordinator{}, err
	}
	repo.db.coordinators[crd.ID] = &crd
	return crd, nil
}

func (repo *accountRepository) GetUserByID(_ context.Context, id int64) (account.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if usr, ok := repo.db.users[id]; ok {
		return *usr, nil
	}
	return account.User{}, account.ErrNotFound
}

func (repo *accountRepository) GetUserByEmail(_ context.Context, email string) (account.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, usr := range repo.db.users {
		if usr.Email == email {
			return *usr, nil
		}
	}
	return account.User{}, account.ErrNotFound
}

func (repo *accountRepository) QueryAllUsers(_ context.Context) ([]account.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	users := make([]account.User, 0, len(repo.db.users))
	for _, usr := range repo.db.users {
		users = append(users, *usr)
	}
	return users, nil
}

func (repo *accountRepository) GetAdminByEmail(_ context.Context, email string) (account.Admin, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, adm := range repo.db.admins {
		if adm.Email == email {
			return *adm, nil
		}
	}
	return account.Admin{}, account.ErrNotFound
}

func (repo *accountRepository) GetSalesManByID(_ context.Context, id int64) (account.SalesMan, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sm, ok := repo.db.salesmen[id]; ok {
		return *sm, nil
	}
	return account.SalesMan{}, account.ErrNotFound
}

func (repo *accountRepository) GetSalesManByEmail(_ context.Context, email string) (account.SalesMan, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, sm := range repo.db.salesmen {
		if sm.Email == email {
			return *sm, nil
		}
	}
	return account.SalesMan{}, account.ErrNotFound
}

func (repo *accountRepository) QueryAllSalesMen(_ context.Context) ([]account.SalesMan, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	salesmen := make([]account.SalesMan, 0, len(repo.db.salesmen))
	for _, sm := range repo.db.salesmen {
		salesmen = append(salesmen, *sm)
	}
	return salesmen, nil
}

func (repo *accountRepository) UpdateSalesManStatus(_ context.Context, id int64, status string) (account.SalesMan, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sm, ok := repo.db.salesmen[id]
	if !ok {
		return account.SalesMan{}, account.ErrNotFound
	}
	sm.Status = status
	return *sm, nil
}

func (repo *accountRepository) GetSchoolByID(_ context.Context, id int64) (account.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sch, ok := repo.db.schools[id]; ok {
		return *sch, nil
	}
	return account.School{}, account.ErrNotFound
}

func (repo *accountRepository) GetSchoolByEmail(_ context.Context, email string) (account.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, sch := range repo.db.schools {
		if sch.SchoolEmail == email {
			return *sch, nil
		}
	}
	return account.School{}, account.ErrNotFound
}

func (repo *accountRepository) QueryAllSchools(_ context.Context) ([]account.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	schools := make([]account.School, 0, len(repo.db.schools))
	for _, sch := range repo.db.schools {
		schools = append(schools, *sch)
	}
	return schools, nil
}

func (repo *accountRepository) QuerySchoolsByStatus(_ context.Context, status string) ([]account.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	schools := make([]account.School, 0)
	for _, sch := range repo.db.schools {
		if sch.Status == status {
			schools = append(schools, *sch)
		}
	}
	return schools, nil
}

func (repo *accountRepository) UpdateSchoolStatus(_ context.Context, id int64, status string) (account.School, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sch, ok := repo.db.schools[id]
	if !ok {
		return account.School{}, account.ErrNotFound
	}
	sch.Status = status
	return *sch, nil
}

func (repo *accountRepository) DeleteSchool(_ context.Context, id int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sch, ok := repo.db.schools[id]
	if !ok {
		return account.ErrNotFound
	}
	delete(repo.db.principals, sch.SchoolEmail)
	delete(repo.db.schools, id)
	return nil
}
