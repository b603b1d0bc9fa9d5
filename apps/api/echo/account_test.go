package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core/account"
)

func TestAccountAPI_signup(t *testing.T) {
	env := newTestEnv(t)

	valid := account.NewUser{
		Name:     "Amina Yusuf",
		Email:    "amina@test.com",
		Class:    "8",
		Password: "Secret123",
	}

	tests := []httpTest{
		{
			name:     "valid signup",
			method:   http.MethodPost,
			path:     "/api/signup",
			body:     marshallObj(t, valid),
			wantCode: http.StatusCreated,
		},
		{
			name:     "duplicate email",
			method:   http.MethodPost,
			path:     "/api/signup",
			body:     marshallObj(t, valid),
			wantCode: http.StatusConflict,
		},
		{
			name:     "invalid payload",
			method:   http.MethodPost,
			path:     "/api/signup",
			body:     []byte(`{"name": "No Email", "class": "8", "password": "Secret123"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.do(t, tt)
		})
	}
}

func TestAccountAPI_login(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accountSvc.RegisterUser(context.Background(), account.NewUser{
		Name:     "Amina Yusuf",
		Email:    "amina@test.com",
		Class:    "8",
		Password: "Secret123",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		rec := env.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"email": "amina@test.com", "password": "Secret123"}`),
			wantCode: http.StatusOK,
		})
		var resp LoginResponse
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, account.KindUser, resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"email": "amina@test.com", "password": "nope123"}`),
			wantCode: http.StatusUnauthorized,
		})
		var resp httpErr
		decodeBody(t, rec, &resp)
		assert.Equal(t, "invalid credentials", resp.Error)
	})

	t.Run("unknown email", func(t *testing.T) {
		env.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"email": "ghost@test.com", "password": "Secret123"}`),
			wantCode: http.StatusUnauthorized,
		})
	})
}

func TestAccountAPI_adminGuard(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.adminToken(t)

	sm, err := env.accountSvc.RegisterSalesMan(context.Background(), account.NewSalesMan{
		Name:     "Kwame Mensah",
		Email:    "kwame@test.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	salesManToken := env.loginToken(t, "kwame@test.com", "Secret123")

	body := []byte(`{"status": "inactive"}`)
	path := "/api/salesman/status/1"

	tests := []httpTest{
		{
			name:     "no token",
			method:   http.MethodPut,
			path:     path,
			body:     body,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "non-admin token",
			method:   http.MethodPut,
			path:     path,
			body:     body,
			token:    salesManToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin token",
			method:   http.MethodPut,
			path:     path,
			body:     body,
			token:    adminToken,
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.do(t, tt)
		})
	}

	got, err := env.accountSvc.GetSalesManByID(context.Background(), sm.ID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusInactive, got.Status)
}

func TestAccountAPI_schoolLifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.adminToken(t)

	rec := env.do(t, httpTest{
		method: http.MethodPost,
		path:   "/api/schools/register",
		body: marshallObj(t, account.NewSchool{
			YourName:    "Ngozi Okafor",
			SchoolName:  "Hilltop High",
			SchoolEmail: "office@hilltop.test",
			Password:    "Secret123",
		}),
		wantCode: http.StatusCreated,
	})
	var sch account.School
	decodeBody(t, rec, &sch)
	assert.Equal(t, account.StatusInactive, sch.Status)

	env.do(t, httpTest{
		method:   http.MethodPut,
		path:     "/api/schools/toggle-status/1",
		token:    adminToken,
		wantCode: http.StatusOK,
	})

	rec = env.do(t, httpTest{
		method:   http.MethodGet,
		path:     "/api/schools/active",
		wantCode: http.StatusOK,
	})
	var active []account.School
	decodeBody(t, rec, &active)
	require.Len(t, active, 1)

	env.do(t, httpTest{
		method:   http.MethodDelete,
		path:     "/api/schools/1",
		token:    adminToken,
		wantCode: http.StatusNoContent,
	})
}
