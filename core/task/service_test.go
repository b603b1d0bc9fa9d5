package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/task"
	"github.com/enlightiq/enlightiq/storage/database/inmem"
)

func setup(t *testing.T) (*task.Service, *account.Service) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	accountSvc := account.NewService(inmemdb.NewAccountRepository(db), nil)
	taskSvc := task.NewService(inmemdb.NewTaskRepository(db), accountSvc)
	return taskSvc, accountSvc
}

func createSalesMan(t *testing.T, svc *account.Service) account.SalesMan {
	sm, err := svc.RegisterSalesMan(context.Background(), account.NewSalesMan{
		Name:     "Kwame Mensah",
		Email:    "kwame@test.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	return sm
}

func TestService_Assign(t *testing.T) {
	ctx := context.Background()
	taskSvc, accountSvc := setup(t)
	sm := createSalesMan(t, accountSvc)

	nt := task.NewTask{
		Title:    "Visit Hilltop High",
		DueDate:  time.Now().Add(48 * time.Hour),
		Priority: "High",
	}

	created, err := taskSvc.Assign(ctx, sm.ID, nt)
	require.NoError(t, err)
	assert.Equal(t, sm.ID, created.SalesManID)
	assert.Equal(t, "High", created.Priority)

	tasks, err := taskSvc.QueryBySalesMan(ctx, sm.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	// unknown salesman reads as not found
	_, err = taskSvc.Assign(ctx, 999, nt)
	assert.True(t, core.IsNotFound(err))
}

func TestService_UpdateRemark(t *testing.T) {
	ctx := context.Background()
	taskSvc, accountSvc := setup(t)
	sm := createSalesMan(t, accountSvc)

	created, err := taskSvc.Assign(ctx, sm.ID, task.NewTask{
		Title:   "Visit Hilltop High",
		DueDate: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	t.Run("salesman remark", func(t *testing.T) {
		updated, err := taskSvc.UpdateRemark(ctx, created.ID, task.RemarkUpdate{
			Role:   "SALESMAN",
			Name:   "Kwame Mensah",
			Remark: "school visited",
		})
		require.NoError(t, err)
		assert.Equal(t, "Salesman Kwame Mensah: school visited", updated.Remarks)
	})

	t.Run("any other role is recorded as admin and overwrites", func(t *testing.T) {
		updated, err := taskSvc.UpdateRemark(ctx, created.ID, task.RemarkUpdate{
			Role:   "coordinator",
			Name:   "Ade",
			Remark: "follow up next week",
		})
		require.NoError(t, err)
		assert.Equal(t, "Admin Ade: follow up next week", updated.Remarks)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := taskSvc.UpdateRemark(ctx, 999, task.RemarkUpdate{Role: "admin", Name: "A", Remark: "x"})
		assert.True(t, core.IsNotFound(err))
	})
}
