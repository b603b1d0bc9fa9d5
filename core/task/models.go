package task

import (
	"time"

	"github.com/enlightiq/enlightiq/core"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"` // e.g. Low, Medium, High
	Remarks     string    `json:"remarks"`
	SalesManID  int64     `json:"salesManId"`
}

type NewTask struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=Low Medium High"`
}

func (nt *NewTask) Validate() error {
	nt.Title = core.CleanString(nt.Title)
	nt.Priority = core.CleanString(nt.Priority)
	return core.Validate.Struct(nt)
}

// RemarkUpdate overwrites a task's remarks; history is not retained.
type RemarkUpdate struct {
	Role   string `json:"role" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Remark string `json:"remark" validate:"required"`
}

func (ru *RemarkUpdate) Validate() error {
	ru.Role = core.CleanString(ru.Role)
	ru.Name = core.CleanString(ru.Name)
	ru.Remark = core.CleanString(ru.Remark)
	return core.Validate.Struct(ru)
}
