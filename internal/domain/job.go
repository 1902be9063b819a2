package domain

import "time"

// JobKind тип отложенной задачи по заказу
type JobKind string

const (
	JobDeclineTimeout JobKind = "decline_timeout" // автоматическое отклонение неподтверждённого заказа
	JobReminder       JobKind = "reminder"        // напоминание клиенту перед началом
	JobAutoComplete   JobKind = "auto_complete"   // завершение заказа после окончания
)

// JobStatus статус отложенной задачи
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobDone      JobStatus = "done"
	JobCancelled JobStatus = "cancelled"
	JobFailed    JobStatus = "failed"
)

// Job отложенная задача по заказу
type Job struct {
	ID             int64
	IdempotencyKey string
	OrderID        int64
	Kind           JobKind
	RunAt          time.Time
	Status         JobStatus
	Attempts       int
	LastError      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
