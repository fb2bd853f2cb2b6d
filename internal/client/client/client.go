package client

import (
	"context"

	"github.com/dmitrijs2005/smarttask/internal/client/models"
)

// Client is the contract of the remote task API.
type Client interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (string, *models.User, error)
	Me(ctx context.Context) (*models.User, error)

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, draft models.Draft) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	CompleteTask(ctx context.Context, id string, minutes int) error

	SuggestTime(ctx context.Context) (string, error)
	VoiceTask(ctx context.Context, text string) (*models.Task, error)
}
