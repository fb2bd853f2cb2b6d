package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/smarttask/internal/client/client"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "smarttask.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getMeta(t *testing.T, db *sql.DB, k string) ([]byte, bool) {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false
	}
	require.NoError(t, err)
	return v, true
}

// ---- fake client ----

// fakeClient implements client.Client for service tests. Every method records
// its call and returns the configured result.
type fakeClient struct {
	RegisterErr error

	LoginToken string
	LoginUser  *models.User
	LoginErr   error

	MeUser *models.User
	MeErr  error

	ListRet   []models.Task
	ListErr   error
	ListBlock chan struct{}

	CreateRet *models.Task
	CreateErr error

	DeleteErr   error
	CompleteErr error

	SuggestRet string
	SuggestErr error

	VoiceRet *models.Task
	VoiceErr error

	// call log
	Calls          []string
	LastRegister   [3]string
	LastLoginEmail string
	LastDraft      models.Draft
	LastDeleteID   string
	LastCompleteID string
	LastMinutes    int
	LastTranscript string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Register(ctx context.Context, name, email string, password []byte) error {
	f.Calls = append(f.Calls, "Register")
	f.LastRegister = [3]string{name, email, string(password)}
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (string, *models.User, error) {
	f.Calls = append(f.Calls, "Login")
	f.LastLoginEmail = email
	if f.LoginErr != nil {
		return "", nil, f.LoginErr
	}
	return f.LoginToken, f.LoginUser, nil
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.Calls = append(f.Calls, "Me")
	return f.MeUser, f.MeErr
}

func (f *fakeClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	f.Calls = append(f.Calls, "ListTasks")
	if f.ListBlock != nil {
		<-f.ListBlock
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]models.Task(nil), f.ListRet...), nil
}

func (f *fakeClient) CreateTask(ctx context.Context, draft models.Draft) (*models.Task, error) {
	f.Calls = append(f.Calls, "CreateTask")
	f.LastDraft = draft
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) DeleteTask(ctx context.Context, id string) error {
	f.Calls = append(f.Calls, "DeleteTask")
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) CompleteTask(ctx context.Context, id string, minutes int) error {
	f.Calls = append(f.Calls, "CompleteTask")
	f.LastCompleteID = id
	f.LastMinutes = minutes
	return f.CompleteErr
}

func (f *fakeClient) SuggestTime(ctx context.Context) (string, error) {
	f.Calls = append(f.Calls, "SuggestTime")
	return f.SuggestRet, f.SuggestErr
}

func (f *fakeClient) VoiceTask(ctx context.Context, text string) (*models.Task, error) {
	f.Calls = append(f.Calls, "VoiceTask")
	f.LastTranscript = text
	return f.VoiceRet, f.VoiceErr
}
