package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"task-api/internal/config"
	"task-api/internal/repository"
	"task-api/internal/testdb"
	"task-api/internal/utils"
	"task-api/pkg/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memTokenStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{revoked: map[string]bool{}}
}

func (m *memTokenStore) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

type fixture struct {
	db       *gorm.DB
	auth     *AuthService
	tasks    *TaskService
	profiles *ProfileService
	category *CategoryService
	tokens   *memTokenStore
	storeDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{Admin: config.AdminConfig{Name: "Admin", Email: "Admin@Example.com", Password: "admin-password"}}
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	categories := repository.NewCategoryRepository(db)
	tokens := newMemTokenStore()

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.LocalStorageConfig{BasePath: dir, BaseURL: "http://test/storage"})
	require.NoError(t, err)

	return &fixture{
		db:       db,
		auth:     NewAuthService(users, utils.NewJWTManager("secret", "HS256", time.Hour), tokens, cfg, logger),
		tasks:    NewTaskService(tasks, users, categories),
		profiles: NewProfileService(repository.NewProfileRepository(db), users, store, 1<<20, logger),
		category: NewCategoryService(categories),
		tokens:   tokens,
		storeDir: dir,
	}
}

// fileHeader builds a multipart file header the way gin would hand it over
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

// pngBytes minimal PNG signature, enough for content sniffing
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
