package http_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"staybook/internal/auth"
	"staybook/internal/domain"
	apphttp "staybook/internal/http"
	"staybook/internal/password"
	"staybook/internal/repository"
	"staybook/internal/repository/sqlite"
	"staybook/internal/service"
)

const testPassword = "s3cret-pass"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeStorage struct {
	keys         []string
	contentTypes []string
	bodies       [][]byte
	deleted      []string
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	f.bodies = append(f.bodies, data)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type testApp struct {
	router   *gin.Engine
	users    repository.UserRepository
	bookings repository.BookingRepository
	userSvc  service.UserService
	sessions *auth.Sessions
	hasher   *password.Hasher
	storage  *fakeStorage
	logs     *logtest.Hook
	now      time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	app := &testApp{
		users:    sqlite.NewUserRepository(db),
		bookings: sqlite.NewBookingRepository(db),
		sessions: auth.NewSessions("test-secret", time.Hour),
		hasher:   password.NewHasher(bcrypt.MinCost),
		storage:  &fakeStorage{},
		now:      time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sqlite.Migrate(context.Background(), app.users, app.bookings))

	app.userSvc = service.NewUserService(app.users, app.hasher, []string{"admin@example.com"})
	bookingSvc := service.NewBookingService(app.bookings, func() time.Time { return app.now })

	logger, logs := logtest.NewNullLogger()
	app.logs = logs

	app.router = gin.New()
	apphttp.NewHandler(apphttp.Options{
		Users:            app.userSvc,
		Bookings:         bookingSvc,
		Sessions:         app.sessions,
		Storage:          app.storage,
		PictureKeyPrefix: "avatars",
		PageSize:         10,
		Logger:           logger,
	}).RegisterRoutes(app.router)

	return app
}

func (a *testApp) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return a.serve(req, cookies)
}

func (a *testApp) post(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.serve(req, cookies)
}

// postMultipart sends form plus one image file in the pictureFile field.
func (a *testApp) postMultipart(t *testing.T, path string, form url.Values, filename string, content []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range form {
		for _, v := range values {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pictureFile"; filename=%q`, filename))
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.serve(req, cookies)
}

func (a *testApp) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) registerUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		Introduction: "Traveller and cook",
		Description:  "I love discovering small guest houses by the sea.",
	}
	require.NoError(t, a.userSvc.Register(context.Background(), user, testPassword))
	return user
}

func (a *testApp) sessionFor(t *testing.T, user *domain.User) *http.Cookie {
	t.Helper()
	token, err := a.sessions.Issue(user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func (a *testApp) storedUser(t *testing.T, id int64) *domain.User {
	t.Helper()
	user, err := a.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return user
}

func (a *testApp) userCount(t *testing.T) int {
	t.Helper()
	total, err := a.users.Count(context.Background())
	require.NoError(t, err)
	return total
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
