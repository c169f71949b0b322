package http_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain"
)

func TestAdmin_ForbiddenForPlainUsers(t *testing.T) {
	app := newTestApp(t)
	user := app.registerUser(t, "jane@example.com")

	for _, path := range []string{"/admin/users", "/admin/bookings"} {
		rec := app.get(t, path, app.sessionFor(t, user))
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestAdmin_AnonymousRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/admin/users")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAdminUsers_Paginates(t *testing.T) {
	app := newTestApp(t)
	admin := app.registerUser(t, "admin@example.com")
	for i := 1; i <= 11; i++ {
		app.registerUser(t, fmt.Sprintf("user%d@example.com", i))
	}

	rec := app.get(t, "/admin/users?page=2", app.sessionFor(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Page 2 of 2")
	assert.Contains(t, body, "user10@example.com")
	assert.Contains(t, body, "user11@example.com")
	assert.NotContains(t, body, "user1@example.com")

	rec = app.get(t, "/admin/users?page=0", app.sessionFor(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 1 of 2")
	assert.Contains(t, rec.Body.String(), "user1@example.com")

	rec = app.get(t, "/admin/users?page=9", app.sessionFor(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 9 of 2")
	assert.NotContains(t, rec.Body.String(), "user11@example.com")
}

func TestAdminBookings_Paginates(t *testing.T) {
	app := newTestApp(t)
	admin := app.registerUser(t, "admin@example.com")
	for i := 0; i < 3; i++ {
		_, err := app.bookings.Create(context.Background(), &domain.Booking{
			BookerID:  admin.ID,
			AdID:      int64(100 + i),
			StartDate: app.now.AddDate(0, 0, i),
			EndDate:   app.now.AddDate(0, 0, i+2),
		})
		require.NoError(t, err)
	}

	rec := app.get(t, "/admin/bookings", app.sessionFor(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 1 of 1")
	assert.Contains(t, rec.Body.String(), app.now.AddDate(0, 0, 4).Format("02/01/2006"))
}

func TestAdminBookings_HugePageIsEmpty(t *testing.T) {
	app := newTestApp(t)
	admin := app.registerUser(t, "admin@example.com")
	_, err := app.bookings.Create(context.Background(), &domain.Booking{
		BookerID:  admin.ID,
		AdID:      100,
		StartDate: app.now.AddDate(0, 0, 3),
		EndDate:   app.now.AddDate(0, 0, 5),
	})
	require.NoError(t, err)
	arrival := app.now.AddDate(0, 0, 3).Format("02/01/2006")

	rec := app.get(t, "/admin/bookings?page=9223372036854775807", app.sessionFor(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), arrival)
	assert.NotContains(t, rec.Body.String(), "?page=-")

	// out of int range is unreadable, like any other malformed value
	rec = app.get(t, "/admin/bookings?page=99999999999999999999", app.sessionFor(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 1 of 1")
	assert.Contains(t, rec.Body.String(), arrival)
}
