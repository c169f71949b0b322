package http_test

import (
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_LogsSuccessfulRequestsAtInfo(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	entry := app.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, "/health", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, http.MethodGet, entry.Data["method"])
}
