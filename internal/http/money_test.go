package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// nbsp is the French digit group separator.
const nbsp = "\u00a0"

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00 €", formatMoney(0))
	assert.Equal(t, "95,50 €", formatMoney(95.5))
	assert.Equal(t, "1"+nbsp+"250,00 €", formatMoney(1250))
	assert.Equal(t, "1"+nbsp+"234"+nbsp+"567,89 €", formatMoney(1234567.891))
}

func TestFormErrors_KeepsFirstMessage(t *testing.T) {
	errs := FormErrors{}
	assert.True(t, errs.Empty())

	errs.Add("email", "first")
	errs.Add("email", "second")

	assert.False(t, errs.Empty())
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("password"))
	assert.Equal(t, "first", errs["email"])
}
