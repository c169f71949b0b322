package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"staybook/internal/domain"
)

// formLevel is the FormErrors key for errors not tied to a single field.
const formLevel = "_form"

// FormErrors maps form field names to their first validation message.
type FormErrors map[string]string

func (e FormErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FormErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e FormErrors) Empty() bool {
	return len(e) == 0
}

type RegistrationForm struct {
	FirstName       string `form:"firstName" binding:"required,max=255"`
	LastName        string `form:"lastName" binding:"required,max=255"`
	Email           string `form:"email" binding:"required,email"`
	Picture         string `form:"picture" binding:"omitempty,url"`
	Password        string `form:"password" binding:"required,min=8"`
	PasswordConfirm string `form:"passwordConfirm" binding:"required,eqfield=Password"`
	Introduction    string `form:"introduction" binding:"required,min=10,max=255"`
	Description     string `form:"description" binding:"required,min=30"`
}

func (f RegistrationForm) user() *domain.User {
	return &domain.User{
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        f.Email,
		Picture:      strings.TrimSpace(f.Picture),
		Introduction: strings.TrimSpace(f.Introduction),
		Description:  strings.TrimSpace(f.Description),
	}
}

type ProfileForm struct {
	FirstName    string `form:"firstName" binding:"required,max=255"`
	LastName     string `form:"lastName" binding:"required,max=255"`
	Email        string `form:"email" binding:"required,email"`
	Picture      string `form:"picture" binding:"omitempty,url"`
	Introduction string `form:"introduction" binding:"required,min=10,max=255"`
	Description  string `form:"description" binding:"required,min=30"`
}

func profileFormFrom(user *domain.User) ProfileForm {
	return ProfileForm{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Picture:      user.Picture,
		Introduction: user.Introduction,
		Description:  user.Description,
	}
}

func (f ProfileForm) applyTo(user *domain.User) {
	user.FirstName = strings.TrimSpace(f.FirstName)
	user.LastName = strings.TrimSpace(f.LastName)
	user.Email = f.Email
	user.Picture = strings.TrimSpace(f.Picture)
	user.Introduction = strings.TrimSpace(f.Introduction)
	user.Description = strings.TrimSpace(f.Description)
}

type PasswordForm struct {
	OldPassword     string `form:"oldPassword" binding:"required"`
	NewPassword     string `form:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

func (f PasswordForm) update() domain.PasswordUpdate {
	return domain.PasswordUpdate{
		OldPassword:     f.OldPassword,
		NewPassword:     f.NewPassword,
		ConfirmPassword: f.ConfirmPassword,
	}
}

var validatorOnce sync.Once

// setupValidator makes validation errors report form field names.
func setupValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
}

// bindForm binds the request body into form. The result is never nil.
func bindForm(c *gin.Context, form any) FormErrors {
	errs := FormErrors{}
	err := c.ShouldBind(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(formLevel, "The submitted form could not be read.")
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), validationMessage(fe))
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This value should not be blank."
	case "email":
		return "Please enter a valid email address."
	case "url":
		return "Please enter a valid URL."
	case "min":
		return fmt.Sprintf("This value is too short. It should have %s characters or more.", fe.Param())
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
	case "eqfield":
		return "The passwords do not match."
	default:
		return "This value is not valid."
	}
}
