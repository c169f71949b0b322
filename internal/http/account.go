package http

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"staybook/internal/auth"
	"staybook/internal/domain"
	"staybook/internal/service"
	"staybook/internal/storage"
)

const maxPictureSize = 2 << 20

const (
	msgRegistered      = "Your account has been created! You can now log in!"
	msgProfileSaved    = "Profile data saved successfully!"
	msgPasswordChanged = "Your password has been changed!"
	msgEmailTaken      = "Another user already registered with this email address, please change it."
	msgWrongPassword   = "The password you typed is not your current password!"
)

func (h *Handler) showLogin(c *gin.Context) {
	var state auth.LoginState
	if raw, err := c.Cookie(auth.LoginStateCookie); err == nil && raw != "" {
		state = auth.DecodeLoginState(raw)
		h.clearCookie(c, auth.LoginStateCookie)
	}

	h.render(c, http.StatusOK, "login.html", gin.H{
		"hasError": state.LastError() != "",
		"username": state.LastUsername(),
	})
}

func (h *Handler) register(c *gin.Context) {
	var form RegistrationForm
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		errs = bindForm(c, &form)
		if errs.Empty() {
			err := h.users.Register(c.Request.Context(), form.user(), form.Password)
			switch {
			case errors.Is(err, service.ErrUserAlreadyExists):
				errs.Add("email", msgEmailTaken)
			case err != nil:
				h.fail(c, err)
				return
			default:
				h.addFlash(c, "success", msgRegistered)
				h.redirect(c, "/login")
				return
			}
		}
	}

	form.Password, form.PasswordConfirm = "", ""
	h.render(c, formStatus(errs), "registration.html", gin.H{
		"form":   form,
		"errors": errs,
	})
}

func (h *Handler) editProfile(c *gin.Context, user *domain.User) {
	form := profileFormFrom(user)
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		form = ProfileForm{}
		errs = bindForm(c, &form)

		var pictureKey string
		if file, err := c.FormFile("pictureFile"); err == nil && errs.Empty() {
			url, key, problem := h.uploadPicture(c.Request.Context(), user.ID, file)
			if problem != "" {
				errs.Add("pictureFile", problem)
			} else {
				form.Picture, pictureKey = url, key
			}
		}

		if errs.Empty() {
			updated := *user
			form.applyTo(&updated)

			err := h.users.UpdateProfile(c.Request.Context(), &updated)
			if err != nil && pictureKey != "" {
				h.discardPicture(c.Request.Context(), pictureKey)
				form.Picture = user.Picture
			}
			switch {
			case errors.Is(err, service.ErrUserAlreadyExists):
				errs.Add("email", msgEmailTaken)
			case err != nil:
				h.fail(c, err)
				return
			default:
				*user = updated
				h.addFlash(c, "success", msgProfileSaved)
			}
		}
	}

	h.render(c, formStatus(errs), "profile.html", gin.H{
		"form":   form,
		"errors": errs,
	})
}

// uploadPicture stores an uploaded profile picture and returns its URL and
// object key, or a message for the user when the file is refused.
func (h *Handler) uploadPicture(ctx context.Context, userID int64, file *multipart.FileHeader) (url, key, problem string) {
	if h.storage == nil {
		return "", "", "Picture uploads are not available."
	}
	if file.Size > maxPictureSize {
		return "", "", "The picture is too large (2 MB maximum)."
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", "Please upload an image file."
	}

	body, err := file.Open()
	if err != nil {
		h.logger.WithError(err).Warn("open uploaded picture")
		return "", "", "The picture could not be read."
	}
	defer body.Close()

	key = storage.PictureKey(h.keyPrefix, userID, file.Filename)
	url, err = h.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("upload picture")
		return "", "", "The picture could not be saved, please try again."
	}
	return url, key, ""
}

// discardPicture removes a picture uploaded for a profile that was not saved.
func (h *Handler) discardPicture(ctx context.Context, key string) {
	if err := h.storage.Delete(ctx, key); err != nil {
		h.logger.WithError(err).WithField("key", key).Warn("delete unused picture")
	}
}

func (h *Handler) updatePassword(c *gin.Context, user *domain.User) {
	var form PasswordForm
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		errs = bindForm(c, &form)
		if errs.Empty() {
			err := h.users.ChangePassword(c.Request.Context(), user, form.update())
			switch {
			case errors.Is(err, service.ErrPasswordMismatch):
				errs.Add("oldPassword", msgWrongPassword)
			case err != nil:
				h.fail(c, err)
				return
			default:
				h.addFlash(c, "success", msgPasswordChanged)
				h.redirect(c, "/")
				return
			}
		}
	}

	h.render(c, formStatus(errs), "password.html", gin.H{
		"errors": errs,
	})
}

func (h *Handler) showAccountHome(c *gin.Context, user *domain.User) {
	h.render(c, http.StatusOK, "account_index.html", gin.H{
		"user": user,
	})
}

func (h *Handler) listBookings(c *gin.Context, user *domain.User) {
	lists, err := h.bookings.ListForBooker(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "bookings.html", gin.H{
		"upcoming": lists.Upcoming,
		"past":     lists.Past,
	})
}

func formStatus(errs FormErrors) int {
	if errs.Empty() {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}
