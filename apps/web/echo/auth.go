package webapp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
)

type authHandlers struct {
	deps ServerDeps
}

func registerAuthRoutes(e *echo.Echo, deps ServerDeps) {
	h := authHandlers{deps: deps}

	pub := Public()
	e.GET("/", h.loginPage, pub)
	e.GET("/login", h.loginPage, pub)
	e.POST("/login", h.loginSubmit, pub)
	e.GET("/register", h.registerPage, pub)
	e.POST("/register", h.registerSubmit, pub)

	// landing pages for the links the backend emails out
	e.GET("/activate/:uid/:token", h.activateAccount, pub)
	e.GET("/reset-password/:uid/:token", h.resetPasswordPage, pub)
	e.POST("/reset-password/:uid/:token", h.resetPasswordSubmit, pub)

	e.GET("/forgot-password", h.forgotPasswordPage)
	e.POST("/forgot-password", h.forgotPasswordSubmit)

	e.GET("/change-password", h.changePasswordPage, Protected())
	e.POST("/change-password", h.changePasswordSubmit, Protected())
	e.POST("/logout", h.logout, Protected())
}

func (h authHandlers) loginPage(ctx echo.Context) error {
	p := newPage(ctx, nil)
	p.Next = safeNext(ctx.QueryParam("next"))
	if ctx.QueryParam("registered") != "" {
		p.Notice = "Registration successful. Please check your email to activate your account."
	}
	if ctx.QueryParam("reset") != "" {
		p.Notice = "Password reset. You can sign in with your new password."
	}
	return ctx.Render(http.StatusOK, "login", p)
}

func (h authHandlers) loginSubmit(ctx echo.Context) error {
	data := new(session.Credentials)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	renderFailed := func(err error) error {
		p := newPage(ctx, data)
		p.Error = formError(err, h.deps.Translator)
		p.Next = safeNext(ctx.FormValue("next"))
		return ctx.Render(http.StatusOK, "login", p)
	}

	if err := h.deps.Validate.Struct(data); err != nil {
		return renderFailed(err)
	}

	// credential rejection keeps the session Anonymous; only the login
	// view hears about it
	_, landing, err := requestManager(ctx).Login(ctx.Request().Context(), *data)
	if err != nil {
		if core.IsShutdown(err) {
			return err
		}
		return renderFailed(err)
	}

	if next := safeNext(ctx.FormValue("next")); next != "" {
		landing = next
	}
	return ctx.Redirect(http.StatusSeeOther, landing)
}

func (h authHandlers) logout(ctx echo.Context) error {
	return ctx.Redirect(http.StatusSeeOther, requestManager(ctx).Logout())
}

func (h authHandlers) registerPage(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "register", newPage(ctx, nil))
}

func (h authHandlers) registerSubmit(ctx echo.Context) error {
	data := new(schoolapi.Registration)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	renderFailed := func(err error) error {
		p := newPage(ctx, data)
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "register", p)
	}

	if err := h.deps.Validate.Struct(data); err != nil {
		return renderFailed(err)
	}
	if data.Role == core.RoleStudent && data.Classroom == 0 {
		return renderFailed(core.NewValidationError(errors.New("classroom is required for students")))
	}
	if _, err := requestClient(ctx).Register(ctx.Request().Context(), *data); err != nil {
		return renderFailed(err)
	}
	return ctx.Redirect(http.StatusSeeOther, session.LoginPath+"?registered=1")
}

func (h authHandlers) activateAccount(ctx echo.Context) error {
	p := newPage(ctx, nil)
	err := requestClient(ctx).ActivateAccount(ctx.Request().Context(), ctx.Param("uid"), ctx.Param("token"))
	if err != nil {
		p.Error = formError(err, h.deps.Translator)
	} else {
		p.Notice = "Account activated. You can sign in now."
	}
	return ctx.Render(http.StatusOK, "login", p)
}

func (h authHandlers) resetPasswordPage(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "reset_password", newPage(ctx, nil))
}

func (h authHandlers) resetPasswordSubmit(ctx echo.Context) error {
	data := new(schoolapi.PasswordReset)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	renderFailed := func(err error) error {
		p := newPage(ctx, nil)
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "reset_password", p)
	}

	if err := h.deps.Validate.Struct(data); err != nil {
		return renderFailed(err)
	}
	err := requestClient(ctx).ResetPassword(ctx.Request().Context(), ctx.Param("uid"), ctx.Param("token"), *data)
	if err != nil {
		return renderFailed(err)
	}
	return ctx.Redirect(http.StatusSeeOther, session.LoginPath+"?reset=1")
}

func (h authHandlers) forgotPasswordPage(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "forgot_password", newPage(ctx, nil))
}

func (h authHandlers) forgotPasswordSubmit(ctx echo.Context) error {
	email := ctx.FormValue("email")
	p := newPage(ctx, nil)
	if email == "" {
		p.Error = "email is required"
		return ctx.Render(http.StatusOK, "forgot_password", p)
	}

	if err := requestClient(ctx).ForgotPassword(ctx.Request().Context(), email); err != nil {
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "forgot_password", p)
	}
	p.Notice = "If this email exists, a reset link has been sent."
	return ctx.Render(http.StatusOK, "forgot_password", p)
}

func (h authHandlers) changePasswordPage(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "change_password", newPage(ctx, nil))
}

func (h authHandlers) changePasswordSubmit(ctx echo.Context) error {
	data := new(schoolapi.PasswordChange)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	p := newPage(ctx, nil)
	if err := h.deps.Validate.Struct(data); err != nil {
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "change_password", p)
	}
	if err := requestClient(ctx).ChangePassword(ctx.Request().Context(), *data); err != nil {
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "change_password", p)
	}
	p.Notice = "Password changed."
	return ctx.Render(http.StatusOK, "change_password", p)
}
