package webapp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
)

type studentHandlers struct {
	deps ServerDeps
}

func registerStudentRoutes(e *echo.Echo, deps ServerDeps) {
	h := studentHandlers{deps: deps}

	g := e.Group("/student", Protected(core.RoleStudent))
	g.GET("", h.dashboard)
	g.GET("/me", h.profile)
	g.GET("/assignments", h.assignments)
	g.GET("/assignments/:id", h.assignmentDetail)
	g.POST("/assignments/:id/submit", h.submitAssignment)
	g.GET("/submissions", h.submissions)
	g.GET("/attendance", h.attendanceSummary)
	g.GET("/studentlist", h.classmates)
	g.GET("/notifications", h.notifications)
	g.POST("/notifications/:id/read", h.markNotificationRead)
	g.POST("/notifications/read-all", h.markAllNotificationsRead)
}

type studentDashboard struct {
	Attendance  schoolapi.AttendanceSummary
	Assignments []schoolapi.Assignment
}

func (h studentHandlers) dashboard(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	var data studentDashboard
	var err error
	if data.Attendance, err = client.StudentAttendanceSummary(rctx); err != nil {
		return err
	}
	if data.Assignments, err = client.ListAssignments(rctx); err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "student_dashboard", newPage(ctx, data))
}

func (h studentHandlers) profile(ctx echo.Context) error {
	user, err := requestClient(ctx).Me(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "profile", newPage(ctx, user))
}

func (h studentHandlers) assignments(ctx echo.Context) error {
	list, err := requestClient(ctx).ListAssignments(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "assignments", newPage(ctx, list))
}

func (h studentHandlers) assignmentDetail(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}
	a, err := requestClient(ctx).AssignmentDetail(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "assignment_detail", newPage(ctx, a))
}

func (h studentHandlers) submitAssignment(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}

	data := new(schoolapi.NewSubmission)
	if err = ctx.Bind(data); err != nil {
		return err
	}

	renderFailed := func(err error) error {
		a, derr := requestClient(ctx).AssignmentDetail(ctx.Request().Context(), id)
		if derr != nil {
			return derr
		}
		p := newPage(ctx, a)
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "assignment_detail", p)
	}

	if err = h.deps.Validate.Struct(data); err != nil {
		return renderFailed(err)
	}
	if _, err = requestClient(ctx).SubmitAssignment(ctx.Request().Context(), id, *data); err != nil {
		return renderFailed(err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/student/submissions")
}

func (h studentHandlers) submissions(ctx echo.Context) error {
	list, err := requestClient(ctx).MySubmissions(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "submissions", newPage(ctx, list))
}

type studentAttendance struct {
	Summary schoolapi.AttendanceSummary
	Entries []schoolapi.MyAttendanceEntry
}

func (h studentHandlers) attendanceSummary(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	var data studentAttendance
	var err error
	if data.Summary, err = client.StudentAttendanceSummary(rctx); err != nil {
		return err
	}
	if data.Entries, err = client.MyAttendance(rctx); err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "student_attendance", newPage(ctx, data))
}

func (h studentHandlers) classmates(ctx echo.Context) error {
	list, err := requestClient(ctx).ListStudents(ctx.Request().Context(), 0)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "students", newPage(ctx, list))
}

func (h studentHandlers) notifications(ctx echo.Context) error {
	list, err := requestClient(ctx).Notifications(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "notifications", newPage(ctx, list))
}

func (h studentHandlers) markNotificationRead(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}
	if err = requestClient(ctx).MarkNotificationRead(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/student/notifications")
}

func (h studentHandlers) markAllNotificationsRead(ctx echo.Context) error {
	if err := requestClient(ctx).MarkAllNotificationsRead(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/student/notifications")
}
