package webapp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
)

type principalHandlers struct {
	deps ServerDeps
}

func registerPrincipalRoutes(e *echo.Echo, deps ServerDeps) {
	h := principalHandlers{deps: deps}

	g := e.Group("/principal", Protected(core.RolePrincipal))
	g.GET("", h.dashboard)
	g.GET("/me", h.profile)
	g.GET("/assign", h.assignPage)
	g.POST("/assign", h.assignSubmit)
	g.GET("/pending-teachers", h.pendingTeachers)
	g.POST("/pending-teachers/:id/approve", h.approveTeacher)
	g.GET("/attendance", h.attendance)
	g.GET("/teacherlist", h.teachers)
	g.GET("/studentlist", h.students)
}

func (h principalHandlers) dashboard(ctx echo.Context) error {
	stats, err := requestClient(ctx).PrincipalDashboardStats(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "principal_dashboard", newPage(ctx, stats))
}

func (h principalHandlers) profile(ctx echo.Context) error {
	user, err := requestClient(ctx).Me(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "profile", newPage(ctx, user))
}

type assignForm struct {
	Form     *schoolapi.TeacherAssignment
	Teachers []schoolapi.Teacher
	Subjects []schoolapi.Subject
}

func (h principalHandlers) assignForm(ctx echo.Context, form *schoolapi.TeacherAssignment) (assignForm, error) {
	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	data := assignForm{Form: form}
	var err error
	if data.Teachers, err = client.ListTeachers(rctx); err != nil {
		return data, err
	}
	data.Subjects, err = client.ListSubjects(rctx, 0)
	return data, err
}

func (h principalHandlers) assignPage(ctx echo.Context) error {
	data, err := h.assignForm(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "assign_teacher", newPage(ctx, data))
}

func (h principalHandlers) assignSubmit(ctx echo.Context) error {
	form := new(schoolapi.TeacherAssignment)
	if err := ctx.Bind(form); err != nil {
		return err
	}

	renderFailed := func(err error) error {
		data, ferr := h.assignForm(ctx, form)
		if ferr != nil {
			return ferr
		}
		p := newPage(ctx, data)
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "assign_teacher", p)
	}

	if err := h.deps.Validate.Struct(form); err != nil {
		return renderFailed(err)
	}
	if err := requestClient(ctx).AssignTeacher(ctx.Request().Context(), *form); err != nil {
		return renderFailed(err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/principal/teacherlist")
}

func (h principalHandlers) pendingTeachers(ctx echo.Context) error {
	list, err := requestClient(ctx).PendingTeachers(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "pending_teachers", newPage(ctx, list))
}

func (h principalHandlers) approveTeacher(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid teacher id")
	}
	if err := requestClient(ctx).ApproveTeacher(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/principal/pending-teachers")
}

type principalAttendance struct {
	Date        string
	Classroom   int
	Subject     int
	Classrooms  []schoolapi.Classroom
	Entries     []schoolapi.DailyAttendanceEntry
	Percentages []schoolapi.AttendancePercentage
}

func (h principalHandlers) attendance(ctx echo.Context) error {
	data := principalAttendance{Date: ctx.QueryParam("date")}
	if data.Date == "" {
		data.Date = time.Now().Format("2006-01-02")
	}
	data.Classroom, _ = strconv.Atoi(ctx.QueryParam("classroom"))
	data.Subject, _ = strconv.Atoi(ctx.QueryParam("subject"))

	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	var err error
	if data.Classrooms, err = client.ListClassrooms(rctx); err != nil {
		return err
	}
	if data.Entries, err = client.PrincipalDailyAttendance(rctx, data.Date, data.Classroom, data.Subject); err != nil {
		return err
	}
	// per-student rates only make sense against a concrete classroom
	if data.Classroom != 0 {
		if data.Percentages, err = client.PrincipalStudentPercentages(rctx, data.Classroom, data.Subject); err != nil {
			return err
		}
	}
	return ctx.Render(http.StatusOK, "principal_attendance", newPage(ctx, data))
}

func (h principalHandlers) teachers(ctx echo.Context) error {
	list, err := requestClient(ctx).ListTeachers(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "teachers", newPage(ctx, list))
}

func (h principalHandlers) students(ctx echo.Context) error {
	classroomID, _ := strconv.Atoi(ctx.QueryParam("classroom"))
	list, err := requestClient(ctx).ListStudents(ctx.Request().Context(), classroomID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "students", newPage(ctx, list))
}
