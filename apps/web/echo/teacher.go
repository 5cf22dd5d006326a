package webapp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
)

type teacherHandlers struct {
	deps ServerDeps
}

func registerTeacherRoutes(e *echo.Echo, deps ServerDeps) {
	h := teacherHandlers{deps: deps}

	g := e.Group("/teacher", Protected(core.RoleTeacher))
	g.GET("", h.dashboard)
	g.GET("/me", h.profile)
	g.GET("/assignments", h.assignments)
	g.GET("/assignments/create", h.createAssignmentPage)
	g.POST("/assignments/create", h.createAssignmentSubmit)
	g.GET("/attendance", h.attendancePage)
	g.POST("/attendance", h.attendanceSubmit)
	g.GET("/reports", h.reports)
	g.GET("/submissions", h.submissions)
	g.POST("/submissions/:id/evaluate", h.evaluateSubmission)
	g.GET("/submissions/:id/suggestion", h.aiSuggestion)
	g.GET("/studentlist", h.students)
}

type teacherDashboard struct {
	Classrooms []schoolapi.Classroom
	Subjects   []schoolapi.Subject
}

func (h teacherHandlers) dashboard(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	var data teacherDashboard
	var err error
	if data.Classrooms, err = client.MyClassrooms(rctx); err != nil {
		return err
	}
	if data.Subjects, err = client.MySubjects(rctx, 0); err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "teacher_dashboard", newPage(ctx, data))
}

func (h teacherHandlers) profile(ctx echo.Context) error {
	user, err := requestClient(ctx).Me(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "profile", newPage(ctx, user))
}

func (h teacherHandlers) assignments(ctx echo.Context) error {
	list, err := requestClient(ctx).ListAssignments(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "teacher_assignments", newPage(ctx, list))
}

type assignmentForm struct {
	Form       *schoolapi.NewAssignment
	Classrooms []schoolapi.Classroom
	Subjects   []schoolapi.Subject
}

func (h teacherHandlers) assignmentForm(ctx echo.Context, form *schoolapi.NewAssignment) (assignmentForm, error) {
	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	data := assignmentForm{Form: form}
	var err error
	if data.Classrooms, err = client.MyClassrooms(rctx); err != nil {
		return data, err
	}
	data.Subjects, err = client.MySubjects(rctx, 0)
	return data, err
}

func (h teacherHandlers) createAssignmentPage(ctx echo.Context) error {
	data, err := h.assignmentForm(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "assignment_create", newPage(ctx, data))
}

func (h teacherHandlers) createAssignmentSubmit(ctx echo.Context) error {
	form := new(schoolapi.NewAssignment)
	if err := ctx.Bind(form); err != nil {
		return err
	}

	renderFailed := func(err error) error {
		data, ferr := h.assignmentForm(ctx, form)
		if ferr != nil {
			return ferr
		}
		p := newPage(ctx, data)
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "assignment_create", p)
	}

	if err := h.deps.Validate.Struct(form); err != nil {
		return renderFailed(err)
	}
	if _, err := requestClient(ctx).CreateAssignment(ctx.Request().Context(), *form); err != nil {
		return renderFailed(err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/teacher/assignments")
}

type attendanceSheet struct {
	Date       string
	Classroom  int
	Subject    int
	Classrooms []schoolapi.Classroom
	Subjects   []schoolapi.Subject
	Students   []schoolapi.Student
}

func (h teacherHandlers) attendancePage(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	sheet := attendanceSheet{Date: time.Now().Format("2006-01-02")}
	sheet.Classroom, _ = strconv.Atoi(ctx.QueryParam("classroom"))
	sheet.Subject, _ = strconv.Atoi(ctx.QueryParam("subject"))

	var err error
	if sheet.Classrooms, err = client.MyClassrooms(rctx); err != nil {
		return err
	}
	if sheet.Subjects, err = client.MySubjects(rctx, sheet.Classroom); err != nil {
		return err
	}
	if sheet.Classroom != 0 {
		if sheet.Students, err = client.ListStudents(rctx, sheet.Classroom); err != nil {
			return err
		}
	}
	return ctx.Render(http.StatusOK, "attendance_mark", newPage(ctx, sheet))
}

func (h teacherHandlers) attendanceSubmit(ctx echo.Context) error {
	bulk := schoolapi.BulkAttendance{
		Date: ctx.FormValue("date"),
	}
	bulk.Classroom, _ = strconv.Atoi(ctx.FormValue("classroom"))
	bulk.Subject, _ = strconv.Atoi(ctx.FormValue("subject"))

	// one status field per student, named status_<id>
	form, err := ctx.FormParams()
	if err != nil {
		return err
	}
	for name, values := range form {
		if len(values) == 0 || len(name) <= len("status_") || name[:len("status_")] != "status_" {
			continue
		}
		id, err := strconv.Atoi(name[len("status_"):])
		if err != nil {
			continue
		}
		bulk.Records = append(bulk.Records, schoolapi.AttendanceRecord{Student: id, Status: values[0]})
	}

	if err = h.deps.Validate.Struct(bulk); err != nil {
		p := newPage(ctx, attendanceSheet{Date: bulk.Date, Classroom: bulk.Classroom, Subject: bulk.Subject})
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "attendance_mark", p)
	}
	if err = requestClient(ctx).MarkAttendance(ctx.Request().Context(), bulk); err != nil {
		p := newPage(ctx, attendanceSheet{Date: bulk.Date, Classroom: bulk.Classroom, Subject: bulk.Subject})
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "attendance_mark", p)
	}
	return ctx.Redirect(http.StatusSeeOther, "/teacher/reports?date="+bulk.Date+
		"&classroom="+strconv.Itoa(bulk.Classroom)+"&subject="+strconv.Itoa(bulk.Subject))
}

type teacherReports struct {
	Date        string
	Classroom   int
	Subject     int
	Daily       []schoolapi.DailyAttendanceEntry
	Percentages []schoolapi.AttendancePercentage
}

func (h teacherHandlers) reports(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	client := requestClient(ctx)

	data := teacherReports{Date: ctx.QueryParam("date")}
	if data.Date == "" {
		data.Date = time.Now().Format("2006-01-02")
	}
	data.Classroom, _ = strconv.Atoi(ctx.QueryParam("classroom"))
	data.Subject, _ = strconv.Atoi(ctx.QueryParam("subject"))

	var err error
	if data.Subject != 0 && data.Classroom != 0 {
		if data.Daily, err = client.TeacherDailyReport(rctx, data.Date, data.Subject, data.Classroom); err != nil {
			return err
		}
		if data.Percentages, err = client.TeacherAttendancePercentage(rctx, data.Subject, data.Classroom); err != nil {
			return err
		}
	}
	return ctx.Render(http.StatusOK, "teacher_reports", newPage(ctx, data))
}

func (h teacherHandlers) submissions(ctx echo.Context) error {
	list, err := requestClient(ctx).TeacherSubmissions(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "teacher_submissions", newPage(ctx, list))
}

func (h teacherHandlers) evaluateSubmission(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}

	eval := new(schoolapi.Evaluation)
	if err = ctx.Bind(eval); err != nil {
		return err
	}

	renderFailed := func(err error) error {
		list, lerr := requestClient(ctx).TeacherSubmissions(ctx.Request().Context())
		if lerr != nil {
			return lerr
		}
		p := newPage(ctx, list)
		p.Error = formError(err, h.deps.Translator)
		return ctx.Render(http.StatusOK, "teacher_submissions", p)
	}

	if err = h.deps.Validate.Struct(eval); err != nil {
		return renderFailed(err)
	}
	if _, err = requestClient(ctx).EvaluateSubmission(ctx.Request().Context(), id, *eval); err != nil {
		return renderFailed(err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/teacher/submissions")
}

func (h teacherHandlers) aiSuggestion(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}
	suggestion, err := requestClient(ctx).AISuggestion(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, suggestion)
}

func (h teacherHandlers) students(ctx echo.Context) error {
	classroomID, _ := strconv.Atoi(ctx.QueryParam("classroom"))
	list, err := requestClient(ctx).ListStudents(ctx.Request().Context(), classroomID)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "students", newPage(ctx, list))
}
