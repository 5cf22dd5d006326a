package schoolapi

import (
	"context"
	"net/url"
	"strconv"
)

// Attendance statuses as the backend stores them.
const (
	AttendancePresent = "P"
	AttendanceAbsent  = "A"
	AttendanceLate    = "L"
)

type AttendanceRecord struct {
	Student int    `json:"student"`
	Status  string `json:"status"`
}

// BulkAttendance is the attendance/mark/ request: one classroom,
// subject and date, and a record per student.
type BulkAttendance struct {
	Date      string             `json:"date" form:"date" validate:"required"`
	Classroom int                `json:"classroom" form:"classroom" validate:"required"`
	Subject   int                `json:"subject" form:"subject" validate:"required"`
	Records   []AttendanceRecord `json:"records" validate:"required,dive"`
}

func (c *Client) MarkAttendance(ctx context.Context, bulk BulkAttendance) error {
	return c.post(ctx, "attendance/mark/", bulk, nil)
}

type DailyAttendanceEntry struct {
	Student     int    `json:"student"`
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
}

func (c *Client) TeacherDailyReport(ctx context.Context, date string, subjectID, classroomID int) ([]DailyAttendanceEntry, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("subject", strconv.Itoa(subjectID))
	q.Set("classroom", strconv.Itoa(classroomID))

	var entries []DailyAttendanceEntry
	err := c.get(ctx, "attendance/reports/teacher/daily/", q, &entries)
	return entries, err
}

type AttendancePercentage struct {
	Student     int     `json:"student"`
	StudentName string  `json:"student_name"`
	Percentage  float64 `json:"percentage"`
}

func (c *Client) TeacherAttendancePercentage(ctx context.Context, subjectID, classroomID int) ([]AttendancePercentage, error) {
	q := url.Values{}
	q.Set("subject", strconv.Itoa(subjectID))
	q.Set("classroom", strconv.Itoa(classroomID))

	var entries []AttendancePercentage
	err := c.get(ctx, "attendance/reports/teacher/percentage/", q, &entries)
	return entries, err
}

type MyAttendanceEntry struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Status  string `json:"status"`
}

// MyAttendance lists the calling student's raw attendance records.
func (c *Client) MyAttendance(ctx context.Context) ([]MyAttendanceEntry, error) {
	var entries []MyAttendanceEntry
	err := c.get(ctx, "attendance/my/", nil, &entries)
	return entries, err
}

type AttendanceSummary struct {
	TotalDays  int     `json:"total_days"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Percentage float64 `json:"percentage"`
}

func (c *Client) StudentAttendanceSummary(ctx context.Context) (AttendanceSummary, error) {
	var summary AttendanceSummary
	err := c.get(ctx, "attendance/reports/student/summary/", nil, &summary)
	return summary, err
}

// PrincipalDailyAttendance reports a day school-wide; classroom and
// subject narrow it down when non-zero.
func (c *Client) PrincipalDailyAttendance(ctx context.Context, date string, classroomID, subjectID int) ([]DailyAttendanceEntry, error) {
	q := url.Values{}
	q.Set("date", date)
	if classroomID > 0 {
		q.Set("classroom", strconv.Itoa(classroomID))
	}
	if subjectID > 0 {
		q.Set("subject", strconv.Itoa(subjectID))
	}

	var entries []DailyAttendanceEntry
	err := c.get(ctx, "attendance/reports/principal/daily/", q, &entries)
	return entries, err
}

// PrincipalStudentPercentages reports per-student attendance for one
// classroom, optionally narrowed to a subject.
func (c *Client) PrincipalStudentPercentages(ctx context.Context, classroomID, subjectID int) ([]AttendancePercentage, error) {
	q := url.Values{}
	q.Set("classroom", strconv.Itoa(classroomID))
	if subjectID > 0 {
		q.Set("subject", strconv.Itoa(subjectID))
	}

	var entries []AttendancePercentage
	err := c.get(ctx, "attendance/principal/student-percentages/", q, &entries)
	return entries, err
}
