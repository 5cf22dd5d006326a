package schoolapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Student is a directory entry; nested profile fields flattened the
// way the backend's list serializers report them.
type Student struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Classroom int    `json:"classroom"`
	City      string `json:"city,omitempty"`
	IsActive  bool   `json:"is_active,omitempty"`
}

type Teacher struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	City       string `json:"city,omitempty"`
	IsActive   bool   `json:"is_active,omitempty"`
	IsApproved bool   `json:"is_approved,omitempty"`
}

// ListStudents queries the student directory; classroomID narrows to
// one classroom when non-zero. The backend scopes visibility by role.
func (c *Client) ListStudents(ctx context.Context, classroomID int) ([]Student, error) {
	var q url.Values
	if classroomID > 0 {
		q = url.Values{"classroom": []string{strconv.Itoa(classroomID)}}
	}
	var students []Student
	err := c.get(ctx, "student/", q, &students)
	return students, err
}

func (c *Client) StudentDetail(ctx context.Context, id int) (Student, error) {
	var student Student
	err := c.get(ctx, fmt.Sprintf("student/%d/", id), nil, &student)
	return student, err
}

func (c *Client) ListTeachers(ctx context.Context) ([]Teacher, error) {
	var teachers []Teacher
	err := c.get(ctx, "teacher/", nil, &teachers)
	return teachers, err
}

type Classroom struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Subject struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Classroom int    `json:"classroom"`
}

// ListClassrooms lists every classroom in the school.
func (c *Client) ListClassrooms(ctx context.Context) ([]Classroom, error) {
	var classrooms []Classroom
	err := c.get(ctx, "classrooms/", nil, &classrooms)
	return classrooms, err
}

// MyClassrooms lists the classrooms assigned to the calling teacher.
func (c *Client) MyClassrooms(ctx context.Context) ([]Classroom, error) {
	var classrooms []Classroom
	err := c.get(ctx, "teacher/my-classrooms/", nil, &classrooms)
	return classrooms, err
}

// MySubjects lists the calling teacher's subjects, optionally narrowed
// to one classroom.
func (c *Client) MySubjects(ctx context.Context, classroomID int) ([]Subject, error) {
	var q url.Values
	if classroomID > 0 {
		q = url.Values{"classroom": []string{strconv.Itoa(classroomID)}}
	}
	var subjects []Subject
	err := c.get(ctx, "teacher/my-subjects/", q, &subjects)
	return subjects, err
}

// ListSubjects lists subjects, optionally narrowed to one classroom.
func (c *Client) ListSubjects(ctx context.Context, classroomID int) ([]Subject, error) {
	var q url.Values
	if classroomID > 0 {
		q = url.Values{"classroom": []string{strconv.Itoa(classroomID)}}
	}
	var subjects []Subject
	err := c.get(ctx, "subjects/", q, &subjects)
	return subjects, err
}

type DashboardStats struct {
	Students        int `json:"students"`
	Teachers        int `json:"teachers"`
	Classrooms      int `json:"classrooms"`
	PendingTeachers int `json:"pending_teachers"`
}

func (c *Client) PrincipalDashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	err := c.get(ctx, "principal/dashboard/stats/", nil, &stats)
	return stats, err
}

func (c *Client) PendingTeachers(ctx context.Context) ([]Teacher, error) {
	var teachers []Teacher
	err := c.get(ctx, "principal/teachers/pending/", nil, &teachers)
	return teachers, err
}

// ApproveTeacher clears a teacher's pending flag so they can be
// assigned to subjects.
func (c *Client) ApproveTeacher(ctx context.Context, teacherID int) error {
	return c.post(ctx, fmt.Sprintf("principal/teachers/%d/approve/", teacherID), nil, nil)
}

type TeacherAssignment struct {
	Teacher   int `json:"teacher" form:"teacher" validate:"required"`
	Subject   int `json:"subject" form:"subject" validate:"required"`
	Classroom int `json:"classroom" form:"classroom" validate:"required"`
}

// AssignTeacher puts a teacher on a subject in a classroom.
func (c *Client) AssignTeacher(ctx context.Context, data TeacherAssignment) error {
	return c.post(ctx, "principal/assign/", data, nil)
}
