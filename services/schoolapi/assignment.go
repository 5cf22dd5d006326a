package schoolapi

import (
	"context"
	"fmt"
)

type Assignment struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     int    `json:"subject"`
	SubjectName string `json:"subject_name,omitempty"`
	Classroom   int    `json:"classroom"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type NewAssignment struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Subject     int    `json:"subject" form:"subject" validate:"required"`
	Classroom   int    `json:"classroom" form:"classroom" validate:"required"`
	DueDate     string `json:"due_date" form:"due_date" validate:"required"`
}

func (c *Client) CreateAssignment(ctx context.Context, data NewAssignment) (Assignment, error) {
	var created Assignment
	err := c.post(ctx, "assignments/create/", data, &created)
	return created, err
}

// ListAssignments returns the assignments visible to the caller; the
// backend scopes the list by role.
func (c *Client) ListAssignments(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment
	err := c.get(ctx, "assignments/", nil, &assignments)
	return assignments, err
}

func (c *Client) AssignmentDetail(ctx context.Context, id int) (Assignment, error) {
	var assignment Assignment
	err := c.get(ctx, fmt.Sprintf("assignments/%d/", id), nil, &assignment)
	return assignment, err
}

type Submission struct {
	ID             int    `json:"id"`
	Assignment     int    `json:"assignment"`
	AssignmentName string `json:"assignment_title,omitempty"`
	Student        int    `json:"student"`
	StudentName    string `json:"student_name,omitempty"`
	AnswerText     string `json:"answer_text"`
	AnswerFile     string `json:"answer_file,omitempty"`
	Marks          *int   `json:"marks,omitempty"`
	Feedback       string `json:"feedback,omitempty"`
	SubmittedAt    string `json:"submitted_at,omitempty"`
}

type NewSubmission struct {
	AnswerText string `json:"answer_text" form:"answer_text" validate:"required"`
}

// SubmitAssignment hands in a text answer. File answers are the upload
// pipeline's business and stay out of this client.
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID int, data NewSubmission) (Submission, error) {
	var submitted Submission
	err := c.post(ctx, fmt.Sprintf("assignments/%d/submit/", assignmentID), data, &submitted)
	return submitted, err
}

// MySubmissions lists the calling student's submissions.
func (c *Client) MySubmissions(ctx context.Context) ([]Submission, error) {
	var submissions []Submission
	err := c.get(ctx, "assignments/my-submissions/", nil, &submissions)
	return submissions, err
}

// TeacherSubmissions lists submissions to the calling teacher's assignments.
func (c *Client) TeacherSubmissions(ctx context.Context) ([]Submission, error) {
	var submissions []Submission
	err := c.get(ctx, "assignments/submissions/teacher/", nil, &submissions)
	return submissions, err
}

type Evaluation struct {
	Marks    int    `json:"marks" form:"marks" validate:"min=0,max=100"`
	Feedback string `json:"feedback" form:"feedback"`
}

func (c *Client) EvaluateSubmission(ctx context.Context, submissionID int, eval Evaluation) (Submission, error) {
	var evaluated Submission
	err := c.patch(ctx, fmt.Sprintf("assignments/submissions/%d/evaluate/", submissionID), eval, &evaluated)
	return evaluated, err
}

type AISuggestion struct {
	Submission int    `json:"submission"`
	Suggestion string `json:"suggestion"`
}

// AISuggestion fetches the server-generated evaluation hint for a
// submission; generation itself is opaque to this client.
func (c *Client) AISuggestion(ctx context.Context, submissionID int) (AISuggestion, error) {
	var suggestion AISuggestion
	err := c.get(ctx, fmt.Sprintf("assignments/ai-suggestion/%d/", submissionID), nil, &suggestion)
	return suggestion, err
}
