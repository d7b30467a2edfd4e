package backend

// Package backend is the typed client for the academic REST backend.
// Field names mirror the backend's JSON, which mixes snake_case records
// with camelCase aggregates.

// Course is a course catalog entry.
type Course struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Teacher string `json:"teacher"`
	Cohort  string `json:"cohort"`
	Active  bool   `json:"active"`
}

// Student is a roster entry.
type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Cohort string `json:"cohort"`
	Course string `json:"course"`
}

// StudentProgress is the per-student progress record.
type StudentProgress struct {
	StudentID       string  `json:"student_id"`
	CompletionRate  float64 `json:"completion_rate"`
	AverageGrade    float64 `json:"average_grade"`
	LateSubmissions int     `json:"late_submissions"`
	IsAtRisk        bool    `json:"is_at_risk"`
}

// UpcomingDeadline is an assignment due soon.
type UpcomingDeadline struct {
	AssignmentID    string `json:"assignment_id"`
	AssignmentTitle string `json:"assignment_title"`
	CourseName      string `json:"course_name"`
	DueDate         string `json:"due_date"`
	DaysRemaining   int    `json:"days_remaining"`
}

// RecentActivity is a recent submission or grade event.
type RecentActivity struct {
	ActivityType    string `json:"activity_type"`
	AssignmentTitle string `json:"assignment_title"`
	CourseName      string `json:"course_name"`
	ActivityDate    string `json:"activity_date"`
	Status          string `json:"status"`
}

// StudentDashboard is the student landing-view aggregate.
type StudentDashboard struct {
	StudentID            string             `json:"student_id"`
	StudentName          string             `json:"student_name"`
	MyCourses            int                `json:"myCourses"`
	CompletedSubmissions int                `json:"completedSubmissions"`
	PendingSubmissions   int                `json:"pendingSubmissions"`
	AverageGrade         float64            `json:"averageGrade"`
	CompletionRate       float64            `json:"completionRate"`
	LateSubmissions      int                `json:"lateSubmissions"`
	UpcomingDeadlines    []UpcomingDeadline `json:"upcomingDeadlines"`
	RecentActivity       []RecentActivity   `json:"recentActivity"`
	IsAtRisk             bool               `json:"isAtRisk"`
	DemoMode             string             `json:"demo_mode,omitempty"`
}

// StudentProgressRow is a per-student line in the teacher dashboard.
type StudentProgressRow struct {
	StudentName    string  `json:"student_name"`
	CompletionRate float64 `json:"completion_rate"`
	AverageGrade   float64 `json:"average_grade"`
	Status         string  `json:"status"`
}

// TeacherDashboard is the teacher landing-view aggregate.
type TeacherDashboard struct {
	TeacherID         string               `json:"teacher_id"`
	TeacherName       string               `json:"teacher_name"`
	MyClasses         int                  `json:"myClasses"`
	TotalStudents     int                  `json:"totalStudents"`
	PendingGrading    int                  `json:"pendingGrading"`
	AverageClassGrade float64              `json:"averageClassGrade"`
	StudentProgress   []StudentProgressRow `json:"studentProgress"`
	UpcomingDeadlines []UpcomingDeadline   `json:"upcomingDeadlines"`
	DemoMode          string               `json:"demo_mode,omitempty"`
}

// Milestone is an upcoming cohort milestone.
type Milestone struct {
	Milestone       string `json:"milestone"`
	Date            string `json:"date"`
	CoursesAffected int    `json:"courses_affected"`
}

// CoordinatorDashboard is the coordinator landing-view aggregate.
type CoordinatorDashboard struct {
	CoordinatorID          string      `json:"coordinator_id"`
	CoordinatorName        string      `json:"coordinator_name"`
	TotalCohorts           int         `json:"totalCohorts"`
	TotalStudents          int         `json:"totalStudents"`
	TotalTeachers          int         `json:"totalTeachers"`
	AverageCohortProgress  float64     `json:"averageCohortProgress"`
	CohortsAtRisk          int         `json:"cohortsAtRisk"`
	UpcomingMilestones     []Milestone `json:"upcomingMilestones"`
	DemoMode               string      `json:"demo_mode,omitempty"`
}

// KPIs is the headline metrics payload.
type KPIs struct {
	TotalStudents         int     `json:"totalStudents"`
	TotalCourses          int     `json:"totalCourses"`
	TotalSubmissions      int     `json:"totalSubmissions"`
	LateSubmissions       int     `json:"lateSubmissions"`
	AverageCompletionRate float64 `json:"averageCompletionRate"`
	StudentsAtRisk        int     `json:"studentsAtRisk"`
	TotalTeachers         int     `json:"totalTeachers"`
	ActiveCourses         int     `json:"activeCourses"`
	CompletedAssignments  int     `json:"completedAssignments"`
	PendingAssignments    int     `json:"pendingAssignments"`
	OnTimeSubmissions     int     `json:"onTimeSubmissions"`
	OnTimePercentage      float64 `json:"onTimePercentage"`
	DemoMode              string  `json:"demo_mode,omitempty"`
}

// OverviewStats is the institution-wide overview payload.
type OverviewStats struct {
	RetentionRate         float64 `json:"retentionRate"`
	CompletionRate        float64 `json:"completionRate"`
	AverageGrade          float64 `json:"averageGrade"`
	StudentsAtRisk        int     `json:"studentsAtRisk"`
	TotalActiveCourses    int     `json:"totalActiveCourses"`
	TotalStudents         int     `json:"totalStudents"`
	TotalTeachers         int     `json:"totalTeachers"`
	TotalSubmissions      int     `json:"totalSubmissions"`
	LateSubmissions       int     `json:"lateSubmissions"`
	AverageCompletionTime float64 `json:"averageCompletionTime"`
	DemoMode              string  `json:"demo_mode,omitempty"`
}

// CourseProgress is per-course submission stats inside a cohort.
type CourseProgress struct {
	CourseID          string  `json:"course_id"`
	CourseName        string  `json:"course_name"`
	TotalStudents     int     `json:"total_students"`
	OnTimeSubmissions int     `json:"on_time_submissions"`
	LateSubmissions   int     `json:"late_submissions"`
	OnTimePercentage  float64 `json:"on_time_percentage"`
	LatePercentage    float64 `json:"late_percentage"`
}

// CohortProgress is per-cohort submission stats.
type CohortProgress struct {
	CohortID          string           `json:"cohort_id"`
	CohortName        string           `json:"cohort_name"`
	TotalStudents     int              `json:"total_students"`
	TotalSubmissions  int              `json:"total_submissions"`
	OnTimeSubmissions int              `json:"on_time_submissions"`
	LateSubmissions   int              `json:"late_submissions"`
	OnTimePercentage  float64          `json:"on_time_percentage"`
	LatePercentage    float64          `json:"late_percentage"`
	Courses           []CourseProgress `json:"courses"`
}

// CohortSummary is the aggregate block in the cohort report.
type CohortSummary struct {
	TotalSubmissions        int     `json:"totalSubmissions"`
	OverallOnTimePercentage float64 `json:"overallOnTimePercentage"`
	BestPerformingCohort    string  `json:"bestPerformingCohort"`
	WorstPerformingCohort   string  `json:"worstPerformingCohort"`
}

// CohortProgressReport is the paginated cohort progress payload.
type CohortProgressReport struct {
	Cohorts      []CohortProgress `json:"cohorts"`
	TotalCohorts int              `json:"total_cohorts"`
	PageSize     int              `json:"page_size"`
	PageToken    string           `json:"page_token,omitempty"`
	HasNextPage  bool             `json:"has_next_page"`
	Summary      CohortSummary    `json:"summary"`
	DemoMode     string           `json:"demo_mode,omitempty"`
}
