package backend

// Canned demo payloads served when demo mode is on and the backend is
// unreachable. Values match the fallback data the dashboards shipped
// with originally.

const demoModeTag = "mock"

func demoCourses() []Course {
	return []Course{
		{ID: "course_1", Name: "Desarrollo Web Full Stack", Teacher: "María Profesora", Cohort: "2026-A", Active: true},
		{ID: "course_2", Name: "Ciencia de Datos", Teacher: "María Profesora", Cohort: "2026-B", Active: true},
	}
}

func demoStudents() []Student {
	return []Student{
		{ID: "student_1", Name: "Juan Estudiante", Email: "student@example.com", Cohort: "2026-A", Course: "Desarrollo Web Full Stack"},
		{ID: "student_2", Name: "Lucía Vega", Email: "lucia@example.com", Cohort: "2026-A", Course: "Desarrollo Web Full Stack"},
		{ID: "student_3", Name: "Pedro Ramos", Email: "pedro@example.com", Cohort: "2026-B", Course: "Ciencia de Datos"},
		{ID: "student_4", Name: "Sofía Torres", Email: "sofia@example.com", Cohort: "2026-B", Course: "Ciencia de Datos"},
	}
}

func demoStudentProgress(studentID string) StudentProgress {
	return StudentProgress{
		StudentID:       studentID,
		CompletionRate:  75.0,
		AverageGrade:    8.2,
		LateSubmissions: 1,
		IsAtRisk:        false,
	}
}

func demoStudentDashboard(studentID string) StudentDashboard {
	return StudentDashboard{
		StudentID:            studentID,
		StudentName:          "Juan Estudiante",
		MyCourses:            2,
		CompletedSubmissions: 10,
		PendingSubmissions:   2,
		AverageGrade:         8.2,
		CompletionRate:       75.0,
		LateSubmissions:      1,
		UpcomingDeadlines: []UpcomingDeadline{
			{AssignmentID: "a_7", AssignmentTitle: "Proyecto API REST", CourseName: "Desarrollo Web Full Stack", DueDate: "2026-09-05", DaysRemaining: 8},
		},
		RecentActivity: []RecentActivity{
			{ActivityType: "submission", AssignmentTitle: "Maquetado responsive", CourseName: "Desarrollo Web Full Stack", ActivityDate: "2026-08-25", Status: "on_time"},
		},
		IsAtRisk: false,
		DemoMode: demoModeTag,
	}
}

func demoTeacherDashboard(teacherID string) TeacherDashboard {
	return TeacherDashboard{
		TeacherID:         teacherID,
		TeacherName:       "María Profesora",
		MyClasses:         2,
		TotalStudents:     4,
		PendingGrading:    3,
		AverageClassGrade: 8.0,
		StudentProgress: []StudentProgressRow{
			{StudentName: "Juan Estudiante", CompletionRate: 75.0, AverageGrade: 8.2, Status: "on_track"},
			{StudentName: "Lucía Vega", CompletionRate: 90.0, AverageGrade: 9.1, Status: "on_track"},
			{StudentName: "Pedro Ramos", CompletionRate: 45.0, AverageGrade: 6.3, Status: "at_risk"},
		},
		UpcomingDeadlines: []UpcomingDeadline{
			{AssignmentID: "a_7", AssignmentTitle: "Proyecto API REST", CourseName: "Desarrollo Web Full Stack", DueDate: "2026-09-05", DaysRemaining: 8},
		},
		DemoMode: demoModeTag,
	}
}

func demoCoordinatorDashboard(coordinatorID string) CoordinatorDashboard {
	return CoordinatorDashboard{
		CoordinatorID:         coordinatorID,
		CoordinatorName:       "Carlos Coordinador",
		TotalCohorts:          2,
		TotalStudents:         4,
		TotalTeachers:         2,
		AverageCohortProgress: 72.5,
		CohortsAtRisk:         1,
		UpcomingMilestones: []Milestone{
			{Milestone: "Cierre de módulo 3", Date: "2026-09-15", CoursesAffected: 2},
		},
		DemoMode: demoModeTag,
	}
}

func demoKPIs() KPIs {
	return KPIs{
		TotalStudents:         4,
		TotalCourses:          2,
		TotalSubmissions:      12,
		LateSubmissions:       2,
		AverageCompletionRate: 75.0,
		StudentsAtRisk:        1,
		TotalTeachers:         2,
		ActiveCourses:         2,
		CompletedAssignments:  10,
		PendingAssignments:    2,
		OnTimeSubmissions:     10,
		OnTimePercentage:      83.3,
		DemoMode:              demoModeTag,
	}
}

func demoOverview() OverviewStats {
	return OverviewStats{
		RetentionRate:         92,
		CompletionRate:        79,
		AverageGrade:          8.3,
		StudentsAtRisk:        5,
		TotalActiveCourses:    6,
		TotalStudents:         45,
		TotalTeachers:         8,
		TotalSubmissions:      156,
		LateSubmissions:       12,
		AverageCompletionTime: 2.5,
		DemoMode:              demoModeTag,
	}
}

func demoOverviewRaw() map[string]any {
	o := demoOverview()
	return map[string]any{
		"retentionRate":         o.RetentionRate,
		"completionRate":        o.CompletionRate,
		"averageGrade":          o.AverageGrade,
		"studentsAtRisk":        float64(o.StudentsAtRisk),
		"totalActiveCourses":    float64(o.TotalActiveCourses),
		"totalStudents":         float64(o.TotalStudents),
		"totalTeachers":         float64(o.TotalTeachers),
		"totalSubmissions":      float64(o.TotalSubmissions),
		"lateSubmissions":       float64(o.LateSubmissions),
		"averageCompletionTime": o.AverageCompletionTime,
		"demo_mode":             o.DemoMode,
	}
}

func demoCohortProgress() CohortProgressReport {
	cohorts := []CohortProgress{
		{
			CohortID: "cohort_2026a", CohortName: "2026-A",
			TotalStudents: 2, TotalSubmissions: 7,
			OnTimeSubmissions: 6, LateSubmissions: 1,
			OnTimePercentage: 85.7, LatePercentage: 14.3,
			Courses: []CourseProgress{
				{CourseID: "course_1", CourseName: "Desarrollo Web Full Stack", TotalStudents: 2, OnTimeSubmissions: 6, LateSubmissions: 1, OnTimePercentage: 85.7, LatePercentage: 14.3},
			},
		},
		{
			CohortID: "cohort_2026b", CohortName: "2026-B",
			TotalStudents: 2, TotalSubmissions: 5,
			OnTimeSubmissions: 4, LateSubmissions: 1,
			OnTimePercentage: 80.0, LatePercentage: 20.0,
			Courses: []CourseProgress{
				{CourseID: "course_2", CourseName: "Ciencia de Datos", TotalStudents: 2, OnTimeSubmissions: 4, LateSubmissions: 1, OnTimePercentage: 80.0, LatePercentage: 20.0},
			},
		},
	}
	return CohortProgressReport{
		Cohorts:      cohorts,
		TotalCohorts: len(cohorts),
		PageSize:     len(cohorts),
		HasNextPage:  false,
		Summary: CohortSummary{
			TotalSubmissions:        12,
			OverallOnTimePercentage: 83.3,
			BestPerformingCohort:    "2026-A",
			WorstPerformingCohort:   "2026-B",
		},
		DemoMode: demoModeTag,
	}
}
