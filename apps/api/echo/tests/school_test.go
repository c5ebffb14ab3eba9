package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/user"
	testutil "github.com/trezcool/shule/tests"
)

func Test_schoolApi_teachers(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	teacherUsr := testutil.CreateUser(t, usrRepo, "Prof", "tch001", "prof@test.cd", "", []string{user.RoleTeacher}, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "std001", "hero@test.cd", "", []string{user.RoleStudent}, true)

	adminToken := getToken(t, admin)
	teacherToken := getToken(t, teacherUsr)
	studentToken := getToken(t, student)

	newTeacherBody := []byte(`{
		"teacher_id": "T001", "first_name": "Jane", "last_name": "Doe",
		"date_of_birth": "1990-05-01", "gender": "F", "address": "1 Main St",
		"email": "jane@test.cd", "department": "Mathematics"
	}`)

	tests := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/v1/teachers", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Students not allowed", method: http.MethodGet, path: "/v1/teachers", token: studentToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Teachers cannot create", method: http.MethodPost, path: "/v1/teachers", token: teacherToken, body: newTeacherBody,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "Admin creates", method: http.MethodPost, path: "/v1/teachers", token: adminToken, body: newTeacherBody, wantCode: http.StatusCreated},
		{
			name: "Duplicate teacher ID rejected", method: http.MethodPost, path: "/v1/teachers", token: adminToken,
			body: []byte(`{
				"teacher_id": "T001", "first_name": "John", "last_name": "Doe",
				"date_of_birth": "1985-01-01", "gender": "M", "address": "2 Main St",
				"email": "john@test.cd", "department": "Physics"
			}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"teacher_id": "a teacher with this teacher ID already exists"}),
		},
		{
			name: "Duplicate email rejected", method: http.MethodPost, path: "/v1/teachers", token: adminToken,
			body: []byte(`{
				"teacher_id": "T002", "first_name": "John", "last_name": "Doe",
				"date_of_birth": "1985-01-01", "gender": "M", "address": "2 Main St",
				"email": "jane@test.cd", "department": "Physics"
			}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a teacher with this email already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}

	created, err := schoolRepos.Teacher.GetTeacher(context.Background(), school.GetTeacherFilter{TeacherID: "T001"})
	if err != nil {
		t.Fatalf("GetTeacher() failed: %v", err)
	}

	t.Run("Teachers can list", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/teachers", teacherToken)
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, created)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/teachers/"+created.ID, teacherToken)
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, created)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Retrieve unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/teachers/lol", adminToken)
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Update", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/teachers/"+created.ID, adminToken, []byte(`{"department": "Chemistry"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		refreshed, err := schoolRepos.Teacher.GetTeacher(context.Background(), school.GetTeacherFilter{ID: created.ID})
		if err != nil {
			t.Fatalf("GetTeacher() failed: %v", err)
		}
		if refreshed.Department != "Chemistry" {
			t.Errorf("department = %q; want %q", refreshed.Department, "Chemistry")
		}
		if refreshed.TeacherID != created.TeacherID {
			t.Errorf("teacher ID must not change; got %q", refreshed.TeacherID)
		}
	})

	t.Run("Delete cascades to courses", func(t *testing.T) {
		course := testutil.CreateCourse(t, schoolRepos.Course, "MATH101", "Algebra", created.ID, school.Class11, "2025-2026")

		req, rec := newAuthRequest(http.MethodDelete, "/v1/teachers/"+created.ID, adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}
		if _, err := schoolRepos.Teacher.GetTeacher(context.Background(), school.GetTeacherFilter{ID: created.ID}); err != school.ErrNotFound {
			t.Errorf("expected teacher to be gone; err = %v", err)
		}
		if _, err := schoolRepos.Course.GetCourse(context.Background(), course.ID); err != school.ErrNotFound {
			t.Errorf("expected course to be gone; err = %v", err)
		}
	})
}

func Test_schoolApi_students(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "Create", method: http.MethodPost, path: "/v1/students", token: adminToken,
			body: []byte(`{
				"student_id": "S001", "first_name": "Amani", "last_name": "K",
				"date_of_birth": "2010-03-15", "gender": "F", "address": "3 Main St",
				"current_class": "11"
			}`),
			wantCode: http.StatusCreated,
		},
		{
			name: "Email optional for students", method: http.MethodPost, path: "/v1/students", token: adminToken,
			body: []byte(`{
				"student_id": "S002", "first_name": "Biko", "last_name": "M",
				"date_of_birth": "2009-07-01", "gender": "M", "address": "4 Main St",
				"current_class": "12"
			}`),
			wantCode: http.StatusCreated,
		},
		{
			name: "Duplicate student ID rejected", method: http.MethodPost, path: "/v1/students", token: adminToken,
			body: []byte(`{
				"student_id": "S001", "first_name": "Clone", "last_name": "K",
				"date_of_birth": "2010-03-15", "gender": "F", "address": "3 Main St",
				"current_class": "11"
			}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_id": "a student with this student ID already exists"}),
		},
		{
			name: "Invalid class level rejected", method: http.MethodPost, path: "/v1/students", token: adminToken,
			body: []byte(`{
				"student_id": "S003", "first_name": "Dodo", "last_name": "L",
				"date_of_birth": "2010-01-01", "gender": "M", "address": "5 Main St",
				"current_class": "13"
			}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}

	t.Run("Filter by class", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students?current_class=12", adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var students []school.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &students); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if len(students) != 1 || students[0].StudentID != "S002" {
			t.Errorf("students = %+v; want only S002", students)
		}
	})
}

func Test_schoolApi_courses(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	teacher := testutil.CreateTeacher(t, schoolRepos.Teacher, "T001", "Jane", "Doe", "jane@test.cd", "Mathematics")

	courseBody := func(code, year, teacherID string) []byte {
		return []byte(fmt.Sprintf(
			`{"course_code": %q, "course_name": "Algebra", "teacher_id": %q, "class_level": "11", "academic_year": %q}`,
			code, teacherID, year,
		))
	}

	tests := []httpTest{
		{
			name: "Unknown teacher rejected", body: courseBody("MATH101", "2025-2026", "lol"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"teacher_id": "teacher not found"}),
		},
		{name: "Create", body: courseBody("MATH101", "2025-2026", teacher.ID), wantCode: http.StatusCreated},
		{
			name: "Duplicate code and year rejected", body: courseBody("MATH101", "2025-2026", teacher.ID),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"course_code": "a course with this course code already exists for this academic year"}),
		},
		{name: "Same code next year ok", body: courseBody("MATH101", "2026-2027", teacher.ID), wantCode: http.StatusCreated},
		{
			name: "Malformed academic year rejected", body: courseBody("PHY101", "2025", teacher.ID),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/courses"
		tt.token = adminToken

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}

func Test_schoolApi_enrollments(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Boss", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	teacher := testutil.CreateTeacher(t, schoolRepos.Teacher, "T001", "Jane", "Doe", "jane@test.cd", "Mathematics")
	student := testutil.CreateStudent(t, schoolRepos.Student, "S001", "Amani", "K", school.Class11)
	course := testutil.CreateCourse(t, schoolRepos.Course, "MATH101", "Algebra", teacher.ID, school.Class11, "2025-2026")

	enrollBody := []byte(fmt.Sprintf(`{"student_id": %q, "course_id": %q}`, student.ID, course.ID))

	var enrollment school.Enrollment

	t.Run("Enroll", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/enrollments", adminToken, enrollBody)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusCreated)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &enrollment); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if enrollment.TotalMarks != school.DefaultTotalMarks {
			t.Errorf("total marks = %v; want default %v", enrollment.TotalMarks, school.DefaultTotalMarks)
		}
	})

	t.Run("Duplicate enrollment rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/enrollments", adminToken, enrollBody)
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_id": "this student is already enrolled in this course"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Unknown student rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/enrollments", adminToken,
			[]byte(fmt.Sprintf(`{"student_id": "lol", "course_id": %q}`, course.ID)))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_id": "student not found"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Marks update leaves grade stale", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/enrollments/"+enrollment.ID+"/marks", adminToken,
			[]byte(`{"marks_obtained": 85}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var e school.Enrollment
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if !e.MarksObtained.Valid || e.MarksObtained.Float64 != 85 {
			t.Errorf("marks = %+v; want 85", e.MarksObtained)
		}
		if e.Grade != "" {
			t.Errorf("grade = %q; want it untouched until an explicit recompute", e.Grade)
		}
	})

	t.Run("Grade recompute", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/enrollments/"+enrollment.ID+"/grade", adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var e school.Enrollment
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if e.Grade != school.GradeA {
			t.Errorf("grade = %q; want %q", e.Grade, school.GradeA)
		}
	})
}

func Test_schoolApi_attendance(t *testing.T) {
	app := setup(t)

	teacherUsr := testutil.CreateUser(t, usrRepo, "Prof", "tch001", "prof@test.cd", "", []string{user.RoleTeacher}, true)
	teacherToken := getToken(t, teacherUsr)

	teacher := testutil.CreateTeacher(t, schoolRepos.Teacher, "T001", "Jane", "Doe", "jane@test.cd", "Mathematics")
	student := testutil.CreateStudent(t, schoolRepos.Student, "S001", "Amani", "K", school.Class11)

	tests := []httpTest{
		{
			name: "Neither person rejected", body: []byte(`{"status": "P", "date": "2026-08-03"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "attendance must be for either a student or teacher"}),
		},
		{
			name:     "Both people rejected",
			body:     []byte(fmt.Sprintf(`{"status": "P", "date": "2026-08-03", "student_id": %q, "teacher_id": %q}`, student.ID, teacher.ID)),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "attendance cannot be for both student and teacher"}),
		},
		{
			name:     "Record for student",
			body:     []byte(fmt.Sprintf(`{"status": "P", "date": "2026-08-03", "student_id": %q, "time_in": "08:00"}`, student.ID)),
			wantCode: http.StatusCreated,
		},
		{
			name:     "Duplicate person and date rejected",
			body:     []byte(fmt.Sprintf(`{"status": "A", "date": "2026-08-03", "student_id": %q}`, student.ID)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "an attendance record already exists for this person on this date"}),
		},
		{
			name:     "Same person next day ok",
			body:     []byte(fmt.Sprintf(`{"status": "L", "date": "2026-08-04", "student_id": %q}`, student.ID)),
			wantCode: http.StatusCreated,
		},
		{
			name:     "Teacher attendance same date ok",
			body:     []byte(fmt.Sprintf(`{"status": "P", "date": "2026-08-03", "teacher_id": %q}`, teacher.ID)),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/attendance"
		tt.token = teacherToken

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}

	t.Run("Update cannot land on an occupied date", func(t *testing.T) {
		records, err := schoolRepos.Attendance.QueryAttendance(context.Background(), &school.AttendanceFilter{StudentID: student.ID}, nil)
		if err != nil {
			t.Fatalf("QueryAttendance() failed: %v", err)
		}
		var target school.Attendance
		for _, r := range records {
			if r.Date.Format("2006-01-02") == "2026-08-04" {
				target = r
			}
		}
		if target.ID == "" {
			t.Fatal("fixture attendance not found")
		}

		req, rec := newAuthRequest(http.MethodPut, "/v1/attendance/"+target.ID, teacherToken, []byte(`{"date": "2026-08-03"}`))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "an attendance record already exists for this person on this date"}),
		}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_schoolApi_leaves(t *testing.T) {
	app := setup(t)

	teacherUsr := testutil.CreateUser(t, usrRepo, "Prof", "tch001", "prof@test.cd", "", []string{user.RoleTeacher}, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "std001", "hero@test.cd", "", []string{user.RoleStudent}, true)
	teacherToken := getToken(t, teacherUsr)
	studentToken := getToken(t, student)

	approver := testutil.CreateTeacher(t, schoolRepos.Teacher, "T001", "Jane", "Doe", "jane@test.cd", "Mathematics")
	pupil := testutil.CreateStudent(t, schoolRepos.Student, "S001", "Amani", "K", school.Class11)

	leaveBody := func(start, end string) []byte {
		return []byte(fmt.Sprintf(
			`{"student_id": %q, "leave_type": "SL", "start_date": %q, "end_date": %q, "reason": "flu"}`,
			pupil.ID, start, end,
		))
	}

	var leave school.Leave

	t.Run("End before start rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/leaves", studentToken, leaveBody("2026-08-10", "2026-08-08"))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"start_date": "start date cannot be after end date"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Request", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/leaves", studentToken, leaveBody("2026-08-10", "2026-08-12"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusCreated)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &leave); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if leave.Status != school.LeavePending {
			t.Errorf("status = %q; want pending", leave.Status)
		}
		if got := leave.DurationDays(); got != 3 {
			t.Errorf("duration = %d; want 3", got)
		}
	})

	t.Run("Students cannot approve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/"+leave.ID+"/approve", studentToken,
			[]byte(fmt.Sprintf(`{"approved_by": %q}`, approver.ID)))
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Unknown approver rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/"+leave.ID+"/approve", teacherToken,
			[]byte(`{"approved_by": "lol"}`))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"approved_by": "teacher not found"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Approve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/"+leave.ID+"/approve", teacherToken,
			[]byte(fmt.Sprintf(`{"approved_by": %q, "approval_remarks": "get well"}`, approver.ID)))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var approved school.Leave
		if err := json.Unmarshal(rec.Body.Bytes(), &approved); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if approved.Status != school.LeaveApproved {
			t.Errorf("status = %q; want approved", approved.Status)
		}
		if !approved.ApprovedBy.Valid || approved.ApprovedBy.String != approver.ID {
			t.Errorf("approved_by = %+v; want %q", approved.ApprovedBy, approver.ID)
		}
		if !approved.ApprovalDate.Valid {
			t.Error("expected approval date to be stamped")
		}
	})

	t.Run("Reject", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/leaves", studentToken, leaveBody("2026-09-01", "2026-09-02"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusCreated)
		}
		var second school.Leave
		if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}

		req, rec = newAuthRequest(http.MethodPut, "/v1/leaves/"+second.ID+"/reject", teacherToken,
			[]byte(fmt.Sprintf(`{"approved_by": %q, "approval_remarks": "exam week"}`, approver.ID)))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var rejected school.Leave
		if err := json.Unmarshal(rec.Body.Bytes(), &rejected); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if rejected.Status != school.LeaveRejected {
			t.Errorf("status = %q; want rejected", rejected.Status)
		}
	})

	t.Run("Update dates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/"+leave.ID, teacherToken,
			[]byte(`{"end_date": "2026-08-14"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var updated school.Leave
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if got := updated.DurationDays(); got != 5 {
			t.Errorf("duration = %d; want 5", got)
		}
	})
}
