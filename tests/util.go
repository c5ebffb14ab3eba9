package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	firstName, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		FirstName: firstName,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateTeacher(
	t *testing.T,
	repo school.TeacherRepository,
	teacherID, firstName, lastName, email, department string,
) school.Teacher {
	now := time.Now().UTC()
	teacher := school.Teacher{
		ID:          uuid.New().String(),
		TeacherID:   teacherID,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: now.AddDate(-30, 0, 0),
		Gender:      school.GenderMale,
		Address:     "1 Main St",
		Email:       email,
		Phone:       "+243000000000",
		Department:  department,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	teacher, err := repo.CreateTeacher(context.Background(), teacher)
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return teacher
}

func CreateStudent(
	t *testing.T,
	repo school.StudentRepository,
	studentID, firstName, lastName string,
	currentClass school.ClassLevel,
) school.Student {
	now := time.Now().UTC()
	student := school.Student{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		FirstName:    firstName,
		LastName:     lastName,
		DateOfBirth:  now.AddDate(-15, 0, 0),
		Gender:       school.GenderFemale,
		Address:      "2 Main St",
		CurrentClass: currentClass,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	student, err := repo.CreateStudent(context.Background(), student)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}

func CreateCourse(
	t *testing.T,
	repo school.CourseRepository,
	courseCode, courseName, teacherID string,
	classLevel school.ClassLevel,
	academicYear string,
) school.Course {
	now := time.Now().UTC()
	course := school.Course{
		ID:           uuid.New().String(),
		CourseCode:   courseCode,
		CourseName:   courseName,
		TeacherID:    teacherID,
		ClassLevel:   classLevel,
		AcademicYear: academicYear,
		Credits:      school.DefaultCredits,
		Semester:     school.DefaultSemester,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	course, err := repo.CreateCourse(context.Background(), course)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return course
}

func CreateEnrollment(
	t *testing.T,
	repo school.EnrollmentRepository,
	studentID, courseID string,
) school.Enrollment {
	now := time.Now().UTC()
	enrollment := school.Enrollment{
		ID:         uuid.New().String(),
		StudentID:  studentID,
		CourseID:   courseID,
		TotalMarks: school.DefaultTotalMarks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	enrollment, err := repo.CreateEnrollment(context.Background(), enrollment)
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enrollment
}
