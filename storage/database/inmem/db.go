// Package inmemdb provides map-backed repositories so services and handlers
// can be tested without a running database. Relational behavior the schema
// normally enforces (cascading deletes, nullified references) is mirrored
// here.
package inmemdb

import (
	"sync"

	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/user"
)

type DB struct {
	mutex       sync.RWMutex
	users       map[string]*user.User
	teachers    map[string]*school.Teacher
	students    map[string]*school.Student
	courses     map[string]*school.Course
	enrollments map[string]*school.Enrollment
	attendance  map[string]*school.Attendance
	leaves      map[string]*school.Leave
}

func Open() *DB {
	return &DB{
		users:       make(map[string]*user.User),
		teachers:    make(map[string]*school.Teacher),
		students:    make(map[string]*school.Student),
		courses:     make(map[string]*school.Course),
		enrollments: make(map[string]*school.Enrollment),
		attendance:  make(map[string]*school.Attendance),
		leaves:      make(map[string]*school.Leave),
	}
}

// deleteCourseLocked removes a course and its enrollments. Callers hold the
// write lock.
func (db *DB) deleteCourseLocked(id string) {
	for eid, e := range db.enrollments {
		if e.CourseID == id {
			delete(db.enrollments, eid)
		}
	}
	delete(db.courses, id)
}

// deleteTeacherLocked removes a teacher, their courses, attendance and
// leaves, and nullifies leave approvals they made.
func (db *DB) deleteTeacherLocked(id string) {
	for cid, c := range db.courses {
		if c.TeacherID == id {
			db.deleteCourseLocked(cid)
		}
	}
	for aid, a := range db.attendance {
		if a.TeacherID.String == id {
			delete(db.attendance, aid)
		}
	}
	for lid, l := range db.leaves {
		if l.TeacherID.String == id {
			delete(db.leaves, lid)
			continue
		}
		if l.ApprovedBy.Valid && l.ApprovedBy.String == id {
			l.ApprovedBy.Valid = false
			l.ApprovedBy.String = ""
		}
	}
	delete(db.teachers, id)
}

// deleteStudentLocked removes a student and their enrollments, attendance
// and leaves.
func (db *DB) deleteStudentLocked(id string) {
	for eid, e := range db.enrollments {
		if e.StudentID == id {
			delete(db.enrollments, eid)
		}
	}
	for aid, a := range db.attendance {
		if a.StudentID.String == id {
			delete(db.attendance, aid)
		}
	}
	for lid, l := range db.leaves {
		if l.StudentID.String == id {
			delete(db.leaves, lid)
		}
	}
	delete(db.students, id)
}
