package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/admin"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
)

type (
	DB struct {
		student    *studentTable
		teacher    *teacherTable
		admin      *adminTable
		course     *courseTable
		enrollment *enrollmentTable
		assignment *assignmentTable
		completion *completionTable
		grade      *gradeTable
	}

	studentTable struct {
		table   map[int]*student.Student
		pkCount int
		mutex   sync.RWMutex
	}

	teacherTable struct {
		table   map[int]*teacher.Teacher
		pkCount int
		mutex   sync.RWMutex
	}

	adminTable struct {
		table   map[int]*admin.Admin
		pkCount int
		mutex   sync.RWMutex
	}

	courseTable struct {
		table   map[int]*course.Course
		pkCount int
		mutex   sync.RWMutex
	}

	enrollmentTable struct {
		table   map[int]*enrollment.Enrollment
		pkCount int
		mutex   sync.RWMutex
	}

	assignmentTable struct {
		table   map[int]*assignment.Assignment
		pkCount int
		mutex   sync.RWMutex
	}

	completionTable struct {
		table   map[int]*assignment.Completion
		pkCount int
		mutex   sync.RWMutex
	}

	gradeTable struct {
		table   map[int]*grade.Grade
		pkCount int
		mutex   sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		student:    &studentTable{table: make(map[int]*student.Student)},
		teacher:    &teacherTable{table: make(map[int]*teacher.Teacher)},
		admin:      &adminTable{table: make(map[int]*admin.Admin)},
		course:     &courseTable{table: make(map[int]*course.Course)},
		enrollment: &enrollmentTable{table: make(map[int]*enrollment.Enrollment)},
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		completion: &completionTable{table: make(map[int]*assignment.Completion)},
		grade:      &gradeTable{table: make(map[int]*grade.Grade)},
	}
}
