package models

import "github.com/google/uuid"

const (
	TeacherRole = "teacher"
	StudentRole = "student"
	AdminRole   = "admin"
)

type User struct {
	ID       uuid.UUID
	Username string
	Password string
	Email    string
	Roles    []string
}

func ValidRole(role string) bool {
	switch role {
	case TeacherRole, StudentRole, AdminRole:
		return true
	}
	return false
}
