package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrInvalidRole = errors.New("invalid role")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrModuleNotFound = errors.New("module not found")
var ErrNotModuleOwner = errors.New("you are not the module owner")
var ErrModuleNotPublished = errors.New("module not published")
var ErrSectionNotFound = errors.New("section not found")
var ErrEmptySectionTitle = errors.New("section title must not be empty")
var ErrDuplicatePosition = errors.New("section with this position already exists in the module")
var ErrContentNotEditable = errors.New("section content kind has no editable document")
var ErrQuestionNotFound = errors.New("assessment question not found")
var ErrNoAssessment = errors.New("module has no assessment questions")
var ErrClassNotFound = errors.New("class not found")
var ErrNotEnrolled = errors.New("student is not enrolled in the target class")
var ErrAlreadyEnrolled = errors.New("student is already enrolled in this class")
var ErrSessionNotFound = errors.New("edit session not found")
var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
var ErrImageNotFound = errors.New("image not found")
