package util

import "errors"

var (
	ErrCourseNotFound = errors.New("Course not found")
	ErrNoInput        = errors.New("No input provided")
)
