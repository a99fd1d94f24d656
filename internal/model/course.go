package model

import (
	"fmt"
	"time"
)

// Course is the display projection of a Task used by the course list. It is
// derived on the fly and never written back to the backend.
type Course struct {
	ID        string
	Title     string
	Author    string
	Thumbnail string
	Duration  string
	CreatedAt time.Time
	VideoURL  string
}

// UnknownDuration is shown when the backend gives no media duration.
const UnknownDuration = "unknown"

// TaskToCourse converts a backend task record into a display-ready course.
// The backend has no course metadata, so the title is derived from the task
// id, the author is the logged-in user and the thumbnail is a deterministic
// placeholder.
func TaskToCourse(t Task, author string) Course {
	if author == "" {
		author = "unknown"
	}

	return Course{
		ID:        t.ID,
		Title:     fmt.Sprintf("Task %s", t.ID),
		Author:    author,
		Thumbnail: fmt.Sprintf("https://picsum.photos/seed/%s/400/225", t.ID),
		Duration:  UnknownDuration,
		CreatedAt: t.CreatedAt,
		VideoURL:  t.VideoURL,
	}
}

// TasksToCourses converts a page of tasks into courses.
func TasksToCourses(tasks []Task, author string) []Course {
	courses := make([]Course, 0, len(tasks))
	for _, t := range tasks {
		courses = append(courses, TaskToCourse(t, author))
	}
	return courses
}
