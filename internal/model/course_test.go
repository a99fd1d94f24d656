package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/asyncroom/acr/internal/model"
)

func TestTaskToCourse(t *testing.T) {
	created := time.Date(2023, 10, 25, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		task      model.Task
		author    string
		expCourse model.Course
	}{
		"A task maps to a display course": {
			task:   model.Task{ID: "t1", Status: model.TaskStatusCompleted, VideoURL: "/v/t1.mp4", CreatedAt: created},
			author: "teacher",
			expCourse: model.Course{
				ID:        "t1",
				Title:     "Task t1",
				Author:    "teacher",
				Thumbnail: "https://picsum.photos/seed/t1/400/225",
				Duration:  model.UnknownDuration,
				CreatedAt: created,
				VideoURL:  "/v/t1.mp4",
			},
		},
		"Missing author falls back to unknown": {
			task: model.Task{ID: "t2", CreatedAt: created},
			expCourse: model.Course{
				ID:        "t2",
				Title:     "Task t2",
				Author:    "unknown",
				Thumbnail: "https://picsum.photos/seed/t2/400/225",
				Duration:  model.UnknownDuration,
				CreatedAt: created,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expCourse, model.TaskToCourse(tt.task, tt.author))
		})
	}
}

func TestTasksToCourses(t *testing.T) {
	courses := model.TasksToCourses([]model.Task{{ID: "a"}, {ID: "b"}}, "teacher")

	assert.Len(t, courses, 2)
	assert.Equal(t, "Task a", courses[0].Title)
	assert.Equal(t, "Task b", courses[1].Title)
}
