package compile_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/asyncroom/acr/internal/app/compile"
	"github.com/asyncroom/acr/internal/client/clientmock"
	"github.com/asyncroom/acr/internal/model"
)

func newService(t *testing.T, cli *clientmock.MockClient, maxAttempts int) *compile.Service {
	t.Helper()

	svc, err := compile.NewService(compile.ServiceConfig{
		Client:          cli,
		PollInterval:    time.Millisecond,
		PollMaxAttempts: maxAttempts,
	})
	require.NoError(t, err)
	return svc
}

func TestServiceSubmit(t *testing.T) {
	tests := map[string]struct {
		content string
		mock    func(c *clientmock.MockClient)
		expID   string
		expErr  bool
	}{
		"Submitting content should return the pending task": {
			content: "# Lesson",
			mock: func(c *clientmock.MockClient) {
				c.On("SubmitCompile", mock.Anything, "# Lesson").Once().Return(&model.Task{
					ID:     "task-1",
					Status: model.TaskStatusPending,
				}, nil)
			},
			expID: "task-1",
		},
		"Submitting empty content should fail without calling the backend": {
			content: "",
			mock:    func(c *clientmock.MockClient) {},
			expErr:  true,
		},
		"A backend error should be returned": {
			content: "# Lesson",
			mock: func(c *clientmock.MockClient) {
				c.On("SubmitCompile", mock.Anything, "# Lesson").Once().Return(nil, fmt.Errorf("HTTP 500: boom"))
			},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cli := clientmock.NewMockClient(t)
			tc.mock(cli)

			task, err := newService(t, cli, 3).Submit(context.Background(), tc.content)

			if tc.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expID, task.ID)
		})
	}
}

func TestServiceWatch(t *testing.T) {
	t.Run("A task completing on a later poll should be returned with resolved media", func(t *testing.T) {
		cli := clientmock.NewMockClient(t)
		cli.On("GetTask", mock.Anything, "task-1").Once().Return(&model.Task{
			ID: "task-1", Status: model.TaskStatusProcessing,
		}, nil)
		cli.On("GetTask", mock.Anything, "task-1").Once().Return(&model.Task{
			ID:       "task-1",
			Status:   model.TaskStatusCompleted,
			VideoURL: "/videos/task-1.mp4",
			SRTURL:   "/videos/task-1.srt",
		}, nil)
		cli.On("ResolveURL", "/videos/task-1.mp4").Once().Return("http://localhost:8000/videos/task-1.mp4")
		cli.On("ResolveURL", "/videos/task-1.srt").Once().Return("http://localhost:8000/videos/task-1.srt")

		var attempts []int
		task, err := newService(t, cli, 5).Watch(context.Background(), compile.WatchOptions{
			TaskID: "task-1",
			OnProgress: func(p compile.Progress) {
				attempts = append(attempts, p.Attempt)
			},
		})

		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusCompleted, task.Status)
		assert.Equal(t, "http://localhost:8000/videos/task-1.mp4", task.VideoURL)
		assert.Equal(t, "http://localhost:8000/videos/task-1.srt", task.SRTURL)
		assert.Equal(t, []int{1, 2}, attempts)
	})

	t.Run("A failed task should return the task and an error naming it", func(t *testing.T) {
		cli := clientmock.NewMockClient(t)
		cli.On("GetTask", mock.Anything, "task-2").Once().Return(&model.Task{
			ID:      "task-2",
			Status:  model.TaskStatusFailed,
			Message: "render crashed",
		}, nil)

		task, err := newService(t, cli, 5).Watch(context.Background(), compile.WatchOptions{TaskID: "task-2"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "task-2")
		assert.Contains(t, err.Error(), "render crashed")
		assert.Equal(t, model.TaskStatusFailed, task.Status)
	})

	t.Run("Transient poll errors should count against the attempt budget", func(t *testing.T) {
		cli := clientmock.NewMockClient(t)
		cli.On("GetTask", mock.Anything, "task-3").Times(3).Return(nil, fmt.Errorf("network failure"))

		_, err := newService(t, cli, 3).Watch(context.Background(), compile.WatchOptions{TaskID: "task-3"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "task-3 timed out after 3 polls")
	})

	t.Run("A never-finishing task should time out naming the task", func(t *testing.T) {
		cli := clientmock.NewMockClient(t)
		cli.On("GetTask", mock.Anything, "task-4").Times(4).Return(&model.Task{
			ID: "task-4", Status: model.TaskStatusProcessing,
		}, nil)

		_, err := newService(t, cli, 4).Watch(context.Background(), compile.WatchOptions{TaskID: "task-4"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "task-4 timed out after 4 polls")
	})

	t.Run("Cancelling the context should stop the polling loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		cli := clientmock.NewMockClient(t)
		cli.On("GetTask", mock.Anything, "task-5").Once().Run(func(args mock.Arguments) {
			cancel()
		}).Return(&model.Task{ID: "task-5", Status: model.TaskStatusProcessing}, nil)

		_, err := newService(t, cli, 100).Watch(ctx, compile.WatchOptions{TaskID: "task-5"})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Watching without a task id should fail", func(t *testing.T) {
		_, err := newService(t, clientmock.NewMockClient(t), 3).Watch(context.Background(), compile.WatchOptions{})
		assert.ErrorIs(t, err, model.ErrNotValid)
	})
}
