package workspaceload_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/asyncroom/acr/internal/app/workspaceload"
	"github.com/asyncroom/acr/internal/client/clientmock"
	"github.com/asyncroom/acr/internal/defaults"
	"github.com/asyncroom/acr/internal/model"
)

func TestServiceLoad(t *testing.T) {
	tests := map[string]struct {
		id     string
		mock   func(c *clientmock.MockClient)
		expWS  func(t *testing.T, ws *model.Workspace)
		expErr bool
	}{
		"A task with code and subtitles should load them": {
			id: "task-1",
			mock: func(c *clientmock.MockClient) {
				c.On("GetTask", mock.Anything, "task-1").Once().Return(&model.Task{
					ID:       "task-1",
					Status:   model.TaskStatusCompleted,
					Code:     "# My lesson",
					VideoURL: "/videos/task-1.mp4",
					SRTURL:   "/videos/task-1.srt",
				}, nil)
				c.On("ResolveURL", "/videos/task-1.mp4").Once().Return("http://localhost:8000/videos/task-1.mp4")
				c.On("FetchSubtitles", mock.Anything, "/videos/task-1.srt").Once().Return([]model.TranscriptLine{
					{ID: "srt-1", StartTime: 0, EndTime: 5, Text: "hello"},
				}, nil)
			},
			expWS: func(t *testing.T, ws *model.Workspace) {
				assert.Equal(t, "# My lesson", ws.EditorContent)
				assert.Equal(t, "http://localhost:8000/videos/task-1.mp4", ws.VideoURL)
				assert.False(t, ws.TranscriptFallback)
				require.Len(t, ws.Transcript.Lines, 1)
				assert.Equal(t, "srt-1", ws.Transcript.Lines[0].ID)
			},
		},
		"A task without code should fall back to the bundled lesson": {
			id: "task-2",
			mock: func(c *clientmock.MockClient) {
				c.On("GetTask", mock.Anything, "task-2").Once().Return(&model.Task{
					ID:     "task-2",
					Status: model.TaskStatusCompleted,
					SRTURL: "/videos/task-2.srt",
				}, nil)
				c.On("ResolveURL", "").Once().Return("")
				c.On("FetchSubtitles", mock.Anything, "/videos/task-2.srt").Once().Return([]model.TranscriptLine{
					{ID: "srt-1", StartTime: 0, EndTime: 5, Text: "hello"},
				}, nil)
			},
			expWS: func(t *testing.T, ws *model.Workspace) {
				assert.Equal(t, defaults.EditorContent, ws.EditorContent)
			},
		},
		"A subtitle fetch failure should degrade to the bundled transcript": {
			id: "task-3",
			mock: func(c *clientmock.MockClient) {
				c.On("GetTask", mock.Anything, "task-3").Once().Return(&model.Task{
					ID:     "task-3",
					Status: model.TaskStatusCompleted,
					SRTURL: "/videos/task-3.srt",
				}, nil)
				c.On("ResolveURL", "").Once().Return("")
				c.On("FetchSubtitles", mock.Anything, "/videos/task-3.srt").Once().Return(nil, fmt.Errorf("HTTP 404: not found"))
			},
			expWS: func(t *testing.T, ws *model.Workspace) {
				assert.True(t, ws.TranscriptFallback)
				assert.Equal(t, defaults.Transcript(), ws.Transcript)
			},
		},
		"A task without subtitles should use the bundled transcript": {
			id: "task-4",
			mock: func(c *clientmock.MockClient) {
				c.On("GetTask", mock.Anything, "task-4").Once().Return(&model.Task{
					ID:     "task-4",
					Status: model.TaskStatusCompleted,
				}, nil)
				c.On("ResolveURL", "").Once().Return("")
			},
			expWS: func(t *testing.T, ws *model.Workspace) {
				assert.True(t, ws.TranscriptFallback)
				assert.Equal(t, defaults.Transcript(), ws.Transcript)
			},
		},
		"Empty parsed subtitles should degrade to the bundled transcript": {
			id: "task-5",
			mock: func(c *clientmock.MockClient) {
				c.On("GetTask", mock.Anything, "task-5").Once().Return(&model.Task{
					ID:     "task-5",
					Status: model.TaskStatusCompleted,
					SRTURL: "/videos/task-5.srt",
				}, nil)
				c.On("ResolveURL", "").Once().Return("")
				c.On("FetchSubtitles", mock.Anything, "/videos/task-5.srt").Once().Return([]model.TranscriptLine{}, nil)
			},
			expWS: func(t *testing.T, ws *model.Workspace) {
				assert.True(t, ws.TranscriptFallback)
			},
		},
		"A missing task should fail": {
			id: "task-6",
			mock: func(c *clientmock.MockClient) {
				c.On("GetTask", mock.Anything, "task-6").Once().Return(nil, fmt.Errorf("HTTP 404: not found"))
			},
			expErr: true,
		},
		"An empty workspace id should fail without calling the backend": {
			id:     "",
			mock:   func(c *clientmock.MockClient) {},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cli := clientmock.NewMockClient(t)
			tc.mock(cli)

			svc, err := workspaceload.NewService(workspaceload.ServiceConfig{Client: cli})
			require.NoError(t, err)

			ws, err := svc.Load(context.Background(), tc.id)

			if tc.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tc.expWS(t, ws)
		})
	}
}
