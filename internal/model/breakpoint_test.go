package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asyncroom/acr/internal/model"
)

func TestBreakpointValidate(t *testing.T) {
	tests := map[string]struct {
		breakpoint model.Breakpoint
		expErr     bool
	}{
		"Valid breakpoint": {
			breakpoint: model.Breakpoint{StartTime: 62.5, EndTime: 62.5, Text: "X"},
		},
		"Negative start is invalid": {
			breakpoint: model.Breakpoint{StartTime: -1, EndTime: 2, Text: "X"},
			expErr:     true,
		},
		"End before start is invalid": {
			breakpoint: model.Breakpoint{StartTime: 10, EndTime: 5, Text: "X"},
			expErr:     true,
		},
		"Missing text is invalid": {
			breakpoint: model.Breakpoint{StartTime: 1, EndTime: 1},
			expErr:     true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.breakpoint.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestQueuedBreakpointValidate(t *testing.T) {
	valid := model.QueuedBreakpoint{
		ID:          "01HRW9YZTEST000000000000",
		WorkspaceID: "w1",
		Breakpoint:  model.Breakpoint{StartTime: 1, EndTime: 1, Text: "X"},
		Status:      model.QueuedBreakpointStatusPending,
		CreatedAt:   time.Now(),
	}

	tests := map[string]struct {
		mutate func(q *model.QueuedBreakpoint)
		expErr bool
	}{
		"Valid queued breakpoint": {mutate: func(q *model.QueuedBreakpoint) {}},
		"Missing id":              {mutate: func(q *model.QueuedBreakpoint) { q.ID = "" }, expErr: true},
		"Missing workspace":       {mutate: func(q *model.QueuedBreakpoint) { q.WorkspaceID = "" }, expErr: true},
		"Unknown status":          {mutate: func(q *model.QueuedBreakpoint) { q.Status = "lost" }, expErr: true},
		"Invalid breakpoint":      {mutate: func(q *model.QueuedBreakpoint) { q.Breakpoint.Text = "" }, expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)

			err := q.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
