package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/session"
	"github.com/asyncroom/acr/internal/storage/storagemock"
)

func TestManagerSave(t *testing.T) {
	tests := map[string]struct {
		sess   model.Session
		token  string
		mock   func(m *storagemock.MockRepository)
		expErr bool
	}{
		"Saving a valid session should store record and token": {
			sess:  model.Session{Username: "alice", ServerURL: "http://localhost:8000"},
			token: "tok-123",
			mock: func(m *storagemock.MockRepository) {
				m.On("SaveSession", mock.Anything, mock.MatchedBy(func(s model.Session) bool {
					return s.Username == "alice" && !s.CreatedAt.IsZero()
				})).Once().Return(nil)
			},
		},
		"Saving a session without username should fail": {
			sess:   model.Session{ServerURL: "http://localhost:8000"},
			token:  "tok-123",
			mock:   func(m *storagemock.MockRepository) {},
			expErr: true,
		},
		"Saving a session with an empty token should fail": {
			sess:   model.Session{Username: "alice", ServerURL: "http://localhost:8000"},
			token:  "",
			mock:   func(m *storagemock.MockRepository) {},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			keyring.MockInit()

			repo := storagemock.NewMockRepository(t)
			tc.mock(repo)

			mgr, err := session.NewManager(session.ManagerConfig{Repository: repo})
			require.NoError(t, err)

			err = mgr.Save(context.Background(), tc.sess, tc.token)

			if tc.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			got, err := keyring.Get("acr", tc.sess.Username)
			require.NoError(t, err)
			assert.Equal(t, tc.token, got)
		})
	}
}

func TestManagerToken(t *testing.T) {
	t.Run("Token of the current session should come from the keychain", func(t *testing.T) {
		keyring.MockInit()
		require.NoError(t, keyring.Set("acr", "alice", "tok-xyz"))

		repo := storagemock.NewMockRepository(t)
		repo.On("GetSession", mock.Anything).Once().Return(&model.Session{
			Username:  "alice",
			ServerURL: "http://localhost:8000",
			CreatedAt: time.Now(),
		}, nil)

		mgr, err := session.NewManager(session.ManagerConfig{Repository: repo})
		require.NoError(t, err)

		token, err := mgr.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-xyz", token)
	})

	t.Run("Token without a session should be unauthenticated", func(t *testing.T) {
		keyring.MockInit()

		repo := storagemock.NewMockRepository(t)
		repo.On("GetSession", mock.Anything).Once().Return(nil, model.ErrNotFound)

		mgr, err := session.NewManager(session.ManagerConfig{Repository: repo})
		require.NoError(t, err)

		_, err = mgr.Token(context.Background())
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
	})

	t.Run("Token missing from the keychain should be unauthenticated", func(t *testing.T) {
		keyring.MockInit()

		repo := storagemock.NewMockRepository(t)
		repo.On("GetSession", mock.Anything).Once().Return(&model.Session{
			Username:  "bob",
			ServerURL: "http://localhost:8000",
			CreatedAt: time.Now(),
		}, nil)

		mgr, err := session.NewManager(session.ManagerConfig{Repository: repo})
		require.NoError(t, err)

		_, err = mgr.Token(context.Background())
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
	})
}

func TestManagerClear(t *testing.T) {
	t.Run("Clearing a session should remove record and token", func(t *testing.T) {
		keyring.MockInit()
		require.NoError(t, keyring.Set("acr", "alice", "tok-xyz"))

		repo := storagemock.NewMockRepository(t)
		repo.On("GetSession", mock.Anything).Once().Return(&model.Session{
			Username:  "alice",
			ServerURL: "http://localhost:8000",
			CreatedAt: time.Now(),
		}, nil)
		repo.On("DeleteSession", mock.Anything).Once().Return(nil)

		mgr, err := session.NewManager(session.ManagerConfig{Repository: repo})
		require.NoError(t, err)

		require.NoError(t, mgr.Clear(context.Background()))

		_, err = keyring.Get("acr", "alice")
		assert.ErrorIs(t, err, keyring.ErrNotFound)
	})

	t.Run("Clearing without a session should not fail", func(t *testing.T) {
		keyring.MockInit()

		repo := storagemock.NewMockRepository(t)
		repo.On("GetSession", mock.Anything).Once().Return(nil, model.ErrNotFound)

		mgr, err := session.NewManager(session.ManagerConfig{Repository: repo})
		require.NoError(t, err)

		assert.NoError(t, mgr.Clear(context.Background()))
	})
}
