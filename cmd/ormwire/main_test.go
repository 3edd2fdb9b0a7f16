package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/ormwire/internal/app"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"ormwire": func() {
			os.Exit(run(context.Background(), os.Args[1:], os.Stderr, provideComponents))
		},
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupScript,
	})
}

func setupScript(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, domain.DirPerm); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	return nil
}

type mockComponents struct {
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
}

func newMockComponents(t *testing.T) (*mockComponents, ComponentProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &mockComponents{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	a := app.New(
		m.loader,
		mocks.NewMockFingerprinter(ctrl),
		mocks.NewMockGraphStore(ctrl),
		mocks.NewMockGraphDumper(ctrl),
		mocks.NewMockWatcher(ctrl),
		m.logger,
		nil,
		nil,
		nil,
	)
	provider := func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: m.logger}, func() {}, nil
	}
	return m, provider
}

func TestRun_Version(t *testing.T) {
	_, provider := newMockComponents(t)
	stderr := new(bytes.Buffer)

	exitCode := run(t.Context(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

func TestRun_InitError(t *testing.T) {
	stderr := new(bytes.Buffer)
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	exitCode := run(t.Context(), []string{"version"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_CommandError(t *testing.T) {
	m, provider := newMockComponents(t)
	m.loader.EXPECT().Load("missing.yaml").Return(nil, domain.ErrConfigReadFailed)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "failed to load configuration")
	})

	exitCode := run(t.Context(), []string{"compile", "missing.yaml"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

func TestRun_CheckFailureIsNotLoggedTwice(t *testing.T) {
	m, provider := newMockComponents(t)
	m.loader.EXPECT().Load("broken.yaml").Return(nil, domain.ErrConfigParseFailed)
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(t.Context(), []string{"check", "broken.yaml"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

func TestRun_Options(t *testing.T) {
	_, provider := newMockComponents(t)

	var applied bool
	exitCode := run(t.Context(), []string{"version"}, new(bytes.Buffer), provider, func(*app.App) {
		applied = true
	})
	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}
