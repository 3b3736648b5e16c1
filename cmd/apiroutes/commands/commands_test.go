package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/apiroutes/cmd/apiroutes/commands"
	"go.trai.ch/apiroutes/internal/app"
	"go.trai.ch/apiroutes/internal/build"
)

type mockApp struct {
	bundleFunc func(ctx context.Context, files []string, opts app.BuildOptions) error
	exportFunc func(ctx context.Context, opts app.BuildOptions) error
	watchFunc  func(ctx context.Context, opts app.BuildOptions) error

	jsonOutput bool
	verbose    bool
}

func (m *mockApp) Bundle(ctx context.Context, files []string, opts app.BuildOptions) error {
	if m.bundleFunc != nil {
		return m.bundleFunc(ctx, files, opts)
	}
	return nil
}

func (m *mockApp) Export(ctx context.Context, opts app.BuildOptions) error {
	if m.exportFunc != nil {
		return m.exportFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.BuildOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) ConfigureLogging(jsonOutput, verbose bool) {
	m.jsonOutput = jsonOutput
	m.verbose = verbose
}

func TestCommands_Bundle(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.BuildOptions
		var capturedFiles []string

		mock := &mockApp{
			bundleFunc: func(_ context.Context, files []string, opts app.BuildOptions) error {
				capturedFiles = files
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"bundle", "app/a+api.ts", "app/b+api.ts",
			"--mode", "production", "-p", "9000", "--app-dir", "src/app", "--throw", "-c", "custom.yaml",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"app/a+api.ts", "app/b+api.ts"}, capturedFiles)
		assert.Equal(t, app.BuildOptions{
			ConfigPath:  "custom.yaml",
			Mode:        "production",
			Port:        9000,
			AppDir:      "src/app",
			ShouldThrow: true,
		}, capturedOpts)
	})

	t.Run("returns error on bundle failure", func(t *testing.T) {
		mock := &mockApp{
			bundleFunc: func(context.Context, []string, app.BuildOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"bundle", "app/a+api.ts"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no files provided", func(t *testing.T) {
		mock := &mockApp{
			bundleFunc: func(context.Context, []string, app.BuildOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"bundle"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Export(t *testing.T) {
	var capturedOpts app.BuildOptions
	mock := &mockApp{
		exportFunc: func(_ context.Context, opts app.BuildOptions) error {
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"export", "--out", "build", "--mode", "production"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "build", capturedOpts.OutDir)
	assert.Equal(t, "production", capturedOpts.Mode)
	assert.False(t, capturedOpts.ShouldThrow)
}

func TestCommands_Export_RejectsArgs(t *testing.T) {
	cli := commands.New(&mockApp{})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"export", "extra"})

	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Watch(t *testing.T) {
	called := false
	mock := &mockApp{
		watchFunc: func(_ context.Context, opts app.BuildOptions) error {
			called = true
			assert.Equal(t, "dist", opts.OutDir)
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "-o", "dist"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_ConfiguresLogging(t *testing.T) {
	mock := &mockApp{}

	cli := commands.New(mock)
	cli.SetArgs([]string{"export", "--json", "--verbose"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, mock.jsonOutput)
	assert.True(t, mock.verbose)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "apiroutes version "+build.Version)
}
