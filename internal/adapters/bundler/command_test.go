package bundler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/apiroutes/internal/adapters/bundler"
	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func commandRequest(t *testing.T) domain.BundleRequest {
	t.Helper()

	root := t.TempDir()
	file := filepath.Join(root, "app", "hello+api.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), domain.DirPerm))
	require.NoError(t, os.WriteFile(file, []byte("export const GET = () => 'hi';"), domain.FilePerm))

	return domain.BundleRequest{
		ProjectRoot:  root,
		DevServerURL: "http://localhost:8081",
		FilePath:     file,
		Minify:       true,
		Dev:          false,
		Environment:  domain.EnvironmentNode,
	}
}

func TestCommand_StdoutIsCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	// The route path is appended and becomes $0 of the script.
	cmd := bundler.NewCommand([]string{"sh", "-c", `cat "$0"`}, nil, logger)

	code, err := cmd.Bundle(context.Background(), commandRequest(t))

	require.NoError(t, err)
	assert.Equal(t, "export const GET = () => 'hi';", code)
}

func TestCommand_RunsInProjectRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	req := commandRequest(t)

	cmd := bundler.NewCommand([]string{"sh", "-c", "pwd"}, nil, logger)
	code, err := cmd.Bundle(context.Background(), req)

	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(req.ProjectRoot)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(filepath.Clean(code[:len(code)-1]))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCommand_Environment(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	t.Setenv("APIROUTES_SECRET_LEAK", "nope")

	script := `printf '%s|%s|%s|%s|%s|%s' "$APIROUTES_DEV" "$APIROUTES_MINIFY" ` +
		`"$APIROUTES_ENVIRONMENT" "$APIROUTES_DEV_SERVER_URL" "$EXTRA" "$APIROUTES_SECRET_LEAK"`
	cmd := bundler.NewCommand(
		[]string{"sh", "-c", script},
		map[string]string{"EXTRA": "configured", bundler.EnvMinify: "overridden"},
		logger,
	)

	code, err := cmd.Bundle(context.Background(), commandRequest(t))

	require.NoError(t, err)
	assert.Equal(t, "false|true|node|http://localhost:8081|configured|", code)
}

func TestCommand_FailureCarriesStderr(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("SyntaxError: Unexpected token").Times(1)
	logger.EXPECT().Warn("  at hello+api.ts:1:5").Times(1)

	cmd := bundler.NewCommand(
		[]string{"sh", "-c", `printf 'SyntaxError: Unexpected token\n  at hello+api.ts:1:5' >&2; exit 3`},
		nil,
		logger,
	)

	_, err := cmd.Bundle(context.Background(), commandRequest(t))

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBundlerCommandFailed.Error())
	assert.ErrorContains(t, err, "SyntaxError: Unexpected token")
}

func TestCommand_MissingExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	cmd := bundler.NewCommand([]string{"definitely-not-a-bundler-binary"}, nil, logger)
	_, err := cmd.Bundle(context.Background(), commandRequest(t))

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBundlerCommandFailed.Error())
}

func TestCommand_EmptyArgv(t *testing.T) {
	cmd := bundler.NewCommand(nil, nil, nil)
	_, err := cmd.Bundle(context.Background(), domain.BundleRequest{})

	assert.Same(t, domain.ErrMissingBundlerCommand, err)
}
