package reporter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/apiroutes/internal/adapters/logger"
	"go.trai.ch/apiroutes/internal/adapters/reporter"
	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newReporter(t *testing.T) (*reporter.Reporter, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return reporter.New(lg), buf
}

func TestReporter_Report(t *testing.T) {
	tests := []struct {
		name       string
		failure    domain.BuildFailure
		goldenName string
	}{
		{
			name: "compile error",
			failure: domain.BuildFailure{
				Err:         errors.New("SyntaxError: Unexpected token (3:14)"),
				ProjectRoot: "/project",
				FilePath:    "/project/app/api/users+api.ts",
			},
			goldenName: "report_compile_error",
		},
		{
			name: "bundler command failure",
			failure: domain.BuildFailure{
				Err: zerr.With(
					zerr.Wrap(errors.New("Cannot find module 'zod'"), domain.ErrBundlerCommandFailed.Error()),
					"exit_code", 1,
				),
				ProjectRoot: "/project",
				FilePath:    "/project/app/health+api.ts",
			},
			goldenName: "report_command_failure",
		},
		{
			name: "route outside project root",
			failure: domain.BuildFailure{
				Err:         errors.New("boom"),
				ProjectRoot: "/project",
				FilePath:    "/other/x+api.ts",
			},
			goldenName: "report_outside_root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newReporter(t)
			r.Report(context.Background(), tt.failure)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestReporter_NilErrorIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)

	reporter.New(lg).Report(context.Background(), domain.BuildFailure{FilePath: "/p/a+api.ts"})
}

func TestReporter_LogsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)
	cause := errors.New("boom")

	lg.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, cause)
		assert.ErrorContains(t, err, "failed to bundle API route")
	}).Times(1)

	reporter.New(lg).Report(context.Background(), domain.BuildFailure{
		Err:         cause,
		ProjectRoot: "/p",
		FilePath:    "/p/app/a+api.ts",
	})
}
