package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fftwlink/internal/adapters/shell"
	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecutor_Run_MultiLineOutput(t *testing.T) {
	skipOnWindows(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info(`Running: sh -c "echo line1; echo line2"`),
		mockLogger.EXPECT().Info("line1"),
		mockLogger.EXPECT().Info("line2"),
	)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
}

func TestExecutor_Run_FragmentedOutput(t *testing.T) {
	skipOnWindows(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)
	mockLogger.EXPECT().Info("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2"},
	})
	require.NoError(t, err)
}

func TestExecutor_Run_StderrIsWarn(t *testing.T) {
	skipOnWindows(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)
	mockLogger.EXPECT().Warn("configure: WARNING: unrecognized option").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo 'configure: WARNING: unrecognized option' >&2"},
	})
	require.NoError(t, err)
}

func TestExecutor_Run_WorkingDirAndEnv(t *testing.T) {
	skipOnWindows(t)
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)
	mockLogger.EXPECT().Info("value-123").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo $FFTWLINK_TEST_VAR > out.txt; cat out.txt"},
		Dir:  dir,
		Env:  []string{"FFTWLINK_TEST_VAR=value-123"},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "out.txt"))
	require.NoError(t, statErr)
}

func TestExecutor_Run_ExitCode(t *testing.T) {
	skipOnWindows(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
		Dir:  dir,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCommandFailed.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	md := zErr.Metadata()
	assert.Equal(t, 3, md["exit_code"])
	assert.Equal(t, dir, md["dir"])
	assert.Equal(t, `sh -c "exit 3"`, md["command"])
}

func TestExecutor_Run_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(context.Background(), domain.Command{Name: "fftwlink-no-such-binary"})
	require.Error(t, err)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestExecutor_Run_Cancelled(t *testing.T) {
	skipOnWindows(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Run(ctx, domain.Command{Name: "sleep", Args: []string{"5"}})
	require.Error(t, err)
}
