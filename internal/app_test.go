package internal

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addrbook/internal/controllers"
	"addrbook/internal/models"
	"addrbook/internal/persistence"
	"addrbook/internal/services"
	"addrbook/internal/structures"
	"addrbook/internal/testutil"
)

// --- minimal keeper mock ---

type appTestKeeper struct {
	restoreErr error
	persistErr error
	restored   int
	persisted  int
	closed     int
}

func (k *appTestKeeper) Restore() error {
	k.restored++
	return k.restoreErr
}

func (k *appTestKeeper) Persist() error {
	k.persisted++
	return k.persistErr
}

func (k *appTestKeeper) Close() {
	k.closed++
}

// promptWriter collects output and reports the first prompt, which is
// printed only after signal handling is installed.
type promptWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	ready  chan struct{}
	closed bool
}

func newPromptWriter() *promptWriter {
	return &promptWriter{ready: make(chan struct{})}
}

func (w *promptWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	if !w.closed && strings.Contains(w.buf.String(), prompt) {
		w.closed = true
		close(w.ready)
	}
	return n, err
}

func (w *promptWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func newTestApp(keeper *appTestKeeper) (*App, *testutil.MockMetrics) {
	conf := &structures.Config{AppName: "AddressBook", Birthdays: structures.BirthdaysConfig{HorizonDays: 7}}
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	svc := services.NewDirectoryService(conf, services.NewSystemClock(), testutil.NewMockCache(), metrics, logger)
	cc := controllers.NewCommandController(logger, svc, metrics)
	return NewApp(cc, keeper, conf, logger, metrics), metrics
}

func TestApp_Run_ExitCommand(t *testing.T) {
	keeper := &appTestKeeper{}
	app, metrics := newTestApp(keeper)

	var out bytes.Buffer
	err := app.Run(strings.NewReader("hello\nadd Ann 1111111111\nphone Ann\nexit\nhello\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, welcomeMessage+"\n"))
	assert.Contains(t, text, "How can I help you?\n")
	assert.Contains(t, text, "Contact added.\n")
	assert.Contains(t, text, "1111111111\n")
	assert.True(t, strings.HasSuffix(text, goodbyeMessage+"\n"))
	assert.Equal(t, 1, strings.Count(text, "How can I help you?"))

	assert.Equal(t, 1, keeper.restored)
	assert.Equal(t, 1, keeper.persisted)
	assert.Equal(t, 1, metrics.Flushes)
}

func TestApp_Run_EndOfInputSaves(t *testing.T) {
	keeper := &appTestKeeper{}
	app, _ := newTestApp(keeper)

	var out bytes.Buffer
	require.NoError(t, app.Run(strings.NewReader("add Ann 1111111111\n"), &out))
	assert.Equal(t, 1, keeper.persisted)
	assert.Contains(t, out.String(), goodbyeMessage)
}

func TestApp_Run_BlankLinesProduceNoOutput(t *testing.T) {
	keeper := &appTestKeeper{}
	app, _ := newTestApp(keeper)

	var out bytes.Buffer
	require.NoError(t, app.Run(strings.NewReader("\n   \nclose\n"), &out))
	assert.Equal(t, welcomeMessage+"\n"+strings.Repeat(prompt, 3)+goodbyeMessage+"\n", out.String())
}

func TestApp_Run_RestoreFailureStops(t *testing.T) {
	keeper := &appTestKeeper{restoreErr: errors.New("broken")}
	app, _ := newTestApp(keeper)

	var out bytes.Buffer
	err := app.Run(strings.NewReader("hello\n"), &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, 0, keeper.persisted)
}

func TestApp_Run_PersistFailureReported(t *testing.T) {
	keeper := &appTestKeeper{persistErr: errors.New("disk full")}
	app, metrics := newTestApp(keeper)

	var out bytes.Buffer
	err := app.Run(strings.NewReader("exit\n"), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Unable to save address book: disk full")
	assert.NotContains(t, out.String(), goodbyeMessage)
	assert.Equal(t, 0, metrics.Flushes)
}

func TestApp_Run_FlushFailureIsNotFatal(t *testing.T) {
	keeper := &appTestKeeper{}
	app, metrics := newTestApp(keeper)
	metrics.FlushErr = errors.New("read-only")

	var out bytes.Buffer
	require.NoError(t, app.Run(strings.NewReader("exit\n"), &out))
	assert.Contains(t, out.String(), goodbyeMessage)
}

func TestApp_Run_StateSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.dat")
	conf := &structures.Config{
		AppName:     "AddressBook",
		Persistence: structures.Persistence{FilePath: path, Compression: persistence.CompressionZstd, OnCorrupt: "fail"},
		Birthdays:   structures.BirthdaysConfig{HorizonDays: 7},
	}

	start := func(input string) string {
		logger := &testutil.MockLogger{}
		metrics := testutil.NewMockMetrics()
		compressor, err := persistence.NewCompressorProvider(conf)
		require.NoError(t, err)
		fm := persistence.NewFileManager(compressor, logger, metrics)
		defer fm.Close()

		svc := services.NewDirectoryService(conf, services.NewSystemClock(), testutil.NewMockCache(), metrics, logger)
		keeper := persistence.NewKeeper(conf, logger, svc, fm)
		app := NewApp(controllers.NewCommandController(logger, svc, metrics), keeper, conf, logger, metrics)

		var out bytes.Buffer
		require.NoError(t, app.Run(strings.NewReader(input), &out))
		return out.String()
	}

	start("add Ann 1111111111\nadd-birthday Ann 05.06.1990\nadd Bob 2222222222\nexit\n")
	out := start("all\nexit\n")

	assert.Contains(t, out, "Name: Ann, Phones: 1111111111, Birthday: 05.06.1990\nName: Bob, Phones: 2222222222\n")
}

func TestApp_Run_CorruptSnapshotFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.dat")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o600))

	conf := &structures.Config{
		AppName:     "AddressBook",
		Persistence: structures.Persistence{FilePath: path, Compression: persistence.CompressionNone, OnCorrupt: "fail"},
	}
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	fm := persistence.NewFileManager(&testutil.MockCompressor{}, logger, metrics)
	svc := services.NewDirectoryService(conf, services.NewSystemClock(), testutil.NewMockCache(), metrics, logger)
	app := NewApp(controllers.NewCommandController(logger, svc, metrics), persistence.NewKeeper(conf, logger, svc, fm), conf, logger, metrics)

	var out bytes.Buffer
	err := app.Run(strings.NewReader("exit\n"), &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrCorruptStore))
}

func TestApp_Run_InterruptSaves(t *testing.T) {
	keeper := &appTestKeeper{}
	app, metrics := newTestApp(keeper)

	in, feed := io.Pipe()
	defer feed.Close()
	out := newPromptWriter()

	result := make(chan error, 1)
	go func() { result <- app.Run(in, out) }()

	select {
	case <-out.ready:
	case <-time.After(5 * time.Second):
		t.Fatal("no prompt printed")
	}
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after SIGINT")
	}

	assert.Equal(t, 1, keeper.persisted)
	assert.Equal(t, 1, metrics.Flushes)
	assert.True(t, strings.HasSuffix(out.String(), goodbyeMessage+"\n"))
}

func TestApp_Close_ReleasesKeeper(t *testing.T) {
	keeper := &appTestKeeper{}
	app, _ := newTestApp(keeper)

	app.Close()
	assert.Equal(t, 1, keeper.closed)
}
