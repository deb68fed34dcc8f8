package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/timekeeper/internal/config"
	"github.com/alexanderramin/timekeeper/internal/store"
	"github.com/alexanderramin/timekeeper/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

// testClock is a settable clock shared by the App under test.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

// testApp wires an App whose data directory is a fresh temp dir.
func testApp(t *testing.T) (*App, *testClock) {
	t.Helper()
	clock := &testClock{t: cliNow}
	return &App{
		Config: config.Config{DataDir: t.TempDir()},
		Now:    clock.Now,
	}, clock
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// testStore opens the App's data directory directly.
func testStore(t *testing.T, app *App) *store.Store {
	t.Helper()
	s, err := store.New(app.Config.DataDir)
	require.NoError(t, err)
	return s
}

// --- Root command ---

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "report")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	app, _ := testApp(t)
	root := NewRootCmd(app)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"in", "out", "status", "summary", "report", "users", "projects", "menu", "watch", "export"} {
		assert.Contains(t, names, want)
	}
}

// --- Clock in / out ---

func TestClockInOut_Cycle(t *testing.T) {
	app, clock := testApp(t)

	out, err := executeCmd(t, app, "in", "-p", "Apollo", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Clocked in at 2025-06-15T10:00:00")

	clock.t = clock.t.Add(90*time.Minute + 30*time.Second)
	out, err = executeCmd(t, app, "out", "--project", "Apollo", "--user", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Clocked out at 2025-06-15T11:30:30")
	assert.Contains(t, out, "Session length: 90.5 minutes")

	log, err := testStore(t, app).Load("Apollo")
	require.NoError(t, err)
	require.Len(t, log.Users["ada"].Sessions, 1)
	assert.Nil(t, log.Users["ada"].ActiveSession)

	_, err = os.Stat(filepath.Join(app.Config.DataDir, "apollo_time_log.json"))
	assert.NoError(t, err)
}

func TestClockIn_Twice(t *testing.T) {
	app, clock := testApp(t)

	_, err := executeCmd(t, app, "in", "-u", "ada")
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Hour)

	out, err := executeCmd(t, app, "in", "-u", "ada")
	require.NoError(t, err, "an informational outcome is not an error")
	assert.Contains(t, out, "Already clocked in.")
	assert.Contains(t, out, "Started at: 2025-06-15T10:00:00")
}

func TestClockOut_NotClockedIn(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "out", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "You are not currently clocked in.")
}

func TestClockIn_RequiresUser(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "in")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
	assert.Contains(t, err.Error(), config.EnvUser)
}

func TestConfigUserAndProjectUsedAsDefaults(t *testing.T) {
	app, _ := testApp(t)
	app.Config.User = "grace"
	app.Config.Project = "Gemini"

	out, err := executeCmd(t, app, "in")
	require.NoError(t, err)
	assert.Contains(t, out, "grace on Gemini")

	exists, err := testStore(t, app).Exists("Gemini")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConfigFlagReloadsConfig(t *testing.T) {
	app, _ := testApp(t)
	dataDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "tk.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: "+dataDir+"\nuser: linus\n"), 0644))

	_, err := executeCmd(t, app, "in", "--config", cfgPath)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dataDir, "default_project_time_log.json"))
	assert.NoError(t, err)
}

// --- Read-only commands ---

func TestStatus(t *testing.T) {
	app, clock := testApp(t)

	out, err := executeCmd(t, app, "status", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Status for ada: ○ Not clocked in")

	_, err = executeCmd(t, app, "in", "-u", "ada")
	require.NoError(t, err)
	clock.t = clock.t.Add(2 * time.Hour)

	out, err = executeCmd(t, app, "status", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "● Clocked in")
	assert.Contains(t, out, "Started at: 2025-06-15T10:00:00 (2h ago)")
}

func seedSessions(t *testing.T, app *App) {
	t.Helper()
	s := testStore(t, app)
	log := testutil.NewTestLog("Apollo",
		testutil.WithUser("ada",
			testutil.SessionEndedDaysAgo(cliNow, 30, 60),
			testutil.SessionEndedDaysAgo(cliNow, 8, 45),
			testutil.SessionEndedDaysAgo(cliNow, 1, 30),
		),
		testutil.WithActiveSession("bob", cliNow.Add(-time.Hour)),
	)
	require.NoError(t, s.Save("Apollo", log))
}

func TestSummary(t *testing.T) {
	app, _ := testApp(t)
	seedSessions(t, app)

	out, err := executeCmd(t, app, "summary", "-p", "Apollo", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Total sessions: 3")
	assert.Contains(t, out, "Total minutes:  135")
	assert.Contains(t, out, "Total hours:    2.25")

	out, err = executeCmd(t, app, "summary", "-p", "Apollo", "-u", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions logged yet for bob.")
}

func TestReport_DefaultAndCustomWindow(t *testing.T) {
	app, _ := testApp(t)
	seedSessions(t, app)

	out, err := executeCmd(t, app, "report", "-p", "Apollo", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "LAST 7 DAYS REPORT FOR ADA")
	assert.Contains(t, out, "Sessions:      1")

	out, err = executeCmd(t, app, "report", "-p", "Apollo", "-u", "ada", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Sessions:      3")

	out, err = executeCmd(t, app, "report", "-p", "Apollo", "-u", "ada", "--days", "14")
	require.NoError(t, err)
	assert.Contains(t, out, "LAST 14 DAYS REPORT")
}

func TestReport_InvalidWindow(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "report", "-u", "ada", "--days", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one day")
}

func TestUsersAndProjects(t *testing.T) {
	app, _ := testApp(t)
	seedSessions(t, app)

	out, err := executeCmd(t, app, "users", "-p", "Apollo")
	require.NoError(t, err)
	assert.Contains(t, out, "ALL USERS: APOLLO")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "bob")

	out, err = executeCmd(t, app, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Apollo")
	assert.Contains(t, out, "apollo")

	out, err = executeCmd(t, app, "users", "-p", "Nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "No users found yet.")
}

// --- Export ---

func TestExport(t *testing.T) {
	app, _ := testApp(t)
	seedSessions(t, app)
	dbPath := filepath.Join(t.TempDir(), "archive", "tk.db")

	out, err := executeCmd(t, app, "export", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 sessions (1 open) from 1 projects")
	assert.Contains(t, out, "ARCHIVE TOTALS")
	assert.Regexp(t, `Apollo\s+apollo\s+ada\s+3\s+135`, out)
	assert.Regexp(t, `bob\s+0\s+0\s+since 2025-06-15T09:00:00`, out)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestExport_RequiresDBFlag(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "export")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), `"db"`))
}

// --- Watch ---

func TestWatch_NotClockedIn(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "watch", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Not clocked in")
}

func TestLogUseCases_WritesToStderr(t *testing.T) {
	app, _ := testApp(t)
	app.Config.LogUseCases = true

	out, err := executeCmd(t, app, "in", "-u", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "use_case=clock-in")
	assert.Contains(t, out, "success=true")
}
