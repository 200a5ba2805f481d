package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/xpertdoc-portal-cli/internal/adapters/fixture"
	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sampleFile = domain.ContentFileRef{Library: "ContentLibraryName", Folder: "ParentFolderName", Name: "FileName"}
	reportFile = domain.ContentFileRef{Library: "Reports", Folder: "2024", Name: "Report.pdf"}
)

func TestRootRunsSampleWorkflow(t *testing.T) {
	portal := startFixture(t)
	home := t.TempDir()
	out := filepath.Join(t.TempDir(), "document.pdf")

	stdout, _, err := executeCLI(t, home, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Xpertdoc Portal workflow")
	assert.Contains(t, stdout, "TemplateLibraryName/TemplateGroupName/TemplateName")
	assert.Contains(t, stdout, "FileName")

	document, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 sample document"), document)

	content, err := portal.FileContent(sampleFile)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, content)
}

func TestRunUsesConfiguredWorkflowInputs(t *testing.T) {
	portal := startFixture(t)
	home := t.TempDir()
	writeConfig(t, home, `
[workflow.template]
library = "Docs"
group = "Invoices"
name = "Standard"

[workflow.content]
library = "Reports"
folder = "2024"
file = "Report.pdf"
`)
	t.Setenv("XDP_WORKFLOW_CHECKIN_CONTENT", "aGVsbG8=")

	stdout, _, err := executeCLI(t, home, "run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Docs/Invoices/Standard")

	content, err := portal.FileContent(reportFile)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)
}

func TestRunStopsWhenTemplateExecutionFails(t *testing.T) {
	portal := startFixture(t)
	home := t.TempDir()
	t.Setenv("XDP_WORKFLOW_TEMPLATE_LIBRARY", "Docs")
	t.Setenv("XDP_WORKFLOW_TEMPLATE_GROUP", "Invoices")
	t.Setenv("XDP_WORKFLOW_TEMPLATE_NAME", "Broken")

	_, _, err := executeCLI(t, home)
	require.ErrorIs(t, err, domain.ErrRemoteExecutionFailure)
	assert.Contains(t, err.Error(), "Data source 'Customer' is missing")

	content, err := portal.FileContent(sampleFile)
	require.NoError(t, err)
	assert.Equal(t, []byte("original content"), content)
}

func TestTemplateExecuteWritesDocument(t *testing.T) {
	startFixture(t)
	home := t.TempDir()
	out := filepath.Join(t.TempDir(), "invoice.pdf")
	payload := filepath.Join(t.TempDir(), "payload.xml")
	require.NoError(t, os.WriteFile(payload, []byte("<invoice/>"), 0o600))

	stdout, _, err := executeCLI(t, home,
		"template", "execute",
		"--library", "Docs",
		"--group", "Invoices",
		"--name", "Standard",
		"--payload-file", payload,
		"--out", out,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "succeeded")

	document, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 invoice"), document)
}

func TestTemplateExecuteRendersFailureReason(t *testing.T) {
	startFixture(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "template", "execute", "--library", "Docs", "--group", "Invoices", "--name", "Broken")
	require.ErrorIs(t, err, domain.ErrRemoteExecutionFailure)
	assert.Contains(t, stdout, "failed")
	assert.Contains(t, stdout, "Data source 'Customer' is missing")
}

func TestTemplateExecuteMissingTemplate(t *testing.T) {
	portal := startFixture(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "template", "execute", "--library", "Docs", "--group", "Receipts", "--name", "Standard")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, portal.ExecuteCalls())
}

func TestTemplateExecuteShowsSpinnerWhileAwaiting(t *testing.T) {
	startFixture(t)
	home := t.TempDir()
	t.Setenv("XDP_PROGRESS", "always")
	t.Setenv("XDP_POLL_INTERVAL", "100ms")

	_, stderr, err := executeCLI(t, home, "template", "execute", "--library", "Docs", "--group", "Invoices", "--name", "Slow")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Executing template Docs/Invoices/Slow")
}

func TestContentGetWritesCurrentContent(t *testing.T) {
	startFixture(t)
	home := t.TempDir()
	out := filepath.Join(t.TempDir(), "report.pdf")

	stdout, _, err := executeCLI(t, home, "content", "get", "--library", "Reports", "--folder", "2024", "--name", "Report.pdf", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report.pdf")
	assert.Contains(t, stdout, "available")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 report"), content)
}

func TestContentCheckoutAndCheckInWithFormsProfile(t *testing.T) {
	portal := startFixtureWithoutEnv(t)
	home := t.TempDir()
	in := filepath.Join(t.TempDir(), "new.pdf")
	require.NoError(t, os.WriteFile(in, []byte("%PDF-1.7 revised"), 0o600))

	_, _, err := executeCLI(t, home,
		"profile", "set",
		"--portal-url", portal.url,
		"--auth", "forms",
		"--username", "alice",
		"--password", "alice-secret",
	)
	require.NoError(t, err)

	fileFlags := []string{"--library", "Reports", "--folder", "2024", "--name", "Report.pdf"}

	stdout, _, err := executeCLI(t, home, append([]string{"content", "checkout"}, fileFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "checked out Report.pdf")

	holder, err := portal.CheckedOutBy(reportFile)
	require.NoError(t, err)
	assert.Equal(t, "alice", holder)

	stdout, _, err = executeCLI(t, home, append([]string{"content", "checkin", "--in", in}, fileFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "checked in")

	content, err := portal.FileContent(reportFile)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 revised"), content)

	holder, err = portal.CheckedOutBy(reportFile)
	require.NoError(t, err)
	assert.Empty(t, holder)
}

func TestContentCheckoutHeldByAnotherUser(t *testing.T) {
	portal := startFixture(t)
	home := t.TempDir()
	t.Setenv("XDP_PORTAL_AUTH", "forms")
	fileFlags := []string{"content", "checkout", "--library", "Reports", "--folder", "2024", "--name", "Report.pdf"}

	t.Setenv("XDP_PORTAL_USERNAME", "bob")
	t.Setenv("XDP_PORTAL_PASSWORD", "bob-secret")
	_, _, err := executeCLI(t, home, fileFlags...)
	require.NoError(t, err)

	t.Setenv("XDP_PORTAL_USERNAME", "alice")
	t.Setenv("XDP_PORTAL_PASSWORD", "alice-secret")
	_, _, err = executeCLI(t, home, fileFlags...)
	require.ErrorIs(t, err, domain.ErrConflict)

	holder, err := portal.CheckedOutBy(reportFile)
	require.NoError(t, err)
	assert.Equal(t, "bob", holder)
}

func TestContentCheckInWithoutCheckoutConflicts(t *testing.T) {
	portal := startFixture(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "content", "checkin")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "update content")

	content, err := portal.FileContent(sampleFile)
	require.NoError(t, err)
	assert.Equal(t, []byte("original content"), content)
}

func TestWrongPasswordIsAuthorizationError(t *testing.T) {
	startFixture(t)
	home := t.TempDir()
	t.Setenv("XDP_PORTAL_AUTH", "forms")
	t.Setenv("XDP_PORTAL_USERNAME", "alice")
	t.Setenv("XDP_PORTAL_PASSWORD", "wrong")

	_, _, err := executeCLI(t, home, "content", "get")
	require.ErrorIs(t, err, domain.ErrAuthorization)
}

func TestProfileListAndRemove(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "profile", "set", "--portal-url", "https://portal.example.com")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "--profile", "forms", "profile", "set",
		"--portal-url", "https://portal.example.com",
		"--auth", "forms",
		"--username", "alice",
		"--password", "alice-secret",
	)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "profiles: 2")
	assert.Contains(t, stdout, "default *")
	assert.Contains(t, stdout, "forms (alice)")
	assert.NotContains(t, stdout, "alice-secret")

	_, _, err = executeCLI(t, home, "--profile", "forms", "profile", "remove")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "profiles: 1")

	_, _, err = executeCLI(t, home, "--profile", "forms", "profile", "remove")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileSetFormsRequiresPassword(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "profile", "set", "--portal-url", "https://portal.example.com", "--auth", "forms", "--username", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}

func TestMissingProfileExplainsSetup(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDP_PORTAL_URL", "")

	_, _, err := executeCLI(t, home, "content", "get")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.Contains(t, err.Error(), "xdp profile set")
}

func TestInvalidMatchPolicyIsRejected(t *testing.T) {
	startFixture(t)
	home := t.TempDir()
	t.Setenv("XDP_MATCH_POLICY", "last")

	_, _, err := executeCLI(t, home, "content", "get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported match policy")
}

func TestVerboseLogsPortalRequests(t *testing.T) {
	startFixture(t)
	home := t.TempDir()

	_, stderr, err := executeCLI(t, home, "--verbose", "--log-json", "content", "get")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"portal request"`)
	assert.Contains(t, stderr, `"request_id"`)
}

func TestUnknownCommandIsRejected(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"limit\"")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestFixtureServeStopsWhenContextEnds(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"fixture", "serve", "--addr", "127.0.0.1:0"})

	require.NoError(t, root.ExecuteContext(ctx))
	assert.Contains(t, stdout.String(), "fixture portal listening on http://127.0.0.1:")
}

type fixturePortal struct {
	*fixture.Portal
	url string
}

// startFixture serves the default seed and points XDP_PORTAL_URL at it with
// windows credentials.
func startFixture(t *testing.T) fixturePortal {
	t.Helper()

	portal := startFixtureWithoutEnv(t)
	t.Setenv("XDP_PORTAL_URL", portal.url)
	return portal
}

func startFixtureWithoutEnv(t *testing.T) fixturePortal {
	t.Helper()

	portal := fixture.New(fixture.DefaultSeed())
	server := httptest.NewServer(portal.Handler())
	t.Cleanup(server.Close)
	return fixturePortal{Portal: portal, url: server.URL}
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, home string, content string) {
	t.Helper()

	configDir := filepath.Join(home, configDirName)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileName), []byte(content), 0o644))
}
