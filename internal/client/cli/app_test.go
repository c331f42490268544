package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/session"
	"github.com/testematch/cli/internal/logging"
)

// nopLogger discards everything; command handlers under test log only on
// background cleanup failures.
type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

type fakeSession struct {
	authed bool
	user   *models.User

	initCalled  bool
	fetchCalled bool
	logoutCount int

	loginEmail  string
	loginPass   string
	loginRes    session.OpResult
	loginUser   *models.User
	registerReq models.RegisterRequest
	registerRes session.OpResult
	updateReq   models.ProfileUpdate
	updateRes   session.OpResult
	refreshRes  session.OpResult
}

func (f *fakeSession) Init(context.Context) { f.initCalled = true }

func (f *fakeSession) Login(_ context.Context, email, password string) session.OpResult {
	f.loginEmail, f.loginPass = email, password
	if f.loginRes.OK {
		f.authed = true
		f.user = f.loginUser
	}
	return f.loginRes
}

func (f *fakeSession) Register(_ context.Context, req models.RegisterRequest) session.OpResult {
	f.registerReq = req
	if f.registerRes.OK {
		f.authed = true
		f.user = f.loginUser
	}
	return f.registerRes
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCount++
	f.authed = false
	f.user = nil
}

func (f *fakeSession) FetchProfile(context.Context) { f.fetchCalled = true }

func (f *fakeSession) UpdateProfile(_ context.Context, update models.ProfileUpdate) session.OpResult {
	f.updateReq = update
	return f.updateRes
}

func (f *fakeSession) RefreshToken(context.Context) session.OpResult { return f.refreshRes }

func (f *fakeSession) IsAuthenticated() bool { return f.authed }

func (f *fakeSession) HasCredits(required int) bool {
	return f.user != nil && f.user.Credits >= required
}

func (f *fakeSession) User() *models.User { return f.user }

type fakeAnalyses struct {
	calls []string

	submitResult *models.Analysis
	submitErr    error
	getResult    *models.Analysis
	getErr       error
	historyResp  *models.HistoryResponse
	historyCache bool
	historyErr   error
	clearCalled  bool
}

func (f *fakeAnalyses) Submit(_ context.Context, plan string) (*models.Analysis, error) {
	f.calls = append(f.calls, "submit "+plan)
	return f.submitResult, f.submitErr
}

func (f *fakeAnalyses) Status(_ context.Context, id string) (*models.UploadStatus, error) {
	f.calls = append(f.calls, "status "+id)
	return &models.UploadStatus{ID: id, Status: models.AnalysisStatusProcessing, Progress: 40}, nil
}

func (f *fakeAnalyses) Get(_ context.Context, id string) (*models.Analysis, error) {
	f.calls = append(f.calls, "get "+id)
	return f.getResult, f.getErr
}

func (f *fakeAnalyses) History(_ context.Context, page, limit int) (*models.HistoryResponse, bool, error) {
	f.calls = append(f.calls, fmt.Sprintf("history %d %d", page, limit))
	return f.historyResp, f.historyCache, f.historyErr
}

func (f *fakeAnalyses) SetPublic(_ context.Context, id string, isPublic bool) error {
	f.calls = append(f.calls, fmt.Sprintf("setpublic %s %v", id, isPublic))
	return nil
}

func (f *fakeAnalyses) Shared(_ context.Context, token string) (*models.Analysis, error) {
	f.calls = append(f.calls, "shared "+token)
	return f.getResult, f.getErr
}

func (f *fakeAnalyses) ClearCache(context.Context) error {
	f.clearCalled = true
	return nil
}

type fakeCredits struct {
	calls   []string
	balance int
}

func (f *fakeCredits) Plans(context.Context) ([]models.Plan, error) {
	f.calls = append(f.calls, "plans")
	return []models.Plan{{ID: "p1", Name: "Básico", Price: 9.9, Credits: 1}}, nil
}

func (f *fakeCredits) Balance(context.Context) (int, error) {
	f.calls = append(f.calls, "balance")
	return f.balance, nil
}

func (f *fakeCredits) Purchase(_ context.Context, planID string) error {
	f.calls = append(f.calls, "purchase "+planID)
	return nil
}

func (f *fakeCredits) History(_ context.Context, page, limit int) (*models.CreditsHistoryResponse, error) {
	f.calls = append(f.calls, "history")
	return &models.CreditsHistoryResponse{}, nil
}

type fakeAccount struct {
	calls          []string
	settings       models.Settings
	savedSettings  *models.Settings
	deactivatePass string
	deactivateErr  error
}

func (f *fakeAccount) Dashboard(context.Context) (*models.Dashboard, error) {
	f.calls = append(f.calls, "dashboard")
	return &models.Dashboard{Stats: models.DashboardStats{TotalAnalyses: 2}}, nil
}

func (f *fakeAccount) Settings(context.Context) (*models.Settings, error) {
	f.calls = append(f.calls, "settings")
	s := f.settings
	return &s, nil
}

func (f *fakeAccount) UpdateSettings(_ context.Context, s models.Settings) (*models.Settings, error) {
	f.savedSettings = &s
	return &s, nil
}

func (f *fakeAccount) Deactivate(_ context.Context, password string) error {
	f.deactivatePass = password
	return f.deactivateErr
}

type fakeActivation struct {
	info        *models.User
	infoErr     error
	completeReq models.SetupPasswordRequest
	completeID  string
	user        *models.User
	completeErr error
}

func (f *fakeActivation) Info(_ context.Context, userID string) (*models.User, error) {
	return f.info, f.infoErr
}

func (f *fakeActivation) Complete(_ context.Context, userID string, req models.SetupPasswordRequest) (*models.User, error) {
	f.completeID, f.completeReq = userID, req
	return f.user, f.completeErr
}

type testApp struct {
	app        *App
	session    *fakeSession
	analyses   *fakeAnalyses
	credits    *fakeCredits
	account    *fakeAccount
	activation *fakeActivation
}

func newTestApp() *testApp {
	sess := &fakeSession{}
	an := &fakeAnalyses{}
	cr := &fakeCredits{}
	ac := &fakeAccount{}
	act := &fakeActivation{}
	app := &App{
		session:    sess,
		analyses:   an,
		credits:    cr,
		account:    ac,
		activation: act,
		log:        nopLogger{},
		reader:     bufio.NewReader(strings.NewReader("")),
	}
	return &testApp{app: app, session: sess, analyses: an, credits: cr, account: ac, activation: act}
}

// silenceOutput swallows user-facing prints and collects them for assertions.
func silenceOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	lines := &[]string{}
	printlnFn = func(a ...any) (int, error) {
		*lines = append(*lines, strings.TrimRight(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return lines
}

func stubInputs(t *testing.T, text string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer, _ string) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func stubConfirm(t *testing.T, answer bool) {
	t.Helper()
	orig := getConfirm
	getConfirm = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return answer, nil }
	t.Cleanup(func() { getConfirm = orig })
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestPrompt(t *testing.T) {
	ta := newTestApp()
	if got := ta.app.Prompt(); got != "tm > " {
		t.Fatalf("anonymous prompt: %q", got)
	}

	ta.session.user = &models.User{Email: "ana@example.org", Credits: 5}
	if got := ta.app.Prompt(); got != "tm (ana@example.org 5cr) > " {
		t.Fatalf("authenticated prompt: %q", got)
	}
}
