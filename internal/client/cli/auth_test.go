package cli

import (
	"context"
	"testing"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/session"
)

func TestLogin_Success(t *testing.T) {
	silenceOutput(t)
	stubInputs(t, "ana@example.org", []byte("secret"))

	ta := newTestApp()
	ta.session.loginRes = session.OpResult{OK: true}
	ta.session.loginUser = &models.User{Email: "ana@example.org"}

	if err := ta.app.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if ta.session.loginEmail != "ana@example.org" || ta.session.loginPass != "secret" {
		t.Fatalf("credentials mismatch: %q / %q", ta.session.loginEmail, ta.session.loginPass)
	}
}

func TestLogin_FailurePrintsServerMessage(t *testing.T) {
	out := silenceOutput(t)
	stubInputs(t, "ana@example.org", []byte("wrong"))

	ta := newTestApp()
	ta.session.loginRes = session.OpResult{Message: "Credenciais inválidas"}

	if err := ta.app.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !containsLine(*out, "Credenciais inválidas") {
		t.Fatalf("server message not shown: %v", *out)
	}
}

func TestRegister_Success(t *testing.T) {
	silenceOutput(t)
	stubInputs(t, "ana@example.org", []byte("secret"))

	ta := newTestApp()
	ta.session.registerRes = session.OpResult{OK: true}
	ta.session.loginUser = &models.User{Email: "ana@example.org"}

	if err := ta.app.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if ta.session.registerReq.Email != "ana@example.org" {
		t.Fatalf("register email mismatch: %q", ta.session.registerReq.Email)
	}
	if ta.session.registerReq.Password != "secret" {
		t.Fatal("register password mismatch")
	}
}

func TestLogout_ClearsSessionAndCache(t *testing.T) {
	silenceOutput(t)

	ta := newTestApp()
	ta.session.authed = true
	ta.session.user = &models.User{Email: "ana@example.org"}
	ta.app.pendingLine = "dashboard"

	if err := ta.app.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if ta.session.logoutCount != 1 {
		t.Fatal("session Logout not called")
	}
	if !ta.analyses.clearCalled {
		t.Fatal("local cache not cleared")
	}
	if ta.app.pendingLine != "" {
		t.Fatal("pending command survived logout")
	}
}

func TestActivate_PromptsEmailWhenMissing(t *testing.T) {
	silenceOutput(t)
	stubInputs(t, "ana@example.org", []byte("newpass"))

	ta := newTestApp()
	ta.activation.info = &models.User{NeedsEmail: true}
	ta.activation.user = &models.User{Name: "Ana", Email: "ana@example.org"}

	if err := ta.app.Activate(context.Background(), []string{"u1"}); err != nil {
		t.Fatalf("Activate err: %v", err)
	}
	if ta.activation.completeID != "u1" {
		t.Fatalf("user id mismatch: %q", ta.activation.completeID)
	}
	if ta.activation.completeReq.Email != "ana@example.org" {
		t.Fatalf("email not collected: %q", ta.activation.completeReq.Email)
	}
	if ta.activation.completeReq.Password != "newpass" {
		t.Fatal("password mismatch")
	}
}

func TestActivate_SkipsEmailWhenKnown(t *testing.T) {
	silenceOutput(t)
	stubInputs(t, "should-not-be-used", []byte("newpass"))

	ta := newTestApp()
	ta.activation.info = &models.User{Email: "ana@example.org"}
	ta.activation.user = &models.User{Name: "Ana"}

	if err := ta.app.Activate(context.Background(), []string{"u1"}); err != nil {
		t.Fatalf("Activate err: %v", err)
	}
	if ta.activation.completeReq.Email != "" {
		t.Fatalf("email should stay empty: %q", ta.activation.completeReq.Email)
	}
}

func TestRefresh(t *testing.T) {
	out := silenceOutput(t)

	ta := newTestApp()
	ta.session.authed = true
	ta.session.refreshRes = session.OpResult{OK: true}
	if err := ta.app.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh err: %v", err)
	}
	if !containsLine(*out, "Sessão renovada") {
		t.Fatalf("missing success message: %v", *out)
	}

	ta.session.refreshRes = session.OpResult{}
	_ = ta.app.Refresh(context.Background())
	if !containsLine(*out, "Sessão expirada") {
		t.Fatalf("missing expiry message: %v", *out)
	}
}
