package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/testematch/cli/internal/client/api"
	"github.com/testematch/cli/internal/client/config"
	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/repositories/analyses"
	"github.com/testematch/cli/internal/client/services"
	"github.com/testematch/cli/internal/client/session"
	"github.com/testematch/cli/internal/client/storage"
	"github.com/testematch/cli/internal/client/tokenstore"
	"github.com/testematch/cli/internal/logging"
)

// sessionManager is the slice of the session store the CLI operates on.
type sessionManager interface {
	Init(ctx context.Context)
	Login(ctx context.Context, email, password string) session.OpResult
	Register(ctx context.Context, req models.RegisterRequest) session.OpResult
	Logout(ctx context.Context)
	FetchProfile(ctx context.Context)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) session.OpResult
	RefreshToken(ctx context.Context) session.OpResult
	IsAuthenticated() bool
	HasCredits(required int) bool
	User() *models.User
}

type analysisRunner interface {
	Submit(ctx context.Context, plan string) (*models.Analysis, error)
	Status(ctx context.Context, id string) (*models.UploadStatus, error)
	Get(ctx context.Context, id string) (*models.Analysis, error)
	History(ctx context.Context, page, limit int) (*models.HistoryResponse, bool, error)
	SetPublic(ctx context.Context, id string, isPublic bool) error
	Shared(ctx context.Context, shareToken string) (*models.Analysis, error)
	ClearCache(ctx context.Context) error
}

type creditsDesk interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Balance(ctx context.Context) (int, error)
	Purchase(ctx context.Context, planID string) error
	History(ctx context.Context, page, limit int) (*models.CreditsHistoryResponse, error)
}

type accountDesk interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Settings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error)
	Deactivate(ctx context.Context, password string) error
}

type activator interface {
	Info(ctx context.Context, userID string) (*models.User, error)
	Complete(ctx context.Context, userID string, req models.SetupPasswordRequest) (*models.User, error)
}

type App struct {
	config     *config.Config
	session    sessionManager
	analyses   analysisRunner
	credits    creditsDesk
	account    accountDesk
	activation activator
	log        logging.Logger
	db         *sql.DB
	reader     *bufio.Reader

	// pendingLine remembers the command a not-yet-authenticated user tried
	// to run; it is replayed after the next successful login.
	pendingLine string
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := storage.Open(ctx, filepath.Join(c.DataDir, "testematch.db"))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	tokens, err := tokenstore.NewSQLiteStore(db, filepath.Join(c.DataDir, "install.secret"))
	if err != nil {
		return nil, err
	}

	apiClient := api.New(c.APIBaseURL, c.RequestTimeout, log)
	sess := session.New(apiClient, tokens, log, api.MessageOr)
	apiClient.OnTokenRefreshed = sess.TokenRefreshed
	apiClient.OnSessionExpired = func() { sess.Logout(context.Background()) }

	cache := analyses.NewSQLiteRepository(db)

	return &App{
		config:     c,
		session:    sess,
		analyses:   services.NewAnalysisService(apiClient, sess, cache),
		credits:    services.NewCreditsService(apiClient, sess),
		account:    services.NewUserService(apiClient, sess, cache),
		activation: services.NewActivationService(apiClient, sess),
		log:        log,
		db:         db,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and hands control to the REPL. It
// blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Init(ctx)

	printlnFn("TesteMatch CLI (digite 'help' para ver os comandos)")
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Prompt renders the REPL prompt, including the signed-in account and its
// credit balance when available.
func (a *App) Prompt() string {
	user := a.session.User()
	if user == nil {
		return "tm > "
	}
	return fmt.Sprintf("tm (%s %dcr) > ", user.Email, user.Credits)
}
