// Package session owns the client's authentication state: the current user,
// the bearer token, and the persisted token record. It is the only mutation
// surface for auth state and the sole writer of the token record and of the
// API client's default authorization header.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/tokenstore"
	"github.com/testematch/cli/internal/common"
	"github.com/testematch/cli/internal/logging"
	"github.com/testematch/cli/internal/tokenx"
)

// State is the session lifecycle phase.
type State string

const (
	StateInitializing   State = "initializing"
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateRefreshing     State = "refreshing"
)

// Fallback messages shown when the backend does not supply one.
const (
	msgLoginFailed    = "Erro ao fazer login"
	msgRegisterFailed = "Erro ao criar conta"
	msgUpdateFailed   = "Erro ao atualizar perfil"
)

// OpResult is the discriminated outcome of a user-facing session operation.
// Operations never panic or leak transport errors past this boundary; the
// caller renders Message near the point of interaction.
type OpResult struct {
	OK      bool
	Message string
}

// API is the slice of the backend client the session depends on.
type API interface {
	Login(ctx context.Context, email, password string) (*models.AuthPayload, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
	Refresh(ctx context.Context) (string, error)
	SetAuthToken(token string)
}

// Messenger extracts a displayable message from an API error, falling back
// to the given default. Kept as a function value so session tests don't need
// real HTTP errors.
type Messenger func(err error, fallback string) string

// Session holds auth state under one mutex: no reader can ever observe a
// token without its corresponding user mid-operation.
//
// Logout is authoritative: it bumps a generation counter, and every
// asynchronous completion (startup profile fetch, token refresh) that
// started under an older generation is discarded instead of resurrecting
// session state.
type Session struct {
	api     API
	tokens  tokenstore.Store
	log     logging.Logger
	message Messenger

	mu      sync.Mutex
	state   State
	token   string
	user    *models.User
	loading bool
	gen     uint64

	subs   map[int]func()
	nextID int

	// now is a test seam for the persisted record expiry.
	now func() time.Time
}

func New(apiClient API, tokens tokenstore.Store, log logging.Logger, message Messenger) *Session {
	return &Session{
		api:     apiClient,
		tokens:  tokens,
		log:     log,
		message: message,
		state:   StateInitializing,
		loading: true,
		subs:    make(map[int]func()),
		now:     time.Now,
	}
}

// Init performs the startup check: if a persisted token exists, configure
// the auth header and fetch the profile; otherwise go straight to anonymous.
// Either way, loading is false once Init returns.
func (s *Session) Init(ctx context.Context) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading persisted token failed", "error", err)
	}
	if token == "" {
		s.mu.Lock()
		s.state = StateAnonymous
		s.loading = false
		s.mu.Unlock()
		s.publish()
		return
	}

	s.mu.Lock()
	s.token = token
	gen := s.gen
	s.mu.Unlock()
	s.api.SetAuthToken(token)

	user, err := s.api.Profile(ctx)
	if err != nil {
		// Any profile failure here means the token is expired or invalid;
		// discard it rather than keeping a half-open session.
		s.log.Info(ctx, "persisted token rejected, starting anonymous")
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	if s.gen != gen {
		// logged out while the fetch was in flight
		s.mu.Unlock()
		return
	}
	s.user = user
	s.state = StateAuthenticated
	s.loading = false
	s.mu.Unlock()
	s.publish()
}

// Login exchanges credentials for a token+user pair. On failure the session
// stays anonymous and the result carries a displayable message.
func (s *Session) Login(ctx context.Context, email, password string) OpResult {
	s.setState(StateAuthenticating)

	payload, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.failAuth()
		return OpResult{Message: s.message(err, msgLoginFailed)}
	}

	s.adopt(ctx, payload)
	return OpResult{OK: true}
}

// Register creates an account; contract and side effects mirror Login.
func (s *Session) Register(ctx context.Context, req models.RegisterRequest) OpResult {
	s.setState(StateAuthenticating)

	payload, err := s.api.Register(ctx, req)
	if err != nil {
		s.failAuth()
		return OpResult{Message: s.message(err, msgRegisterFailed)}
	}

	s.adopt(ctx, payload)
	return OpResult{OK: true}
}

// Adopt installs an externally obtained token+user pair (the setup-password
// activation flow) exactly as a successful login would.
func (s *Session) Adopt(ctx context.Context, payload *models.AuthPayload) {
	s.adopt(ctx, payload)
}

// Logout unconditionally clears the session: in-memory state, persisted
// record, and the API auth header. It never fails and is idempotent.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
	s.loading = false
	s.mu.Unlock()

	s.api.SetAuthToken("")
	if err := s.tokens.Delete(ctx); err != nil {
		s.log.Warn(ctx, "deleting persisted token failed", "error", err)
	}
	s.publish()
}

// FetchProfile refreshes the user from the server. Any failure is treated as
// an invalid session, not a transient error: the session is logged out.
func (s *Session) FetchProfile(ctx context.Context) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.user = user
	if s.token != "" {
		s.state = StateAuthenticated
	}
	s.mu.Unlock()
	s.publish()
}

// UpdateProfile PUTs the mutable fields; the server-returned representation
// is authoritative and replaces the local user wholesale.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) OpResult {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return OpResult{Message: s.message(err, msgUpdateFailed)}
	}

	s.mu.Lock()
	if s.gen == gen {
		s.user = user
	}
	s.mu.Unlock()
	s.publish()
	return OpResult{OK: true}
}

// RefreshToken explicitly runs the refresh protocol. Failure forces logout.
func (s *Session) RefreshToken(ctx context.Context) OpResult {
	s.mu.Lock()
	gen := s.gen
	if s.state == StateAuthenticated {
		s.state = StateRefreshing
	}
	s.mu.Unlock()
	s.publish()

	token, err := s.api.Refresh(ctx)
	if err != nil {
		s.Logout(ctx)
		return OpResult{}
	}

	s.installToken(ctx, token, gen)
	return OpResult{OK: true}
}

// TokenRefreshed is the hook the HTTP client invokes after an
// interceptor-triggered refresh, so the new token reaches the persisted
// record. A refresh completing after logout is discarded.
func (s *Session) TokenRefreshed(token string) {
	s.mu.Lock()
	gen := s.gen
	anonymous := s.state == StateAnonymous
	s.mu.Unlock()
	if anonymous {
		return
	}
	s.installToken(context.Background(), token, gen)
}

// IsAuthenticated reports whether both token and user are present. A token
// without a resolved user is a transient startup/login state, never a steady
// state callers should render against.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// HasCredits reports whether the current user holds at least required
// credits. With no user present it is always false.
func (s *Session) HasCredits(required int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Credits >= required
}

// UpdateCredits locally patches the credit balance for immediate UI
// feedback. No network call; the next profile or dashboard fetch overwrites
// it with the authoritative value.
func (s *Session) UpdateCredits(credits int) {
	s.mu.Lock()
	if s.user != nil {
		u := *s.user
		u.Credits = credits
		s.user = &u
	}
	s.mu.Unlock()
	s.publish()
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers fn to run after every state transition. The returned
// function unsubscribes.
func (s *Session) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) publish() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.publish()
}

// failAuth ends a failed login/register attempt. The state label must keep
// agreeing with IsAuthenticated: a failed re-login from an authenticated
// session leaves token and user intact, so the session stays authenticated
// rather than being relabelled anonymous.
func (s *Session) failAuth() {
	s.mu.Lock()
	if s.token != "" && s.user != nil {
		s.state = StateAuthenticated
	} else {
		s.state = StateAnonymous
	}
	s.mu.Unlock()
	s.publish()
}

// adopt installs a token+user pair from login/register/activation: state,
// persisted record and auth header move together.
func (s *Session) adopt(ctx context.Context, payload *models.AuthPayload) {
	s.mu.Lock()
	s.token = payload.Token
	s.user = payload.User
	s.state = StateAuthenticated
	s.loading = false
	s.mu.Unlock()

	s.api.SetAuthToken(payload.Token)
	s.persist(ctx, payload.Token)
	s.publish()
}

// installToken updates the token only (refresh path); the user record is
// untouched. Discarded when gen advanced (logout won the race).
func (s *Session) installToken(ctx context.Context, token string, gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.token = token
	if s.state == StateRefreshing {
		s.state = StateAuthenticated
	}
	s.mu.Unlock()

	s.api.SetAuthToken(token)
	s.persist(ctx, token)
	s.publish()
}

// persist writes the token record with the 7-day TTL, capped by the token's
// own exp claim when it parses as a JWT.
func (s *Session) persist(ctx context.Context, token string) {
	expiry := s.now().Add(common.TokenRecordTTL)
	if exp, ok := tokenx.ExpiresAt(token); ok && exp.Before(expiry) {
		expiry = exp
	}
	if err := s.tokens.Save(ctx, token, expiry); err != nil {
		s.log.Warn(ctx, "persisting token failed", "error", err)
	}
}
