package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jfabis/FluffyJobs/internal/api"
	"github.com/jfabis/FluffyJobs/internal/cache"
	"github.com/jfabis/FluffyJobs/internal/catalog"
	"github.com/jfabis/FluffyJobs/internal/config"
	"github.com/jfabis/FluffyJobs/internal/entitlement"
	"github.com/jfabis/FluffyJobs/internal/googleauth"
	"github.com/jfabis/FluffyJobs/internal/session"
	"github.com/jfabis/FluffyJobs/internal/storage"
	"github.com/jfabis/FluffyJobs/internal/ui"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	DataDir    string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	app *App
}

// App is the wired client: storage, session, API and catalog, constructed
// once per invocation with the session already restored.
type App struct {
	Store   *storage.SessionStore
	Session *session.Session
	API     *api.Client
	Catalog *catalog.Catalog

	cacheDB *cache.DB
}

// App builds (or returns) the wired application. Construction order
// matters: the API client reads tokens straight from storage, the session
// registers itself as the 401 hook afterwards.
func (c *Context) App() (*App, error) {
	if c.app != nil {
		return c.app, nil
	}

	kv, err := storage.NewFileStore(c.DataDir)
	if err != nil {
		return nil, err
	}
	var store *storage.SessionStore
	if keyringDisabled() {
		store = storage.NewSessionStore(kv)
	} else {
		store = storage.NewSessionStore(storage.NewKeyringStore(kv))
	}

	// The client and session reference each other (bearer token one way,
	// 401 hook the other), so the token source is bound late.
	var sess *session.Session
	client, err := api.NewClient(api.Options{
		BaseURL: c.Config.APIBaseURL,
		Token: func() string {
			if sess == nil {
				return ""
			}
			return sess.AccessToken()
		},
		Timeout: time.Duration(c.Config.RequestTimeout) * time.Second,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, err
	}

	google, err := googleauth.NewClient()
	if err != nil {
		return nil, err
	}

	sess = session.New(session.Options{
		Store:  store,
		API:    client,
		Google: google,
		Pro:    entitlement.NewKVStore(store.KV()),
		Logger: c.Logger,
	})
	client.SetOnUnauthorized(sess.ForceLogout)

	// The session must settle before any guard decides.
	sess.Restore()

	var catalogStore catalog.Store
	cacheDB, err := cache.Open(c.DataDir)
	if err != nil {
		c.Logger.Warn().Err(err).Msg("catalog cache unavailable")
	} else {
		catalogStore = cacheDB
	}

	cat := catalog.New(catalog.Options{
		API:    client,
		Saved:  client,
		Auth:   sess,
		Store:  catalogStore,
		Logger: c.Logger,
	})

	c.app = &App{
		Store:   store,
		Session: sess,
		API:     client,
		Catalog: cat,
		cacheDB: cacheDB,
	}
	return c.app, nil
}

func (a *App) Close() {
	if a.cacheDB != nil {
		_ = a.cacheDB.Close()
	}
}

func keyringDisabled() bool {
	value := strings.TrimSpace(os.Getenv("FLUFFYJOBS_NO_KEYRING"))
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
