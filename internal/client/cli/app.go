package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophshelf/internal/client/client"
	"github.com/dmitrijs2005/gophshelf/internal/client/config"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/auth"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/books"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/profile"
	"github.com/dmitrijs2005/gophshelf/internal/client/services"
	"github.com/dmitrijs2005/gophshelf/internal/client/viewmodels"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/docstore"
	"github.com/dmitrijs2005/gophshelf/internal/remote/identity"
	"github.com/dmitrijs2005/gophshelf/internal/remote/objectstore"
)

// App is the terminal client. Every screen is a view-model; commands read
// their state after the launched job finishes.
type App struct {
	config *config.Config
	log    logging.Logger

	main     *viewmodels.MainViewModel
	login    *viewmodels.LoginViewModel
	register *viewmodels.RegisterViewModel
	books    *viewmodels.MyBooksViewModel
	upload   *viewmodels.UploadViewModel
	profile  *viewmodels.ProfileViewModel
	reader   *viewmodels.ReaderViewModel

	// reading is the book open in the reader, nil when none.
	reading *readingSession

	in      *bufio.Reader
	out     io.Writer
	closers []io.Closer
}

// backends are the stores the client talks to.
type backends struct {
	local    *sql.DB
	repos    *client.Repositories
	provider identity.Provider
	docs     docstore.Store
	objects  objectstore.Store
}

// NewApp opens the local and remote databases, restores the saved session
// and wires repositories, services and view-models.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	local, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}
	repos := client.NewRepositories(local)

	remote, err := client.OpenRemote(c.DatabaseDSN)
	if err != nil {
		local.Close()
		return nil, err
	}

	provider := identity.NewPostgresProvider(remote, repos.Session, c.SecretKey, c.SessionValidityDuration)
	if err := provider.Restore(ctx); err != nil {
		log.Warn(ctx, "saved session discarded", "error", err)
	}

	objects, err := client.NewObjectStore(ctx, c)
	if err != nil {
		local.Close()
		remote.Close()
		return nil, err
	}

	a := newApp(c, log, backends{
		local:    local,
		repos:    repos,
		provider: provider,
		docs:     docstore.NewPostgresStore(remote),
		objects:  objects,
	}, os.Stdin, os.Stdout)
	a.closers = append(a.closers, remote)
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, b backends, in io.Reader, out io.Writer) *App {
	authRepo := auth.NewRepository(b.provider, log)
	meta := books.NewMetaRepository(b.docs, b.objects, c.CacheDir, log)
	raw := books.NewRawRepository(b.objects, "", log)

	profiles := services.NewProfileService(
		profile.NewSessionRepository(b.provider),
		profile.NewUserRepository(b.docs, log),
		profile.NewImageRepository(b.docs, log),
		profile.NewPhotoRepository(b.objects, log),
	)

	return &App{
		config:   c,
		log:      log,
		main:     viewmodels.NewMainViewModel(authRepo),
		login:    viewmodels.NewLoginViewModel(authRepo),
		register: viewmodels.NewRegisterViewModel(services.NewRegisterService(authRepo, auth.NewProfileRepository(b.docs, log), log)),
		books:    viewmodels.NewMyBooksViewModel(meta, log),
		upload:   viewmodels.NewUploadViewModel(services.NewUploadBookService(raw, meta, log), authRepo),
		profile:  viewmodels.NewProfileViewModel(profiles),
		reader:   viewmodels.NewReaderViewModel(b.repos.Reader, log),
		in:       bufio.NewReader(in),
		out:      out,
		closers:  []io.Closer{b.local},
	}
}

// Run shows the start screen and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to GophShelf (type 'help' for commands)")
	if a.main.StartDestination() == viewmodels.DestinationLibrary {
		_ = a.List(ctx)
	} else {
		fmt.Fprintln(a.out, "Please login or register.")
	}

	runREPL(ctx, a, a.getStatus, a.in)
}

// Close releases the databases.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.main.StartDestination() == viewmodels.DestinationLibrary
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(guest)"
	}
	if a.reading != nil {
		return fmt.Sprintf("(reading %s)", a.reading.title)
	}
	return "(library)"
}
