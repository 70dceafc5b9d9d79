package main

import (
	"bytes"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/backend"
	"github.com/wansing/patriam/core"
	"github.com/wansing/patriam/frontend"
	"github.com/wansing/patriam/sqldb"
	"github.com/wansing/patriam/sqldb/mysql"
	"github.com/wansing/patriam/sqldb/sqlite3"
	"github.com/wansing/patriam/util"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
)

const defaultDB = "sqlite3:patriam.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared"

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var logger = stdr.New(log.New(os.Stderr, "", 0))

	var configFile string // is in both FlagSets
	var dbArg string      // is in both FlagSets

	// default FlagSet

	flag.StringVar(&configFile, "config", "patriam.ini", "read default flag values from this ini `file`, if it exists")
	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepend it to every link")
	// MySQL: collation should be utf8mb4_unicode_ci
	flag.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")
	var verbosity = flag.Int("v", 0, "log `level`, 1 logs logins and content changes")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&configFile, "config", "patriam.ini", "read default flag values from this ini `file`, if it exists") // copied from above
	initFlags.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl")                              // copied from above
	var initSetup = initFlags.Bool("setup", false, "creates the given user as the first admin")
	var initInsert = initFlags.Bool("insert", false, "creates the given user with the given role")
	var initSetRole = initFlags.Bool("set-role", false, "gives the given role to the given user")
	var initResetPassword = initFlags.Bool("reset-password", false, "sets a new password for the given user")
	var username = initFlags.String("user", "", "specifies a user `name`")
	var rolename = initFlags.String("role", "reader", "specifies a `role`: admin, writer or reader")
	var email = initFlags.String("email", "", "specifies an email `address`")

	var flags = flag.CommandLine
	if len(os.Args) > 1 && os.Args[1] == "init" {
		flags = initFlags
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	if err := applyConfig(flags, configFile); err != nil {
		log.Printf("error reading config file: %v", err)
		return
	}

	stdr.SetVerbosity(*verbosity)

	// database

	var dbLog = logger.WithName("sqldb")

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		dbLog.Error(err, "could not parse database url")
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		dbLog.Error(err, "could not open sql database")
		return
	}

	defer func() {
		dbLog.Info("closing database")
		sqlDB.Close()
	}()

	if err = sqlDB.Ping(); err != nil {
		dbLog.Error(err, "could not ping sql database")
		return
	}

	dbLog.Info("using database", "url", dbURL.String())

	// base

	*base = util.CleanBase(*base)

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore, err = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore, err = sqlite3.NewSessionStore(sqlDB)
	default:
		err = fmt.Errorf("unknown database backend: %s", dbURL.Driver)
	}
	if err != nil {
		dbLog.Error(err, "could not create session store")
		return
	}

	db := sqldb.New(sqlDB)
	if err := db.Init(sessionStore, *base, logger.WithName("core")); err != nil {
		logger.Error(err, "could not initialize") // log.Fatalln would not run deferred functions
		return
	}

	// init

	if initFlags.Parsed() {
		if *username == "" {
			log.Println("missing -user")
			return
		}
		switch {
		case *initSetup:
			setupAdmin(db, *username)
		case *initInsert:
			insertUser(db, *username, *email, *rolename)
		case *initSetRole:
			setRole(db, *username, *rolename)
		case *initResetPassword:
			resetPassword(db, *username)
		default:
			initFlags.Usage()
		}
		return
	}

	listen(db, logger, *listenAddr, *base)
}

// applyConfig sets the flags which have not been given on the command line to the values of the ini file.
// A missing file is ignored unless the -config flag has been given.
func applyConfig(flags *flag.FlagSet, filename string) error {

	var given = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		given[f.Name] = true
	})

	values, err := util.Ini(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !given["config"] {
			return nil
		}
		return err
	}

	for key, value := range values {
		if given[key] || key == "config" {
			continue
		}
		if flags.Lookup(key) == nil {
			continue // the other FlagSet may know it
		}
		if err := flags.Set(key, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func readPassword(name string) (string, error) {

	fmt.Printf("password for user %s: ", name)
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		return "", err
	}

	if !bytes.Equal(pass1, pass2) {
		return "", errors.New("passwords don't match")
	}

	return string(pass1), nil
}

func setupAdmin(db *core.CoreDB, name string) {

	password, err := readPassword(name)
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if _, err := db.SetupAdmin(name, password); err != nil {
		log.Printf("error creating admin %s: %v", name, err)
	}
}

func insertUser(db *core.CoreDB, name, email, rolename string) {

	role, err := auth.ParseRole(rolename)
	if err != nil {
		log.Println(err)
		return
	}

	password, err := readPassword(name)
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if _, err := db.CreateUser(name, email, password, role); err != nil {
		log.Printf("error creating user %s: %v", name, err)
	}
}

func setRole(db *core.CoreDB, name, rolename string) {

	role, err := auth.ParseRole(rolename)
	if err != nil {
		log.Println(err)
		return
	}

	user, err := db.GetUserByName(strings.ToLower(name))
	if err != nil {
		log.Printf("error getting user %s: %v", name, err)
		return
	}

	if err := db.UserDB.SetRole(user, role); err != nil {
		log.Printf("error setting role: %v", err)
	}
}

func resetPassword(db *core.CoreDB, name string) {

	user, err := db.GetUserByName(strings.ToLower(name))
	if err != nil {
		log.Printf("error getting user %s: %v", name, err)
		return
	}

	password, err := readPassword(name)
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if err := db.SetPassword(user, password); err != nil {
		log.Printf("error setting password: %v", err)
	}
}

func listen(db *core.CoreDB, logger logr.Logger, addr string, base string) {

	// golang mux recovers from panics, so the program won't crash
	var mux = util.NewMux(base)
	mux.Mount("/backend", backend.NewBackendRouter(db, logger.WithName("backend"), base))
	mux.Mount("/static", http.FileServer(http.Dir("static")))
	mux.Mount("", frontend.NewRouter(db, logger.WithName("frontend"), base))

	var runningRequests sync.WaitGroup

	var handler = db.SessionManager.LoadAndSave(mux)

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error(err, "could not listen", "addr", addr)
		return
	}

	logger.Info("listening", "addr", addr)

	httpSrv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			runningRequests.Add(1)
			defer runningRequests.Done()
			handler.ServeHTTP(w, req)
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				logger.Error(err, "error serving")
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	logger.Info("shutting down")
	httpSrv.Close()

	runningRequests.Wait()
}
