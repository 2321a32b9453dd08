/*
Ggpplayer starts a General Game Playing agent and begins listening for a
game controller's HTTP requests.

Usage:

	ggpplayer [flags]
	ggpplayer [flags] --port PORT

Once started, the player listens for the GGP wire protocol (INFO, START,
PLAY, STOP, ABORT) as S-expression bodies POSTed to its root path. By
default it listens on 127.0.0.1:9147. SIGINT shuts the server down
gracefully, letting any in-flight request finish, and the process then
exits 0.

The flags are:

	-v, --version
		Give the current version of the player and then exit.

	-n, --name PLAYER_NAME
		The name reported in INFO responses. If not given, defaults to the
		value of environment variable GGP_PLAYER_NAME, and if that is not
		given, defaults to "ggp-go-player".

	--hostname HOST
		Bind to this host. If not given, defaults to the value of
		environment variable GGP_PLAYER_HOSTNAME, and if that is not
		given, defaults to 127.0.0.1.

	-p, --port PORT
		Listen on the given port. If not given, defaults to the value of
		environment variable GGP_PLAYER_PORT, and if that is not given,
		defaults to 9147.

	--history-db PATH
		Log completed matches to a SQLite database at PATH. If not given,
		history logging is disabled.

	--admin-secret SECRET
		Enable the /debug/match, /debug/graph, and /debug/history
		introspection endpoints, guarded by this bearer secret. If not given, the admin endpoints
		are not mounted at all.

	--graphviz PATH
		Dump the final search tree of each stopped match to PATH as
		Graphviz DOT. If not given, no dump is written.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/roblaing/ggp-go-player/internal/version"
	"github.com/roblaing/ggp-go-player/server"
)

const (
	EnvPlayerName  = "GGP_PLAYER_NAME"
	EnvHostname    = "GGP_PLAYER_HOSTNAME"
	EnvPort        = "GGP_PLAYER_PORT"
	EnvHistoryDB   = "GGP_PLAYER_HISTORY_DB"
	EnvAdminSecret = "GGP_PLAYER_ADMIN_SECRET"
	EnvGraphviz    = "GGP_PLAYER_GRAPHVIZ"
)

var (
	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of the player and then exit.")
	flagName        = pflag.StringP("name", "n", "", "The name reported in INFO responses.")
	flagHostname    = pflag.String("hostname", "", "Bind to this host.")
	flagPort        = pflag.StringP("port", "p", "", "Listen on the given port.")
	flagHistoryDB   = pflag.String("history-db", "", "Log completed matches to a SQLite database at this path.")
	flagAdminSecret = pflag.String("admin-secret", "", "Enable the /debug endpoints, guarded by this bearer secret.")
	flagGraphviz    = pflag.String("graphviz", "", "Dump each stopped match's search tree to this path as Graphviz DOT.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("ggpplayer (ggp-go-player v%s)\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	name := envOrFlag(EnvPlayerName, "name", *flagName)
	hostname := envOrFlag(EnvHostname, "hostname", *flagHostname)
	if hostname == "" {
		hostname = "127.0.0.1"
	}
	port := envOrFlag(EnvPort, "port", *flagPort)
	if port == "" {
		port = "9147"
	}
	historyDB := envOrFlag(EnvHistoryDB, "history-db", *flagHistoryDB)
	adminSecret := envOrFlag(EnvAdminSecret, "admin-secret", *flagAdminSecret)
	graphviz := envOrFlag(EnvGraphviz, "graphviz", *flagGraphviz)

	cfg := server.Config{
		PlayerName:    name,
		ListenAddress: hostname + ":" + port,
		HistoryDBPath: historyDB,
		GraphvizPath:  graphviz,
	}

	if adminSecret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminSecret), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("FATAL could not hash admin secret: %s", err.Error())
		}
		cfg.AdminSecretHash = hash
	}

	cfg = cfg.FillDefaults()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start player: %s", err.Error())
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("INFO  Starting %s v%s on %s...", cfg.PlayerName, version.Current, cfg.ListenAddress)
	if err := srv.ListenAndServeContext(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
	log.Printf("INFO  Shut down cleanly")
}

func envOrFlag(envVar, flagName, flagVal string) string {
	val := os.Getenv(envVar)
	if pflag.Lookup(flagName).Changed {
		val = flagVal
	}
	return val
}
