// Command tonefit is a CLI client for the Tonefit API.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/and161185/tonefit/internal/client"
)

// ---- utils ----

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(in *os.File) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// credentialsFlags parses -e/-p and prompts on in when -p is omitted.
func credentialsFlags(name string, args []string, in *os.File) (email, password string, err error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	e := fs.String("e", "", "email")
	p := fs.String("p", "", "password (prompted when omitted)")
	_ = fs.Parse(args)
	if *e == "" {
		return "", "", errors.New("need -e")
	}
	if *p == "" {
		pw, rerr := readPassword(in)
		if rerr != nil {
			return "", "", rerr
		}
		*p = pw
	}
	return *e, *p, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `tonefit CLI
Usage:
  tonefit [-api URL] [-json] <cmd> [args]

Commands:
  version
  register   -e <email> [-p <password>]
  login      -e <email> [-p <password>]          (saves session)
  logout
  whoami
  analyze    -file <photo|->                      (token optional)
  latest
  recommend  [-gender Men|Women] [-colors a,b] [-limit n]
  categories
  favorites
  fav-add    -id <item_id> [-name <product>] [-colour <base colour>]
  fav-rm     -id <item_id>
`)
	os.Exit(2)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands against the API, restoring the stored session where needed.
func main() {
	api := flag.String("api", envOr("TONEFIT_API_URL", "http://localhost:8000/api"), "API base URL")
	asJSON := flag.Bool("json", false, "print raw JSON")
	timeout := flag.Duration("timeout", client.DefaultTimeout, "request timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd, args := flag.Arg(0), flag.Args()[1:]

	// Credentials are read before the request deadline starts.
	var email, pw string
	if cmd == "register" || cmd == "login" {
		var err error
		if email, pw, err = credentialsFlags(cmd, args, os.Stdin); err != nil {
			fail(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cli := client.New(*api)
	store := client.NewStore("")
	out := printer{json: *asJSON, w: os.Stdout}

	// restore loads the saved session or exits asking for login.
	restore := func() client.Session {
		sess, err := client.Restore(ctx, cli, store)
		if err != nil {
			fail(err)
		}
		return sess
	}

	switch cmd {

	case "version":
		fmt.Printf("tonefit %s (%s)\n", version, buildDate)

	case "register":
		if err := cli.Signup(ctx, email, pw); err != nil {
			fail(err)
		}
		fmt.Println("User created successfully")

	case "login":
		sess, err := client.LoginAndSave(ctx, cli, store, email, pw)
		if err != nil {
			fail(err)
		}
		fmt.Printf("logged in as %s\n", sess.Email)

	case "logout":
		if err := store.Clear(); err != nil {
			fail(err)
		}
		fmt.Println("logged out")

	case "whoami":
		sess := restore()
		out.user(client.User{ID: sess.UserID, Email: sess.Email})

	case "analyze":
		fs := flag.NewFlagSet("analyze", flag.ExitOnError)
		file := fs.String("file", "", "photo path or - for stdin")
		_ = fs.Parse(args)
		if *file == "" {
			fmt.Fprintln(os.Stderr, "need -file")
			os.Exit(1)
		}
		// Anonymous analysis is allowed; a stale session is simply dropped.
		if _, err := client.Restore(ctx, cli, store); err != nil && !errors.Is(err, client.ErrNoSession) {
			fail(err)
		}
		data, err := readAll(*file)
		if err != nil {
			fail(err)
		}
		a, err := cli.Analyze(ctx, *file, bytes.NewReader(data))
		if err != nil {
			fail(err)
		}
		out.analysis(a)

	case "latest":
		restore()
		a, err := cli.LatestAnalysis(ctx)
		if err != nil {
			fail(err)
		}
		out.analysis(a)

	case "recommend":
		fs := flag.NewFlagSet("recommend", flag.ExitOnError)
		gender := fs.String("gender", "", "Men or Women")
		colors := fs.String("colors", "", "comma separated colours")
		limit := fs.Int("limit", 0, "max items")
		_ = fs.Parse(args)
		opts := client.RecommendOptions{Gender: *gender, Limit: *limit}
		for _, c := range strings.Split(*colors, ",") {
			if c = strings.TrimSpace(c); c != "" {
				opts.Colors = append(opts.Colors, c)
			}
		}
		recs, err := cli.Recommend(ctx, opts)
		if err != nil {
			fail(err)
		}
		out.recommendations(recs)

	case "categories":
		cats, err := cli.Categories(ctx)
		if err != nil {
			fail(err)
		}
		out.categories(cats)

	case "favorites":
		restore()
		favs, err := cli.Favorites(ctx)
		if err != nil {
			fail(err)
		}
		out.favorites(favs)

	case "fav-add":
		fs := flag.NewFlagSet("fav-add", flag.ExitOnError)
		id := fs.String("id", "", "item id")
		name := fs.String("name", "", "product name")
		colour := fs.String("colour", "", "base colour")
		_ = fs.Parse(args)
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		restore()
		if err := cli.AddFavorite(ctx, client.FavoriteInput{ItemID: *id, ProductName: *name, BaseColour: *colour}); err != nil {
			fail(err)
		}
		fmt.Println("Added to favorites")

	case "fav-rm":
		fs := flag.NewFlagSet("fav-rm", flag.ExitOnError)
		id := fs.String("id", "", "item id")
		_ = fs.Parse(args)
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		restore()
		if err := cli.RemoveFavorite(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("Removed from favorites")

	default:
		usage()
	}
}

func fail(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "error: %s (HTTP %d)\n", apiErr.Detail, apiErr.Status)
	case errors.Is(err, client.ErrNoSession):
		fmt.Fprintln(os.Stderr, "not logged in: run `tonefit login -e <email>`")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

// printTime formats server timestamps for tables.
func printTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
