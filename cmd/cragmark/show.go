package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/example/cragmark/internal/route"
	"github.com/example/cragmark/internal/session"
)

// showCmd lists the routes of saved sessions.
type showCmd struct {
	storeDir string
	refs     []string
	stdout   io.Writer
	*root
	fs *flag.FlagSet
}

func (s *showCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseShowCmd(args []string, r *root) (*showCmd, error) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	s := &showCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.storeDir, "store", "", "directory sessions are saved in, for ids and listing")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	s.refs = fs.Args()
	return s, nil
}

// load reads ref as a file when it looks like one, otherwise as a session
// id from the store.
func (s *showCmd) load(ctx context.Context, st *session.FileStore, ref string) (session.Blob, error) {
	if strings.HasSuffix(ref, ".json") || strings.ContainsRune(ref, os.PathSeparator) {
		return session.LoadFile(ref)
	}
	return st.Load(ctx, ref)
}

func (s *showCmd) Run() error {
	ctx := context.Background()
	st := s.root.store(s.storeDir)
	refs := s.refs
	if len(refs) == 0 {
		ids, err := st.List(ctx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintf(s.stdout, "no sessions in %s\n", st.Dir)
			return nil
		}
		refs = ids
	}
	for i, ref := range refs {
		b, err := s.load(ctx, st, ref)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(s.stdout)
		}
		writeSession(s.stdout, b)
	}
	return nil
}

func writeSession(w io.Writer, b session.Blob) {
	fmt.Fprintf(w, "Session %s\n", b.SessionID)
	fmt.Fprintf(w, "Image   %s\n", b.ImageURL)
	if b.Latitude != nil && b.Longitude != nil {
		fmt.Fprintf(w, "Where   %.6f, %.6f\n", *b.Latitude, *b.Longitude)
	}
	if len(b.Routes) == 0 {
		fmt.Fprintln(w, "No routes")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tGRADE\tPOINTS\tDESCRIPTION")
	for i, r := range b.Routes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", i+1, r.Name, r.Grade, len(r.Points), r.Description)
	}
	tw.Flush()
}

// gradesCmd lists the grade scale.
type gradesCmd struct {
	*root
	stdout io.Writer
}

func (g *gradesCmd) Run() error {
	out := g.stdout
	if out == nil {
		out = os.Stdout
	}
	for _, grade := range route.Grades() {
		marker := ""
		if grade == route.DefaultGrade {
			marker = " (default)"
		}
		fmt.Fprintf(out, "%s%s\n", grade, marker)
	}
	return nil
}
