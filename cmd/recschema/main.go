package main

import (
	"flag"
	"fmt"
	"os"

	gen "github.com/reoring/recschema/internal/gen"
	ir "github.com/reoring/recschema/internal/ir"
	"github.com/reoring/recschema/schemafile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "gen":
		genCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "recschema CLI\n\nUsage:\n  recschema gen -schema schema.yaml [-schema more.yaml ...] -o out.go -pkg pkgname\n\nNotes:\n  - Schema descriptions are JSON or YAML; see the schemafile package for the format.\n  - default_expr/assert entries are emitted verbatim as Go expressions into the generated file.")
}

type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint([]string(*m)) }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func genCmd(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var schemas multiFlag
	var out string
	var pkg string
	fs.Var(&schemas, "schema", "schema description file (repeatable)")
	fs.StringVar(&out, "o", "", "output filename")
	fs.StringVar(&pkg, "pkg", "", "package name for the generated file")
	_ = fs.Parse(args)
	if len(schemas) == 0 || out == "" || pkg == "" {
		fs.Usage()
		os.Exit(2)
	}

	recs := make([]*ir.Record, 0, len(schemas))
	for _, path := range schemas {
		data, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		rec, err := schemafile.Load(data)
		if err != nil {
			fatalf("load %s: %v", path, err)
		}
		recs = append(recs, rec)
	}
	src, err := gen.RenderFile(pkg, recs)
	if err != nil {
		fatalf("render: %v", err)
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		fatalf("write %s: %v", out, err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "recschema: "+format+"\n", args...)
	os.Exit(1)
}
