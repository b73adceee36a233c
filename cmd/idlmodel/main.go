package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	idl "github.com/reoring/idlmodel"
	"github.com/reoring/idlmodel/jsonschema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "inspect":
		inspectCmd(os.Args[2:])
	case "lint":
		lintCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "idlmodel CLI\n\nUsage:\n  idlmodel inspect -f project.json\n  idlmodel lint -f project.json\n  idlmodel schema -f project.json\n\nNotes:\n  - YAML input is selected by a .yaml/.yml file extension.\n  - schema prints a JSON Schema rendering of every declaration.")
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func parseFile(path string) (*idl.Project, idl.Issues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return idl.ParseProjectYAML(data)
	default:
		return idl.ParseProject(data)
	}
}

func logIssues(logger zerolog.Logger, iss idl.Issues) {
	for _, is := range iss {
		logger.Warn().
			Str("code", is.Code).
			Str("path", is.Path).
			Str("hint", is.Hint).
			Msg(is.Message)
	}
}

func inspectCmd(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var file string
	fs.StringVar(&file, "f", "", "schema document (JSON or YAML)")
	_ = fs.Parse(args)
	logger := newLogger()
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	p, iss, err := parseFile(file)
	if err != nil {
		logger.Fatal().Err(err).Str("file", file).Msg("cannot decode document")
	}
	logIssues(logger, iss)
	if p == nil {
		logger.Fatal().Str("file", file).Msg("document is not a project")
	}

	fmt.Printf("project %s version=%q targetPackage=%q\n", orDash(p.Name), p.Version, p.TargetPackage)
	for _, mname := range sortedModuleNames(p) {
		m := p.Modules[mname]
		fmt.Printf("  module %s\n", mname)
		for _, ename := range sortedKeys(m.Entities) {
			e := m.Entities[ename]
			line := fmt.Sprintf("    %s %s", e.Type, ename)
			if e.Abstract {
				line += " (abstract)"
			}
			if e.Parent.IsSet() {
				line += " : " + e.Parent.String()
			}
			fmt.Println(line)
			for _, fname := range e.FieldsLocal.Names() {
				f := e.FieldsLocal.Get(fname)
				opt := ""
				if f.Optional {
					opt = "?"
				}
				fmt.Printf("      %s%s: %v\n", fname, opt, f.Type)
			}
		}
		for _, ename := range sortedKeys(m.Enums) {
			en := m.Enums[ename]
			fmt.Printf("    enum %s\n", ename)
			entries := en.Flat()
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
			for _, it := range entries {
				fmt.Printf("      %s = %d\n", it.Name, it.Item.Value)
			}
		}
	}
}

func lintCmd(args []string) {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	var file string
	fs.StringVar(&file, "f", "", "schema document (JSON or YAML)")
	_ = fs.Parse(args)
	logger := newLogger()
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	p, iss, err := parseFile(file)
	if err != nil {
		logger.Fatal().Err(err).Str("file", file).Msg("cannot decode document")
	}
	logIssues(logger, iss)
	if p == nil {
		logger.Fatal().Str("file", file).Msg("document is not a project")
	}
	findings := p.Verify()
	logIssues(logger, findings)
	if len(iss)+len(findings) > 0 {
		logger.Error().
			Int("load", len(iss)).
			Int("verify", len(findings)).
			Msg("lint finished with findings")
		os.Exit(1)
	}
	logger.Info().Str("file", file).Msg("lint clean")
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var file string
	fs.StringVar(&file, "f", "", "schema document (JSON or YAML)")
	_ = fs.Parse(args)
	logger := newLogger()
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	p, iss, err := parseFile(file)
	if err != nil {
		logger.Fatal().Err(err).Str("file", file).Msg("cannot decode document")
	}
	logIssues(logger, iss)
	if p == nil {
		logger.Fatal().Str("file", file).Msg("document is not a project")
	}
	root, err := jsonschema.FromProject(p)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot render schema")
	}
	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot marshal schema")
	}
	fmt.Println(string(out))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedModuleNames(p *idl.Project) []string {
	out := make([]string, 0, len(p.Modules))
	for n := range p.Modules {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
