package main

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"slices"
	"syscall"
	"time"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/heapq"
	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/slice"
	"github.com/danderson/xcresult"
	"github.com/danderson/xcresult/xcode"
	"github.com/kr/pretty"
)

var globalArgs struct {
	Verbose bool `flag:"v,Log decoding decisions to stderr"`
}

// family returns the xcresult family, logging to stderr if -v was
// given. The returned func flushes the log.
func family() (*xcresult.Family, func(), error) {
	log := newLogger(globalArgs.Verbose)
	fam, err := xcode.NewFamily(&xcresult.FamilyOptions{Logger: log})
	if err != nil {
		return nil, nil, err
	}
	return fam, func() { log.Sync() }, nil
}

func main() {
	root := &command.C{
		Name:     "xcresult",
		Usage:    "command args...",
		Help:     "Inspect the JSON output of xcresulttool.",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "decode",
				Usage: "decode file",
				Help: `Decode a document and print the resulting objects.

The file is the output of "xcrun xcresulttool get --format json", or
"-" to read standard input. Objects whose type is unknown are printed
as generic objects, with only their declared type.`,
				Run: command.Adapt(runDecode),
			},
			{
				Name:  "tests",
				Usage: "tests file",
				Help: `List the test cases of an ActionTestPlanRunSummaries document.

Such a document is fetched with the ID of an action's testsRef.`,
				Run: command.Adapt(runTests),
			},
			{
				Name:  "issues",
				Usage: "issues file",
				Help:  "List the issues of an ActionsInvocationRecord document.",
				Run:   command.Adapt(runIssues),
			},
			{
				Name:  "resolve",
				Usage: "resolve name [supertype...]",
				Help: `Resolve a type name to the shape it decodes into.

Supertypes are given leaf first, as they would nest in a document.`,
				Run: command.Adapt(runResolve),
			},
			{
				Name:  "types",
				Usage: "types",
				Help:  "List the known type names, grouped by the shape they decode into.",
				Run:   command.Adapt(runTypes),
			},
			{
				Name:  "survey",
				Usage: "survey file...",
				Help: `Compare the types declared in documents against the known types.

Prints the declared types that are unknown, and the known types that
no document declared.`,
				SetFlags: command.Flags(flax.MustBind, &surveyArgs),
				Run:      runSurvey,
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

func runDecode(env *command.Env, path string) error {
	bs, err := readInput(path)
	if err != nil {
		return err
	}
	fam, flush, err := family()
	if err != nil {
		return err
	}
	defer flush()

	if trimmed := bytes.TrimSpace(bs); len(trimmed) > 0 && trimmed[0] == '[' {
		objs, err := xcresult.Decode[any](fam, bs)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		for _, obj := range objs {
			fmt.Printf("%# v\n", pretty.Formatter(obj))
		}
		return nil
	}

	obj, err := xcresult.DecodeObject[any](fam, bs)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	fmt.Printf("%# v\n", pretty.Formatter(obj))
	return nil
}

func runTests(env *command.Env, path string) error {
	bs, err := readInput(path)
	if err != nil {
		return err
	}
	fam, flush, err := family()
	if err != nil {
		return err
	}
	defer flush()

	runs, err := xcresult.DecodeObject[xcode.ActionTestPlanRunSummaries](fam, bs)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	statuses := map[string]int{}
	for t := range runs.Tests() {
		status := cmp.Or(t.TestStatus, "Unknown")
		statuses[status]++
		var dur string
		if t.Duration != nil {
			dur = time.Duration(*t.Duration * float64(time.Second)).Round(time.Millisecond).String()
		}
		fmt.Printf("%-8s %s %s\n", status, deref(t.Identifier), dur)
	}

	type tally struct {
		status string
		n      int
	}
	byCount := heapq.New(func(a, b tally) int {
		return cmp.Or(-cmp.Compare(a.n, b.n), cmp.Compare(a.status, b.status))
	})
	for status, n := range statuses {
		byCount.Add(tally{status, n})
	}
	if !byCount.IsEmpty() {
		fmt.Println()
	}
	for !byCount.IsEmpty() {
		t, _ := byCount.Pop()
		fmt.Printf("%d %s\n", t.n, t.status)
	}
	return nil
}

func runIssues(env *command.Env, path string) error {
	bs, err := readInput(path)
	if err != nil {
		return err
	}
	fam, flush, err := family()
	if err != nil {
		return err
	}
	defer flush()

	rec, err := xcresult.DecodeObject[xcode.ActionsInvocationRecord](fam, bs)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	var out indenter
	kinds := []struct {
		name   string
		issues []xcode.Issue
	}{
		{"Errors", rec.Issues.ErrorSummaries},
		{"Warnings", rec.Issues.WarningSummaries},
		{"Analyzer warnings", rec.Issues.AnalyzerWarningSummaries},
	}
	for _, k := range kinds {
		if len(k.issues) == 0 {
			continue
		}
		out.indent(0)
		out.f("%s:", k.name)
		out.indent(1)
		for _, issue := range k.issues {
			printIssue(&out, issue.Summary())
		}
	}
	if fails := rec.Issues.TestFailureSummaries; len(fails) > 0 {
		out.indent(0)
		out.s("Test failures:")
		out.indent(1)
		for _, f := range fails {
			out.f("%s:", f.TestCaseName)
			printIssue(&out, &f.IssueSummary)
		}
	}
	return nil
}

func printIssue(out *indenter, s *xcode.IssueSummary) {
	if loc := s.DocumentLocationInCreatingWorkspace; loc != nil {
		out.f("[%s] %s (%s)", s.IssueType, s.Message, loc.URL)
	} else {
		out.f("[%s] %s", s.IssueType, s.Message)
	}
}

func runResolve(env *command.Env, name string, supertypes ...string) error {
	fam, flush, err := family()
	if err != nil {
		return err
	}
	defer flush()

	td := descriptor(name, supertypes)
	shape, err := fam.Resolve(td)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", td, err)
	}
	fmt.Printf("%s => %s\n", td, shape)
	return nil
}

func runTypes(env *command.Env) error {
	fam := xcode.Family()

	type entry struct {
		name  xcresult.TypeName
		shape string
	}
	entries := heapq.New(func(a, b entry) int {
		return cmp.Or(cmp.Compare(a.shape, b.shape), cmp.Compare(a.name, b.name))
	})
	for n := range fam.Names() {
		shape, _ := fam.Lookup(n)
		entries.Add(entry{n, shape.String()})
	}

	var out indenter
	var prev string
	for !entries.IsEmpty() {
		e, _ := entries.Pop()
		if e.shape != prev {
			out.indent(0)
			out.v(e.shape)
			out.indent(1)
			prev = e.shape
		}
		out.v(e.name)
	}
	return nil
}

var surveyArgs struct {
	Match string `flag:"match,default=.,Only report type names matching this regexp"`
}

func runSurvey(env *command.Env) error {
	if len(env.Args) == 0 {
		return env.Usagef("no files given")
	}
	m, err := regexp.Compile(surveyArgs.Match)
	if err != nil {
		return err
	}

	observed := mapset.New[xcresult.TypeName]()
	var errs []error
	for _, path := range env.Args {
		bs, err := readInput(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		names, err := xcresult.Survey(bs)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		for n := range names {
			observed.Add(n)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	matches := func(n xcresult.TypeName) bool { return m.MatchString(string(n)) }
	unseen, unknown := xcode.Family().Drift(observed)
	unseen = slices.Collect(slice.Select(unseen, matches))
	unknown = slices.Collect(slice.Select(unknown, matches))

	var out indenter
	for _, section := range []struct {
		title string
		names []xcresult.TypeName
	}{
		{"Unknown types:", unknown},
		{"Known types not seen:", unseen},
	} {
		out.indent(0)
		out.s(section.title)
		out.indent(1)
		if len(section.names) == 0 {
			out.s("(none)")
		}
		for _, n := range section.names {
			out.v(n)
		}
	}
	return nil
}
