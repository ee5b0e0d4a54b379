package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/zephyrtronium/formulas"
)

var (
	inname  = kingpin.Flag("in", "Input file with one expression per line (default stdin if no args given).").Short('i').String()
	locname = kingpin.Flag("locale", "Locale for decimal and group separators, e.g. de or de_DE.UTF-8.").Envar("FEVAL_LOCALE").String()
	infix   = kingpin.Flag("infix", "Print the scanned tokens.").Bool()
	postfix = kingpin.Flag("postfix", "Print the tokens in postfix order.").Bool()
	tree    = kingpin.Flag("tree", "Print the evaluation tree with intermediate results.").Short('t').Bool()
	color   = kingpin.Flag("color", "Color tokens by kind.").Bool()
	xmlout  = kingpin.Flag("xml", "Write the evaluation tree of the expression to an XML file.").PlaceHolder("FILE").String()
	exprs   = kingpin.Arg("expression", "Expressions to evaluate.").Strings()
)

const (
	green = "\x1b[32m"
	blue  = "\x1b[34m"
	reset = "\x1b[0m"
)

func main() {
	log.SetFlags(0)
	kingpin.Parse()

	name := *locname
	if name == "" {
		name = os.Getenv("LANG")
	}
	loc, err := formulas.LocaleNamed(name)
	if err != nil {
		log.Printf("unknown locale %q, using default: %v", name, err)
		loc = formulas.DefaultLocale
	}

	srcs := *exprs
	lines, err := readinput(*inname, len(srcs) == 0)
	if err != nil {
		log.Fatal(err)
	}
	srcs = append(lines, srcs...)
	if *xmlout != "" && len(srcs) != 1 {
		kingpin.Fatalf("--xml needs exactly one expression, got %d", len(srcs))
	}

	failed := false
	for _, src := range srcs {
		r, err := formulas.Evaluate(src, formulas.UseLocale(loc))
		if err != nil {
			failed = true
			report(os.Stdout, err)
			continue
		}
		show(os.Stdout, r)
		if *xmlout != "" {
			if err := writexml(*xmlout, r); err != nil {
				log.Fatal(err)
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func show(w io.Writer, f *formulas.Formula) {
	if *infix {
		fmt.Fprintln(w, "infix:  ", tokens(f.Infix(), f.Locale()))
	}
	if *postfix {
		fmt.Fprintln(w, "postfix:", tokens(f.Postfix(), f.Locale()))
	}
	if *tree {
		fmt.Fprintln(w, f.Locale().FormatFloat(f.Result()))
		drawtree(w, f, f.Root(), "")
		return
	}
	fmt.Fprintln(w, f.Locale().FormatFloat(f.Result()))
}

func tokens(toks []formulas.Token, loc formulas.Locale) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		var s, c string
		switch tok.Kind() {
		case formulas.Operand:
			s = loc.FormatFloat(tok.Value())
		case formulas.Operator:
			s, c = tok.String(), green
		default:
			s, c = tok.String(), blue
		}
		if *color && c != "" {
			s = c + s + reset
		}
		b.WriteString(s)
	}
	return b.String()
}

// drawtree prints n and its subtrees, annotating each operator with the
// computation it performs.
func drawtree(w io.Writer, f *formulas.Formula, n formulas.Node, indent string) {
	op, ok := n.(*formulas.OperatorNode)
	if !ok {
		return
	}
	for i, kid := range []formulas.Node{op.Left(), op.Right()} {
		branch, next := "├ ", "│ "
		if i == 1 {
			branch, next = "└ ", "  "
		}
		fmt.Fprint(w, indent, branch)
		if k, ok := kid.(*formulas.OperatorNode); ok {
			r, _ := k.Result()
			s := k.String()
			if *color {
				s = green + s + reset
			}
			fmt.Fprintf(w, "%s  %s=%s\n", s, f.Annotate(k), f.Locale().FormatFloat(r))
		} else {
			r, _ := kid.Result()
			fmt.Fprintln(w, f.Locale().FormatFloat(r))
		}
		drawtree(w, f, kid, indent+next)
	}
}

// report prints an evaluation error with a marker under the offending text.
func report(w io.Writer, err error) {
	var e *formulas.Error
	if !errors.As(err, &e) {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, e.Kind.String()+":", e)
	start, n, ok := e.Span()
	if !ok {
		return
	}
	pad := len([]rune(e.Text[:start]))
	width := len([]rune(e.Text[start : start+n]))
	fmt.Fprintln(w, "  "+e.Text)
	fmt.Fprintln(w, "  "+strings.Repeat(" ", pad)+strings.Repeat("^", width))
}

func writexml(name string, f *formulas.Formula) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.WriteXML(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// readinput reads the non-blank lines of the named input, or of stdin for
// "-" or when std is set.
func readinput(inname string, std bool) ([]string, error) {
	f, err := infile(inname, std)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return readlines(f)
}

func readlines(r io.Reader) ([]string, error) {
	var lines []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		if strings.TrimSpace(scan.Text()) == "" {
			continue
		}
		lines = append(lines, scan.Text())
	}
	return lines, scan.Err()
}

// infile opens the named input, or stdin for "-" or when std is set. The
// result is nil if there is no input to read.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
