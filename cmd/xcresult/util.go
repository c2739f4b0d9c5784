package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danderson/xcresult"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type indenter struct {
	prefix     string
	indentNext bool
}

func (i *indenter) v(v any) {
	fmt.Fprintf(i, "%v\n", v)
}

func (i *indenter) s(msg string) {
	io.WriteString(i, msg+"\n")
}

func (i *indenter) f(msg string, args ...any) {
	fmt.Fprintf(i, msg+"\n", args...)
}

func (i *indenter) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		if i.indentNext {
			i.indentNext = false
			_, err := io.WriteString(os.Stdout, i.prefix)
			if err != nil {
				return ret, err
			}
		}

		wr := bs
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			i.indentNext = true
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			bs = nil
		}

		n, err := os.Stdout.Write(wr)
		ret += n
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

func (i *indenter) indent(n int) {
	i.prefix = strings.Repeat("  ", n)
}

// readInput reads the file at path, or standard input if path is
// "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		bs, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return bs, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return bs, nil
}

// newLogger returns a console logger on stderr. Debug logs are shown
// only if verbose is set.
func newLogger(verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// descriptor builds the type descriptor for name, whose supertypes
// are given leaf first.
func descriptor(name string, supertypes []string) *xcresult.TypeDescriptor {
	ret := &xcresult.TypeDescriptor{Name: xcresult.TypeName(name)}
	cur := ret
	for _, s := range supertypes {
		cur.Supertype = &xcresult.TypeDescriptor{Name: xcresult.TypeName(s)}
		cur = cur.Supertype
	}
	return ret
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
