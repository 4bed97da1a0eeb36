package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
	"go.uber.org/multierr"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/formatter"
	"github.com/philipp01105/logshim/internal/jsonrecord"
	"github.com/philipp01105/logshim/logger"
	"github.com/philipp01105/logshim/sink"
)

const maxLine = 1 << 20

func runPretty(args []string, in io.Reader) error {
	// Text mode regardless of configuration, keeping the color setting.
	if err := loadConfig("pretty", args, sink.WithJSONFormat(false)); err != nil {
		return err
	}

	var (
		errs   error
		parser fastjson.Parser
		lineNo int
	)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := prettyLine(&parser, line); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "line %d", lineNo))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "read input"))
	}

	bad := multierr.Errors(errs)
	for _, err := range bad {
		logger.Named("logshim.pretty").Warn("skipped input", logger.Err(err))
	}
	if len(bad) > 0 {
		return errors.Errorf("%d of %d lines could not be rendered", len(bad), lineNo)
	}
	return nil
}

// prettyLine renders one JSON record through the default sink.
func prettyLine(p *fastjson.Parser, line string) error {
	v, err := p.Parse(line)
	if err != nil {
		return err
	}
	obj, err := v.Object()
	if err != nil {
		return err
	}

	entry := core.GetEntry()
	defer core.PutEntry(entry)
	entry.Level = core.InfoLevel

	var visitErr error
	obj.Visit(func(key []byte, v *fastjson.Value) {
		switch k := string(key); k {
		case formatter.LevelKey:
			l, err := core.ParseLevel(string(v.GetStringBytes()))
			if err != nil {
				visitErr = multierr.Append(visitErr, errors.Wrapf(err, "level %s", v))
				return
			}
			entry.Level = l
		case formatter.TimeKey:
			if t, ok := jsonrecord.Time(v); ok {
				entry.Time = t
			}
		case formatter.CallerKey:
			entry.Caller = jsonrecord.Caller(string(v.GetStringBytes()))
		case formatter.MsgKey:
			entry.Message = string(v.GetStringBytes())
		default:
			entry.Fields = append(entry.Fields, jsonrecord.Field(k, v))
		}
	})
	if visitErr != nil {
		return visitErr
	}

	return sink.Default().Handle(entry)
}
