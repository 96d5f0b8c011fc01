package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/neex/multidict"
)

var keyColor = color.New(color.FgCyan).SprintFunc()

func parseItems(args []string) (*multidict.MultiDict, error) {
	d := &multidict.MultiDict{}
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid pair: %#v", arg)
		}
		d.Append(unquoteArg(parts[0]), unquoteArg(parts[1]))
	}
	return d, nil
}

func parseHeader(arg string) (multidict.Header, error) {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 {
		return multidict.Header{}, fmt.Errorf("invalid header: %#v", arg)
	}
	if parts[0] == "" && strings.ContainsRune(parts[1], ':') {
		parts = strings.SplitN(parts[1], ":", 2)
		parts[0] = ":" + parts[0]
	}
	return multidict.Header{
		Name:  unquoteArg(strings.TrimSpace(parts[0])),
		Value: unquoteArg(strings.TrimSpace(parts[1])),
	}, nil
}

// buildHeaderList puts the argument headers after the defaults, then
// applies removals and replacements in that order.
func buildHeaderList(defaults multidict.Headers, args, setHeaders, removeNames []string, removeCount int) (*multidict.HeaderList, error) {
	var extra multidict.Headers
	for _, arg := range args {
		h, err := parseHeader(arg)
		if err != nil {
			return nil, err
		}
		extra = append(extra, h)
	}
	l := multidict.NewHeaderList(defaults.Combine(extra)...)

	for _, name := range removeNames {
		l.RemoveN(unquoteArg(name), removeCount)
	}
	for _, arg := range setHeaders {
		h, err := parseHeader(arg)
		if err != nil {
			return nil, err
		}
		l.Set(h.Name, h.Value)
	}
	return l, nil
}

func printQuery(out io.Writer, csv *CSVLogWriter, view *multidict.MergedView, getKey, listKey string) error {
	switch {
	case getKey != "":
		v, err := view.Get(getKey)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, v)
		return logRows(csv, "get", []multidict.Item{{Key: getKey, Value: v}})

	case listKey != "":
		list, err := view.GetList(listKey)
		if err != nil {
			return err
		}
		var rows []multidict.Item
		for _, v := range list {
			_, _ = fmt.Fprintln(out, v)
			rows = append(rows, multidict.Item{Key: listKey, Value: v})
		}
		return logRows(csv, "list", rows)

	default:
		items := view.Items()
		for _, it := range items {
			_, _ = fmt.Fprintf(out, "%s=%s\n", keyColor(it.Key), it.Value)
		}
		return logRows(csv, "item", items)
	}
}

func printHeaders(out io.Writer, csv *CSVLogWriter, hs multidict.Headers, format string) error {
	if err := hs.Validate(); err != nil {
		return err
	}

	switch format {
	case "text":
		for _, h := range hs {
			_, _ = fmt.Fprintf(out, "%s: %s\n", keyColor(h.Name), h.Value)
		}
	case "hpack":
		_, _ = fmt.Fprintln(out, hex.EncodeToString(hs.EncodeHPACK()))
	case "qpack":
		_, _ = fmt.Fprintln(out, hex.EncodeToString(hs.EncodeQPACK()))
	default:
		return fmt.Errorf("unknown format: %#v", format)
	}

	var rows []multidict.Item
	for _, h := range hs {
		rows = append(rows, multidict.Item{Key: h.Name, Value: h.Value})
	}
	return logRows(csv, "header", rows)
}

func logRows(csv *CSVLogWriter, kind string, rows []multidict.Item) error {
	if csv == nil {
		return nil
	}
	for _, r := range rows {
		if err := csv.Log(kind, r); err != nil {
			return err
		}
	}
	return nil
}
