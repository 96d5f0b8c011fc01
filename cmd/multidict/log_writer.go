package main

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/neex/multidict"
)

type CSVLogWriter struct {
	m sync.Mutex

	headerWritten bool
	f             *os.File
	w             *csv.Writer
}

func NewCSVLogWriter(filename string) (*CSVLogWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	return &CSVLogWriter{
		f: f,
		w: w,
	}, nil
}

func (w *CSVLogWriter) Log(kind string, item multidict.Item) error {
	w.m.Lock()
	defer w.m.Unlock()

	if !w.headerWritten {
		if err := w.w.Write([]string{
			"kind",
			"key",
			"value",
		}); err != nil {
			return err
		}
		w.headerWritten = true
	}
	return w.w.Write([]string{kind, item.Key, item.Value})
}

func (w *CSVLogWriter) Close() error {
	w.m.Lock()
	defer w.m.Unlock()

	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return err
	}
	if err := w.f.Close(); err != nil {
		return err
	}
	return nil
}
