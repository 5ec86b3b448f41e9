package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

func writeCSV[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if err := requireRower(CSV, items[0]); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if h, ok := any(items[0]).(Headed); ok {
		if err := cw.Write(h.Header()); err != nil {
			return err
		}
	}
	for _, item := range items {
		if err := cw.Write(any(item).(Rower).Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCSVRow(w io.Writer, row []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeTSV[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if err := requireRower(TSV, items[0]); err != nil {
		return err
	}
	if h, ok := any(items[0]).(Headed); ok {
		if err := writeTSVRow(w, h.Header()); err != nil {
			return err
		}
	}
	for _, item := range items {
		if err := writeTSVRow(w, any(item).(Rower).Row()); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVRow(w io.Writer, row []string) error {
	_, err := fmt.Fprintln(w, strings.Join(row, "\t"))
	return err
}
