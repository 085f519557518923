package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names the input file must carry. Order does not matter; columns are
// located by header name.
var requiredColumns = []string{
	"Date",
	"Sms Phone Number",
	"Carrier Group",
	"Segment",
	"Sent",
	"Delivered",
	"Clicks",
	"Unique Clicks",
	"Bounces",
	"Refusals",
	"Revenue",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LoadFile reads a delivery report CSV from disk.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Load parses a delivery report. Any malformed row is fatal for the whole
// load; there is no best-effort row dropping here.
func Load(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	var rec Record
	var err error

	if rec.Date, err = parseDate(row[idx["Date"]]); err != nil {
		return Record{}, err
	}
	if rec.Phone, err = strconv.ParseInt(strings.TrimSpace(row[idx["Sms Phone Number"]]), 10, 64); err != nil {
		return Record{}, fmt.Errorf("invalid phone number %q", row[idx["Sms Phone Number"]])
	}
	rec.CarrierGroup = strings.TrimSpace(row[idx["Carrier Group"]])
	rec.Segment = strings.TrimSpace(row[idx["Segment"]])

	counts := []struct {
		col  string
		dest *int64
	}{
		{"Sent", &rec.Sent},
		{"Delivered", &rec.Delivered},
		{"Clicks", &rec.Clicks},
		{"Unique Clicks", &rec.UniqueClicks},
		{"Bounces", &rec.Bounces},
		{"Refusals", &rec.Refusals},
	}
	for _, c := range counts {
		if *c.dest, err = parseCount(c.col, row[idx[c.col]]); err != nil {
			return Record{}, err
		}
	}

	if rec.Revenue, err = ParseMoney(row[idx["Revenue"]]); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// parseDate normalizes every accepted layout to UTC midnight so dates from
// different sources compare equal.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseCount(col, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s count %q", col, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative %s count %d", col, n)
	}
	return n, nil
}
