package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type row struct {
	variant          string
	r, m, trial      int
	cnots, predicted int
	failed           bool
}

func main() {
	var csvPath, outPath string
	var top int
	flag.StringVar(&csvPath, "csv", "docs/reports/qrm_eval_report.csv", "path to the qrm_eval CSV report")
	flag.StringVar(&outPath, "out", "docs/reports/summary.md", "output markdown path")
	flag.IntVar(&top, "top", 10, "largest encoders listed per variant")
	flag.Parse()

	f, err := os.Open(csvPath)
	if err != nil {
		fatalf("open %s: %v", csvPath, err)
	}
	rows, err := loadRows(f)
	_ = f.Close()
	if err != nil {
		fatalf("read %s: %v", csvPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fatalf("mkdir %s: %v", filepath.Dir(outPath), err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fatalf("create %s: %v", outPath, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	summarize(w, rows, top)
	w.Flush()
	fmt.Printf("wrote %s\n", outPath)
}

func summarize(w io.Writer, rows []row, top int) {
	byVariant := map[string][]row{}
	for _, r := range rows {
		byVariant[r.variant] = append(byVariant[r.variant], r)
	}
	variants := make([]string, 0, len(byVariant))
	for v := range byVariant {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	fmt.Fprintln(w, "# Encoder sweep summary (largest encoders by variant)")
	fmt.Fprintln(w, "")
	for _, v := range variants {
		items := byVariant[v]
		failed := 0
		for _, it := range items {
			if it.failed {
				failed++
			}
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].cnots != items[j].cnots {
				return items[i].cnots > items[j].cnots
			}
			if items[i].m != items[j].m {
				return items[i].m < items[j].m
			}
			if items[i].r != items[j].r {
				return items[i].r < items[j].r
			}
			return items[i].trial < items[j].trial
		})
		limit := top
		if len(items) < limit {
			limit = len(items)
		}
		fmt.Fprintf(w, "## %s\n\n", v)
		fmt.Fprintf(w, "%d cases, %d failing.\n\n", len(items), failed)
		fmt.Fprintln(w, "| m | r | trial | CNOTs | predicted |")
		fmt.Fprintln(w, "|---:|---:|---:|---:|---:|")
		for i := 0; i < limit; i++ {
			it := items[i]
			fmt.Fprintf(w, "| %d | %d | %d | %d | %d |\n", it.m, it.r, it.trial, it.cnots, it.predicted)
		}
		fmt.Fprintln(w, "")
	}
}

func loadRows(in io.Reader) ([]row, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	i0 := 0
	for i0 < len(recs) && (len(recs[i0]) == 0 || (len(recs[i0]) == 1 && strings.TrimSpace(recs[i0][0]) == "")) {
		i0++
	}
	if i0 >= len(recs) {
		return nil, fmt.Errorf("no header")
	}
	head := recs[i0]
	col := map[string]int{}
	for i, v := range head {
		col[strings.TrimSpace(v)] = i
	}
	need := []string{"variant", "r", "m", "trial", "cnots", "predicted_cnots", "oracle", "code", "state"}
	for _, k := range need {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing column %q in header: have %v", k, head)
		}
	}
	atoi := func(rec []string, k string) int {
		v, _ := strconv.Atoi(strings.TrimSpace(rec[col[k]]))
		return v
	}
	var out []row
	for i := i0 + 1; i < len(recs); i++ {
		rec := recs[i]
		if len(rec) < len(head) {
			continue
		}
		state := strings.TrimSpace(rec[col["state"]])
		out = append(out, row{
			variant:   strings.TrimSpace(rec[col["variant"]]),
			r:         atoi(rec, "r"),
			m:         atoi(rec, "m"),
			trial:     atoi(rec, "trial"),
			cnots:     atoi(rec, "cnots"),
			predicted: atoi(rec, "predicted_cnots"),
			failed: strings.TrimSpace(rec[col["oracle"]]) != "ok" ||
				strings.TrimSpace(rec[col["code"]]) != "ok" ||
				(state != "ok" && state != "skipped"),
		})
	}
	return out, nil
}

func fatalf(f string, a ...any) { fmt.Fprintf(os.Stderr, f+"\n", a...); os.Exit(1) }
