package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/francoispqt/gojay"
	"github.com/olekukonko/tablewriter"

	"github.com/qrm-go/qrm/internal/config"
)

func (r *record) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("variant", r.Variant)
	enc.IntKey("r", r.R)
	enc.IntKey("m", r.M)
	enc.IntKey("r_in", r.RIn)
	enc.IntKey("trial", r.Trial)
	enc.BoolKey("state_prep", r.StatePrep)
	enc.IntKey("cnots", r.CNOTs)
	enc.IntKey("hadamards", r.Hadamards)
	enc.IntKey("depth", r.Depth)
	enc.IntKey("predicted_cnots", r.Predicted)
	enc.IntKey("predicted_hadamards", r.PredictedH)
	enc.StringKey("oracle", r.Oracle)
	enc.StringKey("code", r.Code)
	enc.StringKey("state", r.State)
	enc.StringKeyOmitEmpty("artifact", r.Artifact)
	enc.Int64Key("synth_us", r.Micros)
	enc.StringKey("fingerprint", fmt.Sprintf("%016x", r.Fingerprint))
}

func (r *record) IsNil() bool { return r == nil }

type recordList []record

func (l recordList) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range l {
		enc.Object(&l[i])
	}
}

func (l recordList) IsNil() bool { return l == nil }

type jsonReport struct {
	Generated string
	Records   recordList
}

func (j *jsonReport) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("generated", j.Generated)
	enc.ArrayKey("records", j.Records)
}

func (j *jsonReport) IsNil() bool { return j == nil }

var csvHeader = []string{
	"variant", "r", "m", "r_in", "trial", "state_prep", "cnots", "hadamards", "depth",
	"predicted_cnots", "predicted_hadamards", "oracle", "code", "state", "synth_us",
}

func (r record) csvRow() []string {
	return []string{
		r.Variant,
		strconv.Itoa(r.R),
		strconv.Itoa(r.M),
		strconv.Itoa(r.RIn),
		strconv.Itoa(r.Trial),
		strconv.FormatBool(r.StatePrep),
		strconv.Itoa(r.CNOTs),
		strconv.Itoa(r.Hadamards),
		strconv.Itoa(r.Depth),
		strconv.Itoa(r.Predicted),
		strconv.Itoa(r.PredictedH),
		r.Oracle,
		r.Code,
		r.State,
		strconv.FormatInt(r.Micros, 10),
	}
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func writeReports(rc config.ReportConfig, recs []record) error {
	for _, p := range []string{rc.Markdown, rc.JSON, rc.CSV} {
		if err := ensureDir(p); err != nil {
			return err
		}
	}
	b, err := gojay.MarshalJSONObject(&jsonReport{
		Generated: time.Now().Format(time.RFC3339),
		Records:   recs,
	})
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if err := os.WriteFile(rc.JSON, b, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if err := writeCSV(rc.CSV, recs); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := writeMarkdown(rc.Markdown, recs); err != nil {
		return fmt.Errorf("write md: %w", err)
	}
	return nil
}

func writeCSV(path string, recs []record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		if err := w.Write(r.csvRow()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type caseKey struct{ R, M int }

func writeMarkdown(path string, recs []record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# QRM Encoder Evaluation Report\n\n")
	fmt.Fprintf(f, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	// Flat vs recursive CNOT counts on the standard layout.
	flat := map[caseKey]int{}
	rec := map[caseKey]int{}
	for _, r := range recs {
		if r.Trial != 0 {
			continue
		}
		switch r.Variant {
		case "Standard":
			flat[caseKey{r.R, r.M}] = r.CNOTs
		case "Recursive":
			rec[caseKey{r.R, r.M}] = r.CNOTs
		}
	}
	keys := make([]caseKey, 0, len(rec))
	for k := range rec {
		if _, ok := flat[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].M != keys[j].M {
			return keys[i].M < keys[j].M
		}
		return keys[i].R < keys[j].R
	})
	if len(keys) > 0 {
		fmt.Fprintf(f, "## Standard vs. Recursive CNOT count\n\n")
		fmt.Fprintf(f, "| m | r | Standard | Recursive | Saved (%%) |\n")
		fmt.Fprintf(f, "|---:|---:|---:|---:|---:|\n")
		for _, k := range keys {
			s, q := flat[k], rec[k]
			saved := 0.0
			if s > 0 {
				saved = 100 * float64(s-q) / float64(s)
			}
			fmt.Fprintf(f, "| %d | %d | %d | %d | %.1f |\n", k.M, k.R, s, q, saved)
		}
		fmt.Fprintf(f, "\n")
	}

	fmt.Fprintf(f, "## All cases\n\n")
	fmt.Fprintf(f, "| Variant | m | r | r_in | trial | CNOT | H | depth | oracle | code | state |\n")
	fmt.Fprintf(f, "|---|---:|---:|---:|---:|---:|---:|---:|---|---|---|\n")
	for _, r := range recs {
		fmt.Fprintf(f, "| %s | %d | %d | %d | %d | %d | %d | %d | %s | %s | %s |\n",
			r.Variant, r.M, r.R, r.RIn, r.Trial, r.CNOTs, r.Hadamards, r.Depth, r.Oracle, r.Code, r.State)
	}
	fmt.Fprintf(f, "\n---\n\n")
	fmt.Fprintf(f, "Notes:\n\n- oracle compares the CNOT and Hadamard counts with the closed-form counts.\n- code checks the GF(2) span of stabilizer and message inputs.\n- state runs the encoder and its inverse on the state vector simulator; recursive encoders are also compared with the flat one.\n")
	return nil
}

// printSummary renders one line per (variant, m) and returns the number of failing cases.
func printSummary(w io.Writer, recs []record) int {
	type group struct {
		variant string
		m       int
	}
	type agg struct {
		cases, failed, cnots int
	}
	groups := map[group]*agg{}
	var order []group
	failed := 0
	for _, r := range recs {
		g := group{r.Variant, r.M}
		a, ok := groups[g]
		if !ok {
			a = &agg{}
			groups[g] = a
			order = append(order, g)
		}
		a.cases++
		a.cnots += r.CNOTs
		if r.failed() {
			a.failed++
			failed++
		}
	}
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Variant", "m", "Cases", "CNOTs", "Status"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, g := range order {
		a := groups[g]
		status := pass("PASS")
		if a.failed > 0 {
			status = fail(fmt.Sprintf("FAIL %d", a.failed))
		}
		table.Append([]string{g.variant, strconv.Itoa(g.m), strconv.Itoa(a.cases), strconv.Itoa(a.cnots), status})
	}
	table.Render()
	return failed
}
