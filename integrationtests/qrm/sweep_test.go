package qrm_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/counts"
	"github.com/qrm-go/qrm/internal/config"
	"github.com/qrm-go/qrm/internal/metrics"
	"github.com/qrm-go/qrm/internal/verify"
	"github.com/qrm-go/qrm/partition"
	"github.com/qrm-go/qrm/synth"
)

// repoRoot finds the repository root by searching for go.mod upwards.
func repoRoot(t *testing.T) string {
	t.Helper()
	wd, _ := os.Getwd()
	dir := wd
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		nd := filepath.Dir(dir)
		if nd == dir || nd == "/" {
			break
		}
		dir = nd
	}
	return wd
}

// TestConfiguredSweep runs the checked-in sweep configuration, capped at m=4, with
// random split orders and qubit layouts for every recursive variant.
func TestConfiguredSweep(t *testing.T) {
	cfg, err := config.Load(filepath.Join(repoRoot(t), "configs", "qrm_eval.yaml"))
	require.NoError(t, err)
	sc := cfg.Sweep.WithDefaults()
	if sc.MaxM > 4 {
		sc.MaxM = 4
	}
	variants, err := sc.ParsedVariants()
	require.NoError(t, err)

	collector := metrics.New()
	rng := rand.New(rand.NewSource(sc.Seed))
	var n int
	t0 := time.Now()
	for _, v := range variants {
		for m := sc.MinM; m <= sc.MaxM; m++ {
			for r := -1; r <= m; r++ {
				for trial := 0; trial <= sc.RandomPartitions; trial++ {
					opts := []synth.Option{synth.WithTracer(collector)}
					if v == synth.Asymmetric {
						opts = append(opts, synth.WithRIn(m))
					}
					if trial > 0 {
						if v == synth.Standard {
							break
						}
						opts = append(opts, synth.WithPartition(partition.Random(rng, m)), synth.WithQubits(rng.Perm(1<<m)))
					}
					c, err := synth.NewConfig(v, r, m, opts...)
					if err != nil {
						break
					}
					start := time.Now()
					res, err := synth.Synthesize(c)
					require.NoError(t, err)
					collector.ObserveResult(c, res, time.Since(start))

					want, err := counts.Predict(c)
					require.NoError(t, err)
					if want != res.Circuit.CNOTCount() {
						collector.Mismatch(v)
					}
					require.NoError(t, verify.Code(c, res), "%s r=%d m=%d trial=%d", v, r, m, trial)
					n++
				}
			}
		}
	}
	t.Logf("checked %d encoders in %s", n, time.Since(t0))
	require.Positive(t, n)

	path := filepath.Join(t.TempDir(), "qrm.prom")
	require.NoError(t, collector.WriteTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "qrm_synth_nodes_total")
	require.NotContains(t, string(b), "qrm_synth_oracle_mismatch_total{")
	count, err := testutil.GatherAndCount(collector.Registry(), "qrm_synth_circuit_cnots")
	require.NoError(t, err)
	require.Positive(t, count)
}
