package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"dnpsim/pkg/op"
	"dnpsim/pkg/verify"
)

func TestObserveReport(t *testing.T) {
	m := New()

	m.ObserveReport(&verify.Report{
		Operations:   []op.Operation{op.Add(1, op.MV, 0), op.Add(2, op.MV, 1), op.Add(3, op.MV, 2)},
		Permutations: 6,
		Outcome:      verify.Diverged,
	})
	m.ObserveReport(&verify.Report{
		Operations:   []op.Operation{op.Add(1, op.MV, 0)},
		Permutations: 1,
		Outcome:      verify.Converged,
	})
	m.ObserveContractViolation()

	require.Equal(t, 1.0, testutil.ToFloat64(m.simulations.WithLabelValues("diverged")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.simulations.WithLabelValues("converged")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.simulations.WithLabelValues("presence-converged")))
	require.Equal(t, 7.0, testutil.ToFloat64(m.permutations))
	require.Equal(t, 19.0, testutil.ToFloat64(m.operationsApplied))
	require.Equal(t, 1.0, testutil.ToFloat64(m.contractViolations))
	require.Equal(t, 1, testutil.CollectAndCount(m.operationsPerSim))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveReport(&verify.Report{
		Operations:   []op.Operation{op.Add(1, op.MV, 0), op.DeleteAttr(2, op.SV)},
		Permutations: 2,
		Outcome:      verify.PresenceConverged,
	})

	path := filepath.Join(t.TempDir(), "dnpsim.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `dnpsim_simulations_total{outcome="presence-converged"} 1`)
	require.Contains(t, out, "dnpsim_permutations_total 2")
	require.Contains(t, out, "dnpsim_operations_per_simulation_count 1")
}
