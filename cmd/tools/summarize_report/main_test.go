package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `variant,r,m,r_in,trial,state_prep,cnots,hadamards,depth,predicted_cnots,predicted_hadamards,oracle,code,state,synth_us
Recursive,1,3,1,0,false,10,4,5,10,4,ok,ok,ok,12
Recursive,2,3,2,0,false,12,1,5,12,1,ok,ok,skipped,9
Standard,1,3,1,0,false,12,4,4,12,4,ok,wrong code,ok,3
`

func TestSummarize(t *testing.T) {
	rows, err := loadRows(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.True(t, rows[2].failed)
	require.False(t, rows[1].failed)

	var buf bytes.Buffer
	summarize(&buf, rows, 1)
	out := buf.String()
	require.Contains(t, out, "## Recursive\n\n2 cases, 0 failing.")
	require.Contains(t, out, "| 3 | 2 | 0 | 12 | 12 |")
	require.NotContains(t, out, "| 3 | 1 | 0 | 10 | 10 |")
	require.Contains(t, out, "1 cases, 1 failing.")

	_, err = loadRows(strings.NewReader("a,b\n1,2\n"))
	require.Error(t, err)
}
