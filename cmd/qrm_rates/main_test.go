package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/rates"
)

func TestWritePoints(t *testing.T) {
	pts, err := rates.Points(6)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, writePoints(&buf, pts))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "r,m,catalytic,ea,theorem3", lines[0])
	require.Equal(t, "1,4,0.0546875,0.1953125,true", lines[1])
	require.Len(t, lines, 3)
}

func TestWriteBounds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBounds(&buf, 0, 2))
	require.Contains(t, buf.String(), "L(R)")
}
