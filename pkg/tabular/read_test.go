package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLines_BOMAndCRLF(t *testing.T) {
	payload := "\xEF\xBB\xBFFirst Name,Last Name\r\nJane,Doe\r\n"
	lines, err := ReadLines(strings.NewReader(payload), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"First Name,Last Name", "Jane,Doe", ""}, lines)
}

func TestReadLines_Windows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid UTF-8 on its own.
	payload := "Jos\xE9,Garc\xEDa"
	lines, err := ReadLines(strings.NewReader(payload), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"José,García"}, lines)
}

func TestReadLines_SizeCap(t *testing.T) {
	payload := strings.Repeat("x", 100)
	_, err := ReadLines(strings.NewReader(payload), 50)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds")
}
