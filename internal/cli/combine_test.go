package cli

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuedego/secreon/pkg/secreon"
)

func TestCombineCmd_PositionalArgs(t *testing.T) {
	masterSecret := bytes.Repeat([]byte{0x42}, 16)
	groups := []secreon.GroupSpec{{MemberThreshold: 2, MemberCount: 3}}
	mnemonics, err := secreon.GenerateMnemonics(nil, 1, groups, masterSecret, nil, true, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	args := append([]string{"combine", "--output", "text"}, mnemonics[0][:2]...)
	rootCmd.SetArgs(args)

	require.NoError(t, Execute())
	assert.Equal(t, hex.EncodeToString(masterSecret)+"\n", buf.String())
}

func TestCombineCmd_FromFile(t *testing.T) {
	masterSecret := bytes.Repeat([]byte{0x17}, 16)
	groups := []secreon.GroupSpec{{MemberThreshold: 2, MemberCount: 3}}
	mnemonics, err := secreon.GenerateMnemonics(nil, 1, groups, masterSecret, nil, true, 0)
	require.NoError(t, err)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "shares.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(mnemonics[0][:2], "\n")), 0o600))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"combine", "--output", "text", "--from-file", path})

	require.NoError(t, Execute())
	assert.Equal(t, hex.EncodeToString(masterSecret)+"\n", buf.String())
}

func TestCombineCmd_JSONOutput(t *testing.T) {
	masterSecret := bytes.Repeat([]byte{0x99}, 16)
	groups := []secreon.GroupSpec{{MemberThreshold: 2, MemberCount: 3}}
	mnemonics, err := secreon.GenerateMnemonics(nil, 1, groups, masterSecret, nil, true, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	args := append([]string{"combine", "--output", "json", "--from-file", ""}, mnemonics[0][:2]...)
	rootCmd.SetArgs(args)

	require.NoError(t, Execute())
	assert.Contains(t, buf.String(), `"master_secret"`)
	assert.Contains(t, buf.String(), hex.EncodeToString(masterSecret))
}

func TestReadLines_SkipsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\nb\n"), 0o600))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}
