package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuedego/secreon/internal/output"
	secreonerrors "github.com/cuedego/secreon/pkg/errors"
)

func TestFormatError_Nil(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := output.FormatError(&buf, nil, output.FormatText)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestFormatError_TextStructured(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	se := secreonerrors.New(secreonerrors.KindChecksumFailure, "checksum mismatch")

	err := output.FormatError(&buf, se, output.FormatText)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ChecksumFailure")
	assert.Contains(t, buf.String(), "checksum mismatch")
}

func TestFormatError_TextGeneric(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	plain := errors.New("boom")

	err := output.FormatError(&buf, plain, output.FormatText)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error: boom")
}

func TestFormatError_JSONStructured(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	se := secreonerrors.New(secreonerrors.KindInsufficientShares, "not enough shares")

	err := output.FormatError(&buf, se, output.FormatJSON)
	require.NoError(t, err)

	var decoded output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "InsufficientShares", decoded.Error.Kind)
	assert.Equal(t, "not enough shares", decoded.Error.Message)
	assert.Equal(t, secreonerrors.ExitShares, decoded.Error.ExitCode)
}

func TestFormatError_JSONGeneric(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	plain := errors.New("boom")

	err := output.FormatError(&buf, plain, output.FormatJSON)
	require.NoError(t, err)

	var decoded output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "GeneralError", decoded.Error.Kind)
	assert.Equal(t, secreonerrors.ExitGeneral, decoded.Error.ExitCode)
}

func TestFormatError_WrappedError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	wrapped := secreonerrors.Wrap(secreonerrors.KindArithmeticError, "interpolation failed", errors.New("divide by zero"))

	err := output.FormatError(&buf, wrapped, output.FormatText)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ArithmeticError")
	assert.Contains(t, buf.String(), "interpolation failed")
}

func TestFormatSuccess_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := output.FormatSuccess(&buf, "done", output.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "done\n", buf.String())
}

func TestFormatSuccess_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := output.FormatSuccess(&buf, "done", output.FormatJSON)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
	assert.Equal(t, "done", decoded["message"])
}
