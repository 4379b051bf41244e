/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	require.NoError(t, ws.Build())
	assert.DirExists(t, ws.GetDbDir())
	assert.DirExists(t, ws.GetOffchainDir())
	assert.DirExists(t, ws.GetLogDir())
	assert.Equal(t, ws.GetRootDir(), filepath.Dir(ws.GetDbDir()))

	marker := filepath.Join(ws.GetDbDir(), "CURRENT")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0644))
	logfile := filepath.Join(ws.GetLogDir(), "log.log")
	require.NoError(t, os.WriteFile(logfile, []byte("x"), 0644))

	require.NoError(t, ws.RemoveAndBuild())
	assert.NoFileExists(t, marker)
	assert.FileExists(t, logfile)
	assert.DirExists(t, ws.GetDbDir())
}
