/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/CESSProject/iris-node/pkg/confile"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProfile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, writeProfile(file))

	cfg, err := parseConfigFile(file)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), cfg.ReadSessionPeriod())
	assert.Len(t, cfg.ReadGenesisValidators(), 2)
}

func TestOverrideArgs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.yaml")
	require.NoError(t, writeProfile(file))
	cfg, err := parseConfigFile(file)
	require.NoError(t, err)

	cmd := &cobra.Command{}
	cmd.Flags().String("ws", "", "")
	cmd.Flags().Uint16("port", 0, "")
	require.NoError(t, overrideArgs(cmd, cfg))
	assert.Equal(t, "/", cfg.ReadWorkspace())

	require.NoError(t, cmd.Flags().Set("ws", dir))
	require.NoError(t, cmd.Flags().Set("port", "16001"))
	require.NoError(t, overrideArgs(cmd, cfg))
	assert.Equal(t, dir, cfg.ReadWorkspace())
	assert.Equal(t, uint16(16001), cfg.ReadServicePort())

	require.NoError(t, cmd.Flags().Set("port", "80"))
	assert.Error(t, overrideArgs(cmd, cfg))
}

func TestStatRows(t *testing.T) {
	cfg := confile.NewConfigFile()
	file := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, writeProfile(file))
	require.NoError(t, cfg.Parse(file))

	rows := statRows(cfg)
	var keys []string
	for _, r := range rows {
		keys = append(keys, r[0])
	}
	assert.Contains(t, keys, "signature account")
	assert.Contains(t, keys, "genesis validator 1")
	assert.Equal(t, "-", rows[0][1])
	assert.True(t, strings.HasSuffix(rows[2][1], "iris"))
}
