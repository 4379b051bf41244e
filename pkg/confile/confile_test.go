/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package confile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	fpath := filepath.Join(dir, "conf.yaml")
	content = strings.ReplaceAll(content, `workspace: "/"`, `workspace: "`+filepath.Join(dir, "ws")+`"`)
	require.NoError(t, os.WriteFile(fpath, []byte(content), 0644))
	return fpath
}

func TestParseTemplate(t *testing.T) {
	c := NewConfigFile()
	err := c.Parse(writeProfile(t, TempleteProfile))
	require.NoError(t, err)

	assert.Equal(t, uint16(15001), c.ReadServicePort())
	assert.Equal(t, 6*time.Second, c.ReadBlockTime())
	assert.Equal(t, uint32(10), c.ReadSessionPeriod())
	assert.Equal(t, uint32(2), c.ReadMinAuthorities())
	assert.Equal(t, uint32(3), c.ReadMaxDeadSession())
	assert.Equal(t, 5*time.Second, c.ReadIpfsTimeout())
	assert.Equal(t, "http://127.0.0.1:5001", c.ReadIpfsApi())
	assert.True(t, c.ReadValidatorMode())
	assert.Empty(t, c.ReadMnemonic())
	assert.Nil(t, c.ReadSignaturePublickey())

	vals := c.ReadGenesisValidators()
	require.Len(t, vals, 2)
	assert.Equal(t, signature.TestKeyringPairAlice.PublicKey, vals[0][:])
	assert.DirExists(t, c.ReadWorkspace())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
	}{
		{"reserved port", [2]string{"port: 15001", "port: 80"}},
		{"zero session period", [2]string{"sessionperiod: 10", "sessionperiod: 0"}},
		{"bad validator", [2]string{"5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty", "bogus"}},
		{"bad mnemonic", [2]string{`mnemonic: ""`, `mnemonic: "not a valid phrase"`}},
		{"bad bootstrap", [2]string{"bootstrap: []", `bootstrap: ["/ip4/nope"]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(TempleteProfile, tt.replace[0], tt.replace[1], 1)
			err := NewConfigFile().Parse(writeProfile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	err := NewConfigFile().Parse(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
	err = NewConfigFile().Parse(t.TempDir())
	assert.Error(t, err)
}

func TestSetMnemonic(t *testing.T) {
	c := NewConfigFile()
	assert.Error(t, c.SetMnemonic("definitely not words"))
	require.NoError(t, c.SetMnemonic(signature.TestKeyringPairAlice.URI))
	assert.Equal(t, signature.TestKeyringPairAlice.PublicKey, c.ReadSignaturePublickey())
	assert.Equal(t, signature.TestKeyringPairAlice.Address, c.ReadSignatureAccount())
}
