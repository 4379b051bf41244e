/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package workspace

import (
	"os"
	"path/filepath"

	"github.com/CESSProject/iris-node/configs"
	"github.com/pkg/errors"
)

type Workspace interface {
	Build() error
	RemoveAndBuild() error
	GetRootDir() string
	GetDbDir() string
	GetOffchainDir() string
	GetLogDir() string
}

type workspace struct {
	rootDir     string
	dbDir       string
	offchainDir string
	logDir      string
}

var _ Workspace = (*workspace)(nil)

// NewWorkspace roots the node directories at <ws>/<name>.
func NewWorkspace(ws string) Workspace {
	root := filepath.Join(ws, configs.Name)
	return &workspace{
		rootDir:     root,
		dbDir:       filepath.Join(root, configs.DbDir),
		offchainDir: filepath.Join(root, configs.OffchainDir),
		logDir:      filepath.Join(root, configs.LogDir),
	}
}

func (w *workspace) Build() error {
	if w.rootDir == "" {
		return errors.New("please initialize the workspace first")
	}
	for _, dir := range []string{w.dbDir, w.offchainDir, w.logDir} {
		if err := os.MkdirAll(dir, configs.DirMode); err != nil {
			return errors.Wrapf(err, "[MkdirAll] %s", dir)
		}
	}
	return nil
}

// RemoveAndBuild wipes the chain state and the offchain storage, keeping logs.
func (w *workspace) RemoveAndBuild() error {
	if w.rootDir == "" {
		return errors.New("please initialize the workspace first")
	}
	if err := os.RemoveAll(w.dbDir); err != nil {
		return err
	}
	if err := os.RemoveAll(w.offchainDir); err != nil {
		return err
	}
	return w.Build()
}

func (w *workspace) GetRootDir() string {
	return w.rootDir
}

func (w *workspace) GetDbDir() string {
	return w.dbDir
}

func (w *workspace) GetOffchainDir() string {
	return w.offchainDir
}

func (w *workspace) GetLogDir() string {
	return w.logDir
}
