/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"os"
	"path/filepath"

	"github.com/CESSProject/iris-node/configs"
	"github.com/CESSProject/iris-node/pkg/confile"
	out "github.com/CESSProject/iris-node/pkg/fout"
	"github.com/spf13/cobra"
)

const (
	config_cmd       = "config"
	config_cmd_short = "Generate configuration file"
)

var configCmd = &cobra.Command{
	Use:                   config_cmd,
	Short:                 config_cmd_short,
	Run:                   configCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmdFunc generate a configuration file template
func configCmdFunc(cmd *cobra.Command, args []string) {
	err := writeProfile(configs.DefaultConfigFile)
	if err != nil {
		out.Err(err.Error())
		return
	}
	pwd, err := os.Getwd()
	if err != nil {
		out.Err(err.Error())
		return
	}
	out.Ok(filepath.Join(pwd, configs.DefaultConfigFile))
}

func writeProfile(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(confile.TempleteProfile)
	if err != nil {
		return err
	}
	return f.Sync()
}
