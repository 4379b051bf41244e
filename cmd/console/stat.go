/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"fmt"
	"os"

	"github.com/CESSProject/iris-node/configs"
	"github.com/CESSProject/iris-node/node/workspace"
	"github.com/CESSProject/iris-node/pkg/confile"
	out "github.com/CESSProject/iris-node/pkg/fout"
	"github.com/CESSProject/iris-node/pkg/utils"
	"github.com/spf13/cobra"
)

const (
	stat_cmd       = "stat"
	stat_cmd_use   = "stat"
	stat_cmd_short = "Query node information"
)

var statCmd = &cobra.Command{
	Use:                   stat_cmd_use,
	Short:                 stat_cmd_short,
	Run:                   statCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func statCmdFunc(cmd *cobra.Command, args []string) {
	cfg := InitConfigFile(cmd)
	out.Table(configs.Name+" "+configs.Version, statRows(cfg))
	os.Exit(0)
}

func statRows(cfg *confile.Confile) [][2]string {
	acc := cfg.ReadSignatureAccount()
	if acc == "" {
		acc = "-"
	}
	rows := [][2]string{
		{"signature account", acc},
		{"validator mode", fmt.Sprintf("%v", cfg.ReadValidatorMode())},
		{"workspace", workspace.NewWorkspace(cfg.ReadWorkspace()).GetRootDir()},
		{"service port", fmt.Sprintf("%d", cfg.ReadServicePort())},
		{"block time", cfg.ReadBlockTime().String()},
		{"session period", fmt.Sprintf("%d blocks", cfg.ReadSessionPeriod())},
		{"min authorities", fmt.Sprintf("%d", cfg.ReadMinAuthorities())},
		{"max dead sessions", fmt.Sprintf("%d", cfg.ReadMaxDeadSession())},
		{"ipfs api", cfg.ReadIpfsApi()},
		{"bootstrap", fmt.Sprintf("%d addresses", len(cfg.ReadBootstrap()))},
	}
	for i, v := range cfg.ReadGenesisValidators() {
		rows = append(rows, [2]string{fmt.Sprintf("genesis validator %d", i), utils.AccountString(v)})
	}
	return rows
}
