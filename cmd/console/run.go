/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CESSProject/iris-node/configs"
	"github.com/CESSProject/iris-node/node"
	"github.com/CESSProject/iris-node/pkg/confile"
	out "github.com/CESSProject/iris-node/pkg/fout"
	"github.com/howeyc/gopass"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

const (
	run_cmd       = "run"
	run_cmd_use   = "run"
	run_cmd_short = "Running through a configuration file"
)

var runCmd = &cobra.Command{
	Use:                   run_cmd_use,
	Short:                 run_cmd_short,
	Run:                   runCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runCmd run the service with the configuration file
func runCmdFunc(cmd *cobra.Command, args []string) {
	cfg := InitConfigFile(cmd)
	if cfg.ReadMnemonic() == "" && terminal.IsTerminal(int(os.Stdin.Fd())) {
		inputMnemonic(cfg)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	node.InitNode(cfg).Run(ctx)
}

func InitConfigFile(cmd *cobra.Command) *confile.Confile {
	config_file, err := parseArgs_config(cmd)
	if err != nil {
		out.Err(fmt.Sprintf("parseArgs_config err: %v", err))
		os.Exit(1)
	}
	cfg, err := parseConfigFile(config_file)
	if err != nil {
		out.Err(fmt.Sprintf("parse config file err: %v", err))
		os.Exit(1)
	}
	err = overrideArgs(cmd, cfg)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	return cfg
}

func parseArgs_config(cmd *cobra.Command) (string, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile = configs.DefaultConfigFile
	}
	_, err := os.Stat(configFile)
	if err != nil {
		return "", err
	}
	return configFile, nil
}

func parseConfigFile(file string) (*confile.Confile, error) {
	cfg := confile.NewConfigFile()
	err := cfg.Parse(file)
	return cfg, err
}

// overrideArgs applies command line flags on top of the configuration file
func overrideArgs(cmd *cobra.Command, cfg *confile.Confile) error {
	ws, _ := cmd.Flags().GetString("ws")
	if ws != "" {
		if err := cfg.SetWorkspace(ws); err != nil {
			return err
		}
	}
	port, _ := cmd.Flags().GetUint16("port")
	if port != 0 {
		if err := cfg.SetServicePort(port); err != nil {
			return err
		}
	}
	return nil
}

func inputMnemonic(cfg *confile.Confile) {
	var istips bool
	for {
		if !istips {
			out.Input("Please enter the mnemonic of the signature account, press Enter to run without signing:")
			istips = true
		}
		pwd, err := gopass.GetPasswdMasked()
		if err != nil {
			if err == gopass.ErrInterrupted {
				os.Exit(0)
			}
			out.Err("Invalid mnemonic, please check and re-enter:")
			continue
		}
		if len(pwd) == 0 {
			return
		}
		err = cfg.SetMnemonic(string(pwd))
		if err != nil {
			out.Err("Invalid mnemonic, please check and re-enter:")
			continue
		}
		return
	}
}
