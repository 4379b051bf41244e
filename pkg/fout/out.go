/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package out

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	HiRed    = 91
	HiGreen  = 92
	HiYellow = 93
	HiBlue   = 94
)

const (
	OkPrompt    = "OK"
	WarnPrompt  = "!!"
	ErrPrompt   = "XX"
	InputPrompt = ">>"
	TipPrompt   = "++"
)

const TimeFormat = "2006-01-02 15:04:05"

// Writer is where every prompt is printed.
var Writer io.Writer = os.Stdout

func Input(msg string) {
	fmt.Fprintln(Writer, colour(HiBlue, InputPrompt), msg)
}

func Tip(msg string) {
	stamp(HiGreen, TipPrompt, msg)
}

func Err(msg string) {
	stamp(HiRed, ErrPrompt, msg)
}

func Warn(msg string) {
	stamp(HiYellow, WarnPrompt, msg)
}

func Ok(msg string) {
	stamp(HiGreen, OkPrompt, msg)
}

// Table prints key/value rows as a bordered table.
func Table(title string, rows [][2]string) {
	fmt.Fprintln(Writer, RenderTable(title, rows))
}

func RenderTable(title string, rows [][2]string) string {
	tw := table.NewWriter()
	if title != "" {
		tw.SetTitle(title)
	}
	for _, r := range rows {
		tw.AppendRow(table.Row{r[0], r[1]})
	}
	return tw.Render()
}

func stamp(c int, prompt, msg string) {
	fmt.Fprintln(Writer, colour(c, prompt), fmt.Sprintf("%v %s", time.Now().Format(TimeFormat), msg))
}

func colour(c int, s string) string {
	return fmt.Sprintf("\x1b[0;%dm%s\x1b[0m", c, s)
}
