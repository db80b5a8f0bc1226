package main

import (
	"fmt"
	"os"

	"fjacquet/expense-report/cmd/classify"
	"fjacquet/expense-report/cmd/report"
	"fjacquet/expense-report/cmd/root"
	"fjacquet/expense-report/cmd/rules"
	"fjacquet/expense-report/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
