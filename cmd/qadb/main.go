// Package main is the entry point for the qadb command.
//
// Everything lives in the commands package; main only hands control to it.
//
//	qadb seed                 # create tables and demo data in data/questions.db
//	qadb thread 1             # print question 1 with its replies
//	qadb question top -n 3    # three most liked questions
package main

import "github.com/sakif/questions-db/cmd/qadb/commands"

func main() {
	commands.Execute()
}
