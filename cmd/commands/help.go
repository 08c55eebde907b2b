package commands

import "fmt"

const helpText = `Usage: mediavault <command> [flags]

Commands:
  run <config.yml>   start the server with the given config
  version            print the version
  help               show this message
`

func HandleHelp(_ []string) {
	fmt.Print(helpText) //nolint
}
