package main

import "github.com/LegacyCodeHQ/incfix/cmd"

func main() {
	cmd.Execute()
}
