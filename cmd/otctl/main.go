package main

import "otconsole/cli"

func main() {
	cli.Execute()
}
