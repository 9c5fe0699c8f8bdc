package main

import "github.com/datalift/tablegate/cmd"

func main() {
	cmd.Execute()
}
